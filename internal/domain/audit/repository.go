package audit

import "context"

type Repository interface {
	Append(ctx context.Context, e *Entry) error

	// ListRecent returns up to limit entries across all applications, newest first.
	ListRecent(ctx context.Context, limit int) ([]Entry, error)

	// ListByPassID returns the trail of one application, oldest first.
	ListByPassID(ctx context.Context, passID string) ([]Entry, error)
}
