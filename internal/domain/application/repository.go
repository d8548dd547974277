package application

import "context"

type Repository interface {
	// Create inserts a new application. A taken pass_id yields ErrDuplicatePassID.
	Create(ctx context.Context, a *Application) error

	GetByPassID(ctx context.Context, passID string) (*Application, error)

	// GetByPassIDForUpdate reads the row under a write lock; only meaningful inside a transaction.
	GetByPassIDForUpdate(ctx context.Context, passID string) (*Application, error)

	// ListByStatus returns matching rows, newest submission first.
	ListByStatus(ctx context.Context, statuses []Status) ([]Application, error)

	// SaveReview persists status, remarks and reviewed-at of a, provided the stored status is still from.
	// A lost race yields ErrConflict.
	SaveReview(ctx context.Context, a *Application, from Status) error

	CountByStatus(ctx context.Context) (Stats, error)
}
