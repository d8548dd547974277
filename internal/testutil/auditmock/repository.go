package auditmock

import (
	"context"

	domain "smartbikepass-backend/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Without AppendFn, appended entries are collected in Appended.
type Repo struct {
	AppendFn       func(ctx context.Context, e *domain.Entry) error
	ListRecentFn   func(ctx context.Context, limit int) ([]domain.Entry, error)
	ListByPassIDFn func(ctx context.Context, passID string) ([]domain.Entry, error)

	Appended []domain.Entry
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.Appended = append(m.Appended, *e)
	return nil
}

func (m *Repo) ListRecent(ctx context.Context, limit int) ([]domain.Entry, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}
	return nil, nil
}

func (m *Repo) ListByPassID(ctx context.Context, passID string) ([]domain.Entry, error) {
	if m.ListByPassIDFn != nil {
		return m.ListByPassIDFn(ctx, passID)
	}
	return nil, nil
}
