package applicationmock

import (
	"context"

	domain "smartbikepass-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, a *domain.Application) error
	GetByPassIDFn          func(ctx context.Context, passID string) (*domain.Application, error)
	GetByPassIDForUpdateFn func(ctx context.Context, passID string) (*domain.Application, error)
	ListByStatusFn         func(ctx context.Context, statuses []domain.Status) ([]domain.Application, error)
	SaveReviewFn           func(ctx context.Context, a *domain.Application, from domain.Status) error
	CountByStatusFn        func(ctx context.Context) (domain.Stats, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByPassID(ctx context.Context, passID string) (*domain.Application, error) {
	if m.GetByPassIDFn != nil {
		return m.GetByPassIDFn(ctx, passID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByPassIDForUpdate(ctx context.Context, passID string) (*domain.Application, error) {
	if m.GetByPassIDForUpdateFn != nil {
		return m.GetByPassIDForUpdateFn(ctx, passID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByStatus(ctx context.Context, statuses []domain.Status) ([]domain.Application, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, statuses)
	}
	return nil, nil
}

func (m *Repo) SaveReview(ctx context.Context, a *domain.Application, from domain.Status) error {
	if m.SaveReviewFn != nil {
		return m.SaveReviewFn(ctx, a, from)
	}
	return nil
}

func (m *Repo) CountByStatus(ctx context.Context) (domain.Stats, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return domain.Stats{ByStatus: map[domain.Status]int64{}}, nil
}
