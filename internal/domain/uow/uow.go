package uow

import (
	"context"

	"smartbikepass-backend/internal/domain/application"
	"smartbikepass-backend/internal/domain/audit"
)

// Repos are bound to one transaction.
type Repos struct {
	Applications application.Repository
	Audits       audit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, passID string, fn func(r Repos, a *application.Application) error) error
}
