package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "smartbikepass-backend/internal/domain/application"
	"smartbikepass-backend/internal/domain/audit"
	"smartbikepass-backend/internal/domain/uow"
	"smartbikepass-backend/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log, now: time.Now}
}

// Review fires one stage action on an application. The status change, the stage's remarks and
// the audit entry are written in one transaction; on any error none of them is.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*ReviewDTO, error) {
	t, err := domain.Authorize(in.Stage, in.Action, in.Actor.Role)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			u.log.Warn("review refused",
				zap.String("actor", in.Actor.Username),
				zap.String("role", string(in.Actor.Role)),
				zap.String("stage", string(in.Stage)))
		}
		return nil, err
	}

	passID := strings.ToUpper(strings.TrimSpace(in.PassID))
	if !id.IsPassID(passID) {
		return nil, domain.ErrNotFound
	}
	remarks := strings.TrimSpace(in.Remarks)

	var (
		out  *ReviewDTO
		prev domain.Status
	)
	err = u.uow.WithinApplicationTx(ctx, passID, func(r uow.Repos, a *domain.Application) error {
		from := a.Status
		to, err := t.Apply(from)
		if err != nil {
			return err
		}

		at := u.now().UTC()
		a.RecordReview(in.Stage, to, remarks, at)
		if err := r.Applications.SaveReview(ctx, a, from); err != nil {
			return err
		}

		entry := &audit.Entry{
			PassID:    a.PassID,
			Action:    t.AuditAction(),
			DoneBy:    in.Actor.Username,
			CreatedAt: at,
		}
		if remarks != "" {
			entry.Remarks = &remarks
		}
		if err := r.Audits.Append(ctx, entry); err != nil {
			return err
		}

		out = &ReviewDTO{
			PassID:     a.PassID,
			Status:     to.String(),
			Action:     entry.Action,
			ReviewedBy: entry.DoneBy,
			ReviewedAt: at,
		}
		prev = from
		return nil
	})

	switch {
	case err == nil:
		u.log.Info("application reviewed",
			zap.String("pass_id", out.PassID),
			zap.String("action", out.Action),
			zap.String("from", prev.String()),
			zap.String("to", out.Status),
			zap.String("actor", out.ReviewedBy))
		return out, nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidAction):
		return nil, err
	default:
		u.log.Error("review failed", zap.String("pass_id", passID), zap.Error(err))
		return nil, &domain.StorageError{Op: "review", Err: err}
	}
}
