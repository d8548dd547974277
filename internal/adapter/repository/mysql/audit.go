package mysql

import (
	"context"

	auditDomain "smartbikepass-backend/internal/domain/audit"

	"gorm.io/gorm"
)

// AuditRepository only ever inserts and reads; there is no update or delete path.
type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Append(ctx context.Context, e *auditDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]auditDomain.Entry, error) {
	out := []auditDomain.Entry{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *AuditRepository) ListByPassID(ctx context.Context, passID string) ([]auditDomain.Entry, error) {
	out := []auditDomain.Entry{}
	err := r.db.WithContext(ctx).
		Where("pass_id = ?", passID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
