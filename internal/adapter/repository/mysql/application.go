package mysql

import (
	"context"
	"errors"

	appDomain "smartbikepass-backend/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appDomain.ErrDuplicatePassID
	}
	return err
}

func (r *ApplicationRepository) GetByPassID(ctx context.Context, passID string) (*appDomain.Application, error) {
	var out appDomain.Application
	err := r.db.WithContext(ctx).Where("pass_id = ?", passID).First(&out).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (r *ApplicationRepository) GetByPassIDForUpdate(ctx context.Context, passID string) (*appDomain.Application, error) {
	var out appDomain.Application
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pass_id = ?", passID).
		First(&out).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (r *ApplicationRepository) ListByStatus(ctx context.Context, statuses []appDomain.Status) ([]appDomain.Application, error) {
	out := []appDomain.Application{}
	if len(statuses) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("submitted_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ApplicationRepository) SaveReview(ctx context.Context, a *appDomain.Application, from appDomain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("pass_id = ? AND status = ?", a.PassID, from).
		Updates(map[string]any{
			"status":                a.Status,
			"transport_remarks":     a.TransportRemarks,
			"principal_remarks":     a.PrincipalRemarks,
			"transport_reviewed_at": a.TransportReviewedAt,
			"principal_reviewed_at": a.PrincipalReviewedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appDomain.ErrConflict
	}
	return nil
}

// CountByStatus is one GROUP BY statement, so every count comes from the same snapshot.
func (r *ApplicationRepository) CountByStatus(ctx context.Context) (appDomain.Stats, error) {
	var rows []struct {
		Status appDomain.Status
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return appDomain.Stats{}, err
	}

	stats := appDomain.Stats{ByStatus: make(map[appDomain.Status]int64, len(appDomain.AllStatuses))}
	for _, s := range appDomain.AllStatuses {
		stats.ByStatus[s] = 0
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] += row.N
		stats.Total += row.N
	}
	return stats, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appDomain.ErrNotFound
	}
	return err
}
