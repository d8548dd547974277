package mysql

import (
	"context"
	"errors"

	userDomain "smartbikepass-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var out userDomain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepository) CreateIfAbsent(ctx context.Context, u *userDomain.User) (bool, error) {
	if _, err := r.GetByUsername(ctx, u.Username); err == nil {
		return false, nil
	} else if !errors.Is(err, userDomain.ErrNotFound) {
		return false, err
	}
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	return err == nil, err
}
