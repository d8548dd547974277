package usermock

import (
	"context"

	domain "smartbikepass-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is an in-memory domain.Repository keyed by username.
type Repo struct {
	Users map[string]*domain.User
	Err   error
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *Repo) CreateIfAbsent(ctx context.Context, u *domain.User) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if m.Users == nil {
		m.Users = map[string]*domain.User{}
	}
	if _, ok := m.Users[u.Username]; ok {
		return false, nil
	}
	m.Users[u.Username] = u
	return true, nil
}
