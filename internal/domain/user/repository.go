package user

import "context"

type Repository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	// Create inserts u, or does nothing when the username is already taken.
	CreateIfAbsent(ctx context.Context, u *User) (bool, error)
}
