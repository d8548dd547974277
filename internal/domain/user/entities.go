package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Role string

const (
	RoleTransport Role = "transport"
	RolePrincipal Role = "principal"
	RoleAdmin     Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleTransport, RolePrincipal, RoleAdmin:
		return true
	}
	return false
}

// Satisfies reports whether r may act where required is demanded. Admin satisfies every requirement.
func (r Role) Satisfies(required Role) bool {
	if !r.IsValid() {
		return false
	}
	return r == RoleAdmin || r == required
}

// Identity is the authenticated caller as resolved by the access control gate.
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Table: users
type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Username     string    `gorm:"column:username;size:64;not null;uniqueIndex:ux_users_username" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null" json:"-"`
	Role         Role      `gorm:"column:role;size:16;not null" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) Identity() Identity { return Identity{Username: u.Username, Role: u.Role} }
