package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"smartbikepass-backend/internal/domain/user"
)

type Claims struct {
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
	jwt.RegisteredClaims
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      user.Role `json:"role"`
}

// Seed is a reviewer account provisioned at startup.
type Seed struct {
	Username string
	Password string
	Role     user.Role
}
