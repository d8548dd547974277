package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"smartbikepass-backend/internal/domain/user"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Usecase struct {
	users  user.Repository
	secret []byte
	ttl    time.Duration
	cost   int
	log    *zap.Logger
	now    func() time.Time
}

func NewUsecase(users user.Repository, secret string, ttl time.Duration, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		log:    log,
		now:    time.Now,
	}
}

// Login checks the password and issues a bearer token. Unknown users and wrong passwords
// are indistinguishable to the caller.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*TokenDTO, error) {
	usr, err := u.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		u.log.Info("login failed", zap.String("username", in.Username))
		return nil, user.ErrInvalidCredentials
	}

	token, exp, err := u.Issue(usr.Identity())
	if err != nil {
		return nil, err
	}
	return &TokenDTO{Token: token, ExpiresAt: exp, Username: usr.Username, Role: usr.Role}, nil
}

func (u *Usecase) Issue(id user.Identity) (string, time.Time, error) {
	now := u.now()
	exp := now.Add(u.ttl)
	claims := Claims{
		Username: id.Username,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse validates a bearer token and returns the identity it carries.
func (u *Usecase) Parse(token string) (user.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return u.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(u.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return user.Identity{}, ErrInvalidToken
	}
	if claims.Username == "" || !claims.Role.IsValid() {
		return user.Identity{}, ErrInvalidToken
	}
	return user.Identity{Username: claims.Username, Role: claims.Role}, nil
}

// SeedUsers provisions reviewer accounts that do not exist yet. Seeds without a password are skipped.
func (u *Usecase) SeedUsers(ctx context.Context, seeds []Seed) error {
	for _, s := range seeds {
		if s.Password == "" {
			u.log.Warn("seed user skipped, no password configured", zap.String("username", s.Username))
			continue
		}
		if !s.Role.IsValid() {
			return fmt.Errorf("seed user %s: invalid role %q", s.Username, s.Role)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), u.cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", s.Username, err)
		}
		created, err := u.users.CreateIfAbsent(ctx, &user.User{Username: s.Username, PasswordHash: string(hash), Role: s.Role})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", s.Username, err)
		}
		if created {
			u.log.Info("seed user created", zap.String("username", s.Username), zap.String("role", string(s.Role)))
		}
	}
	return nil
}
