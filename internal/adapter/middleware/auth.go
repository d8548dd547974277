package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"smartbikepass-backend/internal/domain/user"
)

const identityKey = "identity"

// TokenParser resolves a bearer token into the caller's identity.
type TokenParser interface {
	Parse(token string) (user.Identity, error)
}

// Auth requires a valid bearer token and stores the caller's identity on the context.
func Auth(p TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header format"})
			}
			id, err := p.Parse(strings.TrimSpace(token))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// RequireRole lets the request through when the caller satisfies any of roles. Admin satisfies all.
// Must run after Auth.
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			for _, r := range roles {
				if id.Role.Satisfies(r) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

func IdentityFrom(c echo.Context) (user.Identity, bool) {
	id, ok := c.Get(identityKey).(user.Identity)
	return id, ok
}
