package http

import (
	"github.com/labstack/echo/v4"

	"smartbikepass-backend/internal/adapter/middleware"
	"smartbikepass-backend/internal/domain/user"
)

// Router bundles everything the HTTP surface needs. Idempotency may be nil.
type Router struct {
	Health       *Handler
	Auth         *AuthHandler
	Applications *ApplicationHandler
	Transport    *ReviewHandler
	Principal    *ReviewHandler
	Admin        *AdminHandler

	Tokens      middleware.TokenParser
	Idempotency echo.MiddlewareFunc
}

func (r Router) Register(e *echo.Echo) {
	idem := r.Idempotency
	if idem == nil {
		idem = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	authn := middleware.Auth(r.Tokens)

	e.GET("/health", r.Health.Health)

	api := e.Group("/api")
	api.POST("/login", r.Auth.Login)
	api.POST("/apply", r.Applications.Apply, idem)
	api.GET("/status/:pass_id", r.Applications.Status)
	api.GET("/approved/:pass_id", r.Applications.Approved)

	reviewers := middleware.RequireRole(user.RoleTransport, user.RolePrincipal)
	api.GET("/applications/:pass_id", r.Applications.Detail, authn, reviewers)
	e.GET("/uploads/:ref", r.Applications.Document, authn, reviewers)

	transport := api.Group("/transport", authn)
	transport.GET("/applications", r.Transport.Queue, middleware.RequireRole(user.RoleTransport))
	transport.POST("/review/:pass_id", r.Transport.Review, idem)

	principal := api.Group("/principal", authn)
	principal.GET("/applications", r.Principal.Queue, middleware.RequireRole(user.RolePrincipal))
	principal.POST("/review/:pass_id", r.Principal.Review, idem)

	admin := api.Group("/admin", authn, middleware.RequireRole(user.RoleAdmin))
	admin.GET("/all", r.Admin.All)
	admin.GET("/stats", r.Admin.Stats)
	admin.GET("/log", r.Admin.Log)
	admin.GET("/log/:pass_id", r.Admin.LogFor)
}
