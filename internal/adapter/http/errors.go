package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"smartbikepass-backend/internal/domain/application"
	"smartbikepass-backend/internal/domain/user"
)

// writeError maps domain errors onto HTTP responses. Anything unrecognised is logged and
// reported as a generic 500.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	var (
		ve  *application.ValidationError
		iae *application.InvalidActionError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Msg})
	case errors.Is(err, application.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, application.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.As(err, &iae):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:  iae.Error(),
			Action: string(iae.Action),
			Status: string(iae.Status),
		})
	case errors.Is(err, user.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
	}

	log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
}
