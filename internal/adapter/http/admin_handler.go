package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	ucApplication "smartbikepass-backend/internal/usecase/application"
)

type AdminHandler struct {
	uc  *ucApplication.Usecase
	log *zap.Logger
}

func NewAdminHandler(uc *ucApplication.Usecase, log *zap.Logger) *AdminHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{uc: uc, log: log}
}

func (h *AdminHandler) All(c echo.Context) error {
	list, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) Stats(c echo.Context) error {
	s, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Log lists the newest audit entries; ?limit= defaults to 100.
func (h *AdminHandler) Log(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: "limit", Message: "must be a positive integer"}},
			})
		}
		limit = n
	}
	entries, err := h.uc.AuditTrail(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *AdminHandler) LogFor(c echo.Context) error {
	entries, err := h.uc.AuditTrailFor(c.Request().Context(), c.Param("pass_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, entries)
}
