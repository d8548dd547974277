package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	ucAuth "smartbikepass-backend/internal/usecase/auth"
)

type AuthHandler struct {
	uc  *ucAuth.Usecase
	log *zap.Logger
}

func NewAuthHandler(uc *ucAuth.Usecase, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{uc: uc, log: log}
}

type loginReq struct {
	Username string `json:"username" validate:"required,notblank,max=64"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	tok, err := h.uc.Login(c.Request().Context(), ucAuth.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, tok)
}
