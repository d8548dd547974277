package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domain "smartbikepass-backend/internal/domain/application"
	ucApplication "smartbikepass-backend/internal/usecase/application"
	ucReview "smartbikepass-backend/internal/usecase/review"
)

// ReviewHandler serves one reviewer stage: its queue and its review action.
type ReviewHandler struct {
	stage   domain.Stage
	apps    *ucApplication.Usecase
	reviews *ucReview.Usecase
	log     *zap.Logger
}

func NewReviewHandler(stage domain.Stage, apps *ucApplication.Usecase, reviews *ucReview.Usecase, log *zap.Logger) *ReviewHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReviewHandler{stage: stage, apps: apps, reviews: reviews, log: log}
}

type reviewReq struct {
	Action  string `json:"action"  validate:"required,notblank"`
	Remarks string `json:"remarks" validate:"max=1000"`
}

func (h *ReviewHandler) Queue(c echo.Context) error {
	list, err := h.apps.Queue(c.Request().Context(), h.stage)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Review applies the action to the application; the workflow decides whether the caller may.
func (h *ReviewHandler) Review(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	out, err := h.reviews.Review(c.Request().Context(), ucReview.ReviewInput{
		PassID:  c.Param("pass_id"),
		Stage:   h.stage,
		Actor:   actor(c),
		Action:  domain.Action(req.Action),
		Remarks: req.Remarks,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
