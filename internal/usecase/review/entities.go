package review

import (
	"time"

	domain "smartbikepass-backend/internal/domain/application"
	"smartbikepass-backend/internal/domain/user"
)

type ReviewInput struct {
	PassID  string
	Stage   domain.Stage
	Actor   user.Identity
	Action  domain.Action
	Remarks string
}

type ReviewDTO struct {
	PassID     string    `json:"pass_id"`
	Status     string    `json:"status"`
	Action     string    `json:"action"`
	ReviewedBy string    `json:"reviewed_by"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
