package application

import (
	"time"

	"smartbikepass-backend/internal/domain/document"
)

// SubmitInput is an applicant's form. A nil document counts as missing.
type SubmitInput struct {
	FullName    string
	RollNo      string
	Email       string
	Phone       string
	Department  string
	Year        string
	VehicleNo   string
	VehicleType string

	RCBook    *document.Upload
	License   *document.Upload
	Insurance *document.Upload
}

type SubmitResult struct {
	PassID string `json:"pass_id"`
	Status string `json:"status"`
}

// ApprovedPass is what the gate sees for an approved application.
type ApprovedPass struct {
	PassID      string     `json:"pass_id"`
	FullName    string     `json:"full_name"`
	RollNo      string     `json:"roll_no"`
	Department  string     `json:"department"`
	Year        string     `json:"year"`
	VehicleNo   string     `json:"vehicle_no"`
	VehicleType string     `json:"vehicle_type"`
	ApprovedAt  *time.Time `json:"approved_at"`
}

type StatsDTO struct {
	ByStatus map[string]int64 `json:"by_status"`
	Total    int64            `json:"total"`
}
