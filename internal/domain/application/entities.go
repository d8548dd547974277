package application

import (
	"time"
)

type Status string

const (
	StatusPending           Status = "pending"
	StatusTransportVerified Status = "transport_verified"
	StatusTransportRejected Status = "transport_rejected"
	StatusApproved          Status = "approved"
	StatusPrincipalRejected Status = "principal_rejected"
)

// AllStatuses lists every workflow state in pipeline order.
var AllStatuses = []Status{
	StatusPending,
	StatusTransportVerified,
	StatusTransportRejected,
	StatusApproved,
	StatusPrincipalRejected,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

// Table: applications
type Application struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PassID string `gorm:"column:pass_id;size:16;not null;uniqueIndex:ux_applications_pass_id" json:"pass_id"`

	FullName   string `gorm:"column:full_name;size:128;not null" json:"full_name"`
	RollNo     string `gorm:"column:roll_no;size:64;not null" json:"roll_no"`
	Email      string `gorm:"column:email;size:128;not null" json:"email"`
	Phone      string `gorm:"column:phone;size:32;not null" json:"phone"`
	Department string `gorm:"column:department;size:128;not null" json:"department"`
	Year       string `gorm:"column:year;size:16;not null" json:"year"`

	VehicleNo   string `gorm:"column:vehicle_no;size:32;not null" json:"vehicle_no"`
	VehicleType string `gorm:"column:vehicle_type;size:32;not null" json:"vehicle_type"`

	RCBook    string `gorm:"column:rc_book;size:128;not null" json:"rc_book"`
	License   string `gorm:"column:license;size:128;not null" json:"license"`
	Insurance string `gorm:"column:insurance;size:128;not null" json:"insurance"`

	Status              Status     `gorm:"column:status;size:32;not null;default:'pending';index:idx_applications_status" json:"status"`
	TransportRemarks    *string    `gorm:"column:transport_remarks;type:text" json:"transport_remarks"`
	PrincipalRemarks    *string    `gorm:"column:principal_remarks;type:text" json:"principal_remarks"`
	TransportReviewedAt *time.Time `gorm:"column:transport_reviewed_at" json:"transport_reviewed_at"`
	PrincipalReviewedAt *time.Time `gorm:"column:principal_reviewed_at" json:"principal_reviewed_at"`
	SubmittedAt         time.Time  `gorm:"column:submitted_at;not null;index:idx_applications_submitted_at" json:"submitted_at"`
}

func (Application) TableName() string { return "applications" }

// StatusView is the subset of an application that may be shown without authentication.
// It never carries document references.
type StatusView struct {
	PassID              string     `json:"pass_id"`
	FullName            string     `json:"full_name"`
	VehicleNo           string     `json:"vehicle_no"`
	Status              Status     `json:"status"`
	SubmittedAt         time.Time  `json:"submitted_at"`
	TransportRemarks    *string    `json:"transport_remarks"`
	PrincipalRemarks    *string    `json:"principal_remarks"`
	TransportReviewedAt *time.Time `json:"transport_reviewed_at"`
	PrincipalReviewedAt *time.Time `json:"principal_reviewed_at"`
}

func (a *Application) StatusView() StatusView {
	return StatusView{
		PassID:              a.PassID,
		FullName:            a.FullName,
		VehicleNo:           a.VehicleNo,
		Status:              a.Status,
		SubmittedAt:         a.SubmittedAt,
		TransportRemarks:    a.TransportRemarks,
		PrincipalRemarks:    a.PrincipalRemarks,
		TransportReviewedAt: a.TransportReviewedAt,
		PrincipalReviewedAt: a.PrincipalReviewedAt,
	}
}

// Stats is a per-status count taken from a single read.
type Stats struct {
	ByStatus map[Status]int64
	Total    int64
}
