package audit

import "time"

// ActionSubmitted is recorded once per application, attributed to the applicant.
const ActionSubmitted = "Application Submitted"

// Table: audit_logs (append-only; rows are never updated or deleted)
type Entry struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// Informal reference to applications.pass_id, deliberately not a foreign key.
	PassID    string    `gorm:"column:pass_id;size:16;not null;index:idx_audit_logs_pass_id" json:"pass_id"`
	Action    string    `gorm:"column:action;size:64;not null" json:"action"`
	DoneBy    string    `gorm:"column:done_by;size:128;not null" json:"done_by"`
	Remarks   *string   `gorm:"column:remarks;type:text" json:"remarks"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_audit_logs_created_at" json:"created_at"`
}

func (Entry) TableName() string { return "audit_logs" }
