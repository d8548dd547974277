package application

import (
	"fmt"
	"slices"
	"time"

	"smartbikepass-backend/internal/domain/user"
)

// Stage is one reviewer step of the pipeline.
type Stage string

const (
	StageTransport Stage = "transport"
	StagePrincipal Stage = "principal"
)

func (s Stage) IsValid() bool { return s == StageTransport || s == StagePrincipal }

// Role is the reviewer role that owns the stage.
func (s Stage) Role() user.Role {
	switch s {
	case StageTransport:
		return user.RoleTransport
	case StagePrincipal:
		return user.RolePrincipal
	}
	return ""
}

// Queue returns the statuses a stage reviews from.
func (s Stage) Queue() []Status {
	for _, t := range Transitions {
		if t.Stage == s {
			return slices.Clone(t.From)
		}
	}
	return nil
}

type Action string

const (
	ActionVerify  Action = "verify"
	ActionReject  Action = "reject"
	ActionApprove Action = "approve"
)

type Transition struct {
	Stage  Stage
	Action Action
	From   []Status
	To     Status
}

// Transitions is the whole workflow. Nothing leaves approved or principal_rejected except a
// principal re-review, and nothing leads from principal_rejected back to the transport stage.
var Transitions = []Transition{
	{StageTransport, ActionVerify, []Status{StatusPending, StatusTransportRejected}, StatusTransportVerified},
	{StageTransport, ActionReject, []Status{StatusPending, StatusTransportRejected}, StatusTransportRejected},
	{StagePrincipal, ActionApprove, []Status{StatusTransportVerified, StatusPrincipalRejected}, StatusApproved},
	{StagePrincipal, ActionReject, []Status{StatusTransportVerified, StatusPrincipalRejected}, StatusPrincipalRejected},
}

// Authorize finds the transition for (stage, action) and checks that role may fire it.
// It does not look at any record.
func Authorize(stage Stage, action Action, role user.Role) (Transition, error) {
	if !stage.IsValid() {
		return Transition{}, &InvalidActionError{Stage: stage, Action: action}
	}
	if !role.Satisfies(stage.Role()) {
		return Transition{}, ErrUnauthorized
	}
	for _, t := range Transitions {
		if t.Stage == stage && t.Action == action {
			return t, nil
		}
	}
	return Transition{}, &InvalidActionError{Stage: stage, Action: action}
}

// Apply returns the resulting status when fired from current.
func (t Transition) Apply(current Status) (Status, error) {
	if !slices.Contains(t.From, current) {
		return current, &InvalidActionError{Stage: t.Stage, Action: t.Action, Status: current}
	}
	return t.To, nil
}

// AuditAction is the audit log description of the transition, e.g. "transport: verify".
func (t Transition) AuditAction() string { return fmt.Sprintf("%s: %s", t.Stage, t.Action) }

// RecordReview moves a to status and stamps the stage's remarks. Earlier remarks of the same
// stage are overwritten.
func (a *Application) RecordReview(stage Stage, status Status, remarks string, at time.Time) {
	a.Status = status
	switch stage {
	case StageTransport:
		a.TransportRemarks = &remarks
		a.TransportReviewedAt = &at
	case StagePrincipal:
		a.PrincipalRemarks = &remarks
		a.PrincipalReviewedAt = &at
	}
}
