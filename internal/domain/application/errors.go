package application

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("application not found")
	ErrUnauthorized    = errors.New("forbidden")
	ErrInvalidAction   = errors.New("invalid action")
	ErrValidation      = errors.New("validation failed")
	ErrStorage         = errors.New("storage failure")
	ErrConflict        = errors.New("application was modified concurrently")
	ErrDuplicatePassID = errors.New("duplicate pass id")
)

// ValidationError carries a message meant for the applicant as-is.
type ValidationError struct{ Msg string }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string        { return e.Msg }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidActionError reports an action that the workflow does not allow. Status is empty when
// the action is illegal for the stage regardless of the record.
type InvalidActionError struct {
	Stage  Stage
	Action Action
	Status Status
}

func (e *InvalidActionError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("action %q is not allowed for %s review", e.Action, e.Stage)
	}
	return fmt.Sprintf("cannot %s application in status %s", e.Action, e.Status)
}

func (e *InvalidActionError) Is(target error) bool { return target == ErrInvalidAction }

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string        { return "storage: " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error        { return e.Err }
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
