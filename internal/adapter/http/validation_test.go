package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(fe []FieldError, field, sub string) bool {
	for _, e := range fe {
		if e.Field == field && strings.Contains(e.Message, sub) {
			return true
		}
	}
	return false
}

func TestNotBlankValidation(t *testing.T) {
	type P struct {
		Action string `json:"action" validate:"required,notblank"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{Action: "verify"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	for _, s := range []string{"", " ", "\t\n"} {
		err := cv.Validate(P{Action: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "action", "is required") {
			t.Fatalf("expected 'is required' on json name for %q, got %+v", s, fe)
		}
	}
}

func TestPassIDValidation(t *testing.T) {
	type P struct {
		PassID string `param:"pass_id" query:"pass_id" validate:"passid"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{PassID: "SBPS-0A1B2C3D"}); err != nil {
		t.Fatalf("expected valid pass id, got %v", err)
	}
	for _, s := range []string{"", "SBPS-0a1b2c3d", "SBPS-0A1B2C3", "SBPX-0A1B2C3D", "SBPS-0A1B2C3DE", "SBPS-GGGGGGGG"} {
		err := cv.Validate(P{PassID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "pass_id", "SBPS-XXXXXXXX") {
			t.Fatalf("expected pass id message for %q, got %+v", s, fe)
		}
	}
}

func TestFormFieldMessages(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(applyReq{
		FullName: strings.Repeat("x", 129),
		Email:    "not-an-email",
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "full_name", "at most 128 characters") {
		t.Fatalf("missing max message for full_name: %+v", fe)
	}
	if !containsFieldMsg(fe, "email", "valid email") {
		t.Fatalf("missing email message: %+v", fe)
	}
	if len(fe) != 2 {
		t.Fatalf("blank fields are left to the usecase, got %+v", fe)
	}

	// empty email is allowed through; the usecase reports it as required
	if err := cv.Validate(applyReq{}); err != nil {
		t.Fatalf("empty form should pass shape checks, got %v", err)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name string `validate:"required"`
		Min  int    `validate:"gte=10"`
		Max  int    `validate:"lte=5"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Name: "", Min: 9, Max: 6})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	// untagged fields keep their Go names
	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "Min", "greater than or equal to 10") {
		t.Fatalf("missing gte message for Min: %+v", fe)
	}
	if !containsFieldMsg(fe, "Max", "less than or equal to 5") {
		t.Fatalf("missing lte message for Max: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
