package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"smartbikepass-backend/internal/domain/application"
	"smartbikepass-backend/internal/domain/user"
)

func TestWriteError_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
		logged   bool
	}{
		{"validation", application.NewValidationError("license document is required"), http.StatusBadRequest, "license document is required", false},
		{"unauthorized", application.ErrUnauthorized, http.StatusForbidden, "forbidden", false},
		{"wrapped unauthorized", fmt.Errorf("review: %w", application.ErrUnauthorized), http.StatusForbidden, "forbidden", false},
		{"not found", application.ErrNotFound, http.StatusNotFound, "not found", false},
		{"invalid action", &application.InvalidActionError{Stage: application.StagePrincipal, Action: application.ActionApprove, Status: application.StatusPending}, http.StatusConflict, "cannot approve application in status pending", false},
		{"bad credentials", user.ErrInvalidCredentials, http.StatusUnauthorized, "invalid username or password", false},
		{"storage", &application.StorageError{Op: "review", Err: application.ErrConflict}, http.StatusInternalServerError, "internal error", true},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal error", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/x", nil), rec)

			if err := writeError(c, zap.New(core), tt.err); err != nil {
				t.Fatalf("writeError returned %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad json: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("error = %q, want %q", body.Error, tt.wantMsg)
			}
			if got := logs.Len() > 0; got != tt.logged {
				t.Fatalf("logged = %v, want %v", got, tt.logged)
			}
		})
	}
}

func TestWriteError_InvalidActionCarriesActionAndStatus(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/x", nil), rec)

	_ = writeError(c, zap.NewNop(), &application.InvalidActionError{
		Stage: application.StageTransport, Action: application.ActionVerify, Status: application.StatusApproved,
	})

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Action != "verify" || body.Status != "approved" {
		t.Fatalf("unexpected body: %+v", body)
	}
}
