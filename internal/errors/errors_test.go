package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeAuthFailed, "login rejected")

	if err.Code != ErrCodeAuthFailed {
		t.Errorf("expected code %s, got %s", ErrCodeAuthFailed, err.Code)
	}

	if err.Message != "login rejected" {
		t.Errorf("expected message 'login rejected', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeAPINetwork, "request failed", cause)

	if err.Code != ErrCodeAPINetwork {
		t.Errorf("expected code %s, got %s", ErrCodeAPINetwork, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	// Test unwrapping
	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *PortalError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeFileNotPDF, "not a PDF"),
			wantCode: "FILE-002",
			wantMsg:  "not a PDF",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeSessionRead, "read failed", fmt.Errorf("permission denied")),
			wantCode: "SESSION-001",
			wantMsg:  "permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()

			if !strings.Contains(errStr, tt.wantCode) {
				t.Errorf("error string should contain code %s, got: %s", tt.wantCode, errStr)
			}
			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error string should contain %q, got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestSuggestions(t *testing.T) {
	err := NewAuthRequiredError()

	if len(err.Suggestions) == 0 {
		t.Fatal("expected suggestions on auth required error")
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "Suggestions:") {
		t.Errorf("error string should list suggestions, got: %s", errStr)
	}
	if !strings.Contains(errStr, "hackdesk auth login") {
		t.Errorf("expected login hint in suggestions, got: %s", errStr)
	}
}
