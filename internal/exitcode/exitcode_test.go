package exitcode

import (
	"fmt"
	"testing"

	"github.com/felixgeelhaar/hackdesk/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, Success},
		{"generic error", fmt.Errorf("something broke"), GeneralError},
		{"coded auth error", errors.NewAuthRequiredError(), AuthError},
		{"coded forbidden error", errors.NewForbiddenError("dashboard"), AuthError},
		{"coded network error", errors.New(errors.ErrCodeAPINetwork, "network error"), NetworkError},
		{"coded conflict error", errors.New(errors.ErrCodeAPIConflict, "already reviewed"), ConflictError},
		{"wrapped coded error", fmt.Errorf("teams: %w", errors.New(errors.ErrCodeAPIConflict, "conflict")), ConflictError},
		{"network by message", fmt.Errorf("connection refused"), NetworkError},
		{"unauthorized by message", fmt.Errorf("server said unauthorized"), AuthError},
		{"usage by message", fmt.Errorf("unknown command \"temas\""), UsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	if GetExitCodeDescription(Success) != "Success" {
		t.Error("unexpected description for Success")
	}
	if GetExitCodeDescription(99) != "Unknown error" {
		t.Error("unexpected description for unknown code")
	}
}
