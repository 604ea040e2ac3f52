package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRequired     ErrorCode = "AUTH-001"
	ErrCodeAuthFailed       ErrorCode = "AUTH-002"
	ErrCodeAuthForbidden    ErrorCode = "AUTH-003"
	ErrCodeAuthTokenMissing ErrorCode = "AUTH-004"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionRead  ErrorCode = "SESSION-001"
	ErrCodeSessionWrite ErrorCode = "SESSION-002"
	ErrCodeSessionClear ErrorCode = "SESSION-003"

	// API errors (API-001 to API-099)
	ErrCodeAPINetwork  ErrorCode = "API-001"
	ErrCodeAPIStatus   ErrorCode = "API-002"
	ErrCodeAPIDecode   ErrorCode = "API-003"
	ErrCodeAPINotFound ErrorCode = "API-004"
	ErrCodeAPIConflict ErrorCode = "API-005"

	// Review errors (REVIEW-001 to REVIEW-099)
	ErrCodeReviewerMissing ErrorCode = "REVIEW-001"
	ErrCodeReviewBadStatus ErrorCode = "REVIEW-002"
	ErrCodeDocumentMissing ErrorCode = "REVIEW-003"

	// File errors (FILE-001 to FILE-099)
	ErrCodeFileNotFound ErrorCode = "FILE-001"
	ErrCodeFileNotPDF   ErrorCode = "FILE-002"
	ErrCodeFileTooLarge ErrorCode = "FILE-003"
	ErrCodeFileRead     ErrorCode = "FILE-004"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigRead    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid ErrorCode = "CONFIG-002"
)

// PortalError represents an enhanced error with code and suggestions
type PortalError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *PortalError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *PortalError) Unwrap() error {
	return e.Cause
}

// New creates a new PortalError
func New(code ErrorCode, message string) *PortalError {
	return &PortalError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new PortalError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *PortalError {
	return &PortalError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *PortalError) WithSuggestion(suggestion string) *PortalError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *PortalError) WithSuggestions(suggestions ...string) *PortalError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Common error constructors for frequently used errors

// NewAuthRequiredError creates an error for commands that need a session
func NewAuthRequiredError() *PortalError {
	return New(ErrCodeAuthRequired, "not logged in").
		WithSuggestion("Run 'hackdesk auth login' to authenticate").
		WithSuggestion("Run 'hackdesk auth signup' if you do not have an account yet")
}

// NewForbiddenError creates an error for role-gated commands
func NewForbiddenError(what string) *PortalError {
	return New(ErrCodeAuthForbidden, fmt.Sprintf("access denied: %s requires an admin account", what)).
		WithSuggestion("Log in with an admin account to use the review dashboard")
}

// NewReviewerMissingError creates an error for decisions without a reviewer
func NewReviewerMissingError() *PortalError {
	return New(ErrCodeReviewerMissing, "no reviewer selected").
		WithSuggestion("Pass --reviewer <name> or set one with 'hackdesk teams reviewer <name>'")
}
