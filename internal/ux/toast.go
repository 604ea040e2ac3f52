package ux

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Toast severities
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastWarning = "warning"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))  // Green
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")) // Red
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")) // Yellow
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))            // Gray
)

// Toast writes a one-line status message, the CLI stand-in for the
// portal's toast popups.
func Toast(w io.Writer, severity, msg string) {
	var prefix string
	switch severity {
	case ToastError:
		prefix = errorStyle.Render("✗")
	case ToastWarning:
		prefix = warningStyle.Render("!")
	default:
		prefix = successStyle.Render("✓")
	}
	fmt.Fprintf(w, "%s %s\n", prefix, msg)
}

// Muted writes a de-emphasized line, used for hints and empty states.
func Muted(w io.Writer, msg string) {
	fmt.Fprintln(w, mutedStyle.Render(msg))
}
