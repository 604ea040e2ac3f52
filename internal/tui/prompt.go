package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// ConfirmDecision displays a yes/no confirmation prompt before a
// decision is submitted from the plain command path
func ConfirmDecision(teamName, status string) (bool, error) {
	var confirmed bool

	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("Are you sure you want to mark team %q as %s?", teamName, status)).
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(confirm))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return confirmed, nil
}

// PromptForReviewer displays an input prompt for the reviewer name
func PromptForReviewer(current string) (string, error) {
	value := current

	input := huh.NewInput().
		Title("Reviewer name").
		Placeholder("e.g. Dr. Rao").
		Value(&value)

	form := huh.NewForm(huh.NewGroup(input))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	if value == "" {
		return "", fmt.Errorf("reviewer name is required")
	}

	return value, nil
}
