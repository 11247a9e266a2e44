// Package styles centralizes lipgloss colors and styles so the pickers,
// prompts, and tables stay visually consistent.
package styles

import "charm.land/lipgloss/v2"

var (
	// Accent highlights selected and active items
	Accent = lipgloss.Color("212")

	// Success marks positive outcomes
	Success = lipgloss.Color("82")

	// Error marks failures
	Error = lipgloss.Color("196")

	// Muted is for hints and inactive text
	Muted = lipgloss.Color("240")

	// Normal is the standard text color
	Normal = lipgloss.Color("252")
)

var (
	Bold = lipgloss.NewStyle().Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	NormalStyle = lipgloss.NewStyle().Foreground(Normal)
)
