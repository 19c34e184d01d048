// Package ui provides terminal UI pieces shared by forge commands: the
// color theme, TTY detection and a spinner with a plain-text fallback.
package ui

import "os"

// Colors holds the hex colors used across the UI.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme is the visual configuration for UI components.
type Theme struct {
	Colors  Colors
	NoColor bool
}

// NewTheme returns the default forge theme. Color is disabled when NO_COLOR
// is set to any value.
func NewTheme() *Theme {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &Theme{
		Colors: Colors{
			Primary:   "#F97316",
			Secondary: "#FACC15",
			Success:   "#10B981",
			Warning:   "#F59E0B",
			Error:     "#EF4444",
			Muted:     "#6B7280",
		},
		NoColor: noColor,
	}
}
