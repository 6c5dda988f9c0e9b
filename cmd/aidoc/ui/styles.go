// Package ui provides the visual styling for the aidoc interactive CLI,
// with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#1f2328")
	LightPrimary    = lipgloss.Color("#0b6e99") // Teal blue
	LightAccent     = lipgloss.Color("#2e7d32") // Green
	LightHighlight  = lipgloss.Color("#8e24aa") // Magenta
	LightMuted      = lipgloss.Color("#6e7781")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#e6edf3")
	DarkPrimary    = lipgloss.Color("#4dd0e1") // Cyan
	DarkAccent     = lipgloss.Color("#8bc34a") // Lime Green
	DarkHighlight  = lipgloss.Color("#ce93d8") // Light magenta
	DarkMuted      = lipgloss.Color("#8b949e")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935") // Red
	Success     = lipgloss.Color("#43a047") // Green
	Warning     = lipgloss.Color("#ffb300") // Amber
	Info        = lipgloss.Color("#1e88e5") // Blue
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Highlight  lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Highlight:  LightHighlight,
		Muted:      LightMuted,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Highlight:  DarkHighlight,
		Muted:      DarkMuted,
		IsDark:     true,
	}
}

// DetectTheme guesses the terminal background from COLORFGBG and AIDOC_DARK_MODE.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is usually "foreground;background"
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			// 0-6 and 8 (dark grey) are likely dark backgrounds
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
			return LightTheme()
		}
	}

	if os.Getenv("AIDOC_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// ThemeFor maps a ui.theme config value to a Theme. Anything but light/dark detects.
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Text
	Banner    lipgloss.Style
	Muted     lipgloss.Style
	Command   lipgloss.Style
	Separator lipgloss.Style

	// Interactive
	Prompt    lipgloss.Style
	UserInput lipgloss.Style
	Spinner   lipgloss.Style
	Status    lipgloss.Style

	// Status
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Farewell lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Banner: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Command: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(theme.Highlight).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		UserInput: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Spinner: lipgloss.NewStyle().
			Foreground(Info),

		Status: lipgloss.NewStyle().
			Foreground(Info).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		Farewell: lipgloss.NewStyle().
			Foreground(theme.Primary),
	}
}

// PlainStyles returns styles that render text unchanged, for non-terminal output.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Theme:     LightTheme(),
		Banner:    plain,
		Muted:     plain,
		Command:   plain,
		Separator: plain,
		Prompt:    plain,
		UserInput: plain,
		Spinner:   plain,
		Status:    plain,
		Success:   plain,
		Error:     plain,
		Warning:   plain,
		Farewell:  plain,
	}
}
