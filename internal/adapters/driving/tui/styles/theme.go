// Package styles provides the colour palette and lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette the styles are built from.
type Theme struct {
	// Primary is the accent for titles, selection and assistant labels.
	Primary lipgloss.Color

	// Secondary is the accent for subtitles and user labels.
	Secondary lipgloss.Color

	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// Warning marks model-generated replies.
	Warning lipgloss.Color

	Error lipgloss.Color

	// Frame outlines the input prompt.
	Frame lipgloss.Color

	// Surface is the status bar background.
	Surface lipgloss.Color
}

// DefaultTheme returns a dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"),
		Secondary:  lipgloss.Color("#06B6D4"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Frame:      lipgloss.Color("#45475A"),
		Surface:    lipgloss.Color("#181825"),
	}
}

// Styles holds the lipgloss styles shared by components and views.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style

	// Selected highlights the current hit in a list.
	Selected lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// User labels the user's turns in the transcript.
	User lipgloss.Style

	// Assistant labels replies in the transcript.
	Assistant lipgloss.Style

	// Mode tags a reply with the decision path that produced it.
	Mode lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when theme is nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Surface).
			Padding(0, 1),

		User:      lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Mode:      lipgloss.NewStyle().Italic(true).Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette behind these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// ModeStyle returns the style for a response mode label.
// Replies from the model use the warning colour.
func (s *Styles) ModeStyle(deterministic bool) lipgloss.Style {
	if deterministic {
		return s.Mode
	}
	return s.Mode.Foreground(s.theme.Warning)
}
