package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	accents := []lipgloss.Color{theme.Primary, theme.Secondary, theme.Warning, theme.Error}
	seen := make(map[lipgloss.Color]bool, len(accents))
	for _, c := range accents {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate accent %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_UsesThemeColours(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = lipgloss.Color("#000001")
	theme.Surface = lipgloss.Color("#000002")

	s := NewStyles(theme)

	assert.Equal(t, lipgloss.TerminalColor(theme.Primary), s.Title.GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(theme.Primary), s.Assistant.GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(theme.Primary), s.Selected.GetBackground())
	assert.Equal(t, lipgloss.TerminalColor(theme.Surface), s.StatusBar.GetBackground())
	assert.Equal(t, lipgloss.TerminalColor(theme.Secondary), s.User.GetForeground())
}

func TestStyles_ModeStyle(t *testing.T) {
	s := DefaultStyles()

	grounded := s.ModeStyle(true)
	generated := s.ModeStyle(false)

	assert.Equal(t, s.Mode.GetForeground(), grounded.GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(s.Theme().Warning), generated.GetForeground())
	assert.True(t, generated.GetItalic())
}
