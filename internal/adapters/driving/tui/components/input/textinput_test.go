package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrompt(t *testing.T) {
	p := NewPrompt(nil, "You: ", "Ask something...")

	require.NotNil(t, p)
	assert.True(t, p.Focused())
	assert.Empty(t, p.Value())
	assert.Contains(t, p.View(), "You:")
}

func TestPrompt_TypingUpdatesValue(t *testing.T) {
	p := NewPrompt(nil, "You: ", "")

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})

	assert.Equal(t, "hi", p.Value())
}

func TestPrompt_SetValueAndReset(t *testing.T) {
	p := NewPrompt(nil, "Query: ", "")

	p.SetValue("สวัสดี")
	assert.Equal(t, "สวัสดี", p.Value())

	p.Reset()
	assert.Empty(t, p.Value())
}

func TestPrompt_FocusAndBlur(t *testing.T) {
	p := NewPrompt(nil, "You: ", "")

	p.Blur()
	assert.False(t, p.Focused())

	p.Focus()
	assert.True(t, p.Focused())
}

func TestPrompt_SetWidth(t *testing.T) {
	p := NewPrompt(nil, "You: ", "")

	p.SetWidth(100)
	assert.Equal(t, 100, p.Width())

	p.SetWidth(5)
	assert.Equal(t, 5, p.Width())
}
