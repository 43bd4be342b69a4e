// Package memory provides the learned-memory view for the TUI.
package memory

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driving"
)

// View shows the self name and facts, and resets them on request.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	memory driving.MemoryService
	ctx    context.Context
	state  domain.MemoryState
	err    error
}

// NewView creates a new memory view.
func NewView(s *styles.Styles, km *keymap.KeyMap, memory driving.MemoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetBindings(km.MemoryHelp())

	return &View{
		styles:    s,
		keymap:    km,
		statusbar: bar,
		memory:    memory,
		ctx:       context.Background(),
	}
}

// WithContext sets the context for reset calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current state.
func (v *View) Init() tea.Cmd {
	svc := v.memory
	return func() tea.Msg {
		return messages.MemoryLoaded{Memory: svc.Memory()}
	}
}

// Update handles messages for the memory view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.statusbar.SetWidth(msg.Width)
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.ResetMemory) {
			return v, v.reset()
		}

	case messages.MemoryLoaded:
		v.state = msg.Memory
		v.err = msg.Err
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.Clear()
		}
		return v, nil
	}
	return v, nil
}

func (v *View) reset() tea.Cmd {
	svc := v.memory
	ctx := v.ctx
	return func() tea.Msg {
		state, err := svc.ResetMemory(ctx)
		return messages.MemoryLoaded{Memory: state, Err: err}
	}
}

// View renders the memory view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Memory"))
	b.WriteString("\n\n")

	name := v.state.SelfName
	if name == "" {
		name = v.styles.Muted.Render("(unknown)")
	}
	fmt.Fprintf(&b, "%s %s\n\n", v.styles.Subtitle.Render("Self name:"), name)

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Facts (%d)", len(v.state.Facts))))
	b.WriteString("\n")
	for _, fact := range v.state.Facts {
		b.WriteString("  - " + fact + "\n")
	}
	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// State returns the displayed memory state.
func (v *View) State() domain.MemoryState {
	return v.state
}

// Err returns the last load or reset error.
func (v *View) Err() error {
	return v.err
}
