// Package inspect provides the ranking inspection view for the TUI.
// It shows how a query scores against the corpus without calling the model.
package inspect

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kbchat/internal/core/ports/driving"
)

// View is a query prompt over a ranked hit list.
type View struct {
	styles    *styles.Styles
	prompt    *input.Prompt
	list      *list.HitList
	statusbar *status.Bar

	knowledge driving.KnowledgeService
	topK      int
	query     string
}

// NewView creates a new inspect view ranking topK hits per query.
func NewView(s *styles.Styles, km *keymap.KeyMap, knowledge driving.KnowledgeService, topK int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetBindings(km.InspectHelp())

	return &View{
		styles:    s,
		prompt:    input.NewPrompt(s, "Query: ", "Rank documents against a query..."),
		list:      list.NewHitList(s),
		statusbar: bar,
		knowledge: knowledge,
		topK:      topK,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.prompt.Focus()
}

// Update handles messages for the inspect view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyEnter:
			return v, v.submit()
		case tea.KeyUp, tea.KeyDown:
			v.list, _ = v.list.Update(msg)
			return v, nil
		}

	case messages.ContextLoaded:
		v.query = msg.Debug.Query
		v.list.SetHits(msg.Debug.Hits)
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(msg.Debug.Query)
		return v, nil
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// submit ranks the prompt text. Ranking is in-memory so it runs inline.
func (v *View) submit() tea.Cmd {
	query := strings.TrimSpace(v.prompt.Value())
	if query == "" || v.knowledge == nil {
		return nil
	}
	debug := v.knowledge.Debug(query, v.topK)
	return func() tea.Msg {
		return messages.ContextLoaded{Debug: debug}
	}
}

// View renders the inspect view.
func (v *View) View() string {
	return v.styles.Title.Render("Inspect ranking") + "\n" +
		v.prompt.View() + "\n\n" +
		v.list.View() + "\n" +
		v.statusbar.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.prompt.SetWidth(width)
	v.list.SetDimensions(width, max(height-6, 4))
	v.statusbar.SetWidth(width)
}

// Query returns the last ranked query.
func (v *View) Query() string {
	return v.query
}

// List returns the hit list component.
func (v *View) List() *list.HitList {
	return v.list
}

// Prompt returns the input component.
func (v *View) Prompt() *input.Prompt {
	return v.prompt
}
