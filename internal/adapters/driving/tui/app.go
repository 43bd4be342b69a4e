package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/views/inspect"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/views/memory"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	chatView    *chat.View
	inspectView *inspect.View
	memoryView  *memory.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// topK is the number of hits shown by the inspect view.
func NewApp(ports *Ports, topK int) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		chatView:    chat.NewView(s, km, ports.Chat),
		inspectView: inspect.NewView(s, km, ports.Knowledge, topK),
		memoryView:  memory.NewView(s, km, ports.Memory),
		currentView: messages.ViewChat,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.memoryView.WithContext(ctx)
	return a
}

// WithUserHint names the user for self-referential questions.
func (a *App) WithUserHint(hint string) *App {
	a.chatView.SetUserHint(hint)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("kbchat"),
		a.chatView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ReplyReceived:
		a.chatView, cmd = a.chatView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, cmd

	case messages.ContextLoaded:
		a.inspectView, cmd = a.inspectView.Update(msg)
		return a, cmd

	case messages.MemoryLoaded:
		a.memoryView, cmd = a.memoryView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, cmd

	case messages.ReindexCompleted:
		if msg.Err != nil {
			a.err = msg.Err
			a.chatView, cmd = a.chatView.Update(messages.ErrorOccurred{Err: msg.Err})
			return a, cmd
		}
		a.chatView.Notify(fmt.Sprintf("indexed %d files", msg.Stats.Files))
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink) to the active view
	switch a.currentView {
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewInspect:
		a.inspectView, cmd = a.inspectView.Update(msg)
	case messages.ViewMemory:
		a.memoryView, cmd = a.memoryView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(key, a.keymap.Help):
		if a.currentView == messages.ViewHelp {
			return a, a.switchTo(messages.ViewChat)
		}
		return a, a.switchTo(messages.ViewHelp)

	case keymap.Matches(key, a.keymap.Back):
		return a, a.switchTo(messages.ViewChat)

	case keymap.Matches(key, a.keymap.NextView):
		return a, a.switchTo(a.currentView.Next())

	case keymap.Matches(key, a.keymap.Reindex):
		return a, a.reindex()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewInspect:
		a.inspectView, cmd = a.inspectView.Update(msg)
	case messages.ViewMemory:
		a.memoryView, cmd = a.memoryView.Update(msg)
	case messages.ViewHelp:
		// Help view ignores other keys
	}
	return a, cmd
}

// switchTo activates a view and focuses its input.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view

	switch view {
	case messages.ViewChat:
		a.inspectView.Prompt().Blur()
		return a.chatView.Prompt().Focus()
	case messages.ViewInspect:
		a.chatView.Prompt().Blur()
		return a.inspectView.Init()
	case messages.ViewMemory:
		a.chatView.Prompt().Blur()
		a.inspectView.Prompt().Blur()
		return a.memoryView.Init()
	case messages.ViewHelp:
		// Help is static
	}
	return nil
}

// reindex returns a command that rebuilds the corpus index.
func (a *App) reindex() tea.Cmd {
	svc := a.ports.Knowledge
	ctx := a.ctx
	return func() tea.Msg {
		stats, err := svc.Reindex(ctx)
		return messages.ReindexCompleted{Stats: stats, Err: err}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewInspect:
		return a.inspectView.View()
	case messages.ViewMemory:
		return a.memoryView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.chatView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Views:
  tab         Cycle chat, inspect and memory
  esc         Back to chat
  f1          Toggle help
  ctrl+c      Quit

Chat:
  (type)      Enter a question
  enter       Send
  ↑/↓ pgup    Scroll transcript
  ctrl+r      Reindex the knowledge base

Inspect:
  enter       Rank documents against the query
  ↑/↓         Navigate hits

Memory:
  ctrl+x      Reset learned memory

[esc] back to chat`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and resizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.chatView.SetDimensions(width, height)
	a.inspectView.SetDimensions(width, height)
	a.memoryView.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
