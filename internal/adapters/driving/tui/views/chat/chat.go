// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driving"
)

// Entry is one question and its outcome.
type Entry struct {
	Question string
	Reply    *domain.ChatReply
	Err      error
}

// View is the conversation transcript with a prompt and status bar.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	prompt     *input.Prompt
	transcript viewport.Model
	statusbar  *status.Bar

	chatService driving.ChatService
	ctx         context.Context
	userHint    string

	entries []Entry
	pending bool
	width   int
	height  int
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:      s,
		keymap:      km,
		prompt:      input.NewPrompt(s, "You: ", "Ask the knowledge base..."),
		transcript:  viewport.New(80, 18),
		statusbar:   status.NewBar(s, km),
		chatService: chatService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
	v.refresh()
	return v
}

// WithContext sets the context for model calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetUserHint names the user for self-referential questions.
func (v *View) SetUserHint(hint string) {
	v.userHint = hint
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.prompt.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ReplyReceived:
		v.handleReply(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		return v, v.submit()
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		v.transcript, cmd = v.transcript.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// submit sends the prompt text unless a reply is still pending.
func (v *View) submit() tea.Cmd {
	question := strings.TrimSpace(v.prompt.Value())
	if question == "" || v.pending {
		return nil
	}

	v.prompt.Reset()
	v.pending = true
	v.entries = append(v.entries, Entry{Question: question})
	v.statusbar.SetState(status.StateThinking)
	v.refresh()

	req := domain.ChatRequest{Message: question, UserHint: v.userHint}
	return v.ask(req)
}

// ask returns a command that runs the chat pipeline.
func (v *View) ask(req domain.ChatRequest) tea.Cmd {
	svc := v.chatService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ReplyReceived{Request: req, Err: errors.New("chat service not configured")}
		}
		reply, err := svc.Chat(ctx, req)
		return messages.ReplyReceived{Request: req, Reply: reply, Err: err}
	}
}

func (v *View) handleReply(msg messages.ReplyReceived) {
	v.pending = false
	if n := len(v.entries); n > 0 && v.entries[n-1].Reply == nil && v.entries[n-1].Err == nil {
		v.entries[n-1].Reply = msg.Reply
		v.entries[n-1].Err = msg.Err
	} else {
		v.entries = append(v.entries, Entry{Question: msg.Request.Message, Reply: msg.Reply, Err: msg.Err})
	}

	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
	} else {
		v.statusbar.SetState(status.StateReplied)
		v.statusbar.SetMessage(fmt.Sprintf("%s  trace %s", msg.Reply.Meta.Mode, msg.Reply.Meta.TraceID))
	}
	v.refresh()
}

// refresh re-renders the transcript and scrolls to the newest entry.
func (v *View) refresh() {
	v.transcript.SetContent(v.renderTranscript())
	v.transcript.GotoBottom()
}

func (v *View) renderTranscript() string {
	if len(v.entries) == 0 {
		return v.styles.Muted.Render("Ask a question about the documents in the knowledge base.")
	}

	wrap := lipgloss.NewStyle().Width(max(v.width-2, 20))
	blocks := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		var b strings.Builder
		b.WriteString(v.styles.User.Render("You: "))
		b.WriteString(e.Question)
		b.WriteString("\n")

		switch {
		case e.Err != nil:
			b.WriteString(v.styles.Error.Render("Error: " + e.Err.Error()))
		case e.Reply == nil:
			b.WriteString(v.styles.Muted.Render("..."))
		default:
			b.WriteString(v.styles.Assistant.Render("Bot: "))
			b.WriteString(e.Reply.Reply)
			b.WriteString("\n")
			b.WriteString(v.renderMeta(&e.Reply.Meta))
		}
		blocks = append(blocks, wrap.Render(b.String()))
	}
	return strings.Join(blocks, "\n\n")
}

// renderMeta renders the mode tag and the sources a reply used.
func (v *View) renderMeta(meta *domain.ReplyMeta) string {
	parts := []string{meta.Mode.String()}
	if meta.Source != "" {
		parts = append(parts, meta.Source)
	}
	for _, c := range meta.Context {
		parts = append(parts, fmt.Sprintf("[%d] %s", c.Rank, c.Source))
	}
	if meta.Learned != "" {
		parts = append(parts, "learned "+meta.Learned)
	}
	return v.styles.ModeStyle(meta.Mode.Deterministic()).Render(strings.Join(parts, " · "))
}

// View renders the chat view.
func (v *View) View() string {
	title := v.styles.Title.Render("kbchat")
	return title + "\n" +
		v.transcript.View() + "\n" +
		v.prompt.View() + "\n" +
		v.statusbar.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.prompt.SetWidth(width)
	v.statusbar.SetWidth(width)

	// title, prompt box (3 lines) and status bar
	v.transcript.Width = width
	v.transcript.Height = max(height-5, 3)
	v.refresh()
}

// Notify shows an informational message in the status bar.
func (v *View) Notify(message string) {
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(message)
}

// Entries returns the conversation so far.
func (v *View) Entries() []Entry {
	return v.entries
}

// Pending returns true while a reply is outstanding.
func (v *View) Pending() bool {
	return v.pending
}

// Prompt returns the input component.
func (v *View) Prompt() *input.Prompt {
	return v.prompt
}
