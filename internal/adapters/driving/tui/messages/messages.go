// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// ChatRequested is a command to ask a question.
type ChatRequested struct {
	Request domain.ChatRequest
}

// ReplyReceived carries the reply to a question back to the model.
type ReplyReceived struct {
	Request domain.ChatRequest
	Reply   *domain.ChatReply
	Err     error
}

// ContextLoaded carries the ranking of an inspect query.
type ContextLoaded struct {
	Debug domain.DebugContext
}

// ReindexCompleted signals the corpus index was rebuilt.
type ReindexCompleted struct {
	Stats domain.IndexStats
	Err   error
}

// MemoryLoaded carries the current memory state.
type MemoryLoaded struct {
	Memory domain.MemoryState
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the conversation view.
	ViewChat ViewType = iota
	// ViewInspect shows the ranking of a query against the corpus.
	ViewInspect
	// ViewMemory shows learned memory.
	ViewMemory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// Next returns the view reached by cycling forward. Help is not in the cycle.
func (v ViewType) Next() ViewType {
	switch v {
	case ViewChat:
		return ViewInspect
	case ViewInspect:
		return ViewMemory
	default:
		return ViewChat
	}
}

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewInspect:
		return "inspect"
	case ViewMemory:
		return "memory"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
