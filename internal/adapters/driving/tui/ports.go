// Package tui provides an interactive terminal chat for kbchat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/kbchat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers questions.
	Chat driving.ChatService

	// Knowledge ranks queries and rebuilds the index.
	Knowledge driving.KnowledgeService

	// Memory exposes learned memory.
	Memory driving.MemoryService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	knowledge driving.KnowledgeService,
	memory driving.MemoryService,
) *Ports {
	return &Ports{
		Chat:      chat,
		Knowledge: knowledge,
		Memory:    memory,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Knowledge == nil {
		return ErrMissingKnowledgeService
	}
	if p.Memory == nil {
		return ErrMissingMemoryService
	}
	return nil
}
