package httpapi

import (
	"github.com/custodia-labs/kbchat/internal/core/ports/driving"
)

// Ports aggregates the driving ports the HTTP API serves.
type Ports struct {
	Chat      driving.ChatService
	Knowledge driving.KnowledgeService
	Memory    driving.MemoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.Chat == nil:
		return ErrMissingChatService
	case p.Knowledge == nil:
		return ErrMissingKnowledgeService
	case p.Memory == nil:
		return ErrMissingMemoryService
	}
	return nil
}

// Info is the static configuration reported by /health.
type Info struct {
	Model           string
	BaseURL         string
	TopK            int
	StrictThreshold int
}
