// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// KnowledgeBase owns the two shared snapshots (index and memory) and is the
// only place where a memory mutation is coupled to an index rebuild.
// ChatService composes it with the intent classifier and the LLM port.
package services
