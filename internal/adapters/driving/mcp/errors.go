// Package mcp provides an MCP (Model Context Protocol) server adapter for kbchat.
// It lets AI assistants ask questions against the local knowledge base and
// inspect its ranking and memory.
package mcp

import "errors"

// Errors returned when required ports are missing.
var (
	ErrMissingChatService      = errors.New("mcp: chat service is required")
	ErrMissingKnowledgeService = errors.New("mcp: knowledge service is required")
)
