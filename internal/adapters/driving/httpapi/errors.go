// Package httpapi provides the JSON HTTP API for kbchat.
package httpapi

import "errors"

// Errors returned when the server is misconfigured.
var (
	ErrMissingChatService      = errors.New("httpapi: chat service is required")
	ErrMissingKnowledgeService = errors.New("httpapi: knowledge service is required")
	ErrMissingMemoryService    = errors.New("httpapi: memory service is required")
)
