package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrEmptyMessage", ErrEmptyMessage},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrLLMRequest", ErrLLMRequest},
		{"ErrCorruptState", ErrCorruptState},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrEmptyMessage_MatchesAPIText(t *testing.T) {
	assert.Equal(t, "message required", ErrEmptyMessage.Error())
}

func TestErrLLMRequest_MatchesAPIText(t *testing.T) {
	assert.Equal(t, "LM request failed", ErrLLMRequest.Error())
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("chat: %w", ErrEmptyMessage)

	assert.True(t, errors.Is(wrapped, ErrEmptyMessage))
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))
}
