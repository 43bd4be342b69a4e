package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing chat service returns error", func(t *testing.T) {
		ports := &Ports{Knowledge: &mockKnowledgeService{}}
		server, err := NewServer(ports, 3)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingChatService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Chat:      &mockChatService{},
			Knowledge: &mockKnowledgeService{},
		}
		server, err := NewServer(ports, 3)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("empty ports returns error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingChatService)
	})

	t.Run("missing knowledge service returns error", func(t *testing.T) {
		ports := &Ports{Chat: &mockChatService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingKnowledgeService)
	})

	t.Run("memory is optional", func(t *testing.T) {
		ports := &Ports{
			Chat:      &mockChatService{},
			Knowledge: &mockKnowledgeService{},
		}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Chat:      &mockChatService{},
			Knowledge: &mockKnowledgeService{},
			Memory:    &mockMemoryService{},
		}
		assert.NoError(t, ports.Validate())
	})
}
