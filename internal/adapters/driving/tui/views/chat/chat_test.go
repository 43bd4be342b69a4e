package chat

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kbchat/internal/core/domain"
)

type stubChat struct {
	got domain.ChatRequest
	err error
}

func (s *stubChat) Chat(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.ChatReply{
		Reply: "Alice is an engineer [1]",
		Meta: domain.ReplyMeta{
			Mode:    domain.ModeDeterministicKB,
			TraceID: "t-1",
			Context: []domain.UsedContext{{Rank: 1, Source: "alice.md#0"}},
		},
	}, nil
}

func send(t *testing.T, v *View, text string) tea.Msg {
	t.Helper()
	v.Prompt().SetValue(text)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	return cmd()
}

func TestView_SubmitSendsHint(t *testing.T) {
	svc := &stubChat{}
	v := NewView(nil, nil, svc)
	v.SetUserHint("Somchai")

	msg := send(t, v, "  who is alice  ")

	assert.True(t, v.Pending())
	assert.Empty(t, v.Prompt().Value())
	assert.Equal(t, "who is alice", svc.got.Message)
	assert.Equal(t, "Somchai", svc.got.UserHint)

	v.Update(msg)
	assert.False(t, v.Pending())
	require.Len(t, v.Entries(), 1)
	assert.Contains(t, v.View(), "alice.md#0")
	assert.Contains(t, v.View(), "DETERMINISTIC_KB")
}

func TestView_EmptyInputIsIgnored(t *testing.T) {
	v := NewView(nil, nil, &stubChat{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, v.Entries())
}

func TestView_PendingBlocksSecondSubmit(t *testing.T) {
	v := NewView(nil, nil, &stubChat{})
	send(t, v, "first")

	v.Prompt().SetValue("second")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Len(t, v.Entries(), 1)
}

func TestView_ErrorReply(t *testing.T) {
	v := NewView(nil, nil, &stubChat{err: errors.New("LM request failed")})
	v.SetDimensions(120, 30)

	v.Update(send(t, v, "tell me a joke"))

	require.Len(t, v.Entries(), 1)
	assert.Error(t, v.Entries()[0].Err)
	assert.Contains(t, v.View(), "LM request failed")
}

func TestView_NilServiceReportsError(t *testing.T) {
	v := NewView(nil, nil, nil)

	msg := send(t, v, "hello")

	reply, ok := msg.(messages.ReplyReceived)
	require.True(t, ok)
	assert.Error(t, reply.Err)
}
