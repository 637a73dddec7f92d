package agent

import (
	"context"
	"testing"
	"time"

	"github.com/markusylisiurunen/tulkki/internal/logger"
	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"github.com/markusylisiurunen/tulkki/toolkit/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	response llm.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message, opts ...llm.CompleteOption) (llm.Message, llm.Usage, error) {
	return f.response, llm.Usage{PromptTokens: 10, CompletionTokens: 5}, nil
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for agent event")
		return nil
	}
}

func TestAgentSend(t *testing.T) {
	completer := &fakeCompleter{response: llm.Message{Role: llm.RoleAssistant, Content: "Hello!"}}
	r, err := relay.New(logger.NoOp(), completer, "system")
	require.NoError(t, err)
	a := New(logger.NoOp(), r, "system")
	events, unsubscribe := a.Subscribe()
	defer unsubscribe()

	a.Send(context.Background(), "Hi there")
	// first change: the user message is appended
	_, ok := waitEvent(t, events).(*ChangeEvent)
	require.True(t, ok)
	// second change: the relay finished
	_, ok = waitEvent(t, events).(*ChangeEvent)
	require.True(t, ok)

	messages, usage, running := a.GetState()
	assert.False(t, running)
	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleUser, messages[0].Role)
	assert.Equal(t, "Hi there", messages[0].Content)
	assert.Equal(t, llm.RoleAssistant, messages[1].Role)
	assert.Equal(t, "Hello!", messages[1].Content)
	assert.Equal(t, 10, usage.PromptTokens)
}

func TestAgentReset(t *testing.T) {
	completer := &fakeCompleter{response: llm.Message{Role: llm.RoleAssistant, Content: "Hello!"}}
	r, err := relay.New(logger.NoOp(), completer, "system")
	require.NoError(t, err)
	a := New(logger.NoOp(), r, "system")
	events, unsubscribe := a.Subscribe()
	defer unsubscribe()

	a.Send(context.Background(), "Hi there")
	waitEvent(t, events)
	waitEvent(t, events)

	a.Reset()
	messages, usage, _ := a.GetState()
	assert.Empty(t, messages)
	assert.Zero(t, usage.PromptTokens)
}
