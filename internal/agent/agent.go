package agent

import (
	"context"
	"slices"
	"sync"

	"github.com/markusylisiurunen/tulkki/internal/logger"
	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"github.com/markusylisiurunen/tulkki/toolkit/relay"
)

type Event any

type ChangeEvent struct{}

type ErrorEvent struct {
	Err error
}

// Agent holds one interactive conversation and drives the relay once per user message. The
// relay itself is stateless; all conversation state lives here behind the mutex.
type Agent struct {
	mux    sync.RWMutex
	logger logger.Logger
	relay  *relay.Relay
	system string

	running  bool
	messages []llm.Message
	usage    llm.Usage

	subscriptions []chan<- Event
}

func New(logger logger.Logger, relay *relay.Relay, system string) *Agent {
	return &Agent{logger: logger, relay: relay, system: system}
}

func (a *Agent) Reset() {
	a.mux.Lock()
	defer a.mux.Unlock()
	if a.running {
		return
	}
	a.messages = nil
	a.usage = llm.Usage{}
}

func (a *Agent) Subscribe() (<-chan Event, func()) {
	subscription := make(chan Event)
	a.mux.Lock()
	a.subscriptions = append(a.subscriptions, subscription)
	a.mux.Unlock()
	return subscription, func() {
		a.mux.Lock()
		defer a.mux.Unlock()
		for i, sub := range a.subscriptions {
			if sub == subscription {
				a.subscriptions = slices.Delete(a.subscriptions, i, i+1)
				break
			}
		}
		close(subscription)
	}
}

func (a *Agent) GetState() ([]llm.Message, llm.Usage, bool) {
	a.mux.RLock()
	defer a.mux.RUnlock()
	return slices.Clone(a.messages), a.usage, a.running
}

func (a *Agent) Send(ctx context.Context, message string) {
	go a.send(ctx, message)
}

func (a *Agent) send(ctx context.Context, message string) {
	a.mux.Lock()
	if a.running {
		a.mux.Unlock()
		return
	}
	a.running = true
	a.messages = append(a.messages, llm.NewUserMessage(message))
	history := make([]llm.Message, 0, 1+len(a.messages))
	history = append(history, llm.NewSystemMessage(a.system))
	history = append(history, a.messages...)
	a.mux.Unlock()
	a.notify(&ChangeEvent{})
	out, usage, err := a.relay.Run(ctx, history)
	a.mux.Lock()
	a.running = false
	if err == nil {
		a.messages = out[1:] // drop the system message
		a.usage.Add(usage)
	}
	a.mux.Unlock()
	if err != nil {
		a.logger.Error("error running relay: %v", err)
		a.notify(&ErrorEvent{Err: err})
		return
	}
	a.notify(&ChangeEvent{})
}

func (a *Agent) notify(event Event) {
	a.mux.RLock()
	defer a.mux.RUnlock()
	for _, ch := range a.subscriptions {
		ch <- event
	}
}
