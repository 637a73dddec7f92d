package llm

import (
	"context"
	"encoding/json"
)

// messages ----------------------------------------------------------------------------------------

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
	RoleUser      Role = "user"
)

type ToolCallFunction struct {
	Name string
	Args string
}
type ToolCall struct {
	ID       string
	Index    int
	Function ToolCallFunction
}

type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	Name       string
	ToolCallID string
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
}

// completion options ------------------------------------------------------------------------------

// ResponseFormat constrains a completion to a named JSON schema. The service guarantees the
// returned content conforms to the schema exactly, including rejection of unknown fields.
type ResponseFormat struct {
	Name   string
	Schema json.RawMessage
}

type completeConfig struct {
	maxTokens      int
	temperature    float64
	tools          []Tool
	responseFormat *ResponseFormat
}

type CompleteOption func(*completeConfig)

func WithMaxTokens(maxTokens int) CompleteOption {
	return func(c *completeConfig) { c.maxTokens = maxTokens }
}
func WithTemperature(temperature float64) CompleteOption {
	return func(c *completeConfig) { c.temperature = temperature }
}
func WithTools(tools ...Tool) CompleteOption {
	return func(c *completeConfig) { c.tools = tools }
}
func WithResponseFormat(name string, schema json.RawMessage) CompleteOption {
	return func(c *completeConfig) { c.responseFormat = &ResponseFormat{Name: name, Schema: schema} }
}

// Completer is the single-round-trip completion contract. The OpenAI client satisfies it; tests
// substitute scripted fakes.
type Completer interface {
	Complete(ctx context.Context, messages []Message, opts ...CompleteOption) (Message, Usage, error)
}
