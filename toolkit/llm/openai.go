package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/markusylisiurunen/tulkki/internal/logger"
	"github.com/tidwall/gjson"
)

var _ Completer = (*OpenAI)(nil)

type OpenAIOption func(*OpenAI)

func WithBaseURL(baseURL string) OpenAIOption {
	return func(o *OpenAI) { o.baseURL = baseURL }
}

func WithHTTPClient(client *http.Client) OpenAIOption {
	return func(o *OpenAI) { o.client = client }
}

// WithDefaults sets the client-wide generation defaults; per-call options still win.
func WithDefaults(temperature float64, maxTokens int) OpenAIOption {
	return func(o *OpenAI) {
		o.temperature = temperature
		o.maxTokens = maxTokens
	}
}

type OpenAI struct {
	logger      logger.Logger
	token       string
	model       string
	baseURL     string
	client      *http.Client
	temperature float64
	maxTokens   int
}

func NewOpenAI(logger logger.Logger, token, model string, opts ...OpenAIOption) *OpenAI {
	o := &OpenAI{
		logger:      logger,
		token:       token,
		model:       model,
		baseURL:     "https://api.openai.com/v1",
		client:      &http.Client{Timeout: 120 * time.Second},
		temperature: 1.0,
		maxTokens:   4096,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Complete performs one non-streaming round trip to the chat completions endpoint. The returned
// assistant message carries either text content or one or more tool calls (or both).
func (o *OpenAI) Complete(ctx context.Context, messages []Message, opts ...CompleteOption) (Message, Usage, error) {
	config := o.completeConfig(opts...)
	payload := openai_Request{
		MaxTokens:   config.maxTokens,
		Messages:    make([]openai_Message, 0, len(messages)),
		Model:       o.model,
		Temperature: config.temperature,
	}
	for _, msg := range messages {
		var wire openai_Message
		if err := wire.from(msg); err != nil {
			return Message{}, Usage{}, fmt.Errorf("error converting message: %w", err)
		}
		payload.Messages = append(payload.Messages, wire)
	}
	if len(config.tools) > 0 {
		payload.ToolChoice = "auto"
		payload.Tools = make([]openai_Request_Tool, len(config.tools))
		for i, tool := range config.tools {
			name, description, parameters := tool.Spec()
			payload.Tools[i] = openai_Request_Tool{
				Type: "function",
				Function: &openai_Request_Tool_Function{
					Name:        name,
					Description: description,
					Parameters:  parameters,
				},
			}
		}
	}
	if config.responseFormat != nil {
		payload.ResponseFormat = &openai_Request_ResponseFormat{
			Type: "json_schema",
			JSONSchema: &openai_Request_ResponseFormat_JSONSchema{
				Name:   config.responseFormat.Name,
				Strict: true,
				Schema: config.responseFormat.Schema,
			},
		}
	}
	var data bytes.Buffer
	encoder := json.NewEncoder(&data)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		return Message{}, Usage{}, fmt.Errorf("error marshalling request: %w", err)
	}
	o.logger.Debugj("OpenAI request payload", data.Bytes())
	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost, o.baseURL+"/chat/completions", &data)
	if err != nil {
		return Message{}, Usage{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("authorization", "Bearer "+o.token)
	req.Header.Set("content-type", "application/json")
	resp, err := o.client.Do(req)
	if err != nil {
		return Message{}, Usage{}, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Message{}, Usage{}, fmt.Errorf("error reading response body: %w", err)
	}
	o.logger.Debugj("OpenAI response payload", body)
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, Message: string(body)}
		if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
			apiErr.Message = msg.String()
			apiErr.Metadata = map[string]any{
				"type": gjson.GetBytes(body, "error.type").String(),
				"code": gjson.GetBytes(body, "error.code").String(),
			}
		}
		return Message{}, Usage{}, apiErr
	}
	var parsed openai_Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Message{}, Usage{}, fmt.Errorf("error parsing response: %w", err)
	}
	if parsed.Error != nil {
		return Message{}, Usage{}, &APIError{
			Status:   resp.StatusCode,
			Message:  parsed.Error.Message,
			Metadata: map[string]any{"type": parsed.Error.Type, "code": parsed.Error.Code},
		}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message == nil {
		return Message{}, Usage{}, fmt.Errorf("no choices in response")
	}
	message := Message{Role: RoleAssistant, Content: parsed.Choices[0].Message.Content}
	for i, call := range parsed.Choices[0].Message.ToolCalls {
		if call.Function == nil {
			return Message{}, Usage{}, fmt.Errorf("tool call %s has no function", call.ID)
		}
		message.ToolCalls = append(message.ToolCalls, ToolCall{
			ID:    call.ID,
			Index: i,
			Function: ToolCallFunction{
				Name: call.Function.Name,
				Args: call.Function.Arguments,
			},
		})
	}
	usage := Usage{
		PromptTokens:     parsed.Usage.PromptTokens,
		CompletionTokens: parsed.Usage.CompletionTokens,
	}
	return message, usage, nil
}

func (o *OpenAI) completeConfig(opts ...CompleteOption) completeConfig {
	c := completeConfig{
		maxTokens:   o.maxTokens,
		temperature: o.temperature,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// helper types ------------------------------------------------------------------------------------

// messages
type openai_Message_ToolCall_Function struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}
type openai_Message_ToolCall struct {
	ID       string                            `json:"id"`
	Type     string                            `json:"type"`
	Function *openai_Message_ToolCall_Function `json:"function,omitempty"`
}
type openai_Message struct {
	Role       string                    `json:"role"`
	Content    string                    `json:"content"`
	ToolCallID string                    `json:"tool_call_id,omitempty"`
	ToolCalls  []openai_Message_ToolCall `json:"tool_calls,omitempty"`
	ToolName   string                    `json:"name,omitempty"`
}

func (m *openai_Message) from(msg Message) error {
	switch msg.Role {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		m.Role = string(msg.Role)
	default:
		return fmt.Errorf("unexpected message role: %s", msg.Role)
	}
	m.Content = msg.Content
	m.ToolCallID = msg.ToolCallID
	m.ToolName = msg.Name
	for _, call := range msg.ToolCalls {
		m.ToolCalls = append(m.ToolCalls, openai_Message_ToolCall{
			ID:   call.ID,
			Type: "function",
			Function: &openai_Message_ToolCall_Function{
				Name:      call.Function.Name,
				Arguments: call.Function.Args,
			},
		})
	}
	return nil
}

// requests
type openai_Request_Tool_Function struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}
type openai_Request_Tool struct {
	Type     string                        `json:"type"`
	Function *openai_Request_Tool_Function `json:"function,omitempty"`
}
type openai_Request_ResponseFormat_JSONSchema struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}
type openai_Request_ResponseFormat struct {
	Type       string                                    `json:"type"`
	JSONSchema *openai_Request_ResponseFormat_JSONSchema `json:"json_schema,omitempty"`
}
type openai_Request struct {
	MaxTokens      int                            `json:"max_tokens,omitzero"`
	Messages       []openai_Message               `json:"messages"`
	Model          string                         `json:"model"`
	ResponseFormat *openai_Request_ResponseFormat `json:"response_format,omitzero"`
	Temperature    float64                        `json:"temperature"`
	ToolChoice     string                         `json:"tool_choice,omitzero"`
	Tools          []openai_Request_Tool          `json:"tools,omitzero"`
}

// responses
type openai_Response_Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
type openai_Response_Choice struct {
	FinishReason string          `json:"finish_reason"`
	Message      *openai_Message `json:"message"`
}
type openai_Response_Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
type openai_Response struct {
	Choices []openai_Response_Choice `json:"choices"`
	Error   *openai_Response_Error   `json:"error"`
	ID      string                   `json:"id"`
	Model   string                   `json:"model"`
	Usage   openai_Response_Usage    `json:"usage"`
}
