package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/markusylisiurunen/tulkki/internal/logger"
	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"github.com/tidwall/gjson"
)

type emailToolResult struct {
	Status      string `json:"status"`
	MessageID   string `json:"message_id"`
	To          string `json:"to"`
	Subject     string `json:"subject"`
	BodyPreview string `json:"body_preview"`
}

func (r emailToolResult) result() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	return string(b), nil
}

var emailToolDescription = strings.TrimSpace(`
Send an email to a recipient. The send is simulated, but treat it as committed: there is no way to unsend. A real deployment would use an email delivery service.
`)

var _ llm.Tool = (*emailTool)(nil)

type emailTool struct {
	logger logger.Logger
}

func NewEmail() *emailTool {
	return &emailTool{logger.NoOp()}
}

func (t *emailTool) SetLogger(logger logger.Logger) *emailTool {
	t.logger = logger
	return t
}

func (t *emailTool) Spec() (string, string, json.RawMessage) {
	return "send_email", emailToolDescription, json.RawMessage(`{
		"type": "object",
		"properties": {
			"to": {
				"type": "string",
				"description": "The recipient's email address."
			},
			"subject": {
				"type": "string",
				"description": "The email subject line."
			},
			"body": {
				"type": "string",
				"description": "The email body content."
			}
		},
		"required": ["to", "subject", "body"]
	}`)
}

func (t *emailTool) Call(ctx context.Context, args string) (string, error) {
	if !gjson.Valid(args) {
		return "", fmt.Errorf("invalid arguments: not valid JSON")
	}
	to := gjson.Get(args, "to").String()
	subject := gjson.Get(args, "subject").String()
	body := gjson.Get(args, "body").String()
	if to == "" || subject == "" || body == "" {
		return "", fmt.Errorf("to, subject and body are required")
	}
	preview := body
	if runes := []rune(body); len(runes) > 50 {
		preview = string(runes[:50]) + "..."
	}
	messageID := uuid.NewString()
	t.logger.Info("send_email operation succeeded: sent %s to %s", messageID, to)
	return emailToolResult{
		Status:      "success",
		MessageID:   messageID,
		To:          to,
		Subject:     subject,
		BodyPreview: preview,
	}.result()
}
