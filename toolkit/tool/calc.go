package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/markusylisiurunen/tulkki/internal/arith"
	"github.com/markusylisiurunen/tulkki/internal/logger"
	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"github.com/tidwall/gjson"
)

type calcToolResult struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
}

func (r calcToolResult) result() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	return string(b), nil
}

var calcToolDescription = strings.TrimSpace(`
Perform a mathematical calculation. Supports addition, subtraction, multiplication, division and parentheses over decimal numbers. Anything beyond plain arithmetic is rejected.
`)

var _ llm.Tool = (*calcTool)(nil)

type calcTool struct {
	logger logger.Logger
}

func NewCalc() *calcTool {
	return &calcTool{logger.NoOp()}
}

func (t *calcTool) SetLogger(logger logger.Logger) *calcTool {
	t.logger = logger
	return t
}

func (t *calcTool) Spec() (string, string, json.RawMessage) {
	return "calculate", calcToolDescription, json.RawMessage(`{
		"type": "object",
		"properties": {
			"expression": {
				"type": "string",
				"description": "The mathematical expression to evaluate, e.g., '2 + 2' or '10 * 5'."
			}
		},
		"required": ["expression"]
	}`)
}

func (t *calcTool) Call(ctx context.Context, args string) (string, error) {
	if !gjson.Valid(args) {
		return "", fmt.Errorf("invalid arguments: not valid JSON")
	}
	expression := gjson.Get(args, "expression").String()
	if expression == "" {
		return "", fmt.Errorf("expression is required")
	}
	value, err := arith.Eval(expression)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", expression, err)
	}
	t.logger.Debug("calculate operation succeeded: %s = %v", expression, value)
	return calcToolResult{Expression: expression, Result: value}.result()
}
