package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/markusylisiurunen/tulkki/internal/logger"
	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"github.com/tidwall/gjson"
)

type recordsToolResult struct {
	Table   string           `json:"table"`
	Query   string           `json:"query"`
	Results []map[string]any `json:"results"`
	Count   int              `json:"count"`
}

func (r recordsToolResult) result() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	return string(b), nil
}

var recordsToolDescription = strings.TrimSpace(`
Search a database table for records. Supported tables are users, products and orders. A real deployment would query a real database; this implementation serves fixed example rows.
`)

var recordsByTable = map[string][]map[string]any{
	"users": {
		{"id": 1, "name": "Alice Johnson", "email": "alice@example.com"},
		{"id": 2, "name": "Bob Smith", "email": "bob@example.com"},
		{"id": 3, "name": "Charlie Brown", "email": "charlie@example.com"},
	},
	"products": {
		{"id": 101, "name": "Laptop", "price": 999},
		{"id": 102, "name": "Mouse", "price": 29},
		{"id": 103, "name": "Keyboard", "price": 79},
	},
	"orders": {
		{"id": 501, "customer": "Alice", "total": 1107},
		{"id": 502, "customer": "Bob", "total": 79},
	},
}

var _ llm.Tool = (*recordsTool)(nil)

type recordsTool struct {
	logger logger.Logger
}

func NewRecords() *recordsTool {
	return &recordsTool{logger.NoOp()}
}

func (t *recordsTool) SetLogger(logger logger.Logger) *recordsTool {
	t.logger = logger
	return t
}

func (t *recordsTool) Spec() (string, string, json.RawMessage) {
	return "search_database", recordsToolDescription, json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {
				"type": "string",
				"description": "The search query."
			},
			"table": {
				"type": "string",
				"enum": ["users", "products", "orders"],
				"description": "The database table to search."
			}
		},
		"required": ["query"]
	}`)
}

func (t *recordsTool) Call(ctx context.Context, args string) (string, error) {
	if !gjson.Valid(args) {
		return "", fmt.Errorf("invalid arguments: not valid JSON")
	}
	query := gjson.Get(args, "query").String()
	if query == "" {
		return "", fmt.Errorf("query is required")
	}
	table := strings.ToLower(gjson.Get(args, "table").String())
	if table == "" {
		table = "users"
	}
	rows, ok := recordsByTable[table]
	if !ok {
		return "", fmt.Errorf("unknown table: %s", table)
	}
	t.logger.Debug("search_database operation succeeded: %d rows from %s", len(rows), table)
	return recordsToolResult{
		Table:   table,
		Query:   query,
		Results: rows,
		Count:   len(rows),
	}.result()
}
