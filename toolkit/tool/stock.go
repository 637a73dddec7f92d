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

type stockToolResult struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

func (r stockToolResult) result() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	return string(b), nil
}

var stockToolDescription = strings.TrimSpace(`
Get the current stock price for a company symbol, with the day's change in dollars and percent. A real deployment would call a financial API; this implementation serves a fixed lookup table.
`)

type stockQuote struct {
	price         float64
	change        float64
	changePercent float64
}

var quotesBySymbol = map[string]stockQuote{
	"AAPL":  {178.50, 2.30, 1.31},
	"GOOGL": {142.80, -1.20, -0.83},
	"MSFT":  {415.30, 5.40, 1.32},
	"TSLA":  {242.80, 8.60, 3.67},
	"AMZN":  {178.25, -0.50, -0.28},
}

var _ llm.Tool = (*stockTool)(nil)

type stockTool struct {
	logger logger.Logger
}

func NewStock() *stockTool {
	return &stockTool{logger.NoOp()}
}

func (t *stockTool) SetLogger(logger logger.Logger) *stockTool {
	t.logger = logger
	return t
}

func (t *stockTool) Spec() (string, string, json.RawMessage) {
	return "get_stock_price", stockToolDescription, json.RawMessage(`{
		"type": "object",
		"properties": {
			"symbol": {
				"type": "string",
				"description": "The stock ticker symbol, e.g., AAPL, GOOGL, MSFT."
			}
		},
		"required": ["symbol"]
	}`)
}

func (t *stockTool) Call(ctx context.Context, args string) (string, error) {
	if !gjson.Valid(args) {
		return "", fmt.Errorf("invalid arguments: not valid JSON")
	}
	symbol := gjson.Get(args, "symbol").String()
	if symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}
	symbol = strings.ToUpper(symbol)
	// unknown symbols resolve to zeroes rather than an error
	quote := quotesBySymbol[symbol]
	t.logger.Debug("get_stock_price operation succeeded: %s at %.2f", symbol, quote.price)
	return stockToolResult{
		Symbol:        symbol,
		Price:         quote.price,
		Change:        quote.change,
		ChangePercent: quote.changePercent,
	}.result()
}
