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

type weatherToolResult struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Unit        string `json:"unit"`
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`
}

func (r weatherToolResult) result() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	return string(b), nil
}

var weatherToolDescription = strings.TrimSpace(`
Get the current weather for a specific location. Returns the temperature, the overall condition and the relative humidity. A real deployment would call a weather API; this implementation serves a fixed lookup table.
`)

type weatherRecord struct {
	temperature int
	condition   string
	humidity    int
}

var weatherByCity = map[string]weatherRecord{
	"london":   {15, "Cloudy", 65},
	"new york": {22, "Sunny", 45},
	"tokyo":    {18, "Rainy", 80},
	"paris":    {17, "Partly Cloudy", 55},
	"sydney":   {25, "Sunny", 50},
}

var _ llm.Tool = (*weatherTool)(nil)

type weatherTool struct {
	logger logger.Logger
}

func NewWeather() *weatherTool {
	return &weatherTool{logger.NoOp()}
}

func (t *weatherTool) SetLogger(logger logger.Logger) *weatherTool {
	t.logger = logger
	return t
}

func (t *weatherTool) Spec() (string, string, json.RawMessage) {
	return "get_weather", weatherToolDescription, json.RawMessage(`{
		"type": "object",
		"properties": {
			"location": {
				"type": "string",
				"description": "The city name, e.g., London, New York."
			},
			"unit": {
				"type": "string",
				"enum": ["celsius", "fahrenheit"],
				"description": "The temperature unit."
			}
		},
		"required": ["location"]
	}`)
}

func (t *weatherTool) Call(ctx context.Context, args string) (string, error) {
	if !gjson.Valid(args) {
		return "", fmt.Errorf("invalid arguments: not valid JSON")
	}
	location := gjson.Get(args, "location").String()
	if location == "" {
		return "", fmt.Errorf("location is required")
	}
	unit := gjson.Get(args, "unit").String()
	if unit == "" {
		unit = "celsius"
	}
	record, ok := weatherByCity[strings.ToLower(location)]
	if !ok {
		record = weatherRecord{20, "Unknown", 50}
	}
	temperature := record.temperature
	if unit == "fahrenheit" {
		temperature = temperature*9/5 + 32
	}
	t.logger.Debug("get_weather operation succeeded: %s is %s", location, record.condition)
	return weatherToolResult{
		Location:    location,
		Temperature: temperature,
		Unit:        unit,
		Condition:   record.condition,
		Humidity:    record.humidity,
	}.result()
}
