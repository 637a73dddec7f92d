package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestWeatherTool(t *testing.T) {
	weather := NewWeather()
	name, description, params := weather.Spec()
	assert.Equal(t, "get_weather", name)
	assert.NotEmpty(t, description)
	assert.True(t, gjson.ValidBytes(params))

	tests := []struct {
		name        string
		args        string
		condition   string
		temperature int64
		unit        string
	}{
		{
			name:        "tokyo is rainy",
			args:        `{"location": "Tokyo"}`,
			condition:   "Rainy",
			temperature: 18,
			unit:        "celsius",
		},
		{
			name:        "lookup is case insensitive",
			args:        `{"location": "NEW YORK"}`,
			condition:   "Sunny",
			temperature: 22,
			unit:        "celsius",
		},
		{
			name:        "fahrenheit conversion",
			args:        `{"location": "London", "unit": "fahrenheit"}`,
			condition:   "Cloudy",
			temperature: 59,
			unit:        "fahrenheit",
		},
		{
			name:        "unknown city falls back to defaults",
			args:        `{"location": "Helsinki"}`,
			condition:   "Unknown",
			temperature: 20,
			unit:        "celsius",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := weather.Call(context.Background(), tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.condition, gjson.Get(result, "condition").String())
			assert.Equal(t, tt.temperature, gjson.Get(result, "temperature").Int())
			assert.Equal(t, tt.unit, gjson.Get(result, "unit").String())
		})
	}
}

func TestWeatherToolErrors(t *testing.T) {
	weather := NewWeather()
	t.Run("missing location", func(t *testing.T) {
		_, err := weather.Call(context.Background(), `{}`)
		require.ErrorContains(t, err, "location is required")
	})
	t.Run("invalid JSON", func(t *testing.T) {
		_, err := weather.Call(context.Background(), `{"location":`)
		require.ErrorContains(t, err, "not valid JSON")
	})
}
