package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestCalcTool(t *testing.T) {
	calc := NewCalc()
	name, _, _ := calc.Spec()
	assert.Equal(t, "calculate", name)

	result, err := calc.Call(context.Background(), `{"expression": "157 * 23"}`)
	require.NoError(t, err)
	assert.Equal(t, "157 * 23", gjson.Get(result, "expression").String())
	assert.Equal(t, float64(3611), gjson.Get(result, "result").Float())
}

func TestCalcToolErrors(t *testing.T) {
	calc := NewCalc()
	tests := []struct {
		name string
		args string
	}{
		{name: "missing expression", args: `{}`},
		{name: "invalid JSON", args: `{"expression":`},
		{name: "non-arithmetic input", args: `{"expression": "os.system('ls')"}`},
		{name: "division by zero", args: `{"expression": "1 / 0"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Call(context.Background(), tt.args)
			require.Error(t, err)
		})
	}
}
