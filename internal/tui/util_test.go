package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected []string
	}{
		{name: "fits on one line", input: "hello world", width: 20, expected: []string{"hello world"}},
		{name: "wraps at word boundary", input: "hello world", width: 6, expected: []string{"hello", "world"}},
		{name: "zero width returns input", input: "hello", width: 0, expected: []string{"hello"}},
		{name: "empty string", input: "", width: 10, expected: []string{""}},
		{name: "long word is split", input: "abcdefghij", width: 4, expected: []string{"abcd", "efgh", "ij"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, wrapLine(tt.input, tt.width))
		})
	}
}

func TestWrapWithPrefix(t *testing.T) {
	out := wrapWithPrefix("hello world", "> ", 8)
	assert.Equal(t, "> hello\n> world", out)
}
