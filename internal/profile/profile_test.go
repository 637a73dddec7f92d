package profile

import (
	"context"
	"fmt"
	"testing"

	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	content string
	err     error
	calls   int
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message, opts ...llm.CompleteOption) (llm.Message, llm.Usage, error) {
	f.calls++
	if f.err != nil {
		return llm.Message{}, llm.Usage{}, f.err
	}
	return llm.Message{Role: llm.RoleAssistant, Content: f.content}, llm.Usage{}, nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
		valid bool
	}{
		{
			name:  "valid profile",
			doc:   `{"name": "Bob Smith", "age": 34, "occupation": "Software Engineer"}`,
			valid: true,
		},
		{
			name:  "age above the limit",
			doc:   `{"name": "Bob Smith", "age": 200, "occupation": "Developer"}`,
			field: "age",
		},
		{
			name:  "negative age",
			doc:   `{"name": "Bob Smith", "age": -3, "occupation": "Developer"}`,
			field: "age",
		},
		{
			name:  "blank name",
			doc:   `{"name": "   ", "age": 34, "occupation": "Developer"}`,
			field: "name",
		},
		{
			name: "missing occupation",
			doc:  `{"name": "Bob Smith", "age": 34}`,
		},
		{
			name: "unknown field rejected",
			doc:  `{"name": "Bob Smith", "age": 34, "occupation": "Developer", "salary": 100}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Validate([]byte(tt.doc))
			if tt.valid {
				assert.Empty(t, violations)
				return
			}
			require.NotEmpty(t, violations)
			if tt.field != "" {
				found := false
				for _, v := range violations {
					if v.Field == tt.field {
						found = true
					}
				}
				assert.True(t, found, "expected a violation on %q, got %v", tt.field, violations)
			}
		})
	}
}

// Locally supplied data never reaches the completion service: validation is a plain function
// over bytes, with no client anywhere in sight.
func TestValidateIsLocal(t *testing.T) {
	completer := &fakeCompleter{}
	violations := Validate([]byte(`{"name": "   ", "age": 200, "occupation": "Developer"}`))
	require.NotEmpty(t, violations)
	assert.Equal(t, 0, completer.calls)
}

func TestGenerate(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		completer := &fakeCompleter{content: `{"name": "Bob Smith", "age": 34, "occupation": "Software Engineer"}`}
		p, err := Generate(context.Background(), completer, "a software engineer named Bob")
		require.NoError(t, err)
		assert.Equal(t, "Bob Smith", p.Name)
		assert.Equal(t, 34, p.Age)
		assert.Equal(t, "Software Engineer", p.Occupation)
		assert.Equal(t, 1, completer.calls)
	})
	t.Run("document failing local validation", func(t *testing.T) {
		completer := &fakeCompleter{content: `{"name": "Bob Smith", "age": 200, "occupation": "Developer"}`}
		_, err := Generate(context.Background(), completer, "a software engineer named Bob")
		require.ErrorContains(t, err, "failed validation")
	})
	t.Run("completer error surfaces as-is", func(t *testing.T) {
		wantErr := fmt.Errorf("rate limited")
		completer := &fakeCompleter{err: wantErr}
		_, err := Generate(context.Background(), completer, "a software engineer named Bob")
		require.ErrorIs(t, err, wantErr)
	})
}
