// Package profile generates fictional person profiles through a strict-schema completion and
// validates the result locally before accepting it. Local validation is deliberately redundant
// with the service-side strict mode: data is checked here regardless of where it came from.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"github.com/markusylisiurunen/tulkki/toolkit/schema"
	"github.com/tidwall/gjson"
)

type Profile struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Occupation string `json:"occupation"`
}

var rawSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"name": {
			"type": "string",
			"description": "The person's full name."
		},
		"age": {
			"type": "integer",
			"minimum": 0,
			"maximum": 150,
			"description": "The person's age in years."
		},
		"occupation": {
			"type": "string",
			"description": "The person's job or profession."
		}
	},
	"required": ["name", "age", "occupation"],
	"additionalProperties": false
}`)

var compiled = schema.MustCompile("person_profile", rawSchema)

// Schema returns the raw JSON schema, suitable for a strict response format.
func Schema() json.RawMessage {
	return rawSchema
}

// Validate checks a profile document against the schema plus the rules the schema cannot
// express. A nil return means the document is acceptable.
func Validate(doc []byte) []schema.Violation {
	violations := compiled.Validate(doc)
	// a name of only whitespace passes the schema but is still not a name
	if name := gjson.GetBytes(doc, "name"); name.Exists() && strings.TrimSpace(name.String()) == "" {
		violations = append(violations, schema.Violation{Field: "name", Message: "must not be blank"})
	}
	return violations
}

const systemPrompt = "You are a helpful assistant that generates fictional person profiles."

// Generate requests a profile for the given subject and validates it before returning. A
// document failing local validation is an error even though the service promised strict mode.
func Generate(ctx context.Context, completer llm.Completer, subject string) (Profile, error) {
	messages := []llm.Message{
		llm.NewSystemMessage(systemPrompt),
		llm.NewUserMessage(fmt.Sprintf("Generate a profile for %s.", subject)),
	}
	answer, _, err := completer.Complete(ctx, messages,
		llm.WithResponseFormat("person_profile", rawSchema))
	if err != nil {
		return Profile{}, err
	}
	doc := []byte(answer.Content)
	if violations := Validate(doc); len(violations) > 0 {
		return Profile{}, fmt.Errorf("generated profile failed validation: %s", schema.Join(violations))
	}
	var p Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return Profile{}, fmt.Errorf("error unmarshalling profile: %w", err)
	}
	return p, nil
}
