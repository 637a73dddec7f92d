package llm

import (
	"context"
	"encoding/json"
)

// Tool is a named, schema-described callable the remote model may request to be invoked. Spec
// returns the tool's name, description, and JSON-schema parameter declaration; Call receives the
// model-provided arguments as a raw JSON string.
type Tool interface {
	Spec() (string, string, json.RawMessage)
	Call(ctx context.Context, args string) (string, error)
}
