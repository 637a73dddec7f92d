package llm

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-OK response from the completion service, surfaced to the caller
// uninterpreted. There is no retry or backoff anywhere in this package.
type APIError struct {
	Status   int
	Message  string
	Metadata map[string]any
}

func (e *APIError) Error() string {
	meta := []byte("null")
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			meta = b
		}
	}
	return fmt.Sprintf("%s (%d): %s", e.Message, e.Status, meta)
}
