package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Violation is a single field-level validation failure. Field is a dot path into the document;
// an empty Field means the violation applies to the document as a whole.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

func Join(violations []Violation) string {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}

type Schema struct {
	name     string
	compiled *jsonschema.Schema
}

// Compile parses a raw JSON-schema document (draft 2020-12). The schema is immutable once
// compiled and safe for concurrent use.
func Compile(name string, raw json.RawMessage) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	resource := name + ".schema.json"
	if err := compiler.AddResource(resource, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("error adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("error compiling schema %q: %w", name, err)
	}
	return &Schema{name: name, compiled: compiled}, nil
}

func MustCompile(name string, raw json.RawMessage) *Schema {
	s, err := Compile(name, raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks a JSON document against the schema. A nil return means the document is valid;
// otherwise every field-level failure is reported. Validation never panics and never partially
// accepts a document.
func (s *Schema) Validate(doc []byte) []Violation {
	var value any
	if err := json.Unmarshal(doc, &value); err != nil {
		return []Violation{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	err := s.compiled.Validate(value)
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return flatten(validationErr)
	}
	return []Violation{{Message: err.Error()}}
}

func flatten(err *jsonschema.ValidationError) []Violation {
	if len(err.Causes) == 0 {
		return []Violation{{
			Field:   fieldPath(err.InstanceLocation),
			Message: err.Message,
		}}
	}
	var violations []Violation
	for _, cause := range err.Causes {
		violations = append(violations, flatten(cause)...)
	}
	return violations
}

func fieldPath(instanceLocation string) string {
	return strings.ReplaceAll(strings.TrimPrefix(instanceLocation, "/"), "/", ".")
}
