package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/markusylisiurunen/tulkki/internal/profile"
	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"github.com/markusylisiurunen/tulkki/toolkit/relay"
)

func heading(text string) {
	fmt.Println()
	color.New(color.Bold).Println(text)
	color.New(color.Faint).Println("──────────────────────────────────────────────────")
}

// runStructuredDemo requests a completion constrained to an inline JSON schema and prints the
// returned document as-is.
func runStructuredDemo(client *llm.OpenAI) {
	personInfoSchema := json.RawMessage(`{
		"type": "object",
		"properties": {
			"name": {
				"type": "string",
				"description": "The person's full name."
			},
			"age": {
				"type": "integer",
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
	heading("structured output (strict JSON schema)")
	answer, _, err := client.Complete(context.Background(),
		[]llm.Message{
			llm.NewSystemMessage("You are a helpful assistant that generates fictional person profiles."),
			llm.NewUserMessage("Generate a profile for a software engineer named Alice."),
		},
		llm.WithResponseFormat("person_info", personInfoSchema),
	)
	if err != nil {
		log.Fatalf("error requesting structured output: %v", err)
	}
	fmt.Println(answer.Content)
}

// runProfileDemo generates a locally validated profile, then shows the validator rejecting bad
// data without any completion request being made.
func runProfileDemo(client *llm.OpenAI) {
	heading("validated profile generation")
	generated, err := profile.Generate(context.Background(), client, "a software engineer named Bob")
	if err != nil {
		log.Fatalf("error generating profile: %v", err)
	}
	fmt.Printf("name:       %s\n", generated.Name)
	fmt.Printf("age:        %d\n", generated.Age)
	fmt.Printf("occupation: %s\n", generated.Occupation)

	heading("validation catches bad data locally")
	invalid := []byte(`{"name": "   ", "age": 200, "occupation": "Developer"}`)
	fmt.Printf("document: %s\n", invalid)
	for _, violation := range profile.Validate(invalid) {
		color.New(color.FgRed).Printf("✗ %s\n", violation)
	}
}

// runToolsDemo routes the original example queries through the tool-dispatch relay.
func runToolsDemo(dispatch *relay.Relay) {
	queries := []string{
		"What's the weather like in Tokyo?",
		"What is 157 multiplied by 23?",
		"What's the current stock price of Apple?",
		"Show me all users in the database",
		"Send an email to john@example.com with subject 'Meeting Tomorrow' and tell him the meeting is at 2 PM",
		"What's the weather in Paris and what's the stock price of Microsoft?",
		"Calculate 15% of 250 and tell me the weather in London",
	}
	for _, query := range queries {
		heading(query)
		answer, err := dispatch.Answer(context.Background(), query)
		if err != nil {
			log.Fatalf("error answering query: %v", err)
		}
		fmt.Println(answer)
	}
}
