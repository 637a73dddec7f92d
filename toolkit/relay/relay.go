// Package relay implements the tool-dispatch protocol: one completion with the tool catalog,
// local execution of every requested tool call, and one follow-up completion for the final
// answer. Strictly two round trips; a second response requesting further tools is returned
// as-is and never dispatched.
package relay

import (
	"context"
	"fmt"
	"slices"

	"github.com/markusylisiurunen/tulkki/internal/logger"
	"github.com/markusylisiurunen/tulkki/toolkit/llm"
	"golang.org/x/sync/errgroup"
)

type Relay struct {
	logger    logger.Logger
	completer llm.Completer
	system    string
	tools     []llm.Tool
}

// New builds a relay over a static tool catalog. The catalog must be unambiguous: a duplicate
// tool name is a configuration error, not something to resolve at dispatch time.
func New(logger logger.Logger, completer llm.Completer, system string, tools ...llm.Tool) (*Relay, error) {
	seen := map[string]bool{}
	for _, tool := range tools {
		if tool == nil {
			return nil, fmt.Errorf("nil tool in catalog")
		}
		name, _, _ := tool.Spec()
		if seen[name] {
			return nil, fmt.Errorf("duplicate tool name: %s", name)
		}
		seen[name] = true
	}
	return &Relay{logger: logger, completer: completer, system: system, tools: tools}, nil
}

// Answer runs one full query through the relay and returns the final answer text. Every call
// builds a fresh conversation; nothing is shared between queries, so concurrent calls are safe.
func (r *Relay) Answer(ctx context.Context, query string) (string, error) {
	messages := []llm.Message{
		llm.NewSystemMessage(r.system),
		llm.NewUserMessage(query),
	}
	out, _, err := r.Run(ctx, messages)
	if err != nil {
		return "", err
	}
	return out[len(out)-1].Content, nil
}

// Run executes the two-round protocol over an existing conversation and returns the extended
// history. The last message is always the final assistant answer.
func (r *Relay) Run(ctx context.Context, messages []llm.Message) ([]llm.Message, llm.Usage, error) {
	cloned := slices.Clone(messages)
	answer, usage, err := r.completer.Complete(ctx, cloned, llm.WithTools(r.tools...))
	if err != nil {
		return nil, llm.Usage{}, err
	}
	total := usage
	cloned = append(cloned, answer)
	if len(answer.ToolCalls) == 0 {
		return cloned, total, nil
	}
	// resolve every requested tool before running any of them
	resolved := make([]llm.Tool, len(answer.ToolCalls))
	for i, call := range answer.ToolCalls {
		tool := r.lookup(call.Function.Name)
		if tool == nil {
			return nil, total, fmt.Errorf("tool %s not found", call.Function.Name)
		}
		resolved[i] = tool
	}
	// the calls are independent of each other, so they run in parallel; the results are still
	// appended in the order the model requested them
	results := make([]string, len(answer.ToolCalls))
	g, gctx := errgroup.WithContext(ctx)
	for idx, call := range answer.ToolCalls {
		g.Go(func() error {
			result, err := resolved[idx].Call(gctx, call.Function.Args)
			if err != nil {
				return fmt.Errorf("tool %s: %w", call.Function.Name, err)
			}
			results[idx] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, total, fmt.Errorf("error executing tool calls: %w", err)
	}
	for idx, call := range answer.ToolCalls {
		r.logger.Debug("tool %s (%s) returned %d bytes", call.Function.Name, call.ID, len(results[idx]))
		cloned = append(cloned, llm.Message{
			Role:       llm.RoleTool,
			Content:    results[idx],
			Name:       call.Function.Name,
			ToolCallID: call.ID,
		})
	}
	// no tool catalog on the second round: further tool use is out of scope
	final, usage, err := r.completer.Complete(ctx, cloned)
	if err != nil {
		return nil, total, err
	}
	total.Add(usage)
	cloned = append(cloned, final)
	return cloned, total, nil
}

func (r *Relay) lookup(name string) llm.Tool {
	for _, tool := range r.tools {
		if toolName, _, _ := tool.Spec(); toolName == name {
			return tool
		}
	}
	return nil
}
