// Package executor dispatches call plans to tool implementations. One bad
// call never blocks its siblings: unknown tools, invalid arguments, handler
// errors and timeouts all land in the per-call result and execution moves on.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/harits/aksi/pkg/plan"
	"github.com/harits/aksi/pkg/registry"
)

// DefaultTimeout bounds a single tool call. Tools doing network or
// filesystem I/O must not stall the whole dispatch.
const DefaultTimeout = 10 * time.Second

// ExecutionResult is the outcome of one tool call, order-preserving relative
// to the plan.
type ExecutionResult struct {
	Tool    string `json:"tool"`
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Executor runs call plans against a registry.
type Executor struct {
	registry *registry.Registry
	timeout  time.Duration
}

// New creates an executor. A non-positive timeout falls back to
// DefaultTimeout.
func New(reg *registry.Registry, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{registry: reg, timeout: timeout}
}

// ExecutePlan runs every call in order and returns one result per call.
func (e *Executor) ExecutePlan(ctx context.Context, p plan.CallPlan) []ExecutionResult {
	results := make([]ExecutionResult, 0, len(p))
	for _, call := range p {
		results = append(results, e.executeCall(ctx, call))
	}
	return results
}

func (e *Executor) executeCall(ctx context.Context, call plan.ToolCall) ExecutionResult {
	startTime := time.Now()

	tool := e.registry.Get(call.Name)
	if tool == nil {
		log.Error().Str("tool", call.Name).Msg("Unknown tool in call plan")
		return ExecutionResult{
			Tool:    call.Name,
			Success: false,
			Error:   fmt.Sprintf("unknown tool: %s", call.Name),
		}
	}

	args := call.Arguments
	if args == nil {
		args = map[string]interface{}{}
	}

	if err := validateArguments(e.registry.Schema(call.Name), args); err != nil {
		log.Error().Str("tool", call.Name).Err(err).Msg("Argument validation failed")
		return ExecutionResult{
			Tool:    call.Name,
			Success: false,
			Error:   fmt.Sprintf("argument validation failed: %v", err),
		}
	}

	log.Debug().Str("tool", call.Name).Msg("Executing tool")

	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	dataChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		data, err := tool.Handler(timeoutCtx, args)
		if err != nil {
			errChan <- err
		} else {
			dataChan <- data
		}
	}()

	select {
	case data := <-dataChan:
		log.Debug().
			Str("tool", call.Name).
			Dur("duration", time.Since(startTime)).
			Msg("Tool execution completed")
		return ExecutionResult{Tool: call.Name, Success: true, Data: data}

	case err := <-errChan:
		log.Error().
			Str("tool", call.Name).
			Dur("duration", time.Since(startTime)).
			Err(err).
			Msg("Tool execution failed")
		return ExecutionResult{Tool: call.Name, Success: false, Error: err.Error()}

	case <-timeoutCtx.Done():
		log.Error().
			Str("tool", call.Name).
			Dur("duration", time.Since(startTime)).
			Msg("Tool execution timeout")
		return ExecutionResult{
			Tool:    call.Name,
			Success: false,
			Error:   fmt.Sprintf("tool execution timeout after %v", e.timeout),
		}
	}
}

func validateArguments(schema *gojsonschema.Schema, args map[string]interface{}) error {
	if schema == nil {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return err
	}
	if !result.Valid() {
		msgs := []string{}
		for _, verr := range result.Errors() {
			msgs = append(msgs, verr.String())
		}
		return fmt.Errorf("validation errors: %v", msgs)
	}
	return nil
}
