// Package parser extracts a structured call plan from raw model output.
//
// Generative output reliably wraps the structured answer in prose, so the
// parser's job is extraction, not validation of prose quality: it locates the
// JSON payload inside the text and parses only that substring.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harits/aksi/pkg/plan"
)

// ParseError reports that no call plan could be extracted from the text.
// It carries the offending text so callers can log or surface it.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no call plan in model output: %s", e.Reason)
}

// ParseCallPlan extracts a call plan from raw model text.
//
// Strategy: take the substring from the first '[' to the last ']' and parse
// it as a strict JSON array; if that fails, take the single {...} object
// between the first '{' and the last '}' and wrap it in a one-element plan.
// Malformed input yields a *ParseError, never a panic.
func ParseCallPlan(raw string) (plan.CallPlan, error) {
	// Model echoes the prompt up to "Answer:"; only the generated tail
	// matters when present.
	text := raw
	if idx := strings.LastIndex(text, "Answer:"); idx != -1 {
		text = text[idx+len("Answer:"):]
	}

	if arr, ok := extractArray(text); ok {
		var calls plan.CallPlan
		if err := json.Unmarshal([]byte(arr), &calls); err == nil {
			return normalize(calls), nil
		}
	}

	if obj, ok := extractObject(text); ok {
		var call plan.ToolCall
		if err := json.Unmarshal([]byte(obj), &call); err == nil && call.Name != "" {
			return normalize(plan.CallPlan{call}), nil
		}
	}

	return nil, &ParseError{Text: raw, Reason: "no parsable JSON array or object"}
}

func extractArray(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func extractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// normalize guarantees every call has a non-nil argument map so downstream
// validation sees {} rather than null.
func normalize(calls plan.CallPlan) plan.CallPlan {
	for i := range calls {
		if calls[i].Arguments == nil {
			calls[i].Arguments = map[string]interface{}{}
		}
	}
	return calls
}
