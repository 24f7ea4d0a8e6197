package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harits/aksi/pkg/plan"
)

func TestParseCallPlan_CleanArray(t *testing.T) {
	raw := `[{"name": "get_weather", "arguments": {"location": "Paris"}}]`

	calls, err := ParseCallPlan(raw)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "get_weather", calls[0].Name)
	assert.Equal(t, "Paris", calls[0].Arguments["location"])
}

func TestParseCallPlan_Idempotent(t *testing.T) {
	original := plan.CallPlan{
		{Name: "write_file", Arguments: map[string]interface{}{"filename": "notes.txt", "content": "hello"}},
		{Name: "read_file", Arguments: map[string]interface{}{"filename": "notes.txt"}},
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := ParseCallPlan(string(encoded))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestParseCallPlan_ProseWrapped(t *testing.T) {
	raw := `Sure! Based on your request I will call the weather function.
[{"name": "get_weather", "arguments": {"location": "London"}}]
Let me know if you need anything else.`

	calls, err := ParseCallPlan(raw)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "get_weather", calls[0].Name)
}

func TestParseCallPlan_SingleObjectFallback(t *testing.T) {
	raw := `The call is {"name": "read_file", "arguments": {"filename": "sales.txt"}} as requested.`

	calls, err := ParseCallPlan(raw)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "read_file", calls[0].Name)
	assert.Equal(t, "sales.txt", calls[0].Arguments["filename"])
}

func TestParseCallPlan_EmptyArray(t *testing.T) {
	calls, err := ParseCallPlan("No action needed: []")
	require.NoError(t, err)
	assert.True(t, calls.IsEmpty())
}

func TestParseCallPlan_AnswerMarker(t *testing.T) {
	// Models that echo the prompt repeat the schema before the answer; only
	// the text after the last "Answer:" counts.
	raw := `Available functions:
[{"name": "get_weather", "description": "..."}]

Answer: [{"name": "search_internet", "arguments": {"query": "latest AI news"}}]`

	calls, err := ParseCallPlan(raw)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "search_internet", calls[0].Name)
}

func TestParseCallPlan_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json at all", raw: "not json at all"},
		{name: "empty string", raw: ""},
		{name: "unbalanced brackets", raw: "] oops ["},
		{name: "array of numbers", raw: "[1, 2, 3]"},
		{name: "object without name", raw: `{"arguments": {}}`},
		{name: "truncated object", raw: `{"name": "get_weather", "arguments":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls, err := ParseCallPlan(tt.raw)
			require.Error(t, err)
			assert.Nil(t, calls)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.raw, parseErr.Text)
		})
	}
}

func TestParseCallPlan_NilArgumentsNormalized(t *testing.T) {
	calls, err := ParseCallPlan(`[{"name": "get_weather"}]`)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.NotNil(t, calls[0].Arguments)
}
