// Package prompt renders the tool catalog and a user query into the prompt
// sent to the function-calling model.
package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/harits/aksi/pkg/registry"
)

const taskInstruction = `You are an expert in composing functions. You are given a question and a set of possible functions.
Based on the question, you will need to make one or more function/tool calls to achieve the purpose.
If none of the functions can be used, point it out and refuse to answer.
If the given question lacks the parameters required by the function, also point it out.`

const formatInstruction = `The output MUST be a valid JSON array of tool calls. If no function call is needed, return an empty array [].
If function calls are needed, return an array like this:
[
{"name": "func_name1", "arguments": {"argument1": "value1", "argument2": "value2"}},
{"name": "func_name2", "arguments": {"argument1": "value1"}}
]`

// Build renders the dispatch prompt. It is a pure function: identical
// (query, registry) inputs always yield an identical string, which is what
// makes the model step testable with prompt snapshots. JSON map keys are
// marshaled in sorted order, so the schema section is stable.
func Build(query string, reg *registry.Registry) string {
	schema, err := json.MarshalIndent(reg.ToSchema(), "", "  ")
	if err != nil {
		// ToSchema only emits plain maps, strings and slices; marshal
		// cannot fail on that shape.
		schema = []byte("[]")
	}

	return fmt.Sprintf("%s\n\nAvailable functions:\n%s\n\n%s\n\nQuestion: %s\n\nAnswer:",
		taskInstruction, schema, formatInstruction, query)
}

// BuildUnderstanding renders the advisory prompt used to get a plain-language
// reading of the query without any function calling.
func BuildUnderstanding(query string) string {
	return fmt.Sprintf("You are an AI assistant. Understand what the user is asking for.\n\nUser: %s\n\nAssistant: The user is asking for:", query)
}
