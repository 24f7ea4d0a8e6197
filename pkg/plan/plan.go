// Package plan defines the call-plan wire types shared by the intent
// matcher, the call-plan parser, and the tool executor.
package plan

// ToolCall is a single requested tool invocation.
type ToolCall struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// CallPlan is an ordered sequence of tool calls. Order is execution order.
// An empty plan is valid and means "no action needed".
type CallPlan []ToolCall

// IsEmpty reports whether the plan contains no calls.
func (p CallPlan) IsEmpty() bool {
	return len(p) == 0
}

// Names returns the tool names in call order.
func (p CallPlan) Names() []string {
	names := make([]string, 0, len(p))
	for _, call := range p {
		names = append(names, call.Name)
	}
	return names
}
