// Package registry holds the canonical catalog of callable tools. The
// registry is populated at startup and read-only afterwards; it is the single
// source of truth consumed by both the prompt builder and the tool executor.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

// ToolParameter defines a parameter for a tool
type ToolParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// ToolDefinition defines a tool's metadata and handler
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters"`
	Handler     ToolHandler     `json:"-"`
}

// ToolHandler is the function signature for tool execution. The returned
// string is user-presentable output.
type ToolHandler func(ctx context.Context, args map[string]interface{}) (string, error)

// ToolSchema is the machine-readable form of a tool definition rendered into
// the model prompt.
type ToolSchema struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Registry manages tool definitions and their compiled argument schemas.
type Registry struct {
	tools   map[string]*ToolDefinition
	schemas map[string]*gojsonschema.Schema
	order   []string
	mu      sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tools:   make(map[string]*ToolDefinition),
		schemas: make(map[string]*gojsonschema.Schema),
	}
}

// Register adds a tool definition. Definitions are validated and their
// argument schema compiled once here, so Execute never compiles schemas on
// the hot path.
func (r *Registry) Register(def ToolDefinition) error {
	if err := validateDefinition(def); err != nil {
		return fmt.Errorf("invalid tool definition: %w", err)
	}

	schema, err := compileSchema(def)
	if err != nil {
		return fmt.Errorf("failed to compile schema for %s: %w", def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("tool already registered: %s", def.Name)
	}

	r.tools[def.Name] = &def
	r.schemas[def.Name] = schema
	r.order = append(r.order, def.Name)

	log.Info().Str("tool", def.Name).Msg("Tool registered")

	return nil
}

// Get returns a tool definition by name, or nil if absent.
func (r *Registry) Get(name string) *ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.tools[name]
}

// Schema returns the compiled argument schema for a tool, or nil if absent.
func (r *Registry) Schema(name string) *gojsonschema.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.schemas[name]
}

// All returns every tool definition in registration order.
func (r *Registry) All() []*ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name])
	}
	return defs
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// ToSchema renders the catalog into the machine-readable list consumed by
// the prompt builder. Output is stable: tools appear in registration order
// and parameter properties are plain JSON-schema objects.
func (r *Registry) ToSchema() []ToolSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		def := r.tools[name]
		out = append(out, ToolSchema{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  parametersSchema(def),
		})
	}
	return out
}

func parametersSchema(def *ToolDefinition) map[string]interface{} {
	properties := make(map[string]interface{}, len(def.Parameters))
	required := []string{}

	for _, param := range def.Parameters {
		properties[param.Name] = map[string]interface{}{
			"type":        param.Type,
			"description": param.Description,
		}
		if param.Required {
			required = append(required, param.Name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func validateDefinition(def ToolDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if def.Description == "" {
		return fmt.Errorf("tool description cannot be empty")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool handler cannot be nil")
	}

	validTypes := map[string]bool{
		"string": true, "number": true, "boolean": true,
		"object": true, "array": true, "integer": true,
	}
	for _, param := range def.Parameters {
		if param.Name == "" {
			return fmt.Errorf("parameter name cannot be empty")
		}
		if param.Type == "" {
			return fmt.Errorf("parameter type cannot be empty for %s", param.Name)
		}
		if !validTypes[param.Type] {
			return fmt.Errorf("invalid parameter type %s for %s", param.Type, param.Name)
		}
	}

	return nil
}

func compileSchema(def ToolDefinition) (*gojsonschema.Schema, error) {
	loader := gojsonschema.NewGoLoader(parametersSchema(&def))
	return gojsonschema.NewSchema(loader)
}
