// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Registry owns the name -> (descriptor, behavior) mapping for the server.
//
// Lifecycle discipline is "build fully, then freeze, then serve": all
// registration happens synchronously during process initialization, before
// any transport accepts requests. After freeze() the registry is read-only,
// so Resolve and Descriptors are safe for concurrent use without locks.
type Registry struct {
	order   []string
	entries map[string]ToolDefinition
	frozen  bool
}

// NewRegistry creates an empty tool registry. An empty registry is valid and
// yields an empty capability list.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]ToolDefinition)}
}

// Register adds a tool definition under its descriptor's name.
//
// Returns:
//   - *DuplicateNameError if the name is already taken; the prior entry is left untouched
//   - an error if the registry is already frozen or the descriptor has no name
func (r *Registry) Register(def ToolDefinition) error {
	if r.frozen {
		return fmt.Errorf("registry is frozen: cannot register %q after serving began", def.Tool.Name)
	}
	name := def.Tool.Name
	if name == "" {
		return fmt.Errorf("tool descriptor has no name")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %q has no handler", name)
	}
	if _, exists := r.entries[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	r.entries[name] = def
	r.order = append(r.order, name)
	return nil
}

// Resolve looks up a tool by name.
//
// Returns *UnknownToolError if no tool is registered under the name.
func (r *Registry) Resolve(name string) (ToolDefinition, error) {
	def, ok := r.entries[name]
	if !ok {
		return ToolDefinition{}, &UnknownToolError{Name: name}
	}
	return def, nil
}

// Descriptors returns the descriptors of all registered tools in registration
// order. The returned slice is freshly allocated; descriptors themselves are
// immutable after registration, only ever replaced wholesale.
func (r *Registry) Descriptors() []mcp.Tool {
	descriptors := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		descriptors = append(descriptors, r.entries[name].Tool)
	}
	return descriptors
}

// Len reports the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// freeze marks the end of the registration phase. Any later Register call fails.
func (r *Registry) freeze() { r.frozen = true }
