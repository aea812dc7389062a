// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"

	"github.com/Theycallmeholla/template-mcp/src/logger"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolHandler is the signature every tool behavior implements: given a
// validated argument bag (carried inside the call request), produce a result
// or fail. The context covers cancellation; a behavior that does not observe
// it simply runs to completion and its result is discarded by the caller.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithConfig is a tool behavior that additionally receives the
// server configuration, for tools that need credentials, base addresses, or
// timeout policy from config.
type ToolHandlerWithConfig func(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error)

// ResourceHandler produces the contents of a static or dynamic resource.
type ResourceHandler = func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)

// ToolDefinition pairs a tool descriptor with the behavior implementing it.
// Role is an internal label used when rendering server instructions.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
	Role    string
}

// ToolDefinitionWithConfig pairs a tool descriptor with a behavior that
// requires configuration access. The builder wraps the handler so the
// registry stores a uniform ToolDefinition.
type ToolDefinitionWithConfig struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithConfig
	Role    string
}

// ServerResource pairs a resource descriptor with its read handler.
type ServerResource struct {
	Resource mcp.Resource
	Handler  ResourceHandler
}

// ServerDependencies holds everything needed to construct the server core.
// It is populated through ServerBuilder and not meant to be used directly.
type ServerDependencies struct {
	Config          *Config
	Version         string
	Logger          logger.Logger
	APIClient       *APIClient
	Tools           []ToolDefinition
	ToolsWithConfig []ToolDefinitionWithConfig
	Resources       []ServerResource
	Instructions    string
}

// ServerBuilder constructs the server core with a fluent interface.
//
// Example:
//
//	srv, err := NewServerBuilder().
//	    WithConfig(config).
//	    WithVersion("1.0.0").
//	    WithDefaultTools(api).
//	    Build()
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a builder with empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the server configuration.
func (b *ServerBuilder) WithConfig(config *Config) *ServerBuilder {
	b.deps.Config = config
	return b
}

// WithVersion sets the server version string used for identification and
// User-Agent headers.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithLogger sets the logger used by the dispatch core. Defaults to a silent
// MCP logger so nothing leaks onto a stdio protocol stream.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.deps.Logger = log
	return b
}

// WithAPIClient sets the single owned outbound API client passed to tool
// behaviors that perform network calls. Constructed once at startup; never
// ambient state.
func (b *ServerBuilder) WithAPIClient(api *APIClient) *ServerBuilder {
	b.deps.APIClient = api
	return b
}

// WithTools adds tool definitions that do not need configuration access.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithToolsWithConfig adds tool definitions whose handlers receive *Config.
func (b *ServerBuilder) WithToolsWithConfig(tools ...ToolDefinitionWithConfig) *ServerBuilder {
	b.deps.ToolsWithConfig = append(b.deps.ToolsWithConfig, tools...)
	return b
}

// WithResources adds resources on top of the built-in info:// set.
func (b *ServerBuilder) WithResources(resources ...ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithInstructions sets the instruction text returned to clients during the
// initialize handshake.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// WithDefaultTools adds the template tool set using the given API client for
// the outbound-call tool.
func (b *ServerBuilder) WithDefaultTools(api *APIClient) *ServerBuilder {
	tools, toolsWithConfig := createTools(api)
	b.deps.Tools = append(b.deps.Tools, tools...)
	b.deps.ToolsWithConfig = append(b.deps.ToolsWithConfig, toolsWithConfig...)
	return b
}

// Build registers every tool, freezes the registry, and returns the server
// core ready to be handed to a transport. Registration order is preserved:
// plain tools first, then config-bound tools, each in the order added.
func (b *ServerBuilder) Build() (*Server, error) {
	if b.deps.Config == nil {
		b.deps.Config = defaultConfig()
	}
	if b.deps.Logger == nil {
		b.deps.Logger = logger.NewMCPLogger(nil, true)
	}

	registry := NewRegistry()
	for _, tool := range b.deps.Tools {
		if err := registry.Register(tool); err != nil {
			return nil, fmt.Errorf("failed to register tool: %w", err)
		}
	}
	for _, tool := range b.deps.ToolsWithConfig {
		handler := tool.Handler
		config := b.deps.Config
		wrapped := ToolDefinition{
			Tool: tool.Tool,
			Role: tool.Role,
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handler(ctx, request, config)
			},
		}
		if err := registry.Register(wrapped); err != nil {
			return nil, fmt.Errorf("failed to register tool: %w", err)
		}
	}
	registry.freeze()

	srv := &Server{
		name:         b.deps.Config.Server.Name,
		version:      b.deps.Version,
		instructions: b.deps.Instructions,
		registry:     registry,
		dispatcher:   NewDispatcher(registry, b.deps.Logger),
		resources:    make(map[string]ServerResource),
		log:          b.deps.Logger,
	}

	for _, r := range append(createDefaultResources(srv), b.deps.Resources...) {
		if err := srv.addResource(r); err != nil {
			return nil, err
		}
	}

	return srv, nil
}
