// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Theycallmeholla/template-mcp/src/logger"
	"github.com/Theycallmeholla/template-mcp/src/version"
	"github.com/mark3labs/mcp-go/mcp"
)

var appVersion = version.Version // default version

// GetVersion returns the current server version. The value defaults to the
// version package but can be overridden when calling Run.
func GetVersion() string {
	return appVersion
}

// Server is the tool-serving core every transport talks to. It owns the
// frozen registry, the dispatcher, and the resource set; it has no mutable
// per-request state, so all methods are safe for concurrent use.
type Server struct {
	name          string
	version       string
	instructions  string
	registry      *Registry
	dispatcher    *Dispatcher
	resources     map[string]ServerResource
	resourceOrder []string
	log           logger.Logger
}

// Name returns the advertised server name.
func (s *Server) Name() string { return s.name }

// Version returns the server version string.
func (s *Server) Version() string { return s.version }

// Instructions returns the instruction text sent during initialization.
func (s *Server) Instructions() string { return s.instructions }

// ListCapabilities returns the descriptors of every registered tool in
// registration order. Calling it twice with no intervening registration
// change returns identical results; it is pure and side-effect-free.
func (s *Server) ListCapabilities() []mcp.Tool {
	return s.registry.Descriptors()
}

// Invoke dispatches one tool invocation and always returns a well-formed
// response envelope, never an error.
func (s *Server) Invoke(ctx context.Context, name string, arguments map[string]any) InvocationResponse {
	return s.dispatcher.Dispatch(ctx, InvocationRequest{Name: name, Arguments: arguments})
}

// ListResources returns the descriptors of every registered resource.
func (s *Server) ListResources() []mcp.Resource {
	resources := make([]mcp.Resource, 0, len(s.resourceOrder))
	for _, uri := range s.resourceOrder {
		resources = append(resources, s.resources[uri].Resource)
	}
	return resources
}

// ReadResource reads the resource registered under uri.
func (s *Server) ReadResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	r, ok := s.resources[uri]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q", uri)
	}
	request := mcp.ReadResourceRequest{}
	request.Params.URI = uri
	return r.Handler(ctx, request)
}

// addResource registers a resource during Build. Duplicate URIs are rejected.
func (s *Server) addResource(r ServerResource) error {
	uri := r.Resource.URI
	if _, exists := s.resources[uri]; exists {
		return fmt.Errorf("resource %q is already registered", uri)
	}
	s.resources[uri] = r
	s.resourceOrder = append(s.resourceOrder, uri)
	return nil
}

// Run starts the template MCP server on stdio with the default tool set.
//
// Lifecycle:
//  1. Load configuration from MCP_TEMPLATE_CONFIG_FILE (or defaults)
//  2. Construct the single owned API client for outbound tool calls
//  3. Render server instructions from the registered tool set
//  4. Build the server core via ServerBuilder and freeze the registry
//  5. Serve stdio until EOF or SIGINT/SIGTERM
//
// Responds to SIGINT and SIGTERM with cooperative cancellation: in-flight
// tool executions see their context cancelled, and the serve loop drains
// before returning.
func Run(ver string) error {
	appVersion = ver

	config, err := loadConfig(os.Getenv("MCP_TEMPLATE_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Single owned instance, passed explicitly to tool behaviors.
	api := NewAPIClient(config, ver)

	tools, toolsWithConfig := createTools(api)

	instructions, err := loadInstructions(tools, toolsWithConfig)
	if err != nil {
		return fmt.Errorf("failed to load instructions: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	srv, err := NewServerBuilder().
		WithConfig(config).
		WithVersion(ver).
		WithAPIClient(api).
		WithTools(tools...).
		WithToolsWithConfig(toolsWithConfig...).
		WithInstructions(instructions).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	stdioServer := NewStdioServer(srv)

	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}

// RunHTTP starts the template MCP server over HTTP with the default tool set.
// An empty token disables authentication on the /mcp routes. Shutdown follows
// the same SIGINT/SIGTERM cooperative cancellation as Run.
func RunHTTP(ver, addr, token string) error {
	appVersion = ver

	config, err := loadConfig(os.Getenv("MCP_TEMPLATE_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	api := NewAPIClient(config, ver)
	tools, toolsWithConfig := createTools(api)

	instructions, err := loadInstructions(tools, toolsWithConfig)
	if err != nil {
		return fmt.Errorf("failed to load instructions: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// stdout is not a protocol stream in HTTP mode, so log to stderr.
	srv, err := NewServerBuilder().
		WithConfig(config).
		WithVersion(ver).
		WithAPIClient(api).
		WithTools(tools...).
		WithToolsWithConfig(toolsWithConfig...).
		WithInstructions(instructions).
		WithLogger(logger.NewMCPLogger(os.Stderr, false)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	return NewHTTPServer(srv, token).ListenAndServe(ctx, addr)
}
