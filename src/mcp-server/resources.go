// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// createDefaultResources creates the built-in informational resources every
// server instance exposes:
//   - info://version: server name and version
//   - info://tools: the registered tool catalogue as JSON
//
// The handlers close over the server core, so they always reflect the frozen
// registry rather than a snapshot taken at build time.
func createDefaultResources(srv *Server) []ServerResource {
	return []ServerResource{
		{
			Resource: mcp.NewResource(
				"info://version",
				"Server Version",
				mcp.WithResourceDescription("Server name and version information"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return handleVersionResource(srv, request)
			},
		},
		{
			Resource: mcp.NewResource(
				"info://tools",
				"Tool Catalogue",
				mcp.WithResourceDescription("Descriptors of every registered tool, in registration order"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return handleToolsResource(srv, request)
			},
		},
	}
}

// handleVersionResource reports the server identity as JSON.
func handleVersionResource(srv *Server, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload := map[string]string{
		"name":    srv.Name(),
		"version": srv.Version(),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal version info: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// handleToolsResource reports the registered tool descriptors as JSON.
func handleToolsResource(srv *Server, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(srv.ListCapabilities(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool catalogue: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
