// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// createTools creates the template tool definitions and their handlers.
// It organizes tools into two categories: those that don't require
// configuration and those that need access to the server configuration
// (e.g., for timeouts on outbound calls).
//
// The function defines the following tools:
//   - echo: Echoes a message back, optionally uppercased
//   - get_timestamp: Returns the current time in a chosen format
//   - random_id: Generates a random hexadecimal identifier
//   - get_resource_usage: Provides server resource usage statistics
//   - api_request: Performs a GET against the configured upstream API
//
// The api_request handler closes over the single owned API client built at
// startup; tools never reach for ambient client state.
func createTools(api *APIClient) ([]ToolDefinition, []ToolDefinitionWithConfig) {
	// Tools that don't need config
	tools := []ToolDefinition{
		{
			Tool: mcp.NewTool("echo",
				mcp.WithDescription("Echo a message back to the caller"),
				mcp.WithString("message",
					mcp.Required(),
					mcp.Description("Message to echo"),
				),
				mcp.WithBoolean("uppercase",
					mcp.Description("Return the message uppercased (default: false)"),
					mcp.DefaultBool(false),
				),
			),
			Handler: handleEcho,
			Role:    "echoer",
		},
		{
			Tool: mcp.NewTool("get_timestamp",
				mcp.WithDescription("Get the current timestamp in a chosen format"),
				mcp.WithString("format",
					mcp.Description("Output format: 'rfc3339', 'unix', or 'rfc1123' (default: rfc3339)"),
					mcp.DefaultString("rfc3339"),
				),
				mcp.WithBoolean("utc",
					mcp.Description("Report the time in UTC (default: true)"),
					mcp.DefaultBool(true),
				),
			),
			Handler: handleGetTimestamp,
			Role:    "clock",
		},
		{
			Tool: mcp.NewTool("random_id",
				mcp.WithDescription("Generate a cryptographically random hexadecimal identifier"),
				mcp.WithNumber("length",
					mcp.Description("Identifier length in bytes before hex encoding (default: 16, max: 64)"),
					mcp.DefaultNumber(16),
				),
			),
			Handler: handleRandomID,
			Role:    "idGenerator",
		},
		{
			Tool: mcp.NewTool("get_resource_usage",
				mcp.WithDescription("Get current resource usage statistics including memory, GC, and CPU information"),
				mcp.WithBoolean("detailed",
					mcp.Description("Include detailed memory breakdown (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'json' or 'markdown' (default: 'json')"),
					mcp.DefaultString("json"),
				),
			),
			Handler: handleGetResourceUsage,
			Role:    "resourceMonitor",
		},
	}

	// Tools that need config
	toolsWithConfig := []ToolDefinitionWithConfig{
		{
			Tool: mcp.NewTool("api_request",
				mcp.WithDescription("Perform a GET request against the configured upstream API"),
				mcp.WithString("path",
					mcp.Required(),
					mcp.Description("Request path resolved under the configured base URL"),
				),
				mcp.WithString("query",
					mcp.Description("URL-encoded query string appended to the request (default: none)"),
					mcp.DefaultString(""),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error) {
				return handleAPIRequest(ctx, request, config, api)
			},
			Role: "apiCaller",
		},
	}

	return tools, toolsWithConfig
}
