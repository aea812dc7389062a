// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleEcho echoes the caller's message back, optionally uppercased.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing the message and options
//
// Returns:
//   - The tool execution result containing the echoed message
func handleEcho(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("message parameter required: %v", err)), nil
	}

	if request.GetBool("uppercase", false) {
		message = strings.ToUpper(message)
	}

	return mcp.NewToolResultText(message), nil
}

// handleGetTimestamp returns the current time in the requested format.
// Supported formats are 'rfc3339', 'unix' (seconds since epoch), and
// 'rfc1123'; anything else is rejected rather than guessed at.
func handleGetTimestamp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := request.GetString("format", "rfc3339")
	now := time.Now()
	if request.GetBool("utc", true) {
		now = now.UTC()
	}

	var output string
	switch format {
	case "rfc3339":
		output = now.Format(time.RFC3339)
	case "unix":
		output = fmt.Sprintf("%d", now.Unix())
	case "rfc1123":
		output = now.Format(time.RFC1123)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use 'rfc3339', 'unix', or 'rfc1123'", format)), nil
	}

	return mcp.NewToolResultText(output), nil
}

// handleRandomID generates a random hexadecimal identifier. The length
// parameter counts random bytes before hex encoding and is clamped to 64.
func handleRandomID(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	length := request.GetInt("length", 16)
	if length < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("length must be positive, got %d", length)), nil
	}
	if length > 64 {
		length = 64
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to gather randomness: %v", err)), nil
	}

	return mcp.NewToolResultText(hex.EncodeToString(buf)), nil
}

// handleAPIRequest performs a GET against the configured upstream API using
// the single owned API client. The per-call deadline comes from the
// configured default timeout; cancellation from the caller still applies.
//
// Parameters:
//   - ctx: Context for cancellation
//   - request: MCP tool call request containing path and query
//   - config: Server configuration supplying the timeout policy
//   - api: The owned outbound client constructed at startup
func handleAPIRequest(ctx context.Context, request mcp.CallToolRequest, config *Config, api *APIClient) (*mcp.CallToolResult, error) {
	if api == nil {
		return mcp.NewToolResultError("no API client configured"), nil
	}

	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("path parameter required: %v", err)), nil
	}

	rawQuery := request.GetString("query", "")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid query string: %v", err)), nil
	}

	callCtx := ctx
	if config.Defaults.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, time.Duration(config.Defaults.Timeout)*time.Second)
		defer cancel()
	}

	body, err := api.Get(callCtx, path, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
	}

	return mcp.NewToolResultText(body), nil
}
