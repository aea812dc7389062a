// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded filesystem access for MCP server template files.
// It offers a reusable abstraction for accessing embedded markdown templates used
// throughout the MCP server, currently the server instructions rendered during the
// initialize handshake.
//
// The package provides thread-safe access to embedded files through the [EmbedFS] interface,
// with [MagicEmbed] serving as the default implementation for convenient template access.
// This keeps template file management centralized while the rest of the server only
// depends on a small read-only interface.
//
// Example usage:
//
//	import "github.com/Theycallmeholla/template-mcp/src/mcp-server/templates"
//
//	// Read the server instructions template
//	content, err := templates.MagicEmbed.ReadFile("instructions.md")
//	if err != nil {
//		return fmt.Errorf("failed to read instructions: %w", err)
//	}
//
//	// List all available template files
//	entries, err := templates.MagicEmbed.ReadDir(".")
//	if err != nil {
//		return fmt.Errorf("failed to list templates: %w", err)
//	}
package templates
