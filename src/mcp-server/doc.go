// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] tool-serving core and its transports.
// It implements the Model Context Protocol ([MCP]) server framework: a frozen
// tool registry, schema-driven argument validation, a dispatch state machine
// that always produces a well-formed response envelope, and a fixed error
// taxonomy (unknown_tool, invalid_arguments, execution_failed, internal_error).
// The package uses a builder pattern for server construction and ships stdio,
// in-memory, and HTTP transports over the same core.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
