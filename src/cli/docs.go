// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the template MCP server.
// It implements a Cobra-based CLI that serves the Model Context Protocol over
// stdio by default, can serve HTTP instead, and can print the registered tool
// catalogue as a table for quick inspection.
package cli
