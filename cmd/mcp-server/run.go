// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"github.com/Theycallmeholla/template-mcp/src/cli"
	mcpserver "github.com/Theycallmeholla/template-mcp/src/mcp-server"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = mcpserver.GetVersion()
	}
}

func main() {
	cli.Execute(version)
}
