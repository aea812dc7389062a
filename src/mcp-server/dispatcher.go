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

// InvocationRequest is one inbound tool invocation: the tool name plus the
// raw argument bag as received from the wire. It is constructed per call,
// consumed by the Dispatcher, and discarded once the response is produced.
type InvocationRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ResponseError is the error half of the response envelope.
type ResponseError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// InvocationResponse is the response envelope: either one or more opaque
// content segments on success, or a (code, message) error payload.
type InvocationResponse struct {
	Content []mcp.Content  `json:"content,omitempty"`
	Err     *ResponseError `json:"error,omitempty"`
}

// IsError reports whether the response carries the error payload.
func (r InvocationResponse) IsError() bool { return r.Err != nil }

// Dispatcher is the single entry point turning one InvocationRequest into
// exactly one InvocationResponse.
//
// Per request the state machine is Resolve -> Validate -> Execute -> Respond;
// any failure transitions to a terminal error state that still produces a
// well-formed response. The Dispatcher never lets a failure cross the
// protocol boundary unshaped, and it holds no mutable state of its own, so
// concurrent Dispatch calls proceed independently.
type Dispatcher struct {
	registry *Registry
	log      logger.Logger
}

// NewDispatcher creates a dispatcher over a frozen registry. A nil log
// suppresses diagnostics.
func NewDispatcher(registry *Registry, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewMCPLogger(nil, true)
	}
	return &Dispatcher{registry: registry, log: log}
}

// Dispatch runs the per-request state machine.
//
// The Execute step may suspend while the tool behavior performs its own work
// (including I/O); cancellation is cooperative through ctx, and the
// Dispatcher imposes no timeout of its own. Panics escaping the machinery
// surface as internal_error.
func (d *Dispatcher) Dispatch(ctx context.Context, req InvocationRequest) (resp InvocationResponse) {
	defer func() {
		if r := recover(); r != nil {
			code, msg := Translate(fmt.Errorf("dispatch panic: %v", r))
			d.log.Errorf("dispatch %q: %s", req.Name, msg)
			resp = InvocationResponse{Err: &ResponseError{Code: code, Message: msg}}
		}
	}()

	// Resolve
	def, err := d.registry.Resolve(req.Name)
	if err != nil {
		return d.fail(req.Name, err)
	}

	// Validate
	outcome := validateArguments(def.Tool.InputSchema, req.Arguments)
	if !outcome.Accepted() {
		return d.fail(req.Name, &InvalidArgumentsError{Tool: req.Name, Violations: outcome.Violations})
	}

	// Execute
	result, err := d.execute(ctx, def, outcome.Args)
	if err != nil {
		return d.fail(req.Name, &ExecutionError{Tool: req.Name, Err: err})
	}
	if result == nil {
		return d.fail(req.Name, fmt.Errorf("tool %q returned no result", req.Name))
	}
	if result.IsError {
		// Handlers report their own failures as error-shaped results.
		return d.fail(req.Name, &ExecutionError{Tool: req.Name, Err: fmt.Errorf("%s", resultText(result))})
	}

	// Respond
	return InvocationResponse{Content: result.Content}
}

// execute invokes the resolved behavior with the validated argument bag.
// A panicking behavior is treated the same as one returning an error.
func (d *Dispatcher) execute(ctx context.Context, def ToolDefinition, args map[string]any) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	callReq := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      def.Tool.Name,
			Arguments: args,
		},
	}
	return def.Handler(ctx, callReq)
}

// fail terminates the state machine in the error state: the failure is
// translated to its protocol code and shaped into the response envelope.
func (d *Dispatcher) fail(tool string, err error) InvocationResponse {
	code, msg := Translate(err)
	d.log.Errorf("dispatch %q: [%s] %s", tool, code, msg)
	return InvocationResponse{Err: &ResponseError{Code: code, Message: msg}}
}

// resultText flattens a tool result's text segments into one message.
func resultText(result *mcp.CallToolResult) string {
	text := ""
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			if text != "" {
				text += "\n"
			}
			text += tc.Text
		}
	}
	if text == "" {
		text = "tool reported an error without detail"
	}
	return text
}
