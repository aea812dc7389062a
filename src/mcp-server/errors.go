// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies one of the fixed protocol error codes a caller can
// receive. The set is closed: every failure inside the dispatch core maps to
// exactly one of these values.
type ErrorCode string

const (
	// CodeUnknownTool is returned when the requested tool name is not registered.
	CodeUnknownTool ErrorCode = "unknown_tool"
	// CodeInvalidArguments is returned when the argument bag violates the tool's input schema.
	CodeInvalidArguments ErrorCode = "invalid_arguments"
	// CodeExecutionFailed is returned when the tool behavior itself failed.
	CodeExecutionFailed ErrorCode = "execution_failed"
	// CodeInternalError is returned for anything uncategorized, including
	// defensive catches around the dispatch machinery itself.
	CodeInternalError ErrorCode = "internal_error"
)

// UnknownToolError reports a lookup for a tool name that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// DuplicateNameError reports an attempt to register a tool under a name
// that is already taken. The registry's prior entry is left untouched.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("tool %q is already registered", e.Name)
}

// Violation describes a single constraint broken by an argument bag,
// such as a missing required field or a type mismatch.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	return v.Field + ": " + v.Reason
}

// InvalidArgumentsError reports that an argument bag was rejected by schema
// validation. Violations carries every constraint that was broken, not just
// the first, so a caller sees the complete problem in one round trip.
type InvalidArgumentsError struct {
	Tool       string
	Violations []Violation
}

func (e *InvalidArgumentsError) Error() string {
	reasons := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		reasons[i] = v.String()
	}
	return fmt.Sprintf("invalid arguments for %q: %s", e.Tool, strings.Join(reasons, "; "))
}

// ExecutionError reports that a registered tool behavior failed while running.
// The underlying cause is preserved for errors.Is/As and for the response message.
type ExecutionError struct {
	Tool string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool %q failed: %v", e.Tool, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ExecutionError) Unwrap() error { return e.Err }

// Translate maps any failure produced during dispatch to its protocol error
// code plus a human-readable message. The mapping is pure and deterministic:
// the same failure kind always yields the same code. Uncategorized failures
// map to CodeInternalError with the original message preserved, never
// swallowed silently.
func Translate(err error) (ErrorCode, string) {
	if err == nil {
		return CodeInternalError, "unknown failure"
	}

	var unknownTool *UnknownToolError
	var invalidArgs *InvalidArgumentsError
	var execErr *ExecutionError

	switch {
	case errors.As(err, &unknownTool):
		return CodeUnknownTool, unknownTool.Error()
	case errors.As(err, &invalidArgs):
		return CodeInvalidArguments, invalidArgs.Error()
	case errors.As(err, &execErr):
		return CodeExecutionFailed, execErr.Error()
	default:
		return CodeInternalError, err.Error()
	}
}

// rpcErrorCode maps a protocol error code to its JSON-RPC 2.0 wire code.
// Execution failures are not mapped here: per MCP convention they travel as
// tool results with isError set, not as JSON-RPC errors.
func rpcErrorCode(code ErrorCode) int {
	switch code {
	case CodeUnknownTool, CodeInvalidArguments:
		return -32602 // invalid params
	default:
		return -32603 // internal error
	}
}
