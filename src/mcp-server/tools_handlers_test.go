// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Arguments = args
	return request
}

func toolResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", result.Content[0])
	}
	return tc.Text
}

func TestHandleEcho(t *testing.T) {
	result, err := handleEcho(context.Background(), callRequest(map[string]any{"message": "hello"}))
	if err != nil {
		t.Fatalf("handleEcho failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", toolResultText(t, result))
	}
	if got := toolResultText(t, result); got != "hello" {
		t.Errorf("echo = %q, want %q", got, "hello")
	}
}

func TestHandleEchoUppercase(t *testing.T) {
	result, err := handleEcho(context.Background(), callRequest(map[string]any{
		"message":   "hello",
		"uppercase": true,
	}))
	if err != nil {
		t.Fatalf("handleEcho failed: %v", err)
	}
	if got := toolResultText(t, result); got != "HELLO" {
		t.Errorf("echo = %q, want %q", got, "HELLO")
	}
}

func TestHandleEchoMissingMessage(t *testing.T) {
	result, err := handleEcho(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handleEcho failed: %v", err)
	}
	if !result.IsError {
		t.Error("missing message should produce an error result")
	}
}

func TestHandleGetTimestamp(t *testing.T) {
	t.Run("RFC3339", func(t *testing.T) {
		result, err := handleGetTimestamp(context.Background(), callRequest(map[string]any{}))
		if err != nil {
			t.Fatalf("handleGetTimestamp failed: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected error result: %s", toolResultText(t, result))
		}
		if _, err := time.Parse(time.RFC3339, toolResultText(t, result)); err != nil {
			t.Errorf("output is not RFC3339: %v", err)
		}
	})

	t.Run("Unix", func(t *testing.T) {
		result, err := handleGetTimestamp(context.Background(), callRequest(map[string]any{"format": "unix"}))
		if err != nil {
			t.Fatalf("handleGetTimestamp failed: %v", err)
		}
		seconds, err := strconv.ParseInt(toolResultText(t, result), 10, 64)
		if err != nil {
			t.Fatalf("output is not an integer: %v", err)
		}
		if seconds <= 0 {
			t.Errorf("unix timestamp = %d, want positive", seconds)
		}
	})

	t.Run("RFC1123", func(t *testing.T) {
		result, err := handleGetTimestamp(context.Background(), callRequest(map[string]any{"format": "rfc1123"}))
		if err != nil {
			t.Fatalf("handleGetTimestamp failed: %v", err)
		}
		if _, err := time.Parse(time.RFC1123, toolResultText(t, result)); err != nil {
			t.Errorf("output is not RFC1123: %v", err)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		result, err := handleGetTimestamp(context.Background(), callRequest(map[string]any{"format": "stardate"}))
		if err != nil {
			t.Fatalf("handleGetTimestamp failed: %v", err)
		}
		if !result.IsError {
			t.Error("unknown format should produce an error result")
		}
	})
}

func TestHandleRandomID(t *testing.T) {
	t.Run("DefaultLength", func(t *testing.T) {
		result, err := handleRandomID(context.Background(), callRequest(map[string]any{}))
		if err != nil {
			t.Fatalf("handleRandomID failed: %v", err)
		}
		id := toolResultText(t, result)
		if len(id) != 32 {
			t.Errorf("id length = %d, want 32 hex chars for 16 bytes", len(id))
		}
		for _, c := range id {
			if !strings.ContainsRune("0123456789abcdef", c) {
				t.Fatalf("id contains non-hex character %q", c)
			}
		}
	})

	t.Run("ExplicitLength", func(t *testing.T) {
		result, err := handleRandomID(context.Background(), callRequest(map[string]any{"length": float64(4)}))
		if err != nil {
			t.Fatalf("handleRandomID failed: %v", err)
		}
		if id := toolResultText(t, result); len(id) != 8 {
			t.Errorf("id length = %d, want 8", len(id))
		}
	})

	t.Run("ZeroLength", func(t *testing.T) {
		result, err := handleRandomID(context.Background(), callRequest(map[string]any{"length": float64(0)}))
		if err != nil {
			t.Fatalf("handleRandomID failed: %v", err)
		}
		if !result.IsError {
			t.Error("zero length should produce an error result")
		}
	})

	t.Run("OversizedLengthClamped", func(t *testing.T) {
		result, err := handleRandomID(context.Background(), callRequest(map[string]any{"length": float64(100)}))
		if err != nil {
			t.Fatalf("handleRandomID failed: %v", err)
		}
		if id := toolResultText(t, result); len(id) != 128 {
			t.Errorf("id length = %d, want clamped 128", len(id))
		}
	})
}

func TestHandleAPIRequest(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`{"status":"fine","q":"` + r.URL.Query().Get("q") + `"}`))
		default:
			http.Error(w, "not here", http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	config := defaultConfig()
	config.API.BaseURL = upstream.URL
	api := NewAPIClient(config, "test")

	t.Run("Success", func(t *testing.T) {
		result, err := handleAPIRequest(context.Background(), callRequest(map[string]any{
			"path":  "/ok",
			"query": "q=value",
		}), config, api)
		if err != nil {
			t.Fatalf("handleAPIRequest failed: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected error result: %s", toolResultText(t, result))
		}
		body := toolResultText(t, result)
		if !strings.Contains(body, `"q":"value"`) {
			t.Errorf("query was not forwarded: %s", body)
		}
	})

	t.Run("UpstreamError", func(t *testing.T) {
		result, err := handleAPIRequest(context.Background(), callRequest(map[string]any{
			"path": "/missing",
		}), config, api)
		if err != nil {
			t.Fatalf("handleAPIRequest failed: %v", err)
		}
		if !result.IsError {
			t.Fatal("non-2xx upstream should produce an error result")
		}
		if !strings.Contains(toolResultText(t, result), "404") {
			t.Errorf("error should carry the status: %s", toolResultText(t, result))
		}
	})

	t.Run("BadQuery", func(t *testing.T) {
		result, err := handleAPIRequest(context.Background(), callRequest(map[string]any{
			"path":  "/ok",
			"query": "a=%zz",
		}), config, api)
		if err != nil {
			t.Fatalf("handleAPIRequest failed: %v", err)
		}
		if !result.IsError {
			t.Error("malformed query should produce an error result")
		}
	})

	t.Run("NoClient", func(t *testing.T) {
		result, err := handleAPIRequest(context.Background(), callRequest(map[string]any{
			"path": "/ok",
		}), config, nil)
		if err != nil {
			t.Fatalf("handleAPIRequest failed: %v", err)
		}
		if !result.IsError {
			t.Error("nil client should produce an error result")
		}
	})
}

func TestHandleGetResourceUsage(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		result, err := handleGetResourceUsage(context.Background(), callRequest(map[string]any{}))
		if err != nil {
			t.Fatalf("handleGetResourceUsage failed: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected error result: %s", toolResultText(t, result))
		}
		var data ResourceUsageData
		if err := json.Unmarshal([]byte(toolResultText(t, result)), &data); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if data.Timestamp == "" {
			t.Error("timestamp should be set")
		}
		if data.DetailedMemory != nil {
			t.Error("detailed section should be absent by default")
		}
	})

	t.Run("Detailed", func(t *testing.T) {
		result, err := handleGetResourceUsage(context.Background(), callRequest(map[string]any{"detailed": true}))
		if err != nil {
			t.Fatalf("handleGetResourceUsage failed: %v", err)
		}
		var data ResourceUsageData
		if err := json.Unmarshal([]byte(toolResultText(t, result)), &data); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if data.DetailedMemory == nil {
			t.Error("detailed section should be present")
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		result, err := handleGetResourceUsage(context.Background(), callRequest(map[string]any{"format": "markdown"}))
		if err != nil {
			t.Fatalf("handleGetResourceUsage failed: %v", err)
		}
		output := toolResultText(t, result)
		for _, section := range []string{"# Resource Usage Report", "## System Information", "## Memory Usage", "## Garbage Collection"} {
			if !strings.Contains(output, section) {
				t.Errorf("markdown output missing %q", section)
			}
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		result, err := handleGetResourceUsage(context.Background(), callRequest(map[string]any{"format": "xml"}))
		if err != nil {
			t.Fatalf("handleGetResourceUsage failed: %v", err)
		}
		if !result.IsError {
			t.Error("unknown format should produce an error result")
		}
	})
}
