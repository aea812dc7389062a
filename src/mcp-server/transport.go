// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Theycallmeholla/template-mcp/src/internal/helper/gc"
	jsonrpcInternal "github.com/Theycallmeholla/template-mcp/src/internal/helper/jsonrpc"
	"github.com/Theycallmeholla/template-mcp/src/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	mcptransport "github.com/modelcontextprotocol/go-sdk/mcp"
)

// jsonRPCError represents a JSON-RPC 2.0 error object
type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// jsonRPCResponse represents a JSON-RPC 2.0 response object
type jsonRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      any           `json:"id"`
	Result  any           `json:"result,omitempty"`
	Error   *jsonRPCError `json:"error,omitempty"`
}

// handleMessage processes one raw JSON-RPC message against the server core
// and returns the response to send, or nil when the message is a notification
// that must not be answered.
//
// Request keys are normalized so both lowercase and capitalized forms are
// accepted; malformed JSON yields a parse error response with a null id.
func handleMessage(ctx context.Context, srv *Server, data []byte) *jsonRPCResponse {
	var req map[string]any
	if err := json.Unmarshal(data, &req); err != nil {
		return &jsonRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      nil,
			Error: &jsonRPCError{
				Code:    -32700,
				Message: "Parse error",
			},
		}
	}

	normalized := jsonrpcInternal.Map(req)
	id := normalized["id"]

	method, ok := normalized["method"].(string)
	if !ok {
		if id == nil {
			return nil
		}
		return &jsonRPCResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      id,
			Error: &jsonRPCError{
				Code:    -32600,
				Message: fmt.Sprintf("invalid method: expected string, got %T", normalized["method"]),
			},
		}
	}

	// Notifications carry no id and are never answered.
	if strings.HasPrefix(method, "notifications/") {
		return nil
	}

	result, rpcErr := dispatchMethod(ctx, srv, method, normalized)

	// JSON-RPC 2.0: Server MUST NOT reply to a Notification (request without ID)
	if id == nil {
		return nil
	}

	resp := &jsonRPCResponse{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      id,
	}
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	return resp
}

// dispatchMethod routes one method to the server core.
//
// tools/call failures split two ways: execution failures travel inside the
// tool result with isError set, so a broken tool never tears down the
// session; resolution and validation failures surface as JSON-RPC errors.
func dispatchMethod(ctx context.Context, srv *Server, method string, req map[string]any) (any, *jsonRPCError) {
	switch method {
	case string(mcp.MethodInitialize):
		return map[string]any{
			"protocolVersion": mcp.LATEST_PROTOCOL_VERSION,
			"capabilities": map[string]any{
				"tools":     map[string]any{"listChanged": false},
				"resources": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    srv.Name(),
				"version": srv.Version(),
			},
			"instructions": srv.Instructions(),
		}, nil

	case string(mcp.MethodPing):
		return map[string]any{}, nil

	case string(mcp.MethodToolsList):
		return map[string]any{"tools": srv.ListCapabilities()}, nil

	case string(mcp.MethodToolsCall):
		params, err := getParams(req, method)
		if err != nil {
			return nil, &jsonRPCError{Code: -32602, Message: err.Error()}
		}
		name, err := getStringParam(params, method, "name")
		if err != nil {
			return nil, &jsonRPCError{Code: -32602, Message: err.Error()}
		}
		args, err := getOptionalMapParam(params, method, "arguments")
		if err != nil {
			return nil, &jsonRPCError{Code: -32602, Message: err.Error()}
		}

		resp := srv.Invoke(ctx, name, args)
		if resp.IsError() {
			if resp.Err.Code == CodeExecutionFailed {
				return map[string]any{
					"content": []mcp.Content{mcp.TextContent{Type: "text", Text: resp.Err.Message}},
					"isError": true,
				}, nil
			}
			return nil, &jsonRPCError{Code: rpcErrorCode(resp.Err.Code), Message: resp.Err.Message}
		}
		return map[string]any{
			"content": resp.Content,
			"isError": false,
		}, nil

	case string(mcp.MethodResourcesList):
		return map[string]any{"resources": srv.ListResources()}, nil

	case string(mcp.MethodResourcesRead):
		params, err := getParams(req, method)
		if err != nil {
			return nil, &jsonRPCError{Code: -32602, Message: err.Error()}
		}
		uri, err := getStringParam(params, method, "uri")
		if err != nil {
			return nil, &jsonRPCError{Code: -32602, Message: err.Error()}
		}
		contents, err := srv.ReadResource(ctx, uri)
		if err != nil {
			return nil, &jsonRPCError{Code: -32602, Message: err.Error()}
		}
		return map[string]any{"contents": contents}, nil

	default:
		return nil, &jsonRPCError{Code: -32601, Message: fmt.Sprintf("method not found: %s", method)}
	}
}

// StdioServer serves the core over newline-delimited JSON-RPC on a reader and
// writer pair, normally stdin and stdout.
//
// Each request is handled in its own goroutine so a slow tool call never
// blocks the read loop; a semaphore caps concurrency and a mutex keeps
// response writes whole. Responses are therefore keyed by id, not by arrival
// order.
type StdioServer struct {
	srv     *Server
	log     logger.Logger
	sem     chan struct{} // Semaphore to limit concurrency
	writeMu sync.Mutex
	wg      sync.WaitGroup
}

// NewStdioServer creates a stdio transport over the server core.
func NewStdioServer(srv *Server) *StdioServer {
	return &StdioServer{
		srv: srv,
		log: srv.log,
		sem: make(chan struct{}, 100), // Limit to 100 concurrent requests
	}
}

// Listen reads newline-delimited JSON-RPC messages from in and writes
// responses to out until EOF or context cancellation. In-flight requests are
// drained before it returns.
func (s *StdioServer) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		// The scanner reuses its buffer between calls.
		data := make([]byte, len(line))
		copy(data, line)

		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()
		}

		s.wg.Add(1)
		go func(data []byte) {
			defer func() {
				<-s.sem
				s.wg.Done()
			}()
			if resp := handleMessage(ctx, s.srv, data); resp != nil {
				s.writeResponse(out, resp)
			}
		}(data)
	}

	s.wg.Wait()
	return scanner.Err()
}

// writeResponse marshals and writes one response line. The buffer pool keeps
// the hot path allocation-light; the mutex keeps concurrent writers from
// interleaving partial lines.
func (s *StdioServer) writeResponse(out io.Writer, resp *jsonRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Errorf("failed to marshal response: %v", err)
		return
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()
	buf.Write(data)
	buf.WriteByte('\n')

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := out.Write(buf.Bytes()); err != nil {
		s.log.Errorf("failed to write response: %v", err)
	}
}

// InMemoryTransport bridges the server core to SDK transport expectations
// without process or socket overhead. It speaks the same JSON-RPC byte
// protocol as the stdio transport over a pair of channels.
//
// It implements the [Official MCP SDK] Transport interface through Connect.
//
// [Official MCP SDK]: https://pkg.go.dev/github.com/modelcontextprotocol/go-sdk
type InMemoryTransport struct {
	srv        *Server
	started    bool
	mu         sync.Mutex
	recvCh     chan []byte // channel for receiving messages (ReadMessage)
	sendCh     chan []byte // channel for sending messages (WriteMessage)
	ctx        context.Context
	cancel     context.CancelFunc
	sem        chan struct{}  // Semaphore to limit concurrency
	shutdownWg sync.WaitGroup // WaitGroup for graceful shutdown
	processWg  sync.WaitGroup // WaitGroup for message processing loop
}

// NewInMemoryTransport creates a new in-memory transport. Connect a server
// core with ConnectServer before exchanging messages.
func NewInMemoryTransport(ctx context.Context) *InMemoryTransport {
	ctx, cancel := context.WithCancel(ctx)
	return &InMemoryTransport{
		recvCh: make(chan []byte, 1),
		sendCh: make(chan []byte, 1),
		ctx:    ctx,
		cancel: cancel,
		sem:    make(chan struct{}, 100), // Limit to 100 concurrent requests
	}
}

// ReadMessage returns the next server-to-client message. It blocks until a
// message is available or the transport context is cancelled.
func (t *InMemoryTransport) ReadMessage() ([]byte, error) {
	select {
	case msg := <-t.recvCh:
		return msg, nil
	case <-t.ctx.Done():
		return nil, io.EOF
	}
}

// WriteMessage submits one client-to-server JSON-RPC message.
func (t *InMemoryTransport) WriteMessage(data []byte) error {
	if err := t.ctx.Err(); err != nil {
		return err
	}
	select {
	case t.sendCh <- data:
		return nil
	case <-t.ctx.Done():
		return t.ctx.Err()
	}
}

// SendJSONRPCNotification sends a server-initiated JSON-RPC notification to
// the receive channel.
func (t *InMemoryTransport) SendJSONRPCNotification(method string, params any) {
	notification := map[string]any{
		"jsonrpc": mcp.JSONRPC_VERSION,
		"method":  method,
		"params":  params,
	}
	t.sendNotification(notification)
}

// Close cancels the transport and waits for in-flight handlers to drain.
func (t *InMemoryTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	// Wait for message processor to stop (no new tasks added)
	t.processWg.Wait()

	// Wait for active goroutines to finish
	t.shutdownWg.Wait()

	// Don't close channels here as they may still be used by goroutines
	// The context cancellation will cause goroutines to exit cleanly
	t.started = false
	return nil
}

// Connect returns a connection that wraps this transport for use with the
// official SDK's session machinery.
func (t *InMemoryTransport) Connect(ctx context.Context) (mcptransport.Connection, error) {
	return &transportConnection{transport: t}, nil
}

// ConnectServer attaches a server core to this transport and starts the
// message processing loop.
func (t *InMemoryTransport) ConnectServer(ctx context.Context, srv *Server) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return fmt.Errorf("transport already connected")
	}
	if srv == nil {
		return fmt.Errorf("nil server")
	}

	t.srv = srv
	t.processWg.Add(1)
	go t.processMessages()

	t.started = true
	return nil
}

// processMessages handles JSON-RPC messages submitted through WriteMessage.
// Each message is handled in a goroutine so long-running tool calls don't
// prevent other messages from being processed.
func (t *InMemoryTransport) processMessages() {
	defer t.processWg.Done()

	for {
		select {
		case <-t.ctx.Done():
			return
		case data := <-t.sendCh:
			select {
			case t.sem <- struct{}{}:
				t.shutdownWg.Add(1)
				go func(data []byte) {
					defer func() {
						<-t.sem // Release token
						t.shutdownWg.Done()
					}()
					if resp := handleMessage(t.ctx, t.srv, data); resp != nil {
						t.sendResponse(resp)
					}
				}(data)
			case <-t.ctx.Done():
				return
			}
		}
	}
}

// sendResponse sends a JSON-RPC response to the receive channel
func (t *InMemoryTransport) sendResponse(resp *jsonRPCResponse) {
	t.sendNotification(resp)
}

// sendNotification marshals any JSON-RPC payload onto the receive channel,
// dropping it if the transport is shutting down.
func (t *InMemoryTransport) sendNotification(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	select {
	case t.recvCh <- data:
	case <-t.ctx.Done():
		// Context cancelled, drop response
	}
}

// transportConnection adapts InMemoryTransport to the official SDK's
// Connection interface.
type transportConnection struct {
	transport *InMemoryTransport
}

// Read implements [mcptransport.Connection.Read]
func (c *transportConnection) Read(ctx context.Context) (jsonrpc.Message, error) {
	data, err := c.transport.ReadMessage()
	if err != nil {
		return nil, err
	}

	msg, err := jsonrpc.DecodeMessage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON-RPC message: %w", err)
	}

	return msg, nil
}

// Write implements [mcptransport.Connection.Write]
func (c *transportConnection) Write(ctx context.Context, msg jsonrpc.Message) error {
	data, err := jsonrpc.EncodeMessage(msg)
	if err != nil {
		return err
	}

	return c.transport.WriteMessage(data)
}

// Close implements [mcptransport.Connection.Close]
func (c *transportConnection) Close() error {
	return c.transport.Close()
}

// SessionID implements [mcptransport.Connection.SessionID]
func (c *transportConnection) SessionID() string {
	return "in-memory-transport"
}

// TransportBuilder helps construct MCP transports for different integration
// scenarios. It wraps ServerBuilder so integration layers (CLI, embedding
// hosts) can build a connected transport in one call.
type TransportBuilder struct {
	serverBuilder *ServerBuilder
}

// NewTransportBuilder creates a new transport builder
func NewTransportBuilder() *TransportBuilder {
	return &TransportBuilder{
		serverBuilder: NewServerBuilder(),
	}
}

// WithConfig sets the server configuration
func (tb *TransportBuilder) WithConfig(config *Config) *TransportBuilder {
	tb.serverBuilder.WithConfig(config)
	return tb
}

// WithVersion sets the server version
func (tb *TransportBuilder) WithVersion(version string) *TransportBuilder {
	tb.serverBuilder.WithVersion(version)
	return tb
}

// WithDefaultTools adds the template tool set using the given API client
func (tb *TransportBuilder) WithDefaultTools(api *APIClient) *TransportBuilder {
	tb.serverBuilder.WithDefaultTools(api)
	return tb
}

// BuildInMemoryTransport builds the server core and returns an in-memory
// transport connected to it, ready for SDK integration or in-process tests.
func (tb *TransportBuilder) BuildInMemoryTransport(ctx context.Context) (*InMemoryTransport, error) {
	srv, err := tb.serverBuilder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build server: %w", err)
	}

	transport := NewInMemoryTransport(ctx)
	if err := transport.ConnectServer(ctx, srv); err != nil {
		return nil, fmt.Errorf("failed to connect server to transport: %w", err)
	}

	return transport, nil
}
