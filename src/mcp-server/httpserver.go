// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Theycallmeholla/template-mcp/src/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/mcp"
)

// HTTPServer exposes the server core over plain HTTP for deployments where a
// stdio pipe is impractical. Routes:
//
//	GET  /health     - liveness probe, unauthenticated
//	GET  /mcp/tools  - the tool catalogue
//	POST /mcp/call   - one tool invocation
//	GET  /mcp/resources       - the resource catalogue
//	POST /mcp/resources/read  - read one resource by uri
//
// When a token is configured, /mcp routes require a matching bearer token.
type HTTPServer struct {
	srv    *Server
	token  string
	router *chi.Mux
	log    logger.Logger
}

// httpCallRequest is the body of POST /mcp/call.
type httpCallRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// NewHTTPServer wires the router with middleware and routes. The token is
// optional; empty disables authentication.
func NewHTTPServer(srv *Server, token string) *HTTPServer {
	h := &HTTPServer{
		srv:    srv,
		token:  token,
		router: chi.NewRouter(),
		log:    srv.log,
	}
	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.RealIP)
	h.router.Use(middleware.Recoverer)
	h.router.Use(middleware.Timeout(60 * time.Second))

	h.router.Get("/health", h.handleHealth)

	h.router.Route("/mcp", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/tools", h.handleListTools)
		r.Post("/call", h.handleCall)
		r.Get("/resources", h.handleListResources)
		r.Post("/resources/read", h.handleReadResource)
	})

	return h
}

// Router exposes the root HTTP handler for the server.
func (h *HTTPServer) Router() http.Handler { return h.router }

// ListenAndServe serves the router on addr until ctx is cancelled, then
// shuts down gracefully.
func (h *HTTPServer) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           h.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func (h *HTTPServer) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+h.token {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"name":    h.srv.Name(),
		"version": h.srv.Version(),
	})
}

func (h *HTTPServer) handleListTools(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"tools": h.srv.ListCapabilities()})
}

// handleCall runs one invocation through the dispatch core. Resolution and
// validation failures map to HTTP statuses; execution failures come back as
// 200 with isError set, mirroring the JSON-RPC transports.
func (h *HTTPServer) handleCall(w http.ResponseWriter, r *http.Request) {
	var req httpCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	resp := h.srv.Invoke(r.Context(), req.Name, req.Arguments)

	w.Header().Set("Content-Type", "application/json")
	if resp.IsError() && resp.Err.Code != CodeExecutionFailed {
		w.WriteHeader(httpStatusFor(resp.Err.Code))
		_ = json.NewEncoder(w).Encode(map[string]any{"error": resp.Err})
		return
	}
	if resp.IsError() {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []mcp.Content{mcp.TextContent{Type: "text", Text: resp.Err.Message}},
			"isError": true,
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"content": resp.Content,
		"isError": false,
	})
}

func (h *HTTPServer) handleListResources(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"resources": h.srv.ListResources()})
}

func (h *HTTPServer) handleReadResource(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URI string `json:"uri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	contents, err := h.srv.ReadResource(r.Context(), req.URI)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"contents": contents})
}

// httpStatusFor maps protocol error codes to HTTP statuses.
func httpStatusFor(code ErrorCode) int {
	switch code {
	case CodeUnknownTool:
		return http.StatusNotFound
	case CodeInvalidArguments:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
