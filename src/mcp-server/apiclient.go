// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Theycallmeholla/template-mcp/src/internal/helper/gc"
)

// APIClient is the single owned outbound HTTP client available to tool
// behaviors. It is constructed once at startup from configuration and passed
// explicitly wherever needed; there is no ambient or global client state.
type APIClient struct {
	baseURL  string
	apiKey   string
	maxBytes int64
	client   *http.Client
	version  string
}

// NewAPIClient builds the client from configuration. The API key is optional;
// when present it is sent as a bearer token.
func NewAPIClient(config *Config, version string) *APIClient {
	return &APIClient{
		baseURL:  strings.TrimRight(config.API.BaseURL, "/"),
		apiKey:   config.API.APIKey,
		maxBytes: config.API.MaxResponseBytes,
		version:  version,
		client:   &http.Client{Timeout: time.Duration(config.API.Timeout) * time.Second},
	}
}

// BaseURL returns the configured base address.
func (c *APIClient) BaseURL() string { return c.baseURL }

// Get performs a GET against path (resolved under the base URL) with the
// given query values and returns the response body as a string. Responses
// larger than the configured cap are truncated. Non-2xx statuses are errors
// carrying the status code and the (capped) body for diagnosability.
func (c *APIClient) Get(ctx context.Context, path string, query url.Values) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "template-mcp/"+c.version)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request to %s failed: %w", target, err)
	}
	defer resp.Body.Close()

	// Read through the buffer pool with a hard cap on body size.
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, c.maxBytes)); err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	body := string(buf.Bytes())
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, body)
	}
	return body, nil
}
