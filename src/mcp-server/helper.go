// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import "fmt"

// getParams extracts parameters from a normalized JSON-RPC request.
func getParams(req map[string]any, method string) (map[string]any, error) {
	p, ok := req["params"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid %s params", method)
	}
	return p, nil
}

// getStringParam extracts a required string parameter.
func getStringParam(params map[string]any, method, key string) (string, error) {
	v, ok := params[key].(string)
	if !ok {
		return "", fmt.Errorf("invalid %s params: %q must be a string", method, key)
	}
	return v, nil
}

// getOptionalMapParam extracts an object parameter, treating absence as an
// empty map. A present value of the wrong type is still an error.
func getOptionalMapParam(params map[string]any, method, key string) (map[string]any, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return map[string]any{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid %s params: %q must be an object", method, key)
	}
	return m, nil
}
