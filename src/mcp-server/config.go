// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config is the server configuration. It can be loaded from a JSON or YAML
// file named by the MCP_TEMPLATE_CONFIG_FILE environment variable, with
// defaults applied for any missing values. Supported extensions: .json,
// .yaml, .yml.
//
// The core never reads configuration itself; values flow into tool behaviors
// through the builder and the owned API client.
type Config struct {
	// Server: Identity advertised during the initialize handshake
	Server struct {
		// Name: Display name for the server
		Name string `json:"name,omitempty" yaml:"name,omitempty"`
	} `json:"server" yaml:"server"`

	// Defaults: Default settings for tool execution
	Defaults struct {
		// Timeout: Default timeout in seconds for outbound tool operations
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	} `json:"defaults" yaml:"defaults"`

	// API: Configuration for the outbound API client used by the api_request tool
	API struct {
		// BaseURL: Base address requests are resolved against
		BaseURL string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
		// APIKey: Bearer token for the upstream API (can also be set via TEMPLATE_MCP_API_KEY)
		APIKey string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
		// Timeout: HTTP timeout in seconds for outbound requests
		Timeout int `json:"timeout,omitempty" yaml:"timeout,omitempty"`
		// MaxResponseBytes: Cap on response bodies read into memory
		MaxResponseBytes int64 `json:"maxResponseBytes,omitempty" yaml:"maxResponseBytes,omitempty"`
	} `json:"api" yaml:"api"`
}

// detectConfigFormat determines the configuration file format from the file
// extension, case-insensitively.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the detected format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// defaultConfig returns a config with every default applied.
func defaultConfig() *Config {
	config := &Config{}
	config.Server.Name = "Template MCP Server"
	config.Defaults.Timeout = 30
	config.API.BaseURL = "https://api.example.com"
	config.API.Timeout = 30
	config.API.MaxResponseBytes = 1 << 20
	return config
}

// loadConfig loads the server configuration from a JSON or YAML file or
// applies defaults.
//
// Configuration priority:
//  1. Hardcoded defaults
//  2. MCP_TEMPLATE_CONFIG_FILE environment variable when configPath is empty
//  3. Config file values override defaults (if the file exists and is valid)
//  4. TEMPLATE_MCP_API_KEY overrides the API key when not set in the file
func loadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	if configPath == "" {
		configPath = os.Getenv("MCP_TEMPLATE_CONFIG_FILE")
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		// Reset invalid values to defaults
		if config.Server.Name == "" {
			config.Server.Name = "Template MCP Server"
		}
		if config.Defaults.Timeout <= 0 {
			config.Defaults.Timeout = 30
		}
		if config.API.Timeout <= 0 {
			config.API.Timeout = 30
		}
		if config.API.MaxResponseBytes <= 0 {
			config.API.MaxResponseBytes = 1 << 20
		}
	}

	if config.API.APIKey == "" {
		config.API.APIKey = os.Getenv("TEMPLATE_MCP_API_KEY")
	}

	return config, nil
}
