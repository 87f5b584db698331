// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads application configuration from the environment,
// with optional .env file support.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the runtime settings of the application.
type Config struct {
	// Addr is the listen address of the web server.
	Addr string
	// AgentURLs are agent base URLs registered at startup.
	AgentURLs []string
	// Headers are custom headers attached to every agent request.
	Headers map[string]string
	// AuthToken is an optional bearer token for agent requests.
	AuthToken string
	// LogLevel is debug|info|warn|error.
	LogLevel string
	// LogFormat is json|text.
	LogFormat string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is fine; only report real read failures.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Addr:      getenv("A2AUI_ADDR", ":8080"),
		AuthToken: os.Getenv("A2AUI_AUTH_TOKEN"),
		LogLevel:  getenv("A2AUI_LOG_LEVEL", "info"),
		LogFormat: getenv("A2AUI_LOG_FORMAT", "json"),
	}

	if agents := os.Getenv("A2AUI_AGENTS"); agents != "" {
		for _, url := range strings.Split(agents, ",") {
			if url = strings.TrimSpace(url); url != "" {
				cfg.AgentURLs = append(cfg.AgentURLs, url)
			}
		}
	}

	if headers := os.Getenv("A2AUI_HEADERS"); headers != "" {
		if err := json.Unmarshal([]byte(headers), &cfg.Headers); err != nil {
			return nil, fmt.Errorf("parsing A2AUI_HEADERS: %w", err)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
