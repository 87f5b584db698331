// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/a2anet/a2a-ui/a2a"
)

func TestCardResolver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != WellKnownCardPath {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{
			"name": "Weather Agent",
			"description": "Answers weather questions",
			"url": "https://agent.example.com",
			"version": "1.2.0",
			"capabilities": {"streaming": true},
			"defaultInputModes": ["text/plain"],
			"defaultOutputModes": ["text/plain"],
			"skills": [{"id": "forecast", "name": "Forecast", "description": "7 day forecast", "tags": ["weather"]}]
		}`)
	}))
	defer server.Close()

	resolver, err := NewCardResolver(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	card, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := &a2a.AgentCard{
		Name:        "Weather Agent",
		Description: "Answers weather questions",
		URL:         "https://agent.example.com",
		Version:     "1.2.0",
		Capabilities: a2a.AgentCapabilities{
			Streaming: true,
		},
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
		Skills: []a2a.AgentSkill{
			{ID: "forecast", Name: "Forecast", Description: "7 day forecast", Tags: []string{"weather"}},
		},
	}
	if diff := cmp.Diff(want, card); diff != "" {
		t.Errorf("card mismatch (-want +got):\n%s", diff)
	}
}

func TestCardResolverErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(http.NotFound))
		defer server.Close()

		resolver, _ := NewCardResolver(server.URL)
		_, err := resolver.Resolve(context.Background())
		if !IsHTTPStatus(err, http.StatusNotFound) {
			t.Errorf("err = %v, want HTTPError 404", err)
		}
	})

	t.Run("invalid card rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"name": "No URL Agent", "version": "1.0"}`)
		}))
		defer server.Close()

		resolver, _ := NewCardResolver(server.URL)
		if _, err := resolver.Resolve(context.Background()); err == nil {
			t.Error("expected validation error for card without url")
		}
	})

	t.Run("empty base url", func(t *testing.T) {
		if _, err := NewCardResolver(""); err == nil {
			t.Error("expected error for empty base URL")
		}
	})
}
