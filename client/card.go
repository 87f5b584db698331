// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/a2anet/a2a-ui/a2a"
)

// WellKnownCardPath is the conventional location of an agent card relative
// to the agent's base URL.
const WellKnownCardPath = "/.well-known/agent.json"

// CardResolver fetches and validates agent cards. A fetch is a single
// attempt; callers decide whether and when to retry.
type CardResolver struct {
	baseURL string
	invoke  Invoker
	opts    *options
}

// NewCardResolver creates a resolver for the agent at baseURL.
func NewCardResolver(baseURL string, opts ...Option) (*CardResolver, error) {
	if baseURL == "" {
		return nil, ErrNoEndpoint
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid agent URL %q: %w", baseURL, err)
	}
	o := newOptions(opts...)
	r := &CardResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    o,
	}
	r.invoke = chainInterceptors(r.do, o.interceptors)
	return r, nil
}

func (r *CardResolver) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return r.opts.httpClient.Do(req)
}

// Resolve fetches the agent card from the well-known path and validates it.
func (r *CardResolver) Resolve(ctx context.Context) (*a2a.AgentCard, error) {
	return r.ResolvePath(ctx, WellKnownCardPath)
}

// ResolvePath fetches the agent card from a custom path under the base URL.
func (r *CardResolver) ResolvePath(ctx context.Context, path string) (*a2a.AgentCard, error) {
	cardURL := r.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cardURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building card request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.opts.userAgent)
	if r.opts.headerProvider != nil {
		headers, err := r.opts.headerProvider.Headers(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving auth headers: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
	}

	resp, err := r.invoke(ctx, req)
	if err != nil {
		return nil, NewNetworkError("fetching agent card", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewHTTPError(resp.StatusCode, "fetching agent card")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("reading agent card", err)
	}

	var card a2a.AgentCard
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, NewJSONError("decoding agent card", err)
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent card from %s: %w", cardURL, err)
	}
	return &card, nil
}
