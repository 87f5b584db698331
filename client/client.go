// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

// Package client implements the HTTP transport for talking to A2A agents:
// agent card resolution, unary JSON-RPC sends, and SSE streaming sends.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-json-experiment/json"

	"github.com/a2anet/a2a-ui/a2a"
	"github.com/a2anet/a2a-ui/client/internal/sse"
)

// Client talks JSON-RPC 2.0 over HTTP to a single A2A agent endpoint. It is
// safe for concurrent use.
type Client struct {
	endpoint string
	invoke   Invoker
	opts     *options
}

// New creates a client for the agent at endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	o := newOptions(opts...)
	c := &Client{
		endpoint: endpoint,
		opts:     o,
	}
	c.invoke = chainInterceptors(c.do, o.interceptors)
	return c, nil
}

// Endpoint returns the agent endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.opts.httpClient.Do(req)
}

// newRequest builds a POST request carrying the JSON-RPC payload. The
// payload is kept as bytes so the request can be rebuilt for a retry.
func (c *Client) newRequest(ctx context.Context, payload []byte, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.opts.userAgent)
	return req, nil
}

// send performs the round trip with auth headers attached, retrying exactly
// once with refreshed headers when the agent answers 401 or 403 and the
// provider supports refresh.
func (c *Client) send(ctx context.Context, payload []byte, accept string) (*http.Response, error) {
	req, err := c.newRequest(ctx, payload, accept)
	if err != nil {
		return nil, err
	}
	if c.opts.headerProvider != nil {
		headers, err := c.opts.headerProvider.Headers(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving auth headers: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.invoke(ctx, req)
	if err != nil {
		return nil, NewNetworkError("sending request", err)
	}

	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		return resp, nil
	}

	retrier, ok := c.opts.headerProvider.(RetryHeaderProvider)
	if !ok {
		return resp, nil
	}
	headers, err := retrier.RetryHeaders(ctx)
	if err != nil {
		// No fresh credentials; surface the original response.
		return resp, nil
	}
	resp.Body.Close()

	retryReq, err := c.newRequest(ctx, payload, accept)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		retryReq.Header.Set(k, v)
	}
	retryResp, err := c.invoke(ctx, retryReq)
	if err != nil {
		return nil, NewNetworkError("retrying request", err)
	}
	return retryResp, nil
}

// SendMessage performs a unary message/send call. A JSON-RPC error in the
// response is returned as data on the response, not as an error.
func (c *Client) SendMessage(ctx context.Context, params *a2a.MessageSendParams) (*a2a.SendMessageResponse, error) {
	request := a2a.NewSendMessageRequest(a2a.GenerateID(), params)
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.send(ctx, payload, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewHTTPError(resp.StatusCode, "message/send failed")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("reading response", err)
	}

	var response a2a.SendMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, NewJSONError("decoding message/send response", err)
	}
	return &response, nil
}

// StreamResult is one delivery on a streaming send: an event, or a terminal
// error. After a result with a non-nil Err the channel is closed.
type StreamResult struct {
	Event a2a.StreamEvent
	Err   error
}

// SendMessageStream performs a streaming message/stream call. Events arrive
// on the returned channel in server order; the channel closes when the
// stream ends, errors, or ctx is canceled. Canceling ctx closes the
// underlying connection.
func (c *Client) SendMessageStream(ctx context.Context, params *a2a.MessageSendParams) (<-chan StreamResult, error) {
	request := a2a.NewStreamMessageRequest(a2a.GenerateID(), params)
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.send(ctx, payload, "text/event-stream")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, NewHTTPError(resp.StatusCode, "message/stream failed")
	}

	results := make(chan StreamResult)
	go c.readStream(ctx, resp.Body, results)
	return results, nil
}

func (c *Client) readStream(ctx context.Context, body io.ReadCloser, results chan<- StreamResult) {
	defer close(results)
	defer body.Close()

	// Close the body when ctx is canceled so the blocked read returns.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			body.Close()
		case <-done:
		}
	}()

	decoder := sse.NewDecoder(body)
	for {
		frame, err := decoder.Decode()
		if errors.Is(err, sse.ErrDone) || errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.deliver(ctx, results, StreamResult{Err: NewNetworkError("reading stream", err)})
			return
		}

		event, err := a2a.UnmarshalStreamEvent([]byte(frame.Data))
		if err != nil {
			var rpcErr *a2a.JSONRPCError
			if errors.As(err, &rpcErr) {
				c.deliver(ctx, results, StreamResult{Err: rpcErr})
			} else {
				c.deliver(ctx, results, StreamResult{Err: NewJSONError("decoding stream event", err)})
			}
			return
		}
		if !c.deliver(ctx, results, StreamResult{Event: event}) {
			return
		}
	}
}

func (c *Client) deliver(ctx context.Context, results chan<- StreamResult, r StreamResult) bool {
	select {
	case results <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
