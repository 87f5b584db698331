// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a2anet/a2a-ui/telemetry"
)

// Hop-by-hop headers are stripped in both directions; they describe one
// connection, not the end-to-end request.
var hopByHopHeaders = map[string]struct{}{
	"connection":          {},
	"keep-alive":          {},
	"proxy-authenticate":  {},
	"proxy-authorization": {},
	"te":                  {},
	"trailers":            {},
	"transfer-encoding":   {},
	"upgrade":             {},
}

func isHopByHop(name string) bool {
	_, ok := hopByHopHeaders[strings.ToLower(name)]
	return ok
}

// proxyRequest is the body of POST /api/proxy: a same-origin forwarding
// request performed server-side so the browser never deals with CORS or
// credential exposure.
type proxyRequest struct {
	URL           string            `json:"url"`
	Method        string            `json:"method,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
	Body          json.RawMessage   `json:"body,omitempty"`
	CustomHeaders map[string]string `json:"customHeaders,omitempty"`
}

func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	var req proxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = strings.NewReader(string(req.Body))
	}
	upstream, err := http.NewRequestWithContext(r.Context(), method, req.URL, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid upstream request")
		return
	}
	for k, v := range req.Headers {
		if !isHopByHop(k) {
			upstream.Header.Set(k, v)
		}
	}
	for k, v := range req.CustomHeaders {
		if !isHopByHop(k) {
			upstream.Header.Set(k, v)
		}
	}
	if upstream.Header.Get("Content-Type") == "" && body != nil {
		upstream.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(upstream)
	if err != nil {
		telemetry.Metrics.ProxyRequests.WithLabelValues("upstream_error").Inc()
		s.logger.Error("proxy upstream failed", "url", req.URL, "error", err)
		writeError(w, http.StatusBadGateway, "upstream request failed")
		return
	}
	defer resp.Body.Close()
	telemetry.Metrics.ProxyRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	for name, values := range resp.Header {
		if isHopByHop(name) {
			continue
		}
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode)

	// Event streams are relayed verbatim, flushing per chunk so events
	// reach the browser as they arrive.
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		s.relayStream(w, resp.Body)
		return
	}
	io.Copy(w, resp.Body)
}

func (s *Server) relayStream(w http.ResponseWriter, body io.Reader) {
	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			return
		}
	}
}
