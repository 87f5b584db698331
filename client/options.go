// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package client

import "net/http"

// Option configures a Client or a CardResolver.
type Option func(*options)

type options struct {
	httpClient     *http.Client
	headerProvider HeaderProvider
	interceptors   []Interceptor
	userAgent      string
}

func newOptions(opts ...Option) *options {
	o := &options{
		httpClient: http.DefaultClient,
		userAgent:  "a2a-ui/1.0",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithHeaderProvider sets the authentication header provider.
func WithHeaderProvider(p HeaderProvider) Option {
	return func(o *options) {
		o.headerProvider = p
	}
}

// WithInterceptors appends request interceptors. Interceptors run in the
// order given, outermost first.
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(o *options) {
		o.interceptors = append(o.interceptors, interceptors...)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}
