// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"net/http"
)

// Invoker performs a single HTTP round trip.
type Invoker func(ctx context.Context, req *http.Request) (*http.Response, error)

// Interceptor wraps an Invoker, adding behavior before or after the round
// trip. Interceptors compose; the first interceptor in the chain is the
// outermost.
type Interceptor func(next Invoker) Invoker

// chainInterceptors composes interceptors around a terminal invoker.
func chainInterceptors(invoker Invoker, interceptors []Interceptor) Invoker {
	for i := len(interceptors) - 1; i >= 0; i-- {
		invoker = interceptors[i](invoker)
	}
	return invoker
}

// HeaderInterceptor returns an Interceptor that sets static headers on every
// outgoing request. Existing values for the same key are replaced.
func HeaderInterceptor(headers map[string]string) Interceptor {
	return func(next Invoker) Invoker {
		return func(ctx context.Context, req *http.Request) (*http.Response, error) {
			for k, v := range headers {
				req.Header.Set(k, v)
			}
			return next(ctx, req)
		}
	}
}
