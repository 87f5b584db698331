// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwt"
)

// HeaderProvider supplies authentication headers for outgoing requests.
type HeaderProvider interface {
	// Headers returns the headers to attach to a request.
	Headers(ctx context.Context) (map[string]string, error)
}

// RetryHeaderProvider is an optional extension of HeaderProvider. When a
// request fails with 401 or 403 the client asks the provider for fresh
// headers and retries exactly once.
type RetryHeaderProvider interface {
	HeaderProvider

	// RetryHeaders returns refreshed headers after an auth failure. It
	// returns an error when no refreshed credentials are available, in
	// which case the original failure is surfaced.
	RetryHeaders(ctx context.Context) (map[string]string, error)
}

// BearerToken is a HeaderProvider carrying a static bearer token. When the
// token is a JWT its expiry is checked before each use.
type BearerToken struct {
	token string
	// exp is zero for opaque tokens.
	exp time.Time
}

// NewBearerToken creates a bearer token provider. JWTs are parsed without
// verification to extract the expiration claim; opaque tokens are passed
// through untouched.
func NewBearerToken(token string) *BearerToken {
	bt := &BearerToken{token: token}
	parsed, err := jwt.ParseInsecure([]byte(token))
	if err != nil {
		return bt
	}
	if exp, ok := parsed.Expiration(); ok {
		bt.exp = exp
	}
	return bt
}

// Headers implements HeaderProvider.
func (b *BearerToken) Headers(ctx context.Context) (map[string]string, error) {
	if !b.exp.IsZero() && time.Now().After(b.exp) {
		return nil, fmt.Errorf("bearer token expired at %s", b.exp.Format(time.RFC3339))
	}
	return map[string]string{"Authorization": "Bearer " + b.token}, nil
}
