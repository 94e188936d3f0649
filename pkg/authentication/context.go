// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"slices"
)

// Principal is the authenticated caller of the API, a service rather than
// an end user.
type Principal struct {
	Subject string
	Scopes  []string

	// unrestricted principals pass every scope check
	unrestricted bool
}

func (p *Principal) HasScope(scope string) bool {
	return p.unrestricted || slices.Contains(p.Scopes, scope)
}

// Define a private custom type to avoid collisions
type contextKey struct{}

var principalContextKey = contextKey{}

// WithPrincipal returns a new context carrying the given principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// GetPrincipal retrieves the principal from the context.
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*Principal)
	return p, ok
}
