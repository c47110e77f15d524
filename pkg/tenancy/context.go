// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import "context"

type contextKey struct{}

var tenantContextKey = contextKey{}

// WithTenantContext returns a new context carrying the bound tenant scope.
func WithTenantContext(ctx context.Context, tc *TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey, tc)
}

// TenantContextFrom retrieves the bound tenant scope from the context.
// Returns nil and false when no scope was bound.
func TenantContextFrom(ctx context.Context) (*TenantContext, bool) {
	tc, ok := ctx.Value(tenantContextKey).(*TenantContext)
	return tc, ok
}
