// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"context"

	"github.com/canonical/platform-service/internal/types"
)

type contextKey int

const (
	hostTypeContextKey contextKey = iota
	userContextKey
)

// WithHostType returns a new context carrying the classified host type.
func WithHostType(ctx context.Context, hostType HostType) context.Context {
	return context.WithValue(ctx, hostTypeContextKey, hostType)
}

// HostTypeFrom retrieves the classified host type, HostUnknown if absent.
func HostTypeFrom(ctx context.Context) HostType {
	if h, ok := ctx.Value(hostTypeContextKey).(HostType); ok {
		return h
	}
	return HostUnknown
}

// WithUser returns a new context carrying the resolved user.
func WithUser(ctx context.Context, user *types.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom retrieves the resolved user from the context, nil if anonymous.
func UserFrom(ctx context.Context) *types.User {
	if u, ok := ctx.Value(userContextKey).(*types.User); ok {
		return u
	}
	return nil
}
