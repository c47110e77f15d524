// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"context"

	"github.com/canonical/platform-service/internal/types"
)

type SessionResolverInterface interface {
	ResolveSession(ctx context.Context, cookieHeader string) (*types.User, error)
}
