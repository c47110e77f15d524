// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"

	"github.com/canonical/platform-service/internal/types"
)

type BinderInterface interface {
	Bind(ctx context.Context, userID, requestedOrgID string) (*TenantContext, error)
}

type MembershipListerInterface interface {
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
}
