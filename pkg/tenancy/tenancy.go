// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package tenancy binds every authenticated request to exactly one
// organization. Downstream data access takes the bound TenantContext as an
// explicit parameter, never from ambient state, so concurrent requests
// cannot leak scope into each other.
package tenancy

import (
	"context"
	"errors"

	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/tracing"
	"github.com/canonical/platform-service/internal/types"
)

var (
	// ErrUnauthorized means the user has no organization memberships at all.
	ErrUnauthorized = errors.New("user has no organization memberships")
	// ErrForbidden means the user asked to switch to an organization they
	// are not a member of.
	ErrForbidden = errors.New("user is not a member of the requested organization")
)

// TenantContext is the scope every downstream query must be filtered by.
type TenantContext struct {
	OrganizationID string
	UserID         string
	Role           types.Role
}

var _ BinderInterface = (*Binder)(nil)

type Binder struct {
	memberships MembershipListerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewBinder(memberships MembershipListerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Binder {
	b := new(Binder)
	b.memberships = memberships
	b.tracer = tracer
	b.monitor = monitor
	b.logger = logger

	return b
}

// Bind resolves the organization scope for a user. With no explicit switch
// the first membership wins, deterministically (memberships come back
// ordered oldest first). An explicit requestedOrgID binds only when the
// user is a member of that organization; otherwise the bind is rejected
// outright rather than silently falling back to the default.
func (b *Binder) Bind(ctx context.Context, userID, requestedOrgID string) (*TenantContext, error) {
	ctx, span := b.tracer.Start(ctx, "tenancy.Binder.Bind")
	defer span.End()

	memberships, err := b.memberships.ListMembershipsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(memberships) == 0 {
		b.logger.Security().AuthzFailure(userID, "tenant_bind")
		return nil, ErrUnauthorized
	}

	selected := memberships[0]
	if requestedOrgID != "" {
		selected = nil
		for _, m := range memberships {
			if m.OrganizationID == requestedOrgID {
				selected = m
				break
			}
		}
		if selected == nil {
			b.logger.Security().AuthzFailure(userID, "organization_switch")
			return nil, ErrForbidden
		}
	}

	b.logger.Security().TenantContextBound(userID, selected.OrganizationID)

	return &TenantContext{
		OrganizationID: selected.OrganizationID,
		UserID:         userID,
		Role:           selected.Role,
	}, nil
}
