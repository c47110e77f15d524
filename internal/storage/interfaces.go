// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/platform-service/internal/types"
)

type StorageInterface interface {
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error)
	ListOrganizations(ctx context.Context) ([]*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	UpdateOrganization(ctx context.Context, o *types.Organization, paths []string) error
	SetOrganizationStatus(ctx context.Context, id string, enabled bool) error
	DeleteOrganization(ctx context.Context, id string) error

	AddMember(ctx context.Context, organizationID, userID string, role types.Role) (string, error)
	UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) error
	RemoveMember(ctx context.Context, organizationID, userID string) error
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
	ListMembersByOrganizationID(ctx context.Context, organizationID string) ([]*types.Membership, error)

	CreateOnboardingSession(ctx context.Context, s *types.OnboardingSession) (*types.OnboardingSession, error)
	GetOnboardingSessionByToken(ctx context.Context, token string) (*types.OnboardingSession, error)
	GetActiveOnboardingSessionByUserID(ctx context.Context, userID string) (*types.OnboardingSession, error)
	AdvanceOnboardingSession(ctx context.Context, s *types.OnboardingSession, fromStep types.OnboardingStep, fromVersion int64) error
	SweepExpiredOnboardingSessions(ctx context.Context, now time.Time) (int64, error)
}
