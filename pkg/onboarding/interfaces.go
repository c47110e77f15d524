// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"encoding/json"
	"time"

	"github.com/canonical/platform-service/internal/types"
)

type ServiceInterface interface {
	Create(ctx context.Context, userID string) (*types.OnboardingSession, error)
	GetByToken(ctx context.Context, token string) (*types.OnboardingSession, error)
	Advance(ctx context.Context, token string, step types.OnboardingStep, payload json.RawMessage) (*types.OnboardingSession, error)
	Complete(ctx context.Context, token string) (*types.Organization, error)
	ExpireStale(ctx context.Context) (int64, error)
}

type StorageInterface interface {
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	AddMember(ctx context.Context, organizationID, userID string, role types.Role) (string, error)

	CreateOnboardingSession(ctx context.Context, s *types.OnboardingSession) (*types.OnboardingSession, error)
	GetOnboardingSessionByToken(ctx context.Context, token string) (*types.OnboardingSession, error)
	GetActiveOnboardingSessionByUserID(ctx context.Context, userID string) (*types.OnboardingSession, error)
	AdvanceOnboardingSession(ctx context.Context, s *types.OnboardingSession, fromStep types.OnboardingStep, fromVersion int64) error
	SweepExpiredOnboardingSessions(ctx context.Context, now time.Time) (int64, error)
}

type AuthzInterface interface {
	AssignOrganizationOwner(ctx context.Context, organizationID, userID string) error
}

type EventsInterface interface {
	Publish(ctx context.Context, subject string, event any) error
}

// TxRunnerInterface runs a function inside a database transaction.
type TxRunnerInterface interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
