// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/canonical/platform-service/internal/types"
)

type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email string) error
}

// OnboardingInterface is the slice of the onboarding service the webhook
// needs: the idempotent session bootstrap.
type OnboardingInterface interface {
	Create(ctx context.Context, userID string) (*types.OnboardingSession, error)
}
