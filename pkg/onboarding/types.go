// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"time"

	"github.com/canonical/platform-service/internal/types"
)

// OrgDetailsPayload accompanies the advance into ORG_DETAILS.
type OrgDetailsPayload struct {
	Name     string `json:"name" validate:"required,max=120"`
	Industry string `json:"industry" validate:"max=120"`
}

// PlanSelectionPayload accompanies the advance into PLAN_SELECTED.
type PlanSelectionPayload struct {
	Tier string `json:"tier" validate:"required,oneof=STARTER GROWTH SCALE"`
}

// PaymentPayload accompanies the advance into PAYMENT_PENDING. The
// reference is an opaque handle into the payment provider; no charge
// handling happens here.
type PaymentPayload struct {
	PaymentRef string `json:"payment_ref" validate:"required,max=255"`
}

// SessionState is the external view of an onboarding session. The internal
// row ID never leaves the service; sessions are addressed by token only.
type SessionState struct {
	Token       string    `json:"token"`
	Step        string    `json:"step"`
	OrgName     string    `json:"org_name,omitempty"`
	OrgIndustry string    `json:"org_industry,omitempty"`
	PlanTier    string    `json:"plan_tier,omitempty"`
	PaymentRef  string    `json:"payment_ref,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func sessionState(s *types.OnboardingSession) *SessionState {
	return &SessionState{
		Token:       s.Token,
		Step:        s.Step.String(),
		OrgName:     s.OrgName,
		OrgIndustry: s.OrgIndustry,
		PlanTier:    s.PlanTier,
		PaymentRef:  s.PaymentRef,
		ExpiresAt:   s.ExpiresAt,
	}
}
