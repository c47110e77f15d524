// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"testing"
	"time"
)

func TestOnboardingStepNext(t *testing.T) {
	testCases := []struct {
		step     OnboardingStep
		next     OnboardingStep
		hasNext  bool
		terminal bool
	}{
		{StepCreated, StepOrgDetails, true, false},
		{StepOrgDetails, StepPlanSelected, true, false},
		{StepPlanSelected, StepPaymentPending, true, false},
		{StepPaymentPending, StepCompleted, true, false},
		{StepCompleted, 0, false, true},
		{StepAbandoned, 0, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.step.String(), func(t *testing.T) {
			next, ok := tc.step.Next()
			if ok != tc.hasNext {
				t.Errorf("expected hasNext=%v, got %v", tc.hasNext, ok)
			}
			if ok && next != tc.next {
				t.Errorf("expected next %s, got %s", tc.next, next)
			}
			if tc.step.Terminal() != tc.terminal {
				t.Errorf("expected terminal=%v", tc.terminal)
			}
		})
	}
}

func TestParseOnboardingStepRoundTrip(t *testing.T) {
	for _, step := range []OnboardingStep{StepCreated, StepOrgDetails, StepPlanSelected, StepPaymentPending, StepCompleted, StepAbandoned} {
		parsed, err := ParseOnboardingStep(step.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed != step {
			t.Errorf("expected %s, got %s", step, parsed)
		}
	}

	if _, err := ParseOnboardingStep("SIDEWAYS"); err == nil {
		t.Error("expected error for unknown step")
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()

	s := &OnboardingSession{ExpiresAt: now.Add(time.Hour)}
	if s.Expired(now) {
		t.Error("session should not be expired")
	}

	s.ExpiresAt = now.Add(-time.Minute)
	if !s.Expired(now) {
		t.Error("session should be expired")
	}
}
