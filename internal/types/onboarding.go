// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"database/sql/driver"
	"fmt"
)

// OnboardingStep enumerates the signup funnel states. Transitions are
// forward-only through Next; COMPLETED and ABANDONED are terminal.
type OnboardingStep int

const (
	StepCreated OnboardingStep = iota
	StepOrgDetails
	StepPlanSelected
	StepPaymentPending
	StepCompleted
	StepAbandoned
)

func (s OnboardingStep) String() string {
	switch s {
	case StepCreated:
		return "CREATED"
	case StepOrgDetails:
		return "ORG_DETAILS"
	case StepPlanSelected:
		return "PLAN_SELECTED"
	case StepPaymentPending:
		return "PAYMENT_PENDING"
	case StepCompleted:
		return "COMPLETED"
	case StepAbandoned:
		return "ABANDONED"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Next returns the only legal successor of a step. Terminal steps have none.
func (s OnboardingStep) Next() (OnboardingStep, bool) {
	switch s {
	case StepCreated:
		return StepOrgDetails, true
	case StepOrgDetails:
		return StepPlanSelected, true
	case StepPlanSelected:
		return StepPaymentPending, true
	case StepPaymentPending:
		return StepCompleted, true
	}
	return 0, false
}

func (s OnboardingStep) Terminal() bool {
	return s == StepCompleted || s == StepAbandoned
}

func ParseOnboardingStep(s string) (OnboardingStep, error) {
	switch s {
	case "CREATED":
		return StepCreated, nil
	case "ORG_DETAILS":
		return StepOrgDetails, nil
	case "PLAN_SELECTED":
		return StepPlanSelected, nil
	case "PAYMENT_PENDING":
		return StepPaymentPending, nil
	case "COMPLETED":
		return StepCompleted, nil
	case "ABANDONED":
		return StepAbandoned, nil
	}
	return 0, fmt.Errorf("unknown onboarding step: %q", s)
}

func (s OnboardingStep) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *OnboardingStep) Scan(src any) error {
	str, ok := src.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into OnboardingStep", src)
	}

	parsed, err := ParseOnboardingStep(str)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}
