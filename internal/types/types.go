// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// User is the identity-provider view of an account. The platform references
// users by ID and never owns them.
type User struct {
	ID    string
	Email string
	Name  string
}

type Organization struct {
	ID                 string    `db:"id"`
	Name               string    `db:"name"`
	Slug               string    `db:"slug"`
	SubscriptionStatus string    `db:"subscription_status"`
	Enabled            bool      `db:"enabled"`
	CreatedAt          time.Time `db:"created_at"`
}

type Membership struct {
	ID             string    `db:"id"`
	OrganizationID string    `db:"organization_id"`
	UserID         string    `db:"user_id"`
	Role           Role      `db:"role"`
	CreatedAt      time.Time `db:"created_at"`
}

// OnboardingSession is the token-addressed signup funnel state. Version
// backs the conditional update used to serialize concurrent advances.
type OnboardingSession struct {
	ID             string         `db:"id"`
	Token          string         `db:"token"`
	UserID         string         `db:"user_id"`
	Step           OnboardingStep `db:"step"`
	OrgName        string         `db:"org_name"`
	OrgIndustry    string         `db:"org_industry"`
	PlanTier       string         `db:"plan_tier"`
	PaymentRef     string         `db:"payment_ref"`
	OrganizationID string         `db:"organization_id"`
	Version        int64          `db:"version"`
	ExpiresAt      time.Time      `db:"expires_at"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (s *OnboardingSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type OrganizationUser struct {
	UserID string
	Email  string
	Role   Role
}
