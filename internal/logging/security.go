// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

// SecurityLogger writes structured audit events. Fields are stable so that
// downstream SIEM pipelines can key on them.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system.startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system.shutdown"))
}

func (s *SecurityLogger) AuthnFailure(subject, reason string) {
	s.l.Warn("authentication failure",
		zap.String("event", "authn.failure"),
		zap.String("subject", subject),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AuthzFailure(subject, permission string) {
	s.l.Warn("authorization failure",
		zap.String("event", "authz.failure"),
		zap.String("subject", subject),
		zap.String("permission", permission),
	)
}

func (s *SecurityLogger) TenantContextBound(userID, organizationID string) {
	s.l.Info("tenant context bound",
		zap.String("event", "tenancy.bound"),
		zap.String("user_id", userID),
		zap.String("organization_id", organizationID),
	)
}

func (s *SecurityLogger) OnboardingCompleted(userID, organizationID string) {
	s.l.Info("onboarding completed",
		zap.String("event", "onboarding.completed"),
		zap.String("user_id", userID),
		zap.String("organization_id", organizationID),
	)
}
