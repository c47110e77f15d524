// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package webhooks receives identity provider callbacks. Registration does
// not create an organization directly; it bootstraps an onboarding session
// so organizations only ever come into existence through a completed funnel.
package webhooks

import (
	"context"
	"fmt"

	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/tracing"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	onboarding OnboardingInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	onboarding OnboardingInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		onboarding: onboarding,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

// HandleRegistration bootstraps an onboarding session for a freshly signed-up
// identity. Retried webhook deliveries hit the idempotent create and get the
// same session back.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email string) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	s.logger.Debugf("handling registration for identity %s with email %s", identityID, email)

	if identityID == "" {
		return fmt.Errorf("identity ID is empty")
	}

	sess, err := s.onboarding.Create(ctx, identityID)
	if err != nil {
		return fmt.Errorf("failed to bootstrap onboarding session: %w", err)
	}

	s.logger.Infof("onboarding session at step %s ready for identity %s", sess.Step, identityID)
	return nil
}
