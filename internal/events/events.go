// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package events publishes domain events on NATS so downstream consumers
// (billing, analytics, provisioning) can react without coupling to this
// service's storage.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/tracing"
)

const (
	SubjectOrganizationCreated = "organizations.created"
	SubjectMemberAdded         = "organizations.members.added"
	SubjectMemberRemoved       = "organizations.members.removed"
	SubjectOnboardingCompleted = "onboarding.completed"
	SubjectOnboardingAbandoned = "onboarding.abandoned"
)

var _ PublisherInterface = (*Publisher)(nil)

type Publisher struct {
	nc *nats.Conn

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewPublisher(url string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(monitor.GetService()),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warnf("nats disconnected: %v", err)
			monitor.SetDependencyAvailability(map[string]string{"component": "nats"}, 0)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infof("nats reconnected to %s", nc.ConnectedUrl())
			monitor.SetDependencyAvailability(map[string]string{"component": "nats"}, 1)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	monitor.SetDependencyAvailability(map[string]string{"component": "nats"}, 1)

	p := new(Publisher)
	p.nc = nc
	p.tracer = tracer
	p.monitor = monitor
	p.logger = logger

	return p, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, event any) error {
	_, span := p.tracer.Start(ctx, "events.Publisher.Publish")
	defer span.End()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.nc.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", subject, err)
	}

	return nil
}

func (p *Publisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.logger.Warnf("error draining nats connection: %v", err)
	}
}

// OrganizationCreatedEvent is emitted once onboarding completes.
type OrganizationCreatedEvent struct {
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	PlanTier       string    `json:"plan_tier"`
	OwnerID        string    `json:"owner_id"`
	CreatedAt      time.Time `json:"created_at"`
}

type MemberEvent struct {
	OrganizationID string `json:"organization_id"`
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
}

type OnboardingEvent struct {
	SessionID      string `json:"session_id"`
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id,omitempty"`
}
