// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package events

import (
	"context"
)

var _ PublisherInterface = (*NoopPublisher)(nil)

// NoopPublisher drops every event, for deployments without a broker.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return new(NoopPublisher)
}

func (p *NoopPublisher) Publish(ctx context.Context, subject string, event any) error {
	return nil
}

func (p *NoopPublisher) Close() {
}
