// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package events

import (
	"context"
)

type PublisherInterface interface {
	Publish(ctx context.Context, subject string, event any) error
	Close()
}
