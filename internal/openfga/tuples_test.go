// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package openfga

import (
	"context"
	"testing"

	"github.com/canonical/platform-service/internal/tracing"
)

func TestNewTuple(t *testing.T) {
	tuple := NewTuple("user:user-1", "member", "organization:org-1")

	key := tuple.tupleKey()
	if key.User != "user:user-1" || key.Relation != "member" || key.Object != "organization:org-1" {
		t.Errorf("unexpected tuple key: %+v", key)
	}

	bare := tuple.tupleKeyWithoutCondition()
	if bare.User != key.User || bare.Relation != key.Relation || bare.Object != key.Object {
		t.Errorf("unexpected bare tuple key: %+v", bare)
	}
}

func TestNewTupleWithContext(t *testing.T) {
	tuple := NewTupleWithContext(
		"user:user-1",
		"can_view",
		"organization:org-1",
		*NewTuple("user:user-1", "member", "organization:org-1"),
	)

	if tuple.User != "user:user-1" || tuple.Relation != "can_view" || tuple.Object != "organization:org-1" {
		t.Errorf("unexpected tuple: %+v", tuple.Tuple)
	}
	if len(tuple.ContextualTuples) != 1 {
		t.Fatalf("expected 1 contextual tuple, got %d", len(tuple.ContextualTuples))
	}
	if tuple.ContextualTuples[0].Relation != "member" {
		t.Errorf("unexpected contextual tuple: %+v", tuple.ContextualTuples[0])
	}
}

func TestNoopClientAllowsEverything(t *testing.T) {
	c := NewNoopClient(tracing.NewNoopTracer())

	allowed, err := c.Check(context.Background(), "user:user-1", "member", "organization:org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("expected noop check to allow")
	}

	allowed, err = c.BatchCheck(
		context.Background(),
		*NewTupleWithContext("user:user-1", "can_view", "organization:org-1"),
		*NewTupleWithContext("user:user-2", "can_view", "organization:org-1"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("expected noop batch check to allow")
	}
}
