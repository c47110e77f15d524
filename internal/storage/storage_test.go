// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/platform-service/internal/types"
)

// A raised unique_violation aborts the enclosing transaction, which would
// doom the caller's in-transaction slug retry; the collision has to be
// absorbed by the statement itself and surface as an absent row.
func TestInsertOrganizationStatementAbsorbsSlugCollision(t *testing.T) {
	org := &types.Organization{
		Name:               "Acme Inc",
		Slug:               "acme-inc",
		SubscriptionStatus: "ACTIVE",
		Enabled:            true,
	}

	sql, args, err := insertOrganizationStatement(sq.StatementBuilder.PlaceholderFormat(sq.Dollar), "org-1", org).ToSql()
	if err != nil {
		t.Fatalf("failed to build statement: %v", err)
	}

	if !strings.Contains(sql, "ON CONFLICT (slug) DO NOTHING") {
		t.Errorf("expected conflict clause in %q", sql)
	}
	if !strings.Contains(sql, "RETURNING id, name, slug, subscription_status, enabled, created_at") {
		t.Errorf("expected returning clause in %q", sql)
	}
	if strings.Index(sql, "ON CONFLICT") > strings.Index(sql, "RETURNING") {
		t.Errorf("conflict clause must precede RETURNING in %q", sql)
	}

	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(args))
	}
	if args[2] != "acme-inc" {
		t.Errorf("expected slug as third arg, got %v", args[2])
	}
}
