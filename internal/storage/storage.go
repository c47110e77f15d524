// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/platform-service/internal/db"
	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/tracing"
	"github.com/canonical/platform-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateOrganization")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate organization ID: %w", err)
	}

	var created types.Organization
	err = insertOrganizationStatement(s.db.Statement(ctx), id.String(), o).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Name, &created.Slug, &created.SubscriptionStatus, &created.Enabled, &created.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("slug %q: %w", o.Slug, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to insert organization: %w", err)
	}

	return &created, nil
}

// insertOrganizationStatement builds the organization insert. A slug
// collision must not raise unique_violation, because that aborts the
// surrounding transaction and the caller retries the insert inside it;
// ON CONFLICT DO NOTHING makes a collision surface as an absent row.
func insertOrganizationStatement(builder sq.StatementBuilderType, id string, o *types.Organization) sq.InsertBuilder {
	return builder.
		Insert("organizations").
		Columns("id", "name", "slug", "subscription_status", "enabled").
		Values(id, o.Name, o.Slug, o.SubscriptionStatus, o.Enabled).
		Suffix("ON CONFLICT (slug) DO NOTHING").
		Suffix("RETURNING id, name, slug, subscription_status, enabled, created_at")
}

func (s *Storage) GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganizationByID")
	defer span.End()

	return s.getOrganization(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganizationBySlug")
	defer span.End()

	return s.getOrganization(ctx, sq.Eq{"slug": slug})
}

func (s *Storage) getOrganization(ctx context.Context, pred sq.Eq) (*types.Organization, error) {
	var o types.Organization
	err := s.db.Statement(ctx).
		Select("id", "name", "slug", "subscription_status", "enabled", "created_at").
		From("organizations").
		Where(pred).
		QueryRowContext(ctx).
		Scan(&o.ID, &o.Name, &o.Slug, &o.SubscriptionStatus, &o.Enabled, &o.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &o, nil
}

func (s *Storage) ListOrganizations(ctx context.Context) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListOrganizations")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "name", "slug", "subscription_status", "enabled", "created_at").
		From("organizations").
		OrderBy("created_at")

	return s.scanOrganizations(ctx, query)
}

func (s *Storage) ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListOrganizationsByUserID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("o.id", "o.name", "o.slug", "o.subscription_status", "o.enabled", "o.created_at").
		From("organizations o").
		Join("memberships m ON o.id = m.organization_id").
		Where(sq.Eq{"m.user_id": userID, "o.enabled": true}).
		OrderBy("m.created_at", "m.id")

	return s.scanOrganizations(ctx, query)
}

func (s *Storage) scanOrganizations(ctx context.Context, query sq.SelectBuilder) ([]*types.Organization, error) {
	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*types.Organization
	for rows.Next() {
		var o types.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.SubscriptionStatus, &o.Enabled, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return orgs, nil
}

// UpdateOrganization updates only the fields named in paths, following PATCH
// semantics.
func (s *Storage) UpdateOrganization(ctx context.Context, o *types.Organization, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateOrganization")
	defer span.End()

	if len(paths) == 0 {
		return nil
	}

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = o.Name
		case "subscription_status":
			updateMap["subscription_status"] = o.SubscriptionStatus
		case "enabled":
			updateMap["enabled"] = o.Enabled
		}
	}

	if len(updateMap) == 0 {
		return nil
	}

	_, err := s.db.Statement(ctx).
		Update("organizations").
		SetMap(updateMap).
		Where(sq.Eq{"id": o.ID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}

	return nil
}

func (s *Storage) SetOrganizationStatus(ctx context.Context, id string, enabled bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetOrganizationStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("organizations").
		Set("enabled", enabled).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to set organization status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) DeleteOrganization(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteOrganization")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("organizations").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return nil
}
