// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/platform-service/internal/types"
)

const sessionColumns = "id, token, user_id, step, org_name, org_industry, plan_tier, payment_ref, organization_id, version, expires_at, created_at, updated_at"

func (s *Storage) CreateOnboardingSession(ctx context.Context, sess *types.OnboardingSession) (*types.OnboardingSession, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateOnboardingSession")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("onboarding_sessions").
		Columns("id", "token", "user_id", "step", "expires_at").
		Values(id.String(), sess.Token, sess.UserID, sess.Step.String(), sess.ExpiresAt).
		Suffix("RETURNING " + sessionColumns).
		QueryRowContext(ctx)

	created, err := scanSession(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert onboarding session: %w", err)
	}

	return created, nil
}

func (s *Storage) GetOnboardingSessionByToken(ctx context.Context, token string) (*types.OnboardingSession, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOnboardingSessionByToken")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(sessionColumns).
		From("onboarding_sessions").
		Where(sq.Eq{"token": token}).
		QueryRowContext(ctx)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get onboarding session: %w", err)
	}

	return sess, nil
}

// GetActiveOnboardingSessionByUserID returns the user's non-terminal session
// if one exists. At most one can exist, enforced by a partial unique index.
func (s *Storage) GetActiveOnboardingSessionByUserID(ctx context.Context, userID string) (*types.OnboardingSession, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveOnboardingSessionByUserID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(sessionColumns).
		From("onboarding_sessions").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.NotEq{"step": []string{types.StepCompleted.String(), types.StepAbandoned.String()}}).
		QueryRowContext(ctx)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active onboarding session: %w", err)
	}

	return sess, nil
}

// AdvanceOnboardingSession writes the session's step and accumulated payload
// with a conditional update on (token, step, version). Zero rows affected
// means another writer got there first and the caller must treat the
// transition as lost.
func (s *Storage) AdvanceOnboardingSession(ctx context.Context, sess *types.OnboardingSession, fromStep types.OnboardingStep, fromVersion int64) error {
	ctx, span := s.tracer.Start(ctx, "storage.AdvanceOnboardingSession")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("onboarding_sessions").
		Set("step", sess.Step.String()).
		Set("org_name", sess.OrgName).
		Set("org_industry", sess.OrgIndustry).
		Set("plan_tier", sess.PlanTier).
		Set("payment_ref", sess.PaymentRef).
		Set("organization_id", sess.OrganizationID).
		Set("version", fromVersion+1).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{
			"token":   sess.Token,
			"step":    fromStep.String(),
			"version": fromVersion,
		}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to advance onboarding session: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrStaleUpdate
	}

	sess.Version = fromVersion + 1
	return nil
}

// SweepExpiredOnboardingSessions marks every overdue non-terminal session
// ABANDONED and reports how many rows changed.
func (s *Storage) SweepExpiredOnboardingSessions(ctx context.Context, now time.Time) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.SweepExpiredOnboardingSessions")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("onboarding_sessions").
		Set("step", types.StepAbandoned.String()).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.NotEq{"step": []string{types.StepCompleted.String(), types.StepAbandoned.String()}}).
		Where(sq.Lt{"expires_at": now}).
		ExecContext(ctx)

	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired sessions: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rows, nil
}

func scanSession(row sq.RowScanner) (*types.OnboardingSession, error) {
	var sess types.OnboardingSession
	err := row.Scan(
		&sess.ID,
		&sess.Token,
		&sess.UserID,
		&sess.Step,
		&sess.OrgName,
		&sess.OrgIndustry,
		&sess.PlanTier,
		&sess.PaymentRef,
		&sess.OrganizationID,
		&sess.Version,
		&sess.ExpiresAt,
		&sess.CreatedAt,
		&sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}
