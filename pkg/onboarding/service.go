// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package onboarding drives the signup funnel: a token-addressed session
// advances CREATED -> ORG_DETAILS -> PLAN_SELECTED -> PAYMENT_PENDING and
// finalizes into an Organization with an OWNER membership. Transitions are
// strictly forward-only and serialized with a version check, so concurrent
// advances on one token cannot double-apply.
package onboarding

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/platform-service/internal/events"
	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/storage"
	"github.com/canonical/platform-service/internal/tracing"
	"github.com/canonical/platform-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	tx       TxRunnerInterface
	storage  StorageInterface
	authz    AuthzInterface
	events   EventsInterface
	lifetime time.Duration

	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	tx TxRunnerInterface,
	store StorageInterface,
	authz AuthzInterface,
	publisher EventsInterface,
	lifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		tx:       tx,
		storage:  store,
		authz:    authz,
		events:   publisher,
		lifetime: lifetime,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// Create allocates a new session for the user, or hands back the existing
// active one. A user can hold at most one non-terminal session at a time.
func (s *Service) Create(ctx context.Context, userID string) (*types.OnboardingSession, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.Create")
	defer span.End()

	existing, err := s.storage.GetActiveOnboardingSessionByUserID(ctx, userID)
	if err == nil {
		if !existing.Expired(time.Now()) {
			return existing, nil
		}
		s.abandon(ctx, existing)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	sess := &types.OnboardingSession{
		Token:     token,
		UserID:    userID,
		Step:      types.StepCreated,
		ExpiresAt: time.Now().Add(s.lifetime),
	}

	created, err := s.storage.CreateOnboardingSession(ctx, sess)
	if err != nil {
		// A concurrent create for the same user lost to the partial unique
		// index; hand back the winner's session.
		if errors.Is(err, storage.ErrDuplicateKey) {
			return s.storage.GetActiveOnboardingSessionByUserID(ctx, userID)
		}
		return nil, err
	}

	return created, nil
}

// GetByToken resolves a live session. Terminal sessions are single-use and
// report NotFound; expired sessions are abandoned on first touch.
func (s *Service) GetByToken(ctx context.Context, token string) (*types.OnboardingSession, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.GetByToken")
	defer span.End()

	return s.getLive(ctx, token)
}

// Advance moves the session to the requested step, which must be the
// immediate successor of its current step, and merges the step's payload.
func (s *Service) Advance(ctx context.Context, token string, step types.OnboardingStep, payload json.RawMessage) (*types.OnboardingSession, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.Advance")
	defer span.End()

	sess, err := s.getLive(ctx, token)
	if err != nil {
		return nil, err
	}

	next, ok := sess.Step.Next()
	if !ok || step != next || step.Terminal() {
		return nil, fmt.Errorf("%w: step %s cannot follow %s", ErrInvalidTransition, step, sess.Step)
	}

	if err := s.applyPayload(sess, step, payload); err != nil {
		return nil, err
	}

	fromStep, fromVersion := sess.Step, sess.Version
	sess.Step = step

	if err := s.storage.AdvanceOnboardingSession(ctx, sess, fromStep, fromVersion); err != nil {
		if errors.Is(err, storage.ErrStaleUpdate) {
			return nil, fmt.Errorf("%w: session moved concurrently", ErrInvalidTransition)
		}
		return nil, err
	}

	return sess, nil
}

// Complete finalizes a session in PAYMENT_PENDING: creates the Organization
// and the OWNER membership and marks the session COMPLETED, all in one
// transaction. A slug collision is retried once with a random suffix.
func (s *Service) Complete(ctx context.Context, token string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.Complete")
	defer span.End()

	sess, err := s.getLive(ctx, token)
	if err != nil {
		return nil, err
	}

	if sess.Step != types.StepPaymentPending {
		return nil, fmt.Errorf("%w: complete requires %s, session is at %s", ErrInvalidTransition, types.StepPaymentPending, sess.Step)
	}
	if sess.OrgName == "" || sess.PlanTier == "" || sess.PaymentRef == "" {
		return nil, fmt.Errorf("%w: organization details, plan and payment reference are required", ErrValidation)
	}

	var org *types.Organization
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		org, err = s.createOrganizationWithSlugRetry(ctx, sess.OrgName)
		if err != nil {
			return err
		}

		if _, err := s.storage.AddMember(ctx, org.ID, sess.UserID, types.RoleOwner); err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}

		fromVersion := sess.Version
		sess.Step = types.StepCompleted
		sess.OrganizationID = org.ID
		if err := s.storage.AdvanceOnboardingSession(ctx, sess, types.StepPaymentPending, fromVersion); err != nil {
			if errors.Is(err, storage.ErrStaleUpdate) {
				return fmt.Errorf("%w: session moved concurrently", ErrInvalidTransition)
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit side effects. Tuple and event failures are logged, not
	// rolled back; the membership row is the source of truth.
	if err := s.authz.AssignOrganizationOwner(ctx, org.ID, sess.UserID); err != nil {
		s.logger.Errorf("failed to assign owner tuple for organization %s: %v", org.ID, err)
	}

	if err := s.events.Publish(ctx, events.SubjectOrganizationCreated, events.OrganizationCreatedEvent{
		OrganizationID: org.ID,
		Name:           org.Name,
		Slug:           org.Slug,
		PlanTier:       sess.PlanTier,
		OwnerID:        sess.UserID,
		CreatedAt:      org.CreatedAt,
	}); err != nil {
		s.logger.Errorf("failed to publish organization created event: %v", err)
	}
	if err := s.events.Publish(ctx, events.SubjectOnboardingCompleted, events.OnboardingEvent{
		SessionID:      sess.ID,
		UserID:         sess.UserID,
		OrganizationID: org.ID,
	}); err != nil {
		s.logger.Errorf("failed to publish onboarding completed event: %v", err)
	}

	s.logger.Security().OnboardingCompleted(sess.UserID, org.ID)

	return org, nil
}

// ExpireStale abandons every overdue session. Called periodically by the
// server's sweep loop.
func (s *Service) ExpireStale(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.ExpireStale")
	defer span.End()

	return s.storage.SweepExpiredOnboardingSessions(ctx, time.Now())
}

func (s *Service) getLive(ctx context.Context, token string) (*types.OnboardingSession, error) {
	sess, err := s.storage.GetOnboardingSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if sess.Step.Terminal() {
		return nil, ErrNotFound
	}

	if sess.Expired(time.Now()) {
		s.abandon(ctx, sess)
		return nil, ErrNotFound
	}

	return sess, nil
}

func (s *Service) abandon(ctx context.Context, sess *types.OnboardingSession) {
	fromStep, fromVersion := sess.Step, sess.Version
	sess.Step = types.StepAbandoned

	err := s.storage.AdvanceOnboardingSession(ctx, sess, fromStep, fromVersion)
	if err != nil && !errors.Is(err, storage.ErrStaleUpdate) {
		s.logger.Errorf("failed to abandon expired session: %v", err)
		return
	}

	if err == nil {
		if perr := s.events.Publish(ctx, events.SubjectOnboardingAbandoned, events.OnboardingEvent{
			SessionID: sess.ID,
			UserID:    sess.UserID,
		}); perr != nil {
			s.logger.Errorf("failed to publish onboarding abandoned event: %v", perr)
		}
	}
}

func (s *Service) applyPayload(sess *types.OnboardingSession, step types.OnboardingStep, payload json.RawMessage) error {
	switch step {
	case types.StepOrgDetails:
		var p OrgDetailsPayload
		if err := s.decodePayload(payload, &p); err != nil {
			return err
		}
		sess.OrgName = p.Name
		sess.OrgIndustry = p.Industry
	case types.StepPlanSelected:
		var p PlanSelectionPayload
		if err := s.decodePayload(payload, &p); err != nil {
			return err
		}
		sess.PlanTier = p.Tier
	case types.StepPaymentPending:
		var p PaymentPayload
		if err := s.decodePayload(payload, &p); err != nil {
			return err
		}
		sess.PaymentRef = p.PaymentRef
	}
	return nil
}

func (s *Service) decodePayload(payload json.RawMessage, target any) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: payload is required", ErrValidation)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.validate.Struct(target); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func (s *Service) createOrganizationWithSlugRetry(ctx context.Context, name string) (*types.Organization, error) {
	slug := Slugify(name)

	org, err := s.storage.CreateOrganization(ctx, &types.Organization{
		Name:               name,
		Slug:               slug,
		SubscriptionStatus: "ACTIVE",
		Enabled:            true,
	})
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, storage.ErrDuplicateKey) {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	// Single retry with a randomized suffix, then give up.
	org, err = s.storage.CreateOrganization(ctx, &types.Organization{
		Name:               name,
		Slug:               SuffixedSlug(slug),
		SubscriptionStatus: "ACTIVE",
		Enabled:            true,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
