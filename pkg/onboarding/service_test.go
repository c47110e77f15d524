// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/platform-service/internal/events"
	"github.com/canonical/platform-service/internal/storage"
	"github.com/canonical/platform-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	tx       *MockTxRunnerInterface
	store    *MockStorageInterface
	authz    *MockAuthzInterface
	events   *MockEventsInterface
	tracer   *MockTracingInterface
	logger   *MockLoggerInterface
	security *MockSecurityLoggerInterface
}

func setupService(t *testing.T) (*Service, *serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		tx:       NewMockTxRunnerInterface(ctrl),
		store:    NewMockStorageInterface(ctrl),
		authz:    NewMockAuthzInterface(ctrl),
		events:   NewMockEventsInterface(ctrl),
		tracer:   NewMockTracingInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
		security: NewMockSecurityLoggerInterface(ctrl),
	}
	m.logger.EXPECT().Security().Return(m.security).AnyTimes()

	monitor := NewMockMonitorInterface(ctrl)

	svc := NewService(m.tx, m.store, m.authz, m.events, 24*time.Hour, m.tracer, monitor, m.logger)

	return svc, m
}

func (m *serviceMocks) expectSpan(name string) {
	ctx := context.Background()
	m.tracer.EXPECT().Start(gomock.Any(), name).Return(ctx, trace.SpanFromContext(ctx))
}

func TestService_CreateReturnsExistingSession(t *testing.T) {
	svc, m := setupService(t)

	existing := &types.OnboardingSession{
		ID:        "s1",
		Token:     "tok-1",
		UserID:    "user-1",
		Step:      types.StepPlanSelected,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	m.expectSpan("onboarding.Service.Create")
	m.store.EXPECT().GetActiveOnboardingSessionByUserID(gomock.Any(), "user-1").Return(existing, nil)

	sess, err := svc.Create(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token != "tok-1" {
		t.Errorf("expected the existing session back, got token %s", sess.Token)
	}
	if sess.Step != types.StepPlanSelected {
		t.Errorf("existing session step must be preserved, got %s", sess.Step)
	}
}

func TestService_CreateNewSession(t *testing.T) {
	svc, m := setupService(t)

	m.expectSpan("onboarding.Service.Create")
	m.store.EXPECT().GetActiveOnboardingSessionByUserID(gomock.Any(), "user-1").Return(nil, storage.ErrNotFound)
	m.store.EXPECT().CreateOnboardingSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, s *types.OnboardingSession) (*types.OnboardingSession, error) {
			if s.Token == "" {
				t.Error("expected a generated token")
			}
			if s.UserID != "user-1" {
				t.Errorf("expected user-1, got %s", s.UserID)
			}
			if s.Step != types.StepCreated {
				t.Errorf("new sessions must start at CREATED, got %s", s.Step)
			}
			if s.ExpiresAt.Before(time.Now().Add(23 * time.Hour)) {
				t.Error("expected expiry about one lifetime out")
			}
			return s, nil
		},
	)

	sess, err := svc.Create(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Step != types.StepCreated {
		t.Errorf("expected CREATED, got %s", sess.Step)
	}
}

func TestService_CreateLostRaceReturnsWinner(t *testing.T) {
	svc, m := setupService(t)

	winner := &types.OnboardingSession{
		Token:     "tok-winner",
		UserID:    "user-1",
		Step:      types.StepCreated,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	m.expectSpan("onboarding.Service.Create")
	m.store.EXPECT().GetActiveOnboardingSessionByUserID(gomock.Any(), "user-1").Return(nil, storage.ErrNotFound)
	m.store.EXPECT().CreateOnboardingSession(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
	m.store.EXPECT().GetActiveOnboardingSessionByUserID(gomock.Any(), "user-1").Return(winner, nil)

	sess, err := svc.Create(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token != "tok-winner" {
		t.Errorf("expected the concurrent winner's session, got token %s", sess.Token)
	}
}

func TestService_CreateAbandonsExpiredSession(t *testing.T) {
	svc, m := setupService(t)

	expired := &types.OnboardingSession{
		ID:        "s1",
		Token:     "tok-old",
		UserID:    "user-1",
		Step:      types.StepOrgDetails,
		Version:   2,
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	m.expectSpan("onboarding.Service.Create")
	m.store.EXPECT().GetActiveOnboardingSessionByUserID(gomock.Any(), "user-1").Return(expired, nil)
	m.store.EXPECT().AdvanceOnboardingSession(gomock.Any(), expired, types.StepOrgDetails, int64(2)).Return(nil)
	m.events.EXPECT().Publish(gomock.Any(), events.SubjectOnboardingAbandoned, gomock.Any()).Return(nil)
	m.store.EXPECT().CreateOnboardingSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, s *types.OnboardingSession) (*types.OnboardingSession, error) {
			return s, nil
		},
	)

	sess, err := svc.Create(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token == "tok-old" {
		t.Error("expected a fresh session, not the expired one")
	}
	if expired.Step != types.StepAbandoned {
		t.Errorf("expired session must be abandoned, got %s", expired.Step)
	}
}

func TestService_Advance(t *testing.T) {
	testCases := []struct {
		name        string
		currentStep types.OnboardingStep
		targetStep  types.OnboardingStep
		payload     string
		expectWrite bool
		expectedErr error
	}{
		{
			name:        "immediate successor succeeds",
			currentStep: types.StepOrgDetails,
			targetStep:  types.StepPlanSelected,
			payload:     `{"tier":"GROWTH"}`,
			expectWrite: true,
		},
		{
			name:        "skipping a step is rejected",
			currentStep: types.StepOrgDetails,
			targetStep:  types.StepPaymentPending,
			payload:     `{"payment_ref":"pay_1"}`,
			expectedErr: ErrInvalidTransition,
		},
		{
			name:        "repeating the current step is rejected",
			currentStep: types.StepOrgDetails,
			targetStep:  types.StepOrgDetails,
			payload:     `{"name":"Acme"}`,
			expectedErr: ErrInvalidTransition,
		},
		{
			name:        "moving backwards is rejected",
			currentStep: types.StepPlanSelected,
			targetStep:  types.StepOrgDetails,
			payload:     `{"name":"Acme"}`,
			expectedErr: ErrInvalidTransition,
		},
		{
			name:        "terminal steps are not reachable via advance",
			currentStep: types.StepPaymentPending,
			targetStep:  types.StepCompleted,
			expectedErr: ErrInvalidTransition,
		},
		{
			name:        "invalid payload is rejected before any write",
			currentStep: types.StepCreated,
			targetStep:  types.StepOrgDetails,
			payload:     `{"industry":"retail"}`,
			expectedErr: ErrValidation,
		},
		{
			name:        "missing payload is rejected",
			currentStep: types.StepCreated,
			targetStep:  types.StepOrgDetails,
			expectedErr: ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := setupService(t)

			sess := &types.OnboardingSession{
				Token:     "tok-1",
				UserID:    "user-1",
				Step:      tc.currentStep,
				Version:   3,
				ExpiresAt: time.Now().Add(time.Hour),
			}

			m.expectSpan("onboarding.Service.Advance")
			m.store.EXPECT().GetOnboardingSessionByToken(gomock.Any(), "tok-1").Return(sess, nil)
			if tc.expectWrite {
				m.store.EXPECT().AdvanceOnboardingSession(gomock.Any(), sess, tc.currentStep, int64(3)).Return(nil)
			}

			got, err := svc.Advance(context.Background(), "tok-1", tc.targetStep, json.RawMessage(tc.payload))

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Step != tc.targetStep {
				t.Errorf("expected step %s, got %s", tc.targetStep, got.Step)
			}
		})
	}
}

func TestService_AdvanceMergesPayload(t *testing.T) {
	svc, m := setupService(t)

	sess := &types.OnboardingSession{
		Token:     "tok-1",
		UserID:    "user-1",
		Step:      types.StepCreated,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	m.expectSpan("onboarding.Service.Advance")
	m.store.EXPECT().GetOnboardingSessionByToken(gomock.Any(), "tok-1").Return(sess, nil)
	m.store.EXPECT().AdvanceOnboardingSession(gomock.Any(), sess, types.StepCreated, int64(0)).Return(nil)

	got, err := svc.Advance(context.Background(), "tok-1", types.StepOrgDetails, json.RawMessage(`{"name":"Acme Inc.","industry":"retail"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OrgName != "Acme Inc." {
		t.Errorf("expected organization name merged, got %q", got.OrgName)
	}
	if got.OrgIndustry != "retail" {
		t.Errorf("expected industry merged, got %q", got.OrgIndustry)
	}
}

// A concurrent writer that advanced the session first makes the conditional
// update match zero rows; the loser must see InvalidTransition.
func TestService_AdvanceConcurrentLoser(t *testing.T) {
	svc, m := setupService(t)

	sess := &types.OnboardingSession{
		Token:     "tok-1",
		UserID:    "user-1",
		Step:      types.StepCreated,
		Version:   1,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	m.expectSpan("onboarding.Service.Advance")
	m.store.EXPECT().GetOnboardingSessionByToken(gomock.Any(), "tok-1").Return(sess, nil)
	m.store.EXPECT().AdvanceOnboardingSession(gomock.Any(), sess, types.StepCreated, int64(1)).Return(storage.ErrStaleUpdate)

	_, err := svc.Advance(context.Background(), "tok-1", types.StepOrgDetails, json.RawMessage(`{"name":"Acme"}`))
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func completableSession() *types.OnboardingSession {
	return &types.OnboardingSession{
		ID:         "s1",
		Token:      "tok-1",
		UserID:     "user-1",
		Step:       types.StepPaymentPending,
		OrgName:    "Acme Inc.",
		PlanTier:   "GROWTH",
		PaymentRef: "pay_123",
		Version:    3,
		ExpiresAt:  time.Now().Add(time.Hour),
	}
}

func TestService_Complete(t *testing.T) {
	svc, m := setupService(t)

	sess := completableSession()

	m.expectSpan("onboarding.Service.Complete")
	m.store.EXPECT().GetOnboardingSessionByToken(gomock.Any(), "tok-1").Return(sess, nil)
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
	m.store.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, o *types.Organization) (*types.Organization, error) {
			if o.Slug != "acme-inc" {
				t.Errorf("expected slug acme-inc, got %s", o.Slug)
			}
			o.ID = "org-1"
			o.CreatedAt = time.Now()
			return o, nil
		},
	)
	m.store.EXPECT().AddMember(gomock.Any(), "org-1", "user-1", types.RoleOwner).Return("m1", nil)
	m.store.EXPECT().AdvanceOnboardingSession(gomock.Any(), sess, types.StepPaymentPending, int64(3)).Return(nil)
	m.authz.EXPECT().AssignOrganizationOwner(gomock.Any(), "org-1", "user-1").Return(nil)
	m.events.EXPECT().Publish(gomock.Any(), events.SubjectOrganizationCreated, gomock.Any()).Return(nil)
	m.events.EXPECT().Publish(gomock.Any(), events.SubjectOnboardingCompleted, gomock.Any()).Return(nil)
	m.security.EXPECT().OnboardingCompleted("user-1", "org-1")

	org, err := svc.Complete(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if org.ID != "org-1" {
		t.Errorf("expected org-1, got %s", org.ID)
	}
	if sess.Step != types.StepCompleted {
		t.Errorf("session must be COMPLETED, got %s", sess.Step)
	}
	if sess.OrganizationID != "org-1" {
		t.Errorf("session must reference the organization, got %q", sess.OrganizationID)
	}
}

func TestService_CompleteRequiresPaymentPending(t *testing.T) {
	svc, m := setupService(t)

	sess := completableSession()
	sess.Step = types.StepPlanSelected

	m.expectSpan("onboarding.Service.Complete")
	m.store.EXPECT().GetOnboardingSessionByToken(gomock.Any(), "tok-1").Return(sess, nil)

	_, err := svc.Complete(context.Background(), "tok-1")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestService_CompleteMissingPayload(t *testing.T) {
	svc, m := setupService(t)

	sess := completableSession()
	sess.PaymentRef = ""

	m.expectSpan("onboarding.Service.Complete")
	m.store.EXPECT().GetOnboardingSessionByToken(gomock.Any(), "tok-1").Return(sess, nil)

	_, err := svc.Complete(context.Background(), "tok-1")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestService_CompleteSlugCollisionRetry(t *testing.T) {
	svc, m := setupService(t)

	sess := completableSession()

	m.expectSpan("onboarding.Service.Complete")
	m.store.EXPECT().GetOnboardingSessionByToken(gomock.Any(), "tok-1").Return(sess, nil)
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
	m.store.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
	m.store.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, o *types.Organization) (*types.Organization, error) {
			if o.Slug == "acme-inc" {
				t.Error("retry must use a suffixed slug")
			}
			if len(o.Slug) > maxSlugLength {
				t.Errorf("suffixed slug %q exceeds %d characters", o.Slug, maxSlugLength)
			}
			o.ID = "org-1"
			return o, nil
		},
	)
	m.store.EXPECT().AddMember(gomock.Any(), "org-1", "user-1", types.RoleOwner).Return("m1", nil)
	m.store.EXPECT().AdvanceOnboardingSession(gomock.Any(), sess, types.StepPaymentPending, int64(3)).Return(nil)
	m.authz.EXPECT().AssignOrganizationOwner(gomock.Any(), "org-1", "user-1").Return(nil)
	m.events.EXPECT().Publish(gomock.Any(), events.SubjectOrganizationCreated, gomock.Any()).Return(nil)
	m.events.EXPECT().Publish(gomock.Any(), events.SubjectOnboardingCompleted, gomock.Any()).Return(nil)
	m.security.EXPECT().OnboardingCompleted("user-1", "org-1")

	if _, err := svc.Complete(context.Background(), "tok-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_CompleteSlugRetryExhausted(t *testing.T) {
	svc, m := setupService(t)

	sess := completableSession()

	m.expectSpan("onboarding.Service.Complete")
	m.store.EXPECT().GetOnboardingSessionByToken(gomock.Any(), "tok-1").Return(sess, nil)
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
	m.store.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey).Times(2)

	_, err := svc.Complete(context.Background(), "tok-1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_GetByToken(t *testing.T) {
	testCases := []struct {
		name        string
		session     *types.OnboardingSession
		storeErr    error
		expectAband bool
		expectedErr error
	}{
		{
			name: "live session",
			session: &types.OnboardingSession{
				Token:     "tok-1",
				Step:      types.StepOrgDetails,
				ExpiresAt: time.Now().Add(time.Hour),
			},
		},
		{
			name:        "unknown token",
			storeErr:    storage.ErrNotFound,
			expectedErr: ErrNotFound,
		},
		{
			name: "completed session is single use",
			session: &types.OnboardingSession{
				Token:     "tok-1",
				Step:      types.StepCompleted,
				ExpiresAt: time.Now().Add(time.Hour),
			},
			expectedErr: ErrNotFound,
		},
		{
			name: "abandoned session is gone",
			session: &types.OnboardingSession{
				Token:     "tok-1",
				Step:      types.StepAbandoned,
				ExpiresAt: time.Now().Add(time.Hour),
			},
			expectedErr: ErrNotFound,
		},
		{
			name: "expired session is abandoned on touch",
			session: &types.OnboardingSession{
				Token:     "tok-1",
				UserID:    "user-1",
				Step:      types.StepOrgDetails,
				ExpiresAt: time.Now().Add(-time.Minute),
			},
			expectAband: true,
			expectedErr: ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := setupService(t)

			m.expectSpan("onboarding.Service.GetByToken")
			m.store.EXPECT().GetOnboardingSessionByToken(gomock.Any(), "tok-1").Return(tc.session, tc.storeErr)
			if tc.expectAband {
				m.store.EXPECT().AdvanceOnboardingSession(gomock.Any(), tc.session, types.StepOrgDetails, int64(0)).Return(nil)
				m.events.EXPECT().Publish(gomock.Any(), events.SubjectOnboardingAbandoned, gomock.Any()).Return(nil)
			}

			sess, err := svc.GetByToken(context.Background(), "tok-1")

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sess.Token != "tok-1" {
				t.Errorf("expected tok-1, got %s", sess.Token)
			}
		})
	}
}

func TestService_ExpireStale(t *testing.T) {
	svc, m := setupService(t)

	m.expectSpan("onboarding.Service.ExpireStale")
	m.store.EXPECT().SweepExpiredOnboardingSessions(gomock.Any(), gomock.Any()).Return(int64(4), nil)

	count, err := svc.ExpireStale(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 abandoned sessions, got %d", count)
	}
}

// In-memory doubles for the full funnel test below.

type memStore struct {
	mu       sync.Mutex
	nextID   int
	orgs     map[string]*types.Organization
	members  []*types.Membership
	sessions map[string]*types.OnboardingSession
}

func newMemStore() *memStore {
	return &memStore{
		orgs:     map[string]*types.Organization{},
		sessions: map[string]*types.OnboardingSession{},
	}
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *memStore) CreateOrganization(_ context.Context, o *types.Organization) (*types.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgs[o.Slug]; ok {
		return nil, storage.ErrDuplicateKey
	}
	stored := *o
	stored.ID = s.id("org")
	stored.CreatedAt = time.Now()
	s.orgs[o.Slug] = &stored

	out := stored
	return &out, nil
}

func (s *memStore) AddMember(_ context.Context, organizationID, userID string, role types.Role) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &types.Membership{
		ID:             s.id("m"),
		OrganizationID: organizationID,
		UserID:         userID,
		Role:           role,
		CreatedAt:      time.Now(),
	}
	s.members = append(s.members, m)
	return m.ID, nil
}

func (s *memStore) CreateOnboardingSession(_ context.Context, sess *types.OnboardingSession) (*types.OnboardingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sessions {
		if existing.UserID == sess.UserID && !existing.Step.Terminal() {
			return nil, storage.ErrDuplicateKey
		}
	}
	stored := *sess
	stored.ID = s.id("s")
	s.sessions[sess.Token] = &stored

	out := stored
	return &out, nil
}

func (s *memStore) GetOnboardingSessionByToken(_ context.Context, token string) (*types.OnboardingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[token]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *stored
	return &out, nil
}

func (s *memStore) GetActiveOnboardingSessionByUserID(_ context.Context, userID string) (*types.OnboardingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stored := range s.sessions {
		if stored.UserID == userID && !stored.Step.Terminal() {
			out := *stored
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) AdvanceOnboardingSession(_ context.Context, sess *types.OnboardingSession, fromStep types.OnboardingStep, fromVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[sess.Token]
	if !ok || stored.Step != fromStep || stored.Version != fromVersion {
		return storage.ErrStaleUpdate
	}

	updated := *sess
	updated.ID = stored.ID
	updated.Version = fromVersion + 1
	s.sessions[sess.Token] = &updated

	sess.Version = fromVersion + 1
	return nil
}

func (s *memStore) SweepExpiredOnboardingSessions(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, stored := range s.sessions {
		if !stored.Step.Terminal() && stored.Expired(now) {
			stored.Step = types.StepAbandoned
			stored.Version++
			count++
		}
	}
	return count, nil
}

type memTx struct{}

func (memTx) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type memAuthz struct {
	owners []string
}

func (a *memAuthz) AssignOrganizationOwner(_ context.Context, organizationID, userID string) error {
	a.owners = append(a.owners, userID+"@"+organizationID)
	return nil
}

type memEvents struct {
	subjects []string
}

func (e *memEvents) Publish(_ context.Context, subject string, _ any) error {
	e.subjects = append(e.subjects, subject)
	return nil
}

// The full funnel: create, advance through every step, complete, then verify
// the organization, the owner membership and the session's single-use nature.
func TestOnboardingFunnel(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := newMemStore()
	authz := &memAuthz{}
	publisher := &memEvents{}

	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	ctx := context.Background()
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(ctx, trace.SpanFromContext(ctx)).AnyTimes()
	mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
	mockSecurity.EXPECT().OnboardingCompleted("user-1", gomock.Any())

	svc := NewService(memTx{}, store, authz, publisher, 24*time.Hour, mockTracer, mockMonitor, mockLogger)

	sess, err := svc.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.Step != types.StepCreated {
		t.Fatalf("expected CREATED, got %s", sess.Step)
	}

	again, err := svc.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if again.Token != sess.Token {
		t.Error("create must be idempotent for an active session")
	}

	steps := []struct {
		step    types.OnboardingStep
		payload string
	}{
		{types.StepOrgDetails, `{"name":"Acme Inc.","industry":"retail"}`},
		{types.StepPlanSelected, `{"tier":"GROWTH"}`},
		{types.StepPaymentPending, `{"payment_ref":"pay_123"}`},
	}
	for _, s := range steps {
		if _, err := svc.Advance(ctx, sess.Token, s.step, json.RawMessage(s.payload)); err != nil {
			t.Fatalf("advance to %s: %v", s.step, err)
		}
	}

	org, err := svc.Complete(ctx, sess.Token)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if org.Slug != "acme-inc" {
		t.Errorf("expected slug acme-inc, got %s", org.Slug)
	}

	if len(store.members) != 1 {
		t.Fatalf("expected one membership, got %d", len(store.members))
	}
	if store.members[0].Role != types.RoleOwner || store.members[0].UserID != "user-1" {
		t.Errorf("expected an OWNER membership for user-1, got %+v", store.members[0])
	}
	if len(authz.owners) != 1 {
		t.Errorf("expected one owner tuple, got %d", len(authz.owners))
	}

	var created, completed bool
	for _, subject := range publisher.subjects {
		switch subject {
		case events.SubjectOrganizationCreated:
			created = true
		case events.SubjectOnboardingCompleted:
			completed = true
		}
	}
	if !created || !completed {
		t.Errorf("expected created and completed events, got %v", publisher.subjects)
	}

	// Completed sessions are single-use.
	if _, err := svc.GetByToken(ctx, sess.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for completed session, got %v", err)
	}
	if _, err := svc.Advance(ctx, sess.Token, types.StepOrgDetails, json.RawMessage(`{"name":"x"}`)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound advancing completed session, got %v", err)
	}

	// A fresh create starts a brand new funnel.
	fresh, err := svc.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("create after completion: %v", err)
	}
	if fresh.Token == sess.Token {
		t.Error("expected a new session after completion")
	}
}
