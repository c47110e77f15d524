// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/platform-service/internal/events"
	"github.com/canonical/platform-service/internal/storage"
	"github.com/canonical/platform-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organization -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

type orgMocks struct {
	store    *MockStorageInterface
	authz    *MockAuthzInterface
	identity *MockIdentityClientInterface
	events   *MockEventsInterface
	tracer   *MockTracingInterface
	logger   *MockLoggerInterface
}

func setupService(t *testing.T) (*Service, *orgMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &orgMocks{
		store:    NewMockStorageInterface(ctrl),
		authz:    NewMockAuthzInterface(ctrl),
		identity: NewMockIdentityClientInterface(ctrl),
		events:   NewMockEventsInterface(ctrl),
		tracer:   NewMockTracingInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
	}

	monitor := NewMockMonitorInterface(ctrl)

	svc := NewService(m.store, m.authz, m.identity, m.events, "24h", m.tracer, monitor, m.logger)

	return svc, m
}

func (m *orgMocks) expectSpan(name string) {
	ctx := context.Background()
	m.tracer.EXPECT().Start(gomock.Any(), name).Return(ctx, trace.SpanFromContext(ctx))
}

func TestService_InviteMember(t *testing.T) {
	testCases := []struct {
		name       string
		setupMocks func(*orgMocks)
		expectErr  bool
	}{
		{
			name: "new identity is provisioned",
			setupMocks: func(m *orgMocks) {
				m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), "new@example.com").Return("", nil)
				m.logger.EXPECT().Infof(gomock.Any(), gomock.Any())
				m.identity.EXPECT().CreateIdentity(gomock.Any(), "new@example.com").Return("id-1", nil)
				m.store.EXPECT().AddMember(gomock.Any(), "org-1", "id-1", types.RoleMember).Return("m1", nil)
				m.authz.EXPECT().AssignRole(gomock.Any(), "org-1", "id-1", types.RoleMember).Return(nil)
				m.events.EXPECT().Publish(gomock.Any(), events.SubjectMemberAdded, gomock.Any()).Return(nil)
				m.identity.EXPECT().CreateRecoveryLink(gomock.Any(), "id-1", "24h").Return("https://link", "CODE", nil)
			},
		},
		{
			name: "existing identity is reused",
			setupMocks: func(m *orgMocks) {
				m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), "new@example.com").Return("id-1", nil)
				m.store.EXPECT().AddMember(gomock.Any(), "org-1", "id-1", types.RoleMember).Return("m1", nil)
				m.authz.EXPECT().AssignRole(gomock.Any(), "org-1", "id-1", types.RoleMember).Return(nil)
				m.events.EXPECT().Publish(gomock.Any(), events.SubjectMemberAdded, gomock.Any()).Return(nil)
				m.identity.EXPECT().CreateRecoveryLink(gomock.Any(), "id-1", "24h").Return("https://link", "CODE", nil)
			},
		},
		{
			name: "existing member gets a re-invite without a new tuple",
			setupMocks: func(m *orgMocks) {
				m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), "new@example.com").Return("id-1", nil)
				m.store.EXPECT().AddMember(gomock.Any(), "org-1", "id-1", types.RoleMember).Return("", storage.ErrDuplicateKey)
				m.identity.EXPECT().CreateRecoveryLink(gomock.Any(), "id-1", "24h").Return("https://link", "CODE", nil)
			},
		},
		{
			name: "identity lookup failure",
			setupMocks: func(m *orgMocks) {
				m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), "new@example.com").Return("", errors.New("kratos down"))
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := setupService(t)

			m.expectSpan("organization.Service.InviteMember")
			tc.setupMocks(m)

			invitation, err := svc.InviteMember(context.Background(), "org-1", "new@example.com", types.RoleMember)

			if tc.expectErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if invitation.UserID != "id-1" {
				t.Errorf("expected id-1, got %s", invitation.UserID)
			}
			if invitation.Link != "https://link" || invitation.Code != "CODE" {
				t.Errorf("unexpected invitation %+v", invitation)
			}
		})
	}
}

func TestService_UpdateMemberRole(t *testing.T) {
	svc, m := setupService(t)

	members := []*types.Membership{
		{ID: "m1", OrganizationID: "org-1", UserID: "user-1", Role: types.RoleMember},
	}

	m.expectSpan("organization.Service.UpdateMemberRole")
	m.store.EXPECT().ListMembersByOrganizationID(gomock.Any(), "org-1").Return(members, nil)
	m.authz.EXPECT().AssignRole(gomock.Any(), "org-1", "user-1", types.RoleAdmin).Return(nil)
	m.store.EXPECT().UpdateMemberRole(gomock.Any(), "org-1", "user-1", types.RoleAdmin).Return(nil)
	m.authz.EXPECT().RemoveRole(gomock.Any(), "org-1", "user-1", types.RoleMember).Return(nil)
	m.identity.EXPECT().GetIdentity(gomock.Any(), "user-1").Return(&types.User{ID: "user-1", Email: "u@example.com"}, nil)

	user, err := svc.UpdateMemberRole(context.Background(), "org-1", "user-1", types.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != types.RoleAdmin {
		t.Errorf("expected admin, got %s", user.Role)
	}
	if user.Email != "u@example.com" {
		t.Errorf("expected email, got %q", user.Email)
	}
}

func TestService_UpdateMemberRoleSameRole(t *testing.T) {
	svc, m := setupService(t)

	members := []*types.Membership{
		{ID: "m1", OrganizationID: "org-1", UserID: "user-1", Role: types.RoleAdmin},
	}

	m.expectSpan("organization.Service.UpdateMemberRole")
	m.store.EXPECT().ListMembersByOrganizationID(gomock.Any(), "org-1").Return(members, nil)
	m.identity.EXPECT().GetIdentity(gomock.Any(), "user-1").Return(&types.User{ID: "user-1", Email: "u@example.com"}, nil)

	user, err := svc.UpdateMemberRole(context.Background(), "org-1", "user-1", types.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != types.RoleAdmin {
		t.Errorf("expected admin, got %s", user.Role)
	}
}

func TestService_UpdateMemberRoleNotFound(t *testing.T) {
	svc, m := setupService(t)

	m.expectSpan("organization.Service.UpdateMemberRole")
	m.store.EXPECT().ListMembersByOrganizationID(gomock.Any(), "org-1").Return(nil, nil)

	_, err := svc.UpdateMemberRole(context.Background(), "org-1", "ghost", types.RoleAdmin)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_RemoveMember(t *testing.T) {
	svc, m := setupService(t)

	members := []*types.Membership{
		{ID: "m1", OrganizationID: "org-1", UserID: "user-1", Role: types.RoleMember},
	}

	m.expectSpan("organization.Service.RemoveMember")
	m.store.EXPECT().ListMembersByOrganizationID(gomock.Any(), "org-1").Return(members, nil)
	m.store.EXPECT().RemoveMember(gomock.Any(), "org-1", "user-1").Return(nil)
	m.authz.EXPECT().RemoveRole(gomock.Any(), "org-1", "user-1", types.RoleMember).Return(nil)
	m.events.EXPECT().Publish(gomock.Any(), events.SubjectMemberRemoved, gomock.Any()).Return(nil)

	if err := svc.RemoveMember(context.Background(), "org-1", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_RemoveMemberNotFound(t *testing.T) {
	svc, m := setupService(t)

	m.expectSpan("organization.Service.RemoveMember")
	m.store.EXPECT().ListMembersByOrganizationID(gomock.Any(), "org-1").Return(nil, nil)

	if err := svc.RemoveMember(context.Background(), "org-1", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_CreateOrganization(t *testing.T) {
	testCases := []struct {
		name        string
		orgName     string
		slug        string
		storeErr    error
		expectedErr error
	}{
		{
			name:    "valid",
			orgName: "Acme Inc.",
			slug:    "acme-inc",
		},
		{
			name:        "missing name",
			orgName:     "",
			slug:        "acme",
			expectedErr: ErrValidation,
		},
		{
			name:        "bad slug",
			orgName:     "Acme",
			slug:        "Acme Inc!",
			expectedErr: ErrValidation,
		},
		{
			name:        "slug taken",
			orgName:     "Acme",
			slug:        "acme",
			storeErr:    storage.ErrDuplicateKey,
			expectedErr: ErrConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := setupService(t)

			m.expectSpan("organization.Service.CreateOrganization")
			if tc.expectedErr == nil || errors.Is(tc.expectedErr, ErrConflict) {
				m.store.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, o *types.Organization) (*types.Organization, error) {
						if tc.storeErr != nil {
							return nil, tc.storeErr
						}
						o.ID = "org-1"
						return o, nil
					},
				)
			}

			org, err := svc.CreateOrganization(context.Background(), tc.orgName, tc.slug)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !org.Enabled {
				t.Error("admin created organizations must be enabled")
			}
			if org.SubscriptionStatus != "ACTIVE" {
				t.Errorf("expected ACTIVE, got %s", org.SubscriptionStatus)
			}
		})
	}
}

func TestService_DeleteOrganization(t *testing.T) {
	svc, m := setupService(t)

	m.expectSpan("organization.Service.DeleteOrganization")
	m.store.EXPECT().DeleteOrganization(gomock.Any(), "org-1").Return(nil)
	m.authz.EXPECT().DeleteOrganization(gomock.Any(), "org-1").Return(errors.New("fga down"))
	m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any())

	// Tuple cleanup failures must not fail the delete.
	if err := svc.DeleteOrganization(context.Background(), "org-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_ProvisionUserExistingMember(t *testing.T) {
	svc, m := setupService(t)

	m.expectSpan("organization.Service.ProvisionUser")
	m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), "u@example.com").Return("id-1", nil)
	m.store.EXPECT().AddMember(gomock.Any(), "org-1", "id-1", types.RoleMember).Return("", storage.ErrDuplicateKey)

	err := svc.ProvisionUser(context.Background(), "org-1", "u@example.com", types.RoleMember)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_ListOrganizationUsers(t *testing.T) {
	svc, m := setupService(t)

	members := []*types.Membership{
		{ID: "m1", OrganizationID: "org-1", UserID: "user-1", Role: types.RoleOwner},
		{ID: "m2", OrganizationID: "org-1", UserID: "user-2", Role: types.RoleMember},
	}

	m.expectSpan("organization.Service.ListOrganizationUsers")
	m.store.EXPECT().ListMembersByOrganizationID(gomock.Any(), "org-1").Return(members, nil)
	m.identity.EXPECT().GetIdentity(gomock.Any(), "user-1").Return(&types.User{ID: "user-1", Email: "a@example.com"}, nil)
	m.identity.EXPECT().GetIdentity(gomock.Any(), "user-2").Return(nil, errors.New("gone"))
	m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())

	users, err := svc.ListOrganizationUsers(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Email != "a@example.com" {
		t.Errorf("expected resolved email, got %q", users[0].Email)
	}
	if users[1].Email != "unknown" {
		t.Errorf("expected unknown email for missing identity, got %q", users[1].Email)
	}
}

func TestService_GetOrganizationNotFound(t *testing.T) {
	svc, m := setupService(t)

	m.expectSpan("organization.Service.GetOrganization")
	m.store.EXPECT().GetOrganizationByID(gomock.Any(), "ghost").Return(nil, storage.ErrNotFound)

	if _, err := svc.GetOrganization(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
