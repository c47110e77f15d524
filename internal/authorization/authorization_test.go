// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/platform-service/internal/openfga"
	"github.com/canonical/platform-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

func setupAuthorizer(t *testing.T) (*Authorizer, *MockAuthzClientInterface, *MockTracingInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockClient := NewMockAuthzClientInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	return NewAuthorizer(mockClient, mockTracer, mockMonitor, mockLogger), mockClient, mockTracer
}

func expectSpan(mockTracer *MockTracingInterface, name string) {
	mockTracer.EXPECT().Start(gomock.Any(), name).
		Return(context.Background(), trace.SpanFromContext(context.Background()))
}

func TestAuthorizer_Check(t *testing.T) {
	user := "user:123"
	relation := "member"
	object := "organization:456"
	contextualTuples := []openfga.Tuple{*openfga.NewTuple("user:789", "owner", "organization:456")}

	testCases := []struct {
		name           string
		setupMocks     func(*MockAuthzClientInterface)
		expectedResult bool
		expectedErr    bool
	}{
		{
			name: "success - allowed",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), user, relation, object, contextualTuples).Return(true, nil)
			},
			expectedResult: true,
			expectedErr:    false,
		},
		{
			name: "success - not allowed",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), user, relation, object, contextualTuples).Return(false, nil)
			},
			expectedResult: false,
			expectedErr:    false,
		},
		{
			name: "error - client error",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), user, relation, object, contextualTuples).Return(false, errors.New("client error"))
			},
			expectedResult: false,
			expectedErr:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockTracer := setupAuthorizer(t)

			expectSpan(mockTracer, "authorization.Authorizer.Check")
			tc.setupMocks(mockClient)

			result, err := a.Check(context.Background(), user, relation, object, contextualTuples...)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if result != tc.expectedResult {
				t.Errorf("expected result %v, got %v", tc.expectedResult, result)
			}
		})
	}
}

func TestAuthorizer_FilterObjects(t *testing.T) {
	user := "user:123"
	relation := "member"
	objectType := "organization"

	testCases := []struct {
		name           string
		allowed        []string
		candidates     []string
		expectedResult []string
	}{
		{
			name:           "intersection",
			allowed:        []string{"organization:1", "organization:2"},
			candidates:     []string{"organization:2", "organization:3"},
			expectedResult: []string{"organization:2"},
		},
		{
			name:           "no overlap",
			allowed:        []string{"organization:1"},
			candidates:     []string{"organization:9"},
			expectedResult: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockTracer := setupAuthorizer(t)

			expectSpan(mockTracer, "authorization.Authorizer.FilterObjects")
			expectSpan(mockTracer, "authorization.Authorizer.ListObjects")
			mockClient.EXPECT().ListObjects(gomock.Any(), user, relation, objectType).Return(tc.allowed, nil)

			result, err := a.FilterObjects(context.Background(), user, relation, objectType, tc.candidates)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result) != len(tc.expectedResult) {
				t.Fatalf("expected %v, got %v", tc.expectedResult, result)
			}
			for i := range result {
				if result[i] != tc.expectedResult[i] {
					t.Errorf("expected %v, got %v", tc.expectedResult, result)
				}
			}
		})
	}
}

func TestAuthorizer_ValidateModel(t *testing.T) {
	testCases := []struct {
		name        string
		setupMocks  func(*MockAuthzClientInterface)
		expectedErr error
	}{
		{
			name: "success - model matches",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			expectedErr: nil,
		},
		{
			name: "error - model mismatch",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			expectedErr: ErrInvalidAuthModel,
		},
		{
			name: "error - client error",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, errors.New("client error"))
			},
			expectedErr: errors.New("client error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockTracer := setupAuthorizer(t)

			expectSpan(mockTracer, "authorization.Authorizer.ValidateModel")
			tc.setupMocks(mockClient)

			err := a.ValidateModel(context.Background())

			if tc.expectedErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			} else if err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestAuthorizer_RoleTuples(t *testing.T) {
	organizationID := "456"
	userID := "123"

	testCases := []struct {
		name       string
		spanName   string
		setupMocks func(*MockAuthzClientInterface)
		call       func(*Authorizer) error
	}{
		{
			name:     "assign owner",
			spanName: "authorization.Authorizer.AssignOrganizationOwner",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple(userID), OWNER_RELATION, OrganizationTuple(organizationID)).Return(nil)
			},
			call: func(a *Authorizer) error {
				return a.AssignOrganizationOwner(context.Background(), organizationID, userID)
			},
		},
		{
			name:     "assign admin",
			spanName: "authorization.Authorizer.AssignOrganizationAdmin",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple(userID), ADMIN_RELATION, OrganizationTuple(organizationID)).Return(nil)
			},
			call: func(a *Authorizer) error {
				return a.AssignOrganizationAdmin(context.Background(), organizationID, userID)
			},
		},
		{
			name:     "assign member",
			spanName: "authorization.Authorizer.AssignOrganizationMember",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple(userID), MEMBER_RELATION, OrganizationTuple(organizationID)).Return(nil)
			},
			call: func(a *Authorizer) error {
				return a.AssignOrganizationMember(context.Background(), organizationID, userID)
			},
		},
		{
			name:     "remove owner",
			spanName: "authorization.Authorizer.RemoveOrganizationOwner",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().DeleteTuple(gomock.Any(), UserTuple(userID), OWNER_RELATION, OrganizationTuple(organizationID)).Return(nil)
			},
			call: func(a *Authorizer) error {
				return a.RemoveOrganizationOwner(context.Background(), organizationID, userID)
			},
		},
		{
			name:     "remove admin",
			spanName: "authorization.Authorizer.RemoveOrganizationAdmin",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().DeleteTuple(gomock.Any(), UserTuple(userID), ADMIN_RELATION, OrganizationTuple(organizationID)).Return(nil)
			},
			call: func(a *Authorizer) error {
				return a.RemoveOrganizationAdmin(context.Background(), organizationID, userID)
			},
		},
		{
			name:     "remove member",
			spanName: "authorization.Authorizer.RemoveOrganizationMember",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().DeleteTuple(gomock.Any(), UserTuple(userID), MEMBER_RELATION, OrganizationTuple(organizationID)).Return(nil)
			},
			call: func(a *Authorizer) error {
				return a.RemoveOrganizationMember(context.Background(), organizationID, userID)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockTracer := setupAuthorizer(t)

			expectSpan(mockTracer, tc.spanName)
			tc.setupMocks(mockClient)

			if err := tc.call(a); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthorizer_AssignRole(t *testing.T) {
	organizationID := "456"
	userID := "123"

	testCases := []struct {
		name        string
		role        types.Role
		spanNames   []string
		setupMocks  func(*MockAuthzClientInterface)
		expectedErr bool
	}{
		{
			name:      "owner",
			role:      types.RoleOwner,
			spanNames: []string{"authorization.Authorizer.AssignRole", "authorization.Authorizer.AssignOrganizationOwner"},
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple(userID), OWNER_RELATION, OrganizationTuple(organizationID)).Return(nil)
			},
		},
		{
			name:      "admin",
			role:      types.RoleAdmin,
			spanNames: []string{"authorization.Authorizer.AssignRole", "authorization.Authorizer.AssignOrganizationAdmin"},
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple(userID), ADMIN_RELATION, OrganizationTuple(organizationID)).Return(nil)
			},
		},
		{
			name:      "member",
			role:      types.RoleMember,
			spanNames: []string{"authorization.Authorizer.AssignRole", "authorization.Authorizer.AssignOrganizationMember"},
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple(userID), MEMBER_RELATION, OrganizationTuple(organizationID)).Return(nil)
			},
		},
		{
			name:        "unknown role rejected",
			role:        types.Role(99),
			spanNames:   []string{"authorization.Authorizer.AssignRole"},
			setupMocks:  func(mockClient *MockAuthzClientInterface) {},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockTracer := setupAuthorizer(t)

			for _, spanName := range tc.spanNames {
				expectSpan(mockTracer, spanName)
			}
			tc.setupMocks(mockClient)

			err := a.AssignRole(context.Background(), organizationID, userID, tc.role)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthorizer_CheckOrganizationAccess(t *testing.T) {
	organizationID := "456"
	userID := "123"

	a, mockClient, mockTracer := setupAuthorizer(t)

	expectSpan(mockTracer, "authorization.Authorizer.CheckOrganizationAccess")
	expectSpan(mockTracer, "authorization.Authorizer.Check")
	mockClient.EXPECT().Check(gomock.Any(), UserTuple(userID), CAN_VIEW_PERMISSION, OrganizationTuple(organizationID)).Return(true, nil)

	allowed, err := a.CheckOrganizationAccess(context.Background(), organizationID, userID, CAN_VIEW_PERMISSION)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("expected access to be allowed")
	}
}

func TestAuthorizer_DeleteOrganization(t *testing.T) {
	organizationID := "456"

	tupleKey := fga.TupleKey{User: "user:123", Relation: OWNER_RELATION, Object: OrganizationTuple(organizationID)}

	testCases := []struct {
		name        string
		setupMocks  func(*MockAuthzClientInterface)
		expectedErr bool
	}{
		{
			name: "success - single page",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().ReadTuples(gomock.Any(), "", "", OrganizationTuple(organizationID), "").
					Return(&client.ClientReadResponse{
						Tuples:            []fga.Tuple{{Key: tupleKey}},
						ContinuationToken: "",
					}, nil)
				mockClient.EXPECT().DeleteTuples(gomock.Any(), *openfga.NewTuple(tupleKey.User, tupleKey.Relation, tupleKey.Object)).Return(nil)
			},
		},
		{
			name: "success - no tuples",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().ReadTuples(gomock.Any(), "", "", OrganizationTuple(organizationID), "").
					Return(&client.ClientReadResponse{Tuples: []fga.Tuple{}}, nil)
			},
		},
		{
			name: "error - read fails",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().ReadTuples(gomock.Any(), "", "", OrganizationTuple(organizationID), "").
					Return(nil, errors.New("read error"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockAuthzClientInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

			a := NewAuthorizer(mockClient, mockTracer, mockMonitor, mockLogger)

			expectSpan(mockTracer, "authorization.Authorizer.DeleteOrganization")
			tc.setupMocks(mockClient)

			err := a.DeleteOrganization(context.Background(), organizationID)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
