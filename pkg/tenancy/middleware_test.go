// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/platform-service/internal/types"
	"github.com/canonical/platform-service/pkg/authentication"
)

func TestMiddleware_BindTenant(t *testing.T) {
	boundContext := &TenantContext{OrganizationID: "org-1", UserID: "user-1", Role: types.RoleOwner}

	testCases := []struct {
		name               string
		userID             string
		orgHeader          string
		setupMocks         func(*MockBinderInterface, *MockLoggerInterface)
		expectedStatusCode int
		expectBound        bool
	}{
		{
			name:   "binds default organization",
			userID: "user-1",
			setupMocks: func(binder *MockBinderInterface, logger *MockLoggerInterface) {
				binder.EXPECT().Bind(gomock.Any(), "user-1", "").Return(boundContext, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectBound:        true,
		},
		{
			name:      "explicit switch header is forwarded",
			userID:    "user-1",
			orgHeader: "org-2",
			setupMocks: func(binder *MockBinderInterface, logger *MockLoggerInterface) {
				binder.EXPECT().Bind(gomock.Any(), "user-1", "org-2").
					Return(&TenantContext{OrganizationID: "org-2", UserID: "user-1", Role: types.RoleMember}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectBound:        true,
		},
		{
			name:               "missing user rejected",
			userID:             "",
			setupMocks:         func(binder *MockBinderInterface, logger *MockLoggerInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "no memberships rejected",
			userID: "user-1",
			setupMocks: func(binder *MockBinderInterface, logger *MockLoggerInterface) {
				binder.EXPECT().Bind(gomock.Any(), "user-1", "").Return(nil, ErrUnauthorized)
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:      "switch to non-member organization forbidden",
			userID:    "user-1",
			orgHeader: "org-9",
			setupMocks: func(binder *MockBinderInterface, logger *MockLoggerInterface) {
				binder.EXPECT().Bind(gomock.Any(), "user-1", "org-9").Return(nil, ErrForbidden)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:   "storage failure surfaces as internal error",
			userID: "user-1",
			setupMocks: func(binder *MockBinderInterface, logger *MockLoggerInterface) {
				binder.EXPECT().Bind(gomock.Any(), "user-1", "").Return(nil, errors.New("db down"))
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockBinder := NewMockBinderInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			if tc.userID != "" {
				ctx = authentication.WithUserID(ctx, tc.userID)
			}
			mockTracer.EXPECT().Start(gomock.Any(), "tenancy.Middleware.BindTenant").Return(ctx, trace.SpanFromContext(ctx))
			tc.setupMocks(mockBinder, mockLogger)

			middleware := NewMiddleware(mockBinder, mockTracer, mockMonitor, mockLogger)

			var bound *TenantContext
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				bound, _ = TenantContextFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.orgHeader != "" {
				req.Header.Set(OrganizationHeader, tc.orgHeader)
			}
			rr := httptest.NewRecorder()

			middleware.BindTenant()(handler).ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.expectedStatusCode, rr.Code)
			}
			if tc.expectBound && bound == nil {
				t.Error("expected a bound tenant context")
			}
			if !tc.expectBound && bound != nil {
				t.Error("expected no bound tenant context")
			}
		})
	}
}
