// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/platform-service/internal/types"
	"github.com/canonical/platform-service/pkg/authentication"
	"github.com/canonical/platform-service/pkg/tenancy"
)

func setupAPI(t *testing.T) (*chi.Mux, *MockServiceInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockService := NewMockServiceInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mux := chi.NewMux()
	api := NewAPI(mockService, mockLogger)
	api.RegisterUserEndpoints(mux)
	api.RegisterEndpoints(mux)
	api.RegisterAdminEndpoints(mux)

	return mux, mockService
}

func tenantRequest(method, target, body string, tc *tenancy.TenantContext) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := req.Context()
	if tc != nil {
		ctx = authentication.WithUserID(ctx, tc.UserID)
		ctx = tenancy.WithTenantContext(ctx, tc)
	}
	return req.WithContext(ctx)
}

func TestListMyOrganizations(t *testing.T) {
	mux, mockService := setupAPI(t)

	orgs := []*types.Organization{
		{ID: "org-1", Name: "Acme", Slug: "acme", Enabled: true, CreatedAt: time.Now()},
	}
	mockService.EXPECT().ListMyOrganizations(gomock.Any(), "user-1").Return(orgs, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/organizations", nil)
	req = req.WithContext(authentication.WithUserID(req.Context(), "user-1"))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestListMyOrganizationsAnonymous(t *testing.T) {
	mux, _ := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/organizations", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

// Requesting an organization outside the bound tenant must read exactly like
// a missing organization.
func TestGetOrganizationCrossTenant(t *testing.T) {
	mux, _ := setupAPI(t)

	tc := &tenancy.TenantContext{OrganizationID: "org-1", UserID: "user-1", Role: types.RoleOwner}
	req := tenantRequest(http.MethodGet, "/api/v1/organizations/org-9", "", tc)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	var resp envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "not found" {
		t.Errorf("cross-tenant error must be a plain not found, got %q", resp.Error)
	}
}

func TestGetOrganization(t *testing.T) {
	mux, mockService := setupAPI(t)

	mockService.EXPECT().GetOrganization(gomock.Any(), "org-1").Return(&types.Organization{
		ID: "org-1", Name: "Acme", Slug: "acme", Enabled: true,
	}, nil)

	tc := &tenancy.TenantContext{OrganizationID: "org-1", UserID: "user-1", Role: types.RoleMember}
	req := tenantRequest(http.MethodGet, "/api/v1/organizations/org-1", "", tc)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestInviteMember(t *testing.T) {
	mux, mockService := setupAPI(t)

	mockService.EXPECT().
		InviteMember(gomock.Any(), "org-1", "new@example.com", types.RoleMember).
		Return(&Invitation{UserID: "id-1", Link: "https://link", Code: "CODE"}, nil)

	tc := &tenancy.TenantContext{OrganizationID: "org-1", UserID: "user-1", Role: types.RoleAdmin}
	req := tenantRequest(http.MethodPost, "/api/v1/organizations/org-1/users", `{"email":"new@example.com","role":"member"}`, tc)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

// Plain members can see the roster but cannot manage it.
func TestInviteMemberInsufficientRole(t *testing.T) {
	mux, _ := setupAPI(t)

	tc := &tenancy.TenantContext{OrganizationID: "org-1", UserID: "user-1", Role: types.RoleMember}
	req := tenantRequest(http.MethodPost, "/api/v1/organizations/org-1/users", `{"email":"new@example.com","role":"member"}`, tc)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestInviteMemberUnknownRole(t *testing.T) {
	mux, _ := setupAPI(t)

	tc := &tenancy.TenantContext{OrganizationID: "org-1", UserID: "user-1", Role: types.RoleOwner}
	req := tenantRequest(http.MethodPost, "/api/v1/organizations/org-1/users", `{"email":"new@example.com","role":"superuser"}`, tc)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestUpdateMemberRole(t *testing.T) {
	mux, mockService := setupAPI(t)

	mockService.EXPECT().
		UpdateMemberRole(gomock.Any(), "org-1", "user-2", types.RoleAdmin).
		Return(&types.OrganizationUser{UserID: "user-2", Email: "u@example.com", Role: types.RoleAdmin}, nil)

	tc := &tenancy.TenantContext{OrganizationID: "org-1", UserID: "user-1", Role: types.RoleOwner}
	req := tenantRequest(http.MethodPatch, "/api/v1/organizations/org-1/users/user-2", `{"role":"admin"}`, tc)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Data memberResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Role != "admin" {
		t.Errorf("expected admin, got %s", resp.Data.Role)
	}
}

func TestRemoveMember(t *testing.T) {
	mux, mockService := setupAPI(t)

	mockService.EXPECT().RemoveMember(gomock.Any(), "org-1", "user-2").Return(nil)

	tc := &tenancy.TenantContext{OrganizationID: "org-1", UserID: "user-1", Role: types.RoleAdmin}
	req := tenantRequest(http.MethodDelete, "/api/v1/organizations/org-1/users/user-2", "", tc)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRemoveMemberCrossTenant(t *testing.T) {
	mux, _ := setupAPI(t)

	tc := &tenancy.TenantContext{OrganizationID: "org-1", UserID: "user-1", Role: types.RoleAdmin}
	req := tenantRequest(http.MethodDelete, "/api/v1/organizations/org-9/users/user-2", "", tc)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAdminCreateOrganization(t *testing.T) {
	mux, mockService := setupAPI(t)

	mockService.EXPECT().CreateOrganization(gomock.Any(), "Acme", "acme").Return(&types.Organization{
		ID: "org-1", Name: "Acme", Slug: "acme", Enabled: true,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/organizations", strings.NewReader(`{"name":"Acme","slug":"acme"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
}

func TestAdminCreateOrganizationConflict(t *testing.T) {
	mux, mockService := setupAPI(t)

	mockService.EXPECT().CreateOrganization(gomock.Any(), "Acme", "acme").Return(nil, ErrConflict)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/organizations", strings.NewReader(`{"name":"Acme","slug":"acme"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestAdminSetStatus(t *testing.T) {
	mux, mockService := setupAPI(t)

	mockService.EXPECT().SetOrganizationStatus(gomock.Any(), "org-1", false).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/organizations/org-1/status", strings.NewReader(`{"enabled":false}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestAdminProvisionUser(t *testing.T) {
	mux, mockService := setupAPI(t)

	mockService.EXPECT().ProvisionUser(gomock.Any(), "org-1", "u@example.com", types.RoleOwner).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/organizations/org-1/users", strings.NewReader(`{"email":"u@example.com","role":"owner"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
