// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organization

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/types"
	"github.com/canonical/platform-service/pkg/authentication"
	"github.com/canonical/platform-service/pkg/tenancy"
)

type API struct {
	service ServiceInterface

	logger logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

// RegisterUserEndpoints mounts the routes any resolved user can reach,
// bound tenant or not. A user mid-onboarding has no memberships yet but can
// still list (zero) organizations.
func (a *API) RegisterUserEndpoints(mux chi.Router) {
	mux.Get("/api/v1/organizations", a.listMyOrganizations)
}

// RegisterEndpoints mounts the tenant surface. The router wraps these with
// session resolution and tenant binding, so a bound TenantContext is always
// present.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v1/organizations/{id}", a.getOrganization)
	mux.Get("/api/v1/organizations/{id}/users", a.listUsers)
	mux.Post("/api/v1/organizations/{id}/users", a.inviteMember)
	mux.Patch("/api/v1/organizations/{id}/users/{user_id}", a.updateMemberRole)
	mux.Delete("/api/v1/organizations/{id}/users/{user_id}", a.removeMember)
}

// RegisterAdminEndpoints mounts the operator surface; the router guards it
// with bearer token authentication.
func (a *API) RegisterAdminEndpoints(mux chi.Router) {
	mux.Get("/api/admin/organizations", a.adminListOrganizations)
	mux.Post("/api/admin/organizations", a.adminCreateOrganization)
	mux.Patch("/api/admin/organizations/{id}", a.adminUpdateOrganization)
	mux.Delete("/api/admin/organizations/{id}", a.adminDeleteOrganization)
	mux.Post("/api/admin/organizations/{id}/status", a.adminSetStatus)
	mux.Post("/api/admin/organizations/{id}/users", a.adminProvisionUser)
	mux.Get("/api/admin/users/{user_id}/organizations", a.adminListUserOrganizations)
}

type organizationResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	SubscriptionStatus string    `json:"subscription_status"`
	Enabled            bool      `json:"enabled"`
	CreatedAt          time.Time `json:"created_at"`
}

type memberResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func organizationView(o *types.Organization) *organizationResponse {
	return &organizationResponse{
		ID:                 o.ID,
		Name:               o.Name,
		Slug:               o.Slug,
		SubscriptionStatus: o.SubscriptionStatus,
		Enabled:            o.Enabled,
		CreatedAt:          o.CreatedAt,
	}
}

func organizationViews(orgs []*types.Organization) []*organizationResponse {
	out := make([]*organizationResponse, len(orgs))
	for i, o := range orgs {
		out[i] = organizationView(o)
	}
	return out
}

func memberViews(users []*types.OrganizationUser) []*memberResponse {
	out := make([]*memberResponse, len(users))
	for i, u := range users {
		out[i] = &memberResponse{UserID: u.UserID, Email: u.Email, Role: u.Role.String()}
	}
	return out
}

func (a *API) listMyOrganizations(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok || userID == "" {
		a.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	orgs, err := a.service.ListMyOrganizations(r.Context(), userID)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, organizationViews(orgs))
}

func (a *API) getOrganization(w http.ResponseWriter, r *http.Request) {
	tc, ok := a.boundOrganization(w, r)
	if !ok {
		return
	}

	org, err := a.service.GetOrganization(r.Context(), tc.OrganizationID)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, organizationView(org))
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	tc, ok := a.boundOrganization(w, r)
	if !ok {
		return
	}

	users, err := a.service.ListOrganizationUsers(r.Context(), tc.OrganizationID)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, memberViews(users))
}

type inviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (a *API) inviteMember(w http.ResponseWriter, r *http.Request) {
	tc, ok := a.boundOrganization(w, r)
	if !ok {
		return
	}
	if !a.requirePermission(w, tc, types.PermissionEdit) {
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		a.writeError(w, http.StatusBadRequest, "email and role are required")
		return
	}

	role, err := types.ParseRole(req.Role)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "unknown role")
		return
	}

	invitation, err := a.service.InviteMember(r.Context(), tc.OrganizationID, req.Email, role)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, invitation)
}

type roleRequest struct {
	Role string `json:"role"`
}

func (a *API) updateMemberRole(w http.ResponseWriter, r *http.Request) {
	tc, ok := a.boundOrganization(w, r)
	if !ok {
		return
	}
	if !a.requirePermission(w, tc, types.PermissionEdit) {
		return
	}

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := types.ParseRole(req.Role)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "unknown role")
		return
	}

	user, err := a.service.UpdateMemberRole(r.Context(), tc.OrganizationID, chi.URLParam(r, "user_id"), role)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, &memberResponse{UserID: user.UserID, Email: user.Email, Role: user.Role.String()})
}

func (a *API) removeMember(w http.ResponseWriter, r *http.Request) {
	tc, ok := a.boundOrganization(w, r)
	if !ok {
		return
	}
	if !a.requirePermission(w, tc, types.PermissionEdit) {
		return
	}

	if err := a.service.RemoveMember(r.Context(), tc.OrganizationID, chi.URLParam(r, "user_id")); err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (a *API) adminListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := a.service.ListOrganizations(r.Context())
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, organizationViews(orgs))
}

type createOrganizationRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (a *API) adminCreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req createOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := a.service.CreateOrganization(r.Context(), req.Name, req.Slug)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusCreated, organizationView(org))
}

type updateOrganizationRequest struct {
	Name        string   `json:"name"`
	Enabled     bool     `json:"enabled"`
	UpdatePaths []string `json:"update_paths"`
}

func (a *API) adminUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	var req updateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := a.service.UpdateOrganization(r.Context(), &types.Organization{
		ID:      chi.URLParam(r, "id"),
		Name:    req.Name,
		Enabled: req.Enabled,
	}, req.UpdatePaths)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, organizationView(org))
}

func (a *API) adminDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteOrganization(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type statusRequest struct {
	Enabled bool `json:"enabled"`
}

func (a *API) adminSetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.service.SetOrganizationStatus(r.Context(), chi.URLParam(r, "id"), req.Enabled); err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, map[string]bool{"enabled": req.Enabled})
}

func (a *API) adminProvisionUser(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		a.writeError(w, http.StatusBadRequest, "email and role are required")
		return
	}

	role, err := types.ParseRole(req.Role)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "unknown role")
		return
	}

	if err := a.service.ProvisionUser(r.Context(), chi.URLParam(r, "id"), req.Email, role); err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, map[string]string{"status": "provisioned"})
}

func (a *API) adminListUserOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := a.service.ListUserOrganizations(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, organizationViews(orgs))
}

// boundOrganization requires a bound TenantContext matching the path's
// organization. A mismatch reads as NotFound so callers cannot enumerate
// organizations outside their tenant.
func (a *API) boundOrganization(w http.ResponseWriter, r *http.Request) (*tenancy.TenantContext, bool) {
	tc, ok := tenancy.TenantContextFrom(r.Context())
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	if chi.URLParam(r, "id") != tc.OrganizationID {
		a.writeError(w, http.StatusNotFound, "not found")
		return nil, false
	}

	return tc, true
}

func (a *API) requirePermission(w http.ResponseWriter, tc *tenancy.TenantContext, p types.Permission) bool {
	if !tc.Role.Can(p) {
		a.writeError(w, http.StatusForbidden, "insufficient role")
		return false
	}
	return true
}

func (a *API) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		a.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, ErrValidation):
		a.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		a.writeError(w, http.StatusConflict, err.Error())
	default:
		a.logger.Errorf("organization request failed: %v", err)
		a.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (a *API) writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, Error: message}); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
