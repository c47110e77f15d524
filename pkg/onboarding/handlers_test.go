// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/platform-service/internal/types"
	"github.com/canonical/platform-service/pkg/authentication"
)

func setupAPI(t *testing.T) (*chi.Mux, *MockServiceInterface, *MockLoggerInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockService := NewMockServiceInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mux := chi.NewMux()
	NewAPI(mockService, mockLogger).RegisterEndpoints(mux)

	return mux, mockService, mockLogger
}

func postSession(mux *chi.Mux, body string, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding/session", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(authentication.WithUserID(req.Context(), userID))
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestHandleSession_Create(t *testing.T) {
	mux, mockService, _ := setupAPI(t)

	sess := &types.OnboardingSession{
		Token:     "tok-1",
		UserID:    "user-1",
		Step:      types.StepCreated,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	mockService.EXPECT().Create(gomock.Any(), "user-1").Return(sess, nil)

	rr := postSession(mux, `{"action":"create"}`, "user-1")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var envelope struct {
		Success bool          `json:"success"`
		Data    *SessionState `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !envelope.Success {
		t.Error("expected success")
	}
	if envelope.Data.Token != "tok-1" {
		t.Errorf("expected token tok-1, got %s", envelope.Data.Token)
	}
	if envelope.Data.Step != "CREATED" {
		t.Errorf("expected step CREATED, got %s", envelope.Data.Step)
	}
}

func TestHandleSession_CreateWithoutUser(t *testing.T) {
	mux, _, _ := setupAPI(t)

	rr := postSession(mux, `{"action":"create"}`, "")

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestHandleSession_Update(t *testing.T) {
	mux, mockService, _ := setupAPI(t)

	sess := &types.OnboardingSession{
		Token:   "tok-1",
		Step:    types.StepOrgDetails,
		OrgName: "Acme Inc.",
	}
	mockService.EXPECT().
		Advance(gomock.Any(), "tok-1", types.StepOrgDetails, json.RawMessage(`{"name":"Acme Inc."}`)).
		Return(sess, nil)

	rr := postSession(mux, `{"action":"update","token":"tok-1","step":"ORG_DETAILS","payload":{"name":"Acme Inc."}}`, "user-1")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestHandleSession_UpdateUnknownStep(t *testing.T) {
	mux, _, _ := setupAPI(t)

	rr := postSession(mux, `{"action":"update","token":"tok-1","step":"SIDEWAYS"}`, "user-1")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleSession_UpdateMissingToken(t *testing.T) {
	mux, _, _ := setupAPI(t)

	rr := postSession(mux, `{"action":"update","step":"ORG_DETAILS"}`, "user-1")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleSession_Complete(t *testing.T) {
	mux, mockService, _ := setupAPI(t)

	mockService.EXPECT().Complete(gomock.Any(), "tok-1").Return(&types.Organization{
		ID:   "org-1",
		Name: "Acme Inc.",
		Slug: "acme-inc",
	}, nil)

	rr := postSession(mux, `{"action":"complete","token":"tok-1"}`, "user-1")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var envelope struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data["organization_id"] != "org-1" {
		t.Errorf("expected org-1, got %s", envelope.Data["organization_id"])
	}
	if envelope.Data["slug"] != "acme-inc" {
		t.Errorf("expected acme-inc, got %s", envelope.Data["slug"])
	}
}

func TestHandleSession_UnknownAction(t *testing.T) {
	mux, _, _ := setupAPI(t)

	rr := postSession(mux, `{"action":"destroy"}`, "user-1")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHandleSession_InvalidBody(t *testing.T) {
	mux, _, _ := setupAPI(t)

	rr := postSession(mux, `{not json`, "user-1")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGetSession(t *testing.T) {
	mux, mockService, _ := setupAPI(t)

	sess := &types.OnboardingSession{
		Token: "tok-1",
		Step:  types.StepPlanSelected,
	}
	mockService.EXPECT().GetByToken(gomock.Any(), "tok-1").Return(sess, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/onboarding/session?token=tok-1", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestGetSessionMissingToken(t *testing.T) {
	mux, _, _ := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/onboarding/session", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestServiceErrorMapping(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectLog      bool
	}{
		{
			name:           "not found",
			err:            ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "validation",
			err:            ErrValidation,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid transition",
			err:            ErrInvalidTransition,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "conflict",
			err:            ErrConflict,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unexpected error",
			err:            errors.New("db down"),
			expectedStatus: http.StatusInternalServerError,
			expectLog:      true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux, mockService, mockLogger := setupAPI(t)

			mockService.EXPECT().GetByToken(gomock.Any(), "tok-1").Return(nil, tc.err)
			if tc.expectLog {
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/onboarding/session?token=tok-1", nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Fatalf("expected %d, got %d", tc.expectedStatus, rr.Code)
			}

			var envelope sessionEnvelope
			if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if envelope.Success {
				t.Error("expected failure envelope")
			}
		})
	}
}
