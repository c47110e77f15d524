// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/types"
	"github.com/canonical/platform-service/pkg/authentication"
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

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v1/onboarding/session", a.handleSession)
	mux.Get("/api/v1/onboarding/session", a.getSession)
}

type sessionRequest struct {
	Action  string          `json:"action"`
	Token   string          `json:"token,omitempty"`
	Step    string          `json:"step,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type sessionEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Action {
	case "create":
		a.createSession(w, r)
	case "update":
		a.updateSession(w, r, &req)
	case "complete":
		a.completeSession(w, r, &req)
	default:
		a.writeError(w, http.StatusBadRequest, "unknown action")
	}
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok || userID == "" {
		a.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	sess, err := a.service.Create(r.Context(), userID)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, sessionState(sess))
}

func (a *API) updateSession(w http.ResponseWriter, r *http.Request, req *sessionRequest) {
	if req.Token == "" {
		a.writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	step, err := types.ParseOnboardingStep(req.Step)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "unknown step")
		return
	}

	sess, err := a.service.Advance(r.Context(), req.Token, step, req.Payload)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, sessionState(sess))
}

func (a *API) completeSession(w http.ResponseWriter, r *http.Request, req *sessionRequest) {
	if req.Token == "" {
		a.writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	org, err := a.service.Complete(r.Context(), req.Token)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, map[string]string{
		"organization_id": org.ID,
		"slug":            org.Slug,
	})
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		a.writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	sess, err := a.service.GetByToken(r.Context(), token)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeData(w, http.StatusOK, sessionState(sess))
}

func (a *API) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		a.writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, ErrValidation):
		a.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		a.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrConflict):
		a.writeError(w, http.StatusConflict, err.Error())
	default:
		a.logger.Errorf("onboarding request failed: %v", err)
		a.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (a *API) writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(sessionEnvelope{Success: true, Data: data}); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(sessionEnvelope{Success: false, Error: message}); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
