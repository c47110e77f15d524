// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/tracing"
	"github.com/canonical/platform-service/pkg/authentication"
)

// OrganizationHeader names the organization a request wants to act in,
// overriding the user's default (first) membership.
const OrganizationHeader = "X-Organization-Id"

type Middleware struct {
	binder BinderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(binder BinderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		binder:  binder,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// BindTenant binds the request to an organization scope. Requests without a
// resolved user or without any membership are rejected before any handler
// can issue queries.
func (m *Middleware) BindTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "tenancy.Middleware.BindTenant")
			defer span.End()

			userID, ok := authentication.GetUserID(ctx)
			if !ok || userID == "" {
				m.errorResponse(w, http.StatusUnauthorized, "authentication required")
				return
			}

			tc, err := m.binder.Bind(ctx, userID, r.Header.Get(OrganizationHeader))
			if err != nil {
				switch {
				case errors.Is(err, ErrUnauthorized):
					m.errorResponse(w, http.StatusUnauthorized, "no organization membership")
				case errors.Is(err, ErrForbidden):
					m.errorResponse(w, http.StatusForbidden, "not a member of the requested organization")
				default:
					m.logger.Errorf("tenant bind failed: %v", err)
					m.errorResponse(w, http.StatusInternalServerError, "internal server error")
				}
				return
			}

			ctx = WithTenantContext(ctx, tc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) errorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  status,
		"message": message,
	}); err != nil {
		m.logger.Errorf("failed to encode error response: %v", err)
	}
}
