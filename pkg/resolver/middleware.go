// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"encoding/json"
	"net/http"

	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/tracing"
	"github.com/canonical/platform-service/pkg/authentication"
)

type Middleware struct {
	config   *Config
	sessions SessionResolverInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(config *Config, sessions SessionResolverInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		config:   config,
		sessions: sessions,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// ResolveSession classifies the request host and, on non-public hosts,
// exchanges the session cookie for an identity. Resolution failures leave
// the request anonymous; handlers that need a user gate on RequireUser.
func (m *Middleware) ResolveSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "resolver.Middleware.ResolveSession")
			defer span.End()

			hostType := m.config.Classify(r.Host)
			ctx = WithHostType(ctx, hostType)

			if hostType.Public() {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			user, err := m.sessions.ResolveSession(ctx, r.Header.Get("Cookie"))
			if err != nil {
				m.logger.Errorf("session resolution failed: %v", err)
			}
			if user != nil {
				ctx = WithUser(ctx, user)
				ctx = authentication.WithUserID(ctx, user.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that reach it without a resolved identity.
func (m *Middleware) RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "resolver.Middleware.RequireUser")
			defer span.End()

			if UserFrom(ctx) == nil {
				m.logger.Security().AuthnFailure("anonymous", "no resolvable session")
				m.unauthorizedResponse(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) unauthorizedResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": "authentication required",
	}); err != nil {
		m.logger.Errorf("failed to encode unauthorized response: %v", err)
	}
}
