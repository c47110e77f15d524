// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/platform-service/internal/db"
	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring"
	"github.com/canonical/platform-service/internal/tracing"
	"github.com/canonical/platform-service/pkg/authentication"
	"github.com/canonical/platform-service/pkg/metrics"
	"github.com/canonical/platform-service/pkg/onboarding"
	"github.com/canonical/platform-service/pkg/organization"
	"github.com/canonical/platform-service/pkg/resolver"
	"github.com/canonical/platform-service/pkg/status"
	"github.com/canonical/platform-service/pkg/tenancy"
	"github.com/canonical/platform-service/pkg/webhooks"
)

func NewRouter(
	resolverMiddleware *resolver.Middleware,
	tenancyMiddleware *tenancy.Middleware,
	authenticationMiddleware *authentication.Middleware,
	onboardingAPI *onboarding.API,
	organizationAPI *organization.API,
	webhooksAPI *webhooks.API,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	webhooksAPI.RegisterEndpoints(router)

	router.Group(func(r chi.Router) {
		r.Use(
			resolverMiddleware.ResolveSession(),
			db.TransactionMiddleware(dbClient, logger),
		)

		r.Group(func(r chi.Router) {
			r.Use(resolverMiddleware.RequireUser())

			onboardingAPI.RegisterEndpoints(r)
			organizationAPI.RegisterUserEndpoints(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(
				resolverMiddleware.RequireUser(),
				tenancyMiddleware.BindTenant(),
			)

			organizationAPI.RegisterEndpoints(r)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(
			authenticationMiddleware.Authenticate(),
			db.TransactionMiddleware(dbClient, logger),
		)

		organizationAPI.RegisterAdminEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
