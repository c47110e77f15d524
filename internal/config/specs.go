// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	KratosPublicURL string `envconfig:"kratos_public_url" required:"true"`
	KratosAdminURL  string `envconfig:"kratos_admin_url" required:"true"`

	OIDCIssuer         string   `envconfig:"oidc_issuer"`
	JWKSURL            string   `envconfig:"jwks_url"`
	AllowedSubjects    []string `envconfig:"allowed_subjects"`
	RequiredTokenScope string   `envconfig:"required_token_scope" default:"platform:admin"`

	PlatformDomain  string `envconfig:"platform_domain" required:"true"`
	MarketingDomain string `envconfig:"marketing_domain"`
	ChatbotDomain   string `envconfig:"chatbot_domain"`

	OnboardingSessionLifetime time.Duration `envconfig:"onboarding_session_lifetime" default:"24h"`
	OnboardingSweepInterval   time.Duration `envconfig:"onboarding_sweep_interval" default:"10m"`

	InvitationLifetime string `envconfig:"invitation_lifetime" default:"24h"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	AuthorizationEnabled bool   `envconfig:"authorization_enabled" default:"false"`
	OpenfgaApiScheme     string `envconfig:"openfga_api_scheme" default:""`
	OpenfgaApiHost       string `envconfig:"openfga_api_host"`
	OpenfgaApiToken      string `envconfig:"openfga_api_token"`
	OpenfgaStoreId       string `envconfig:"openfga_store_id"`
	OpenfgaModelId       string `envconfig:"openfga_authorization_model_id" default:""`

	EventsEnabled bool   `envconfig:"events_enabled" default:"false"`
	NatsURL       string `envconfig:"nats_url" default:"nats://localhost:4222"`
}
