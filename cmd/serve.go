// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/platform-service/internal/authorization"
	"github.com/canonical/platform-service/internal/config"
	"github.com/canonical/platform-service/internal/db"
	"github.com/canonical/platform-service/internal/events"
	"github.com/canonical/platform-service/internal/identity"
	"github.com/canonical/platform-service/internal/logging"
	"github.com/canonical/platform-service/internal/monitoring/prometheus"
	"github.com/canonical/platform-service/internal/openfga"
	"github.com/canonical/platform-service/internal/storage"
	"github.com/canonical/platform-service/internal/tracing"
	"github.com/canonical/platform-service/pkg/authentication"
	"github.com/canonical/platform-service/pkg/onboarding"
	"github.com/canonical/platform-service/pkg/organization"
	"github.com/canonical/platform-service/pkg/resolver"
	"github.com/canonical/platform-service/pkg/tenancy"
	"github.com/canonical/platform-service/pkg/web"
	"github.com/canonical/platform-service/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("platform-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	var authorizer *authorization.Authorizer
	if specs.AuthorizationEnabled {
		ofga := openfga.NewClient(
			openfga.NewConfig(
				specs.OpenfgaApiScheme,
				specs.OpenfgaApiHost,
				specs.OpenfgaStoreId,
				specs.OpenfgaApiToken,
				specs.OpenfgaModelId,
				specs.Debug,
				tracer,
				monitor,
				logger,
			),
		)
		authorizer = authorization.NewAuthorizer(
			ofga,
			tracer,
			monitor,
			logger,
		)
		logger.Info("Authorization is enabled")
		if authorizer.ValidateModel(context.Background()) != nil {
			panic("Invalid authorization model provided")
		}
	} else {
		authorizer = authorization.NewAuthorizer(
			openfga.NewNoopClient(tracer),
			tracer,
			monitor,
			logger,
		)
		logger.Info("Using noop authorizer")
	}

	var publisher events.PublisherInterface
	if specs.EventsEnabled {
		p, err := events.NewPublisher(specs.NatsURL, tracer, monitor, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to events broker: %v", err)
		}
		defer p.Close()
		publisher = p
		logger.Info("Events publishing is enabled")
	} else {
		publisher = events.NewNoopPublisher()
		logger.Info("Using noop events publisher")
	}

	identityClient := identity.NewClient(
		specs.KratosPublicURL,
		specs.KratosAdminURL,
		tracer,
		monitor,
		logger,
	)

	onboardingService := onboarding.NewService(
		dbClient,
		s,
		authorizer,
		publisher,
		specs.OnboardingSessionLifetime,
		tracer,
		monitor,
		logger,
	)

	organizationService := organization.NewService(
		s,
		authorizer,
		identityClient,
		publisher,
		specs.InvitationLifetime,
		tracer,
		monitor,
		logger,
	)

	webhooksService := webhooks.NewService(onboardingService, tracer, monitor, logger)

	var verifier authentication.TokenVerifierInterface
	if specs.OIDCIssuer != "" {
		verifier, err = authentication.NewJWTAuthenticator(
			context.Background(),
			specs.OIDCIssuer,
			specs.JWKSURL,
			specs.AllowedSubjects,
			specs.RequiredTokenScope,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to set up JWT authentication: %v", err)
		}
	} else {
		verifier = authentication.NewNoopVerifier()
		logger.Info("Using noop token verifier")
	}

	resolverMiddleware := resolver.NewMiddleware(
		resolver.NewConfig(specs.PlatformDomain, specs.MarketingDomain, specs.ChatbotDomain),
		identityClient,
		tracer,
		monitor,
		logger,
	)
	tenancyMiddleware := tenancy.NewMiddleware(
		tenancy.NewBinder(s, tracer, monitor, logger),
		tracer,
		monitor,
		logger,
	)
	authenticationMiddleware := authentication.NewMiddleware(verifier, tracer, monitor, logger)

	router := web.NewRouter(
		resolverMiddleware,
		tenancyMiddleware,
		authenticationMiddleware,
		onboarding.NewAPI(onboardingService, logger),
		organization.NewAPI(organizationService, logger),
		webhooks.NewAPI(webhooksService, logger),
		dbClient,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go sweepOnboardingSessions(sweepCtx, onboardingService, specs.OnboardingSweepInterval, logger)

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

// sweepOnboardingSessions periodically abandons overdue onboarding sessions.
func sweepOnboardingSessions(ctx context.Context, service onboarding.ServiceInterface, interval time.Duration, logger logging.LoggerInterface) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := service.ExpireStale(ctx)
			if err != nil {
				logger.Errorf("failed to sweep onboarding sessions: %v", err)
				continue
			}
			if n > 0 {
				logger.Infof("abandoned %d expired onboarding sessions", n)
			}
		}
	}
}
