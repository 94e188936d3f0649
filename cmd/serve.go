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
	"golang.org/x/sync/errgroup"

	"github.com/canonical/membership-gateway/internal/config"
	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/monitoring/prometheus"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/pkg/authentication"
	"github.com/canonical/membership-gateway/pkg/web"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server and the expiry scheduler",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func loadSpecs() (*config.EnvSpec, error) {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return nil, fmt.Errorf("issues with environment sourcing: %w", err)
	}

	return specs, nil
}

func serve() error {
	specs, err := loadSpecs()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("membership-gateway", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw, err := newGateway(ctx, specs, tracer, monitor, logger)
	if err != nil {
		logger.Fatalf("failed to start the gateway: %v", err)
	}
	defer gw.Close()

	verifier, err := newVerifier(ctx, specs, tracer, monitor, logger)
	if err != nil {
		return err
	}

	router := web.NewRouter(
		gw.access,
		gw.payments,
		authentication.NewMiddleware(verifier, specs.AuthenticationAllowedSubjects, tracer, monitor, logger),
		web.Scopes{Events: specs.EventsScope, Payments: specs.PaymentsScope},
		gw.pinger(),
		tracer,
		monitor,
		logger,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("Starting HTTP server on port %v", specs.Port)
		logger.Security().SystemStartup()

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return gw.scheduler.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Security().SystemShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newVerifier(
	ctx context.Context,
	specs *config.EnvSpec,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (authentication.TokenVerifierInterface, error) {
	if !specs.AuthenticationEnabled {
		logger.Info("Authentication is disabled")
		return authentication.NewNoopVerifier(), nil
	}

	verifier, err := authentication.NewJWTAuthenticator(ctx, specs.AuthenticationIssuer, specs.AuthenticationJwksURL, tracer, monitor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up authentication: %w", err)
	}

	return verifier, nil
}
