// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/canonical/membership-gateway/internal/authorization"
	"github.com/canonical/membership-gateway/internal/config"
	"github.com/canonical/membership-gateway/internal/db"
	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/storage"
	"github.com/canonical/membership-gateway/internal/telegram"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/migrations"
	"github.com/canonical/membership-gateway/pkg/access"
	"github.com/canonical/membership-gateway/pkg/expiry"
	"github.com/canonical/membership-gateway/pkg/status"
	"github.com/canonical/membership-gateway/pkg/webhooks"
)

// gateway holds the wired services shared by serve and sweep.
type gateway struct {
	dbClient *db.DBClient

	authority *authorization.Authority
	access    *access.Service
	scheduler *expiry.Scheduler
	payments  *webhooks.Service
}

func newGateway(
	ctx context.Context,
	specs *config.EnvSpec,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*gateway, error) {
	deployment, err := config.NewDeploymentConfig(specs)
	if err != nil {
		return nil, fmt.Errorf("invalid deployment configuration: %w", err)
	}

	g := new(gateway)

	store, err := g.openStorage(ctx, specs, tracer, monitor, logger)
	if err != nil {
		return nil, err
	}

	var channel access.ChannelAccessInterface
	if specs.TelegramBotToken == "" {
		logger.Warn("no bot token configured, using noop channel access")
		channel = telegram.NewNoopClient(logger)
	} else {
		channel = telegram.NewClient(specs.TelegramAPIURL, specs.TelegramBotToken, tracer, monitor, logger)
	}

	g.authority = authorization.NewAuthority(store, tracer, monitor, logger)
	if err := g.authority.Bootstrap(ctx, deployment.AdminUserID); err != nil {
		g.Close()
		return nil, err
	}

	g.access = access.NewService(store, channel, g.authority, deployment, specs.ChannelAccessTimeout, tracer, monitor, logger)
	g.scheduler = expiry.NewScheduler(store, g.access, specs.SweepInterval, specs.SweepBatchSize, tracer, monitor, logger)
	g.payments = webhooks.NewService(store, g.access, tracer, monitor, logger)

	return g, nil
}

func (g *gateway) openStorage(
	ctx context.Context,
	specs *config.EnvSpec,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (storage.StorageInterface, error) {
	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}

	switch specs.StorageDriver {
	case "memory":
		logger.Warn("using in memory storage, state is lost on restart")
		return storage.NewMemoryStorage(tracer), nil
	case "postgres":
		dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create database client: %w", err)
		}
		g.dbClient = dbClient
	case "sqlite":
		dbClient, err := db.NewSQLiteClient(dbConfig, tracer, monitor, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create database client: %w", err)
		}
		g.dbClient = dbClient

		// the embedded database has no separate migration step
		provider, err := migrations.NewProvider("sqlite", dbClient.DB(), goose.WithLogger(goose.NopLogger()))
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("failed to create goose provider: %w", err)
		}
		if _, err := provider.Up(ctx); err != nil {
			g.Close()
			return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", specs.StorageDriver)
	}

	return storage.NewStorage(g.dbClient, tracer, monitor, logger), nil
}

// pinger is nil for the in memory store.
func (g *gateway) pinger() status.PingerInterface {
	if g.dbClient == nil {
		return nil
	}

	return g.dbClient.DB()
}

func (g *gateway) Close() {
	if g.dbClient != nil {
		g.dbClient.Close()
	}
}
