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
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"false"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	StorageDriver string `envconfig:"storage_driver" default:"postgres"`
	DSN           string `envconfig:"DSN"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	TelegramBotToken     string        `envconfig:"telegram_bot_token"`
	TelegramAPIURL       string        `envconfig:"telegram_api_url" default:"https://api.telegram.org"`
	ChannelAccessTimeout time.Duration `envconfig:"channel_access_timeout" default:"10s"`

	TrialEnabled       bool   `envconfig:"trial_enabled" default:"true"`
	Price              string `envconfig:"price" default:"20"`
	TrialDurationHours int    `envconfig:"trial_duration_hours" default:"24"`
	// PaidDurationDays left unset grants indefinite paid access
	PaidDurationDays   *int          `envconfig:"paid_duration_days"`
	InviteLinkLifetime time.Duration `envconfig:"invite_link_lifetime" default:"24h"`
	AdminUserID        string        `envconfig:"admin_user_id"`

	SweepInterval  time.Duration `envconfig:"sweep_interval" default:"5m"`
	SweepBatchSize uint64        `envconfig:"sweep_batch_size" default:"500"`

	AuthenticationEnabled         bool     `envconfig:"authentication_enabled" default:"false"`
	AuthenticationIssuer          string   `envconfig:"authentication_issuer"`
	AuthenticationJwksURL         string   `envconfig:"authentication_jwks_url"`
	AuthenticationAllowedSubjects []string `envconfig:"authentication_allowed_subjects"`
	EventsScope                   string   `envconfig:"events_scope" default:"gateway:events"`
	PaymentsScope                 string   `envconfig:"payments_scope" default:"gateway:payments"`
}
