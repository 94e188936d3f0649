// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/pkg/access"
	"github.com/canonical/membership-gateway/pkg/authentication"
	"github.com/canonical/membership-gateway/pkg/metrics"
	"github.com/canonical/membership-gateway/pkg/status"
	"github.com/canonical/membership-gateway/pkg/webhooks"
)

// Scopes are the token scopes guarding the two authenticated route groups.
type Scopes struct {
	Events   string
	Payments string
}

func NewRouter(
	accessService access.ServiceInterface,
	paymentService webhooks.ServiceInterface,
	authMiddleware *authentication.Middleware,
	scopes Scopes,
	db status.PingerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		middleware.Recoverer,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(db, tracer, monitor, logger).RegisterEndpoints(router)

	router.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate(scopes.Events))
		access.NewAPI(accessService, tracer, logger).RegisterEndpoints(r)
	})

	router.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate(scopes.Payments))
		webhooks.NewAPI(paymentService, logger).RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
