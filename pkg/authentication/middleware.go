// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	httptypes "github.com/canonical/membership-gateway/internal/http/types"
	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/tracing"
)

type Middleware struct {
	verifier        TokenVerifierInterface
	allowedSubjects []string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Authenticate admits callers holding requiredScope, or any scope when their
// subject is explicitly allowed.
func (m *Middleware) Authenticate(requiredScope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			token, found := m.getBearerToken(r.Header)
			if !found && r.Header.Get("Authorization") != "" {
				m.errorResponse(w, http.StatusUnauthorized, "authorization header is not a bearer token")
				return
			}

			principal, err := m.verifier.VerifyToken(ctx, token)
			if errors.Is(err, ErrMissingToken) {
				m.errorResponse(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			if err != nil {
				m.logger.Debugf("JWT verification failed: %v", err)
				m.errorResponse(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if !slices.Contains(m.allowedSubjects, principal.Subject) && !principal.HasScope(requiredScope) {
				m.logger.Security().AuthzFailure(principal.Subject, requiredScope)
				m.errorResponse(w, http.StatusForbidden, "missing required scope")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
		})
	}
}

func (m *Middleware) getBearerToken(headers http.Header) (string, bool) {
	bearer := headers.Get("Authorization")
	if bearer == "" {
		return "", false
	}

	// Only support "Bearer <token>" format (RFC 6750)
	if !strings.HasPrefix(bearer, "Bearer ") {
		return "", false
	}

	return strings.TrimPrefix(bearer, "Bearer "), true
}

func (m *Middleware) errorResponse(w http.ResponseWriter, status int, message string) {
	if err := httptypes.WriteError(w, status, "", message, 0); err != nil {
		m.logger.Errorf("failed to encode error response: %v", err)
	}
}

func NewMiddleware(
	verifier TokenVerifierInterface,
	allowedSubjects []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Middleware {
	return &Middleware{
		verifier:        verifier,
		allowedSubjects: allowedSubjects,
		tracer:          tracer,
		monitor:         monitor,
		logger:          logger,
	}
}
