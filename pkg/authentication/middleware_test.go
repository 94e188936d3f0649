// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/mock/gomock"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/tracing"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_verifier.go -source=./interfaces.go

const testScope = "gateway:events"

func newTestMiddleware(verifier TokenVerifierInterface, allowedSubjects ...string) *Middleware {
	return NewMiddleware(verifier, allowedSubjects, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func TestMiddleware_Authenticate(t *testing.T) {
	tests := []struct {
		name               string
		authHeader         string
		allowedSubjects    []string
		setupMocks         func(*MockTokenVerifierInterface)
		expectedStatusCode int
		expectedSubject    string
	}{
		{
			name:       "Missing token - rejects request",
			authHeader: "",
			setupMocks: func(m *MockTokenVerifierInterface) {
				m.EXPECT().VerifyToken(gomock.Any(), "").Return(nil, ErrMissingToken)
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Invalid token format - rejects request",
			authHeader:         "InvalidToken",
			setupMocks:         func(*MockTokenVerifierInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "Token verification fails - rejects request",
			authHeader: "Bearer invalid-token",
			setupMocks: func(m *MockTokenVerifierInterface) {
				m.EXPECT().VerifyToken(gomock.Any(), "invalid-token").Return(nil, fmt.Errorf("invalid token"))
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "Valid token with scope",
			authHeader: "Bearer valid-token",
			setupMocks: func(m *MockTokenVerifierInterface) {
				m.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return(&Principal{Subject: "bot-frontend", Scopes: []string{testScope}}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedSubject:    "bot-frontend",
		},
		{
			name:       "Valid token without scope",
			authHeader: "Bearer valid-token",
			setupMocks: func(m *MockTokenVerifierInterface) {
				m.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return(&Principal{Subject: "payments", Scopes: []string{"gateway:payments"}}, nil)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:            "Allowed subject without scope",
			authHeader:      "Bearer valid-token",
			allowedSubjects: []string{"ops"},
			setupMocks: func(m *MockTokenVerifierInterface) {
				m.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return(&Principal{Subject: "ops"}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedSubject:    "ops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockVerifier := NewMockTokenVerifierInterface(ctrl)
			tt.setupMocks(mockVerifier)

			var subject string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if p, ok := GetPrincipal(r.Context()); ok {
					subject = p.Subject
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			newTestMiddleware(mockVerifier, tt.allowedSubjects...).Authenticate(testScope)(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}

			if subject != tt.expectedSubject {
				t.Errorf("expected subject %q, got %q", tt.expectedSubject, subject)
			}
		})
	}
}

func TestMiddleware_NoopVerifierAdmitsAnonymous(t *testing.T) {
	var principal *Principal
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ = GetPrincipal(r.Context())
	})

	rr := httptest.NewRecorder()
	newTestMiddleware(NewNoopVerifier()).Authenticate(testScope)(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	if principal == nil || principal.Subject != anonymousSubject || !principal.HasScope("anything") {
		t.Fatalf("unexpected principal %+v", principal)
	}
}

func TestMiddleware_GetBearerToken(t *testing.T) {
	tests := []struct {
		name          string
		authHeader    string
		expectedToken string
		expectedFound bool
	}{
		{
			name:          "No Authorization header",
			authHeader:    "",
			expectedToken: "",
			expectedFound: false,
		},
		{
			name:          "Bearer token",
			authHeader:    "Bearer my-token-123",
			expectedToken: "my-token-123",
			expectedFound: true,
		},
		{
			name:          "Raw token without Bearer prefix",
			authHeader:    "my-token-123",
			expectedToken: "",
			expectedFound: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			middleware := newTestMiddleware(NewNoopVerifier())

			headers := http.Header{}
			if test.authHeader != "" {
				headers.Set("Authorization", test.authHeader)
			}

			token, found := middleware.getBearerToken(headers)

			if token != test.expectedToken {
				t.Errorf("expected token %q, got %q", test.expectedToken, token)
			}
			if found != test.expectedFound {
				t.Errorf("expected found %v, got %v", test.expectedFound, found)
			}
		})
	}
}

func TestJWTVerifier_RejectsEmptyToken(t *testing.T) {
	v := NewJWTVerifierDirect(nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	if _, err := v.VerifyToken(context.Background(), ""); err != ErrMissingToken {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestNewJWTVerifier_UsesProviderVerifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := NewMockProviderInterface(ctrl)
	mockProvider.EXPECT().Verifier(gomock.Any()).DoAndReturn(
		func(c *oidc.Config) *oidc.IDTokenVerifier {
			if !c.SkipClientIDCheck || c.SkipIssuerCheck {
				t.Errorf("unexpected verifier config %+v", c)
			}
			return nil
		},
	)

	NewJWTVerifier(mockProvider, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}
