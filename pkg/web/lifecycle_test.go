// Copyright 2026 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/canonical/membership-gateway/internal/authorization"
	"github.com/canonical/membership-gateway/internal/config"
	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/storage"
	"github.com/canonical/membership-gateway/internal/telegram"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
	"github.com/canonical/membership-gateway/pkg/access"
	"github.com/canonical/membership-gateway/pkg/authentication"
	"github.com/canonical/membership-gateway/pkg/webhooks"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	cfg, err := config.NewDeploymentConfig(&config.EnvSpec{
		TrialEnabled:       true,
		Price:              "20",
		TrialDurationHours: 24,
		InviteLinkLifetime: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to build deployment config: %v", err)
	}

	store := storage.NewMemoryStorage(tracer)
	authority := authorization.NewAuthority(store, tracer, monitor, logger)
	accessService := access.NewService(store, telegram.NewNoopClient(logger), authority, cfg, time.Second, tracer, monitor, logger)
	paymentService := webhooks.NewService(store, accessService, tracer, monitor, logger)

	router := NewRouter(
		accessService,
		paymentService,
		authentication.NewMiddleware(authentication.NewNoopVerifier(), nil, tracer, monitor, logger),
		testScopes,
		nil,
		tracer,
		monitor,
		logger,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func send(t *testing.T, srv *httptest.Server, method, path string, in, out any) int {
	t.Helper()

	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, &body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}

	return resp.StatusCode
}

func TestMembershipLifecycle(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Trial before the channel is bound", func(t *testing.T) {
		if code := send(t, srv, http.MethodPost, "/api/v0/trials", access.TrialRequest{UserID: "42"}, nil); code != http.StatusPreconditionFailed {
			t.Fatalf("expected 412, got %d", code)
		}
	})

	t.Run("Claim admin", func(t *testing.T) {
		if code := send(t, srv, http.MethodPost, "/api/v0/admin/claim", access.ClaimAdminRequest{UserID: "1"}, nil); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}

		if code := send(t, srv, http.MethodPost, "/api/v0/admin/claim", access.ClaimAdminRequest{UserID: "2"}, nil); code != http.StatusConflict {
			t.Fatalf("expected a second claim to conflict, got %d", code)
		}
	})

	t.Run("Bind channel", func(t *testing.T) {
		req := access.BindChannelRequest{AdminUserID: "2", ChatID: "-100", ChatType: types.ChatChannel}
		if code := send(t, srv, http.MethodPost, "/api/v0/channel", req, nil); code != http.StatusForbidden {
			t.Fatalf("expected a non admin bind to be refused, got %d", code)
		}

		req.AdminUserID = "1"
		if code := send(t, srv, http.MethodPost, "/api/v0/channel", req, nil); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}

		var binding types.ChannelBinding
		if code := send(t, srv, http.MethodGet, "/api/v0/channel", nil, &binding); code != http.StatusOK || binding.ChannelID != "-100" {
			t.Fatalf("unexpected binding %+v (%d)", binding, code)
		}
	})

	t.Run("Trial is granted once", func(t *testing.T) {
		var link types.InviteLink
		if code := send(t, srv, http.MethodPost, "/api/v0/trials", access.TrialRequest{UserID: "42"}, &link); code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", code)
		}

		if link.URL == "" || link.MaxUses != 1 {
			t.Fatalf("unexpected invite link %+v", link)
		}

		if code := send(t, srv, http.MethodPost, "/api/v0/trials", access.TrialRequest{UserID: "42"}, nil); code != http.StatusConflict {
			t.Fatalf("expected the second trial to conflict, got %d", code)
		}
	})

	t.Run("Payment upgrades the trial", func(t *testing.T) {
		event := webhooks.PaymentEvent{PaymentID: "pay-1", UserID: "42", Amount: "20"}

		var first webhooks.PaymentResult
		if code := send(t, srv, http.MethodPost, "/webhooks/payments", event, &first); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}

		var again webhooks.PaymentResult
		if code := send(t, srv, http.MethodPost, "/webhooks/payments", event, &again); code != http.StatusOK || !again.Duplicate {
			t.Fatalf("expected the redelivery to be answered from the ledger, got %+v (%d)", again, code)
		}

		var status types.MembershipStatus
		send(t, srv, http.MethodGet, "/api/v0/members/42", nil, &status)

		if status.Active == nil || status.Active.Kind != types.KindPaid || !status.TrialConsumed {
			t.Fatalf("expected an active paid membership, got %+v", status)
		}
	})

	t.Run("Admin revokes", func(t *testing.T) {
		if code := send(t, srv, http.MethodPost, "/api/v0/members/42/revoke", access.RevokeRequest{AdminUserID: "1"}, nil); code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", code)
		}

		var status types.MembershipStatus
		send(t, srv, http.MethodGet, "/api/v0/members/42", nil, &status)

		if status.Active != nil {
			t.Fatalf("expected no active membership, got %+v", status.Active)
		}

		var history []*types.Membership
		send(t, srv, http.MethodGet, "/api/v0/members/42/history", nil, &history)

		if len(history) != 2 {
			t.Fatalf("expected the trial and the paid grant in the history, got %d records", len(history))
		}

		for _, m := range history {
			if m.State == types.StateActive {
				t.Fatalf("expected every record to be closed, got %+v", m)
			}
		}
	})
}
