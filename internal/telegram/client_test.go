// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/tracing"
)

const testToken = "123:secret"

type recordedCall struct {
	method string
	body   map[string]any
}

type fakeBotAPI struct {
	mu      sync.Mutex
	calls   []recordedCall
	respond func(method string, attempt int) (int, string)
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	prefix := "/bot" + testToken + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	method := strings.TrimPrefix(r.URL.Path, prefix)

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{method: method, body: body})
	attempt := 0
	for _, c := range f.calls {
		if c.method == method {
			attempt++
		}
	}
	f.mu.Unlock()

	status, payload := f.respond(method, attempt)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(payload))
}

func (f *fakeBotAPI) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]recordedCall(nil), f.calls...)
}

func (f *fakeBotAPI) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	m := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		m = append(m, c.method)
	}
	return m
}

func newTestClient(t *testing.T, api *fakeBotAPI) *Client {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, testToken, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	c.initialInterval = time.Millisecond

	return c
}

func TestClient_IssueInviteLink(t *testing.T) {
	expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	api := &fakeBotAPI{
		respond: func(string, int) (int, string) {
			return http.StatusOK, `{"ok":true,"result":{"invite_link":"https://t.me/+abc","name":"Trial_42","expire_date":1767323045,"member_limit":1}}`
		},
	}

	link, err := newTestClient(t, api).IssueInviteLink(context.Background(), "-100123", "Trial_42", 1, expiresAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if link.URL != "https://t.me/+abc" || link.MaxUses != 1 || !link.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("unexpected link %+v", link)
	}

	calls := api.recorded()
	if len(calls) != 1 || calls[0].method != "createChatInviteLink" {
		t.Fatalf("expected one createChatInviteLink call, got %v", api.methods())
	}

	body := calls[0].body
	if body["chat_id"] != "-100123" || body["member_limit"] != float64(1) || body["expire_date"] != float64(expiresAt.Unix()) || body["name"] != "Trial_42" {
		t.Fatalf("unexpected request body %v", body)
	}
}

func TestClient_RemoveMember(t *testing.T) {
	api := &fakeBotAPI{
		respond: func(string, int) (int, string) {
			return http.StatusOK, `{"ok":true,"result":true}`
		},
	}

	if err := newTestClient(t, api).RemoveMember(context.Background(), "-100123", "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	methods := api.methods()
	if len(methods) != 2 || methods[0] != "banChatMember" || methods[1] != "unbanChatMember" {
		t.Fatalf("expected ban then unban, got %v", methods)
	}

	unban := api.recorded()[1].body
	if unban["user_id"] != float64(42) || unban["only_if_banned"] != true {
		t.Fatalf("unexpected unban body %v", unban)
	}
}

func TestClient_Errors(t *testing.T) {
	testCases := []struct {
		name               string
		respond            func(string, int) (int, string)
		expectedPermanent  bool
		expectedRetryAfter time.Duration
		expectedCalls      int
		expectedErr        bool
	}{
		{
			name: "transient failure is retried",
			respond: func(_ string, attempt int) (int, string) {
				if attempt == 1 {
					return http.StatusBadGateway, `{"ok":false,"error_code":502,"description":"Bad Gateway"}`
				}
				return http.StatusOK, `{"ok":true,"result":true}`
			},
			expectedCalls: 2,
		},
		{
			name: "chat not found is permanent",
			respond: func(string, int) (int, string) {
				return http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`
			},
			expectedPermanent: true,
			expectedCalls:     1,
			expectedErr:       true,
		},
		{
			name: "attempts run out",
			respond: func(string, int) (int, string) {
				return http.StatusInternalServerError, `{"ok":false,"error_code":500,"description":"Internal Server Error"}`
			},
			expectedCalls: defaultMaxTries,
			expectedErr:   true,
		},
		{
			name: "flood control carries the wait",
			respond: func(_ string, attempt int) (int, string) {
				return http.StatusTooManyRequests, `{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 7","parameters":{"retry_after":7}}`
			},
			expectedRetryAfter: 7 * time.Second,
			expectedCalls:      1,
			expectedErr:        true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeBotAPI{respond: tc.respond}
			c := newTestClient(t, api)
			if tc.expectedRetryAfter > 0 {
				c.maxTries = 1
			}

			err := c.RevokeInviteLink(context.Background(), "-100123", "https://t.me/+abc")

			if tc.expectedErr != (err != nil) {
				t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
			}

			if errors.Is(err, ErrPermanent) != tc.expectedPermanent {
				t.Fatalf("expected permanent %v, got %v", tc.expectedPermanent, err)
			}

			if tc.expectedRetryAfter > 0 {
				var apiErr *APIError
				if !errors.As(err, &apiErr) || apiErr.RetryAfter() != tc.expectedRetryAfter {
					t.Fatalf("expected retry after %s, got %v", tc.expectedRetryAfter, err)
				}
			}

			if len(api.methods()) != tc.expectedCalls {
				t.Fatalf("expected %d calls, got %d", tc.expectedCalls, len(api.methods()))
			}

			if err != nil && strings.Contains(err.Error(), "secret") {
				t.Fatalf("error leaks the bot token: %v", err)
			}
		})
	}
}

func TestClient_RemoveMemberInvalidUser(t *testing.T) {
	api := &fakeBotAPI{
		respond: func(string, int) (int, string) {
			return http.StatusOK, `{"ok":true,"result":true}`
		},
	}

	err := newTestClient(t, api).RemoveMember(context.Background(), "-100123", "not-a-number")
	if !errors.Is(err, ErrPermanent) {
		t.Fatalf("expected ErrPermanent, got %v", err)
	}

	if len(api.methods()) != 0 {
		t.Fatalf("expected no calls, got %v", api.methods())
	}
}
