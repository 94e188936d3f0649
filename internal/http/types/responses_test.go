// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name               string
		status             int
		kind               string
		retryAfter         time.Duration
		expectedRetryAfter string
	}{
		{
			name:   "plain error",
			status: http.StatusConflict,
			kind:   "trial_already_used",
		},
		{
			name:               "retry hint in whole seconds",
			status:             http.StatusServiceUnavailable,
			kind:               "upstream_unavailable",
			retryAfter:         1500 * time.Millisecond,
			expectedRetryAfter: "2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			if err := WriteError(w, tt.status, tt.kind, "boom", tt.retryAfter); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}

			if got := w.Header().Get("Retry-After"); got != tt.expectedRetryAfter {
				t.Errorf("expected Retry-After %q, got %q", tt.expectedRetryAfter, got)
			}

			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected json content type, got %q", ct)
			}

			var body ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}

			if body.Status != tt.status || body.Kind != tt.kind || body.Message != "boom" {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}
