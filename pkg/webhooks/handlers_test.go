// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/types"
	"github.com/canonical/membership-gateway/pkg/access"
)

func TestAPI_Payment(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		validateResp   func(*testing.T, *http.Response)
	}{
		{
			name:        "applied",
			requestBody: PaymentEvent{PaymentID: "pay-1", UserID: "42", Amount: "20"},
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().HandlePayment(gomock.Any(), &PaymentEvent{PaymentID: "pay-1", UserID: "42", Amount: "20"}).
					Return(&PaymentResult{PaymentID: "pay-1", Status: types.PaymentApplied, InviteLink: &types.InviteLink{URL: "https://t.me/+x"}}, nil)
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, resp *http.Response) {
				var result PaymentResult
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Errorf("failed to decode response: %v", err)
				}
				if result.Status != types.PaymentApplied || result.InviteLink == nil {
					t.Errorf("unexpected result %+v", result)
				}
			},
		},
		{
			name:           "invalid request body",
			requestBody:    "not-json",
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing payment id",
			requestBody:    PaymentEvent{UserID: "42", Amount: "20"},
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "redelivery in flight",
			requestBody: PaymentEvent{PaymentID: "pay-1", UserID: "42", Amount: "20"},
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().HandlePayment(gomock.Any(), gomock.Any()).Return(nil, ErrPaymentInProgress)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "wrong amount",
			requestBody: PaymentEvent{PaymentID: "pay-1", UserID: "42", Amount: "5"},
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().HandlePayment(gomock.Any(), gomock.Any()).Return(nil, access.ErrAmountMismatch)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:        "service error",
			requestBody: PaymentEvent{PaymentID: "pay-1", UserID: "42", Amount: "20"},
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().HandlePayment(gomock.Any(), gomock.Any()).Return(nil, errors.New("service error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			api := NewAPI(mockService, logging.NewNoopLogger())

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatalf("failed to marshal request: %v", err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Errorf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}

			if tt.validateResp != nil {
				tt.validateResp(t, res)
			}
		})
	}
}
