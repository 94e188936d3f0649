// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/storage"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
	"github.com/canonical/membership-gateway/pkg/access"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_interfaces.go -source=./interfaces.go

func newTestService(store StorageInterface, confirmer ConfirmerInterface) *Service {
	return NewService(store, confirmer, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func TestService_HandlePayment(t *testing.T) {
	event := &PaymentEvent{PaymentID: "pay-1", UserID: "42", Amount: "20"}

	tests := []struct {
		name           string
		setupMocks     func(*MockStorageInterface, *MockConfirmerInterface)
		expectedStatus types.PaymentStatus
		expectedDup    bool
		expectedErr    error
	}{
		{
			name: "first delivery is applied",
			setupMocks: func(s *MockStorageInterface, c *MockConfirmerInterface) {
				gomock.InOrder(
					s.EXPECT().ClaimPayment(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, p *types.Payment) error {
							if p.ID != "pay-1" || p.UserID != "42" || p.Amount != "20" || p.Status != types.PaymentPending {
								t.Errorf("unexpected payment %+v", p)
							}
							return nil
						},
					),
					c.EXPECT().ConfirmPayment(gomock.Any(), "42", "20").Return(&types.InviteLink{URL: "https://t.me/+x", MaxUses: 1}, nil),
					s.EXPECT().CompletePayment(gomock.Any(), "pay-1", types.PaymentApplied).Return(nil),
				)
			},
			expectedStatus: types.PaymentApplied,
		},
		{
			name: "redelivery of an applied payment",
			setupMocks: func(s *MockStorageInterface, _ *MockConfirmerInterface) {
				s.EXPECT().ClaimPayment(gomock.Any(), gomock.Any()).Return(storage.ErrDuplicateKey)
				s.EXPECT().GetPayment(gomock.Any(), "pay-1").Return(&types.Payment{ID: "pay-1", UserID: "42", Amount: "20", Status: types.PaymentApplied}, nil)
			},
			expectedStatus: types.PaymentApplied,
			expectedDup:    true,
		},
		{
			name: "redelivery with the amount written differently",
			setupMocks: func(s *MockStorageInterface, _ *MockConfirmerInterface) {
				s.EXPECT().ClaimPayment(gomock.Any(), gomock.Any()).Return(storage.ErrDuplicateKey)
				s.EXPECT().GetPayment(gomock.Any(), "pay-1").Return(&types.Payment{ID: "pay-1", UserID: "42", Amount: "20.00", Status: types.PaymentApplied}, nil)
			},
			expectedStatus: types.PaymentApplied,
			expectedDup:    true,
		},
		{
			name: "payment id reused for another amount",
			setupMocks: func(s *MockStorageInterface, _ *MockConfirmerInterface) {
				s.EXPECT().ClaimPayment(gomock.Any(), gomock.Any()).Return(storage.ErrDuplicateKey)
				s.EXPECT().GetPayment(gomock.Any(), "pay-1").Return(&types.Payment{ID: "pay-1", UserID: "42", Amount: "20.01", Status: types.PaymentApplied}, nil)
			},
			expectedErr: ErrPaymentMismatch,
		},
		{
			name: "redelivery while the first is running",
			setupMocks: func(s *MockStorageInterface, _ *MockConfirmerInterface) {
				s.EXPECT().ClaimPayment(gomock.Any(), gomock.Any()).Return(storage.ErrDuplicateKey)
				s.EXPECT().GetPayment(gomock.Any(), "pay-1").Return(&types.Payment{ID: "pay-1", UserID: "42", Amount: "20", Status: types.PaymentPending}, nil)
			},
			expectedErr: ErrPaymentInProgress,
		},
		{
			name: "payment id reused by someone else",
			setupMocks: func(s *MockStorageInterface, _ *MockConfirmerInterface) {
				s.EXPECT().ClaimPayment(gomock.Any(), gomock.Any()).Return(storage.ErrDuplicateKey)
				s.EXPECT().GetPayment(gomock.Any(), "pay-1").Return(&types.Payment{ID: "pay-1", UserID: "99", Amount: "20", Status: types.PaymentApplied}, nil)
			},
			expectedErr: ErrPaymentMismatch,
		},
		{
			name: "wrong amount is rejected for good",
			setupMocks: func(s *MockStorageInterface, c *MockConfirmerInterface) {
				s.EXPECT().ClaimPayment(gomock.Any(), gomock.Any()).Return(nil)
				c.EXPECT().ConfirmPayment(gomock.Any(), "42", "20").Return(nil, access.ErrAmountMismatch)
				s.EXPECT().CompletePayment(gomock.Any(), "pay-1", types.PaymentRejected).Return(nil)
			},
			expectedErr: access.ErrAmountMismatch,
		},
		{
			name: "platform outage leaves the payment retryable",
			setupMocks: func(s *MockStorageInterface, c *MockConfirmerInterface) {
				s.EXPECT().ClaimPayment(gomock.Any(), gomock.Any()).Return(nil)
				c.EXPECT().ConfirmPayment(gomock.Any(), "42", "20").Return(nil, access.ErrUpstreamUnavailable)
				s.EXPECT().CompletePayment(gomock.Any(), "pay-1", types.PaymentFailed).Return(nil)
			},
			expectedErr: access.ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := NewMockStorageInterface(ctrl)
			mockConfirmer := NewMockConfirmerInterface(ctrl)
			tt.setupMocks(mockStore, mockConfirmer)

			res, err := newTestService(mockStore, mockConfirmer).HandlePayment(context.Background(), event)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if res.Status != tt.expectedStatus || res.Duplicate != tt.expectedDup {
				t.Fatalf("unexpected result %+v", res)
			}
		})
	}
}

type countingConfirmer struct {
	calls int
	err   error
}

func (c *countingConfirmer) ConfirmPayment(context.Context, string, string) (*types.InviteLink, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &types.InviteLink{URL: "https://t.me/+x", MaxUses: 1}, nil
}

func TestService_RedeliveryAppliedOnce(t *testing.T) {
	store := storage.NewMemoryStorage(tracing.NewNoopTracer())
	confirmer := new(countingConfirmer)
	s := newTestService(store, confirmer)

	event := &PaymentEvent{PaymentID: "pay-1", UserID: "42", Amount: "20"}

	for range 3 {
		if _, err := s.HandlePayment(context.Background(), event); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if confirmer.calls != 1 {
		t.Fatalf("expected the payment to be applied once, got %d", confirmer.calls)
	}
}

func TestService_FailedPaymentCanBeRedelivered(t *testing.T) {
	store := storage.NewMemoryStorage(tracing.NewNoopTracer())
	confirmer := &countingConfirmer{err: access.ErrUpstreamUnavailable}
	s := newTestService(store, confirmer)

	event := &PaymentEvent{PaymentID: "pay-1", UserID: "42", Amount: "20"}

	if _, err := s.HandlePayment(context.Background(), event); !errors.Is(err, access.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}

	confirmer.err = nil

	res, err := s.HandlePayment(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Status != types.PaymentApplied || confirmer.calls != 2 {
		t.Fatalf("expected the retry to apply the payment, got %+v after %d calls", res, confirmer.calls)
	}

	p, err := store.GetPayment(context.Background(), "pay-1")
	if err != nil || p.Status != types.PaymentApplied {
		t.Fatalf("expected ledger status applied, got %+v, %v", p, err)
	}
}
