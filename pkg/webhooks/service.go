// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/membership-gateway/internal/config"
	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/storage"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
	"github.com/canonical/membership-gateway/pkg/access"
)

var (
	// ErrPaymentInProgress is returned for a redelivery racing the first delivery.
	ErrPaymentInProgress = errors.New("payment is being processed")
	// ErrPaymentMismatch is returned when a payment id is reused for another payer or amount.
	ErrPaymentMismatch = errors.New("payment id already used for a different payment")
)

// completeTimeout bounds the ledger write that closes a payment, it runs
// even if the provider hung up.
const completeTimeout = 5 * time.Second

type Service struct {
	storage   StorageInterface
	confirmer ConfirmerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	confirmer ConfirmerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:   storage,
		confirmer: confirmer,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

// HandlePayment applies a payment exactly once per payment id. Failed
// attempts can be redelivered, applied and rejected ones are answered from
// the ledger.
func (s *Service) HandlePayment(ctx context.Context, event *PaymentEvent) (*PaymentResult, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandlePayment")
	defer span.End()

	s.logger.Debugf("handling payment %s of user %s", event.PaymentID, event.UserID)

	now := time.Now()
	err := s.storage.ClaimPayment(ctx, &types.Payment{
		ID:        event.PaymentID,
		UserID:    event.UserID,
		Amount:    event.Amount,
		Status:    types.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	})

	if errors.Is(err, storage.ErrDuplicateKey) {
		return s.duplicate(ctx, event)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to record payment %s: %w", event.PaymentID, err)
	}

	link, err := s.confirmer.ConfirmPayment(ctx, event.UserID, event.Amount)
	if err != nil {
		s.complete(ctx, event.PaymentID, outcome(err))
		return nil, err
	}

	s.complete(ctx, event.PaymentID, types.PaymentApplied)
	s.logger.Infof("payment %s applied to user %s", event.PaymentID, event.UserID)

	return &PaymentResult{
		PaymentID:  event.PaymentID,
		Status:     types.PaymentApplied,
		InviteLink: link,
	}, nil
}

func (s *Service) duplicate(ctx context.Context, event *PaymentEvent) (*PaymentResult, error) {
	p, err := s.storage.GetPayment(ctx, event.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment %s: %w", event.PaymentID, err)
	}

	if p.UserID != event.UserID || !sameAmount(p.Amount, event.Amount) {
		s.logger.Security().IntegrityViolation("payment", fmt.Sprintf("payment %s redelivered for user %s amount %s", p.ID, event.UserID, event.Amount))
		return nil, ErrPaymentMismatch
	}

	if p.Status == types.PaymentPending {
		return nil, ErrPaymentInProgress
	}

	s.logger.Infof("payment %s already %s, ignoring redelivery", p.ID, p.Status)

	return &PaymentResult{PaymentID: p.ID, Status: p.Status, Duplicate: true}, nil
}

// sameAmount compares decimal amounts by value, so "20" and "20.00" match.
func sameAmount(a, b string) bool {
	x, err := config.ParseAmount(a)
	if err != nil {
		return false
	}

	y, err := config.ParseAmount(b)
	if err != nil {
		return false
	}

	return x.Cmp(y) == 0
}

func (s *Service) complete(ctx context.Context, id string, status types.PaymentStatus) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), completeTimeout)
	defer cancel()

	// a payment left pending blocks its redeliveries until an operator steps in
	if err := s.storage.CompletePayment(ctx, id, status); err != nil {
		s.logger.Errorf("failed to mark payment %s as %s: %v", id, status, err)
	}
}

// outcome decides whether a failed confirmation may be retried by redelivery.
func outcome(err error) types.PaymentStatus {
	switch access.KindOf(err) {
	case access.KindAmountMismatch, access.KindInvalidArgument:
		return types.PaymentRejected
	default:
		return types.PaymentFailed
	}
}
