// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/canonical/membership-gateway/internal/types"
)

// StorageInterface is the payment ledger subset of internal/storage.
type StorageInterface interface {
	ClaimPayment(ctx context.Context, p *types.Payment) error
	CompletePayment(ctx context.Context, id string, status types.PaymentStatus) error
	GetPayment(ctx context.Context, id string) (*types.Payment, error)
}

// ConfirmerInterface applies a settled payment to the payer's membership.
type ConfirmerInterface interface {
	ConfirmPayment(ctx context.Context, userID, amount string) (*types.InviteLink, error)
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandlePayment(ctx context.Context, event *PaymentEvent) (*PaymentResult, error)
}
