// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import "github.com/canonical/membership-gateway/internal/types"

// PaymentEvent is delivered by the payment provider once a charge settles.
// Deliveries are at least once, PaymentID identifies redeliveries.
type PaymentEvent struct {
	PaymentID string `json:"payment_id" validate:"required,max=255"`
	UserID    string `json:"user_id" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
}

type PaymentResult struct {
	PaymentID  string              `json:"payment_id"`
	Status     types.PaymentStatus `json:"status"`
	Duplicate  bool                `json:"duplicate,omitempty"`
	InviteLink *types.InviteLink   `json:"invite_link,omitempty"`
}
