// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/membership-gateway/internal/types"
)

type StorageInterface interface {
	// GetActiveMembership returns ErrNotFound when the user holds no active grant.
	GetActiveMembership(ctx context.Context, userID string) (*types.Membership, error)
	HasConsumedTrial(ctx context.Context, userID string) (bool, error)
	ListMemberships(ctx context.Context, userID string) ([]*types.Membership, error)
	ListDueMemberships(ctx context.Context, now time.Time, after *types.DueCursor, limit uint64) ([]*types.Membership, error)
	CreateMembership(ctx context.Context, membership *types.Membership) (*types.Membership, error)
	// UpdateMembership writes m only if the stored version still equals m.Version.
	UpdateMembership(ctx context.Context, membership *types.Membership) (*types.Membership, error)
	ReplaceActiveMembership(ctx context.Context, prev, next *types.Membership) (*types.Membership, error)

	GetChannelBinding(ctx context.Context) (*types.ChannelBinding, error)
	CreateChannelBinding(ctx context.Context, b *types.ChannelBinding) (*types.ChannelBinding, error)
	GetAdmin(ctx context.Context) (*types.Admin, error)
	CreateAdmin(ctx context.Context, a *types.Admin) (*types.Admin, error)

	// ClaimPayment records a pending payment, or takes a failed one back to
	// pending. ErrDuplicateKey means someone else owns the payment.
	ClaimPayment(ctx context.Context, p *types.Payment) error
	CompletePayment(ctx context.Context, id string, status types.PaymentStatus) error
	GetPayment(ctx context.Context, id string) (*types.Payment, error)
}
