// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package expiry

import (
	"context"
	"time"

	"github.com/canonical/membership-gateway/internal/types"
)

type StorageInterface interface {
	ListDueMemberships(ctx context.Context, now time.Time, after *types.DueCursor, limit uint64) ([]*types.Membership, error)
}

type RevokerInterface interface {
	Revoke(ctx context.Context, userID string, reason types.RevokeReason) error
}
