// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package telegram

import (
	"context"
	"time"

	"github.com/canonical/membership-gateway/internal/types"
)

type ClientInterface interface {
	IssueInviteLink(ctx context.Context, channelID, name string, maxUses int, expiresAt time.Time) (*types.InviteLink, error)
	RevokeInviteLink(ctx context.Context, channelID, link string) error
	RemoveMember(ctx context.Context, channelID, userID string) error
}
