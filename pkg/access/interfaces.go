// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"
	"time"

	"github.com/canonical/membership-gateway/internal/types"
)

type ServiceInterface interface {
	RequestTrial(ctx context.Context, userID string) (*types.InviteLink, error)
	ConfirmPayment(ctx context.Context, userID, amount string) (*types.InviteLink, error)
	Revoke(ctx context.Context, userID string, reason types.RevokeReason) error
	AdminRevoke(ctx context.Context, adminUserID, userID string) error
	BindChannel(ctx context.Context, adminUserID string, chat types.ChatContext) (string, error)
	ClaimAdmin(ctx context.Context, userID string) error
	GetMembership(ctx context.Context, userID string) (*types.MembershipStatus, error)
	ListMemberships(ctx context.Context, userID string) ([]*types.Membership, error)
	GetChannelBinding(ctx context.Context) (*types.ChannelBinding, error)
}

type StorageInterface interface {
	GetActiveMembership(ctx context.Context, userID string) (*types.Membership, error)
	HasConsumedTrial(ctx context.Context, userID string) (bool, error)
	ListMemberships(ctx context.Context, userID string) ([]*types.Membership, error)
	CreateMembership(ctx context.Context, membership *types.Membership) (*types.Membership, error)
	UpdateMembership(ctx context.Context, membership *types.Membership) (*types.Membership, error)
	ReplaceActiveMembership(ctx context.Context, prev, next *types.Membership) (*types.Membership, error)
	GetChannelBinding(ctx context.Context) (*types.ChannelBinding, error)
	CreateChannelBinding(ctx context.Context, b *types.ChannelBinding) (*types.ChannelBinding, error)
}

// ChannelAccessInterface is the chat platform side of a grant.
type ChannelAccessInterface interface {
	IssueInviteLink(ctx context.Context, channelID, name string, maxUses int, expiresAt time.Time) (*types.InviteLink, error)
	RevokeInviteLink(ctx context.Context, channelID, link string) error
	RemoveMember(ctx context.Context, channelID, userID string) error
}

type AuthorityInterface interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	Claim(ctx context.Context, userID string) error
}
