// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package telegram

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/types"
)

var _ ClientInterface = (*NoopClient)(nil)

// NoopClient hands out fake links and only logs removals, used when no bot
// token is configured.
type NoopClient struct {
	logger logging.LoggerInterface
}

func (c *NoopClient) IssueInviteLink(_ context.Context, channelID, name string, maxUses int, expiresAt time.Time) (*types.InviteLink, error) {
	link := &types.InviteLink{
		URL:       "https://t.me/+noop-" + uuid.NewString(),
		ExpiresAt: expiresAt.UTC(),
		MaxUses:   maxUses,
	}

	c.logger.Debugf("noop invite link %s (%s) issued for channel %s", link.URL, name, channelID)
	return link, nil
}

func (c *NoopClient) RevokeInviteLink(_ context.Context, channelID, link string) error {
	c.logger.Debugf("noop invite link %s revoked for channel %s", link, channelID)
	return nil
}

func (c *NoopClient) RemoveMember(_ context.Context, channelID, userID string) error {
	c.logger.Debugf("noop removal of user %s from channel %s", userID, channelID)
	return nil
}

func NewNoopClient(logger logging.LoggerInterface) *NoopClient {
	return &NoopClient{logger: logger}
}
