// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/membership-gateway/internal/authorization"
	"github.com/canonical/membership-gateway/internal/config"
	"github.com/canonical/membership-gateway/internal/keylock"
	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/storage"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
)

const (
	// inviteMaxUses keeps every invite link personal
	inviteMaxUses = 1

	// bindingLockKey serializes channel binding, user ids never collide with it
	bindingLockKey = "\x00channel-binding"
)

var _ ServiceInterface = (*Service)(nil)

// Service drives the membership lifecycle. Every decision re-reads the store
// under the per user lock, nothing is cached between calls.
type Service struct {
	storage   StorageInterface
	channel   ChannelAccessInterface
	authority AuthorityInterface
	config    *config.DeploymentConfig

	locks          *keylock.Locker
	channelTimeout time.Duration
	now            func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	channel ChannelAccessInterface,
	authority AuthorityInterface,
	cfg *config.DeploymentConfig,
	channelTimeout time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:        storage,
		channel:        channel,
		authority:      authority,
		config:         cfg,
		locks:          keylock.New(),
		channelTimeout: channelTimeout,
		now:            time.Now,
		tracer:         tracer,
		monitor:        monitor,
		logger:         logger,
	}
}

func (s *Service) RequestTrial(ctx context.Context, userID string) (*types.InviteLink, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.RequestTrial")
	defer span.End()

	if userID == "" {
		return nil, newError(KindInvalidArgument, "user id is required")
	}

	if !s.config.TrialEnabled {
		return nil, ErrTrialDisabled
	}

	binding, err := s.binding(ctx)
	if err != nil {
		return nil, err
	}

	// cheap rejection before talking to the platform
	if err := s.checkTrialEligible(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.config.TrialDuration)

	link, err := s.issueLink(ctx, binding.ChannelID, "Trial_"+userID, expiresAt)
	if err != nil {
		s.countEvent(types.KindTrial, "failed")
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		s.withdrawLink(ctx, binding.ChannelID, link.URL)
		return nil, fmt.Errorf("failed to lock user %s: %w", userID, err)
	}
	defer unlock()

	if err := s.checkTrialEligible(ctx, userID); err != nil {
		s.withdrawLink(ctx, binding.ChannelID, link.URL)
		return nil, err
	}

	_, err = s.storage.CreateMembership(ctx, &types.Membership{
		UserID:        userID,
		Kind:          types.KindTrial,
		State:         types.StateActive,
		GrantedAt:     now,
		ExpiresAt:     &expiresAt,
		InviteLink:    link.URL,
		TrialConsumed: true,
	})
	if err != nil {
		s.withdrawLink(ctx, binding.ChannelID, link.URL)

		// another replica got there first
		if errors.Is(err, storage.ErrDuplicateKey) {
			if eligibleErr := s.checkTrialEligible(ctx, userID); eligibleErr != nil {
				return nil, eligibleErr
			}
		}

		return nil, s.storeError("membership", err)
	}

	s.countEvent(types.KindTrial, "granted")
	s.logger.Infof("trial granted to user %s until %s", userID, expiresAt.Format(time.RFC3339))

	return link, nil
}

func (s *Service) ConfirmPayment(ctx context.Context, userID, amount string) (*types.InviteLink, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.ConfirmPayment")
	defer span.End()

	if userID == "" {
		return nil, newError(KindInvalidArgument, "user id is required")
	}

	// a wrong amount is final, an unbound channel is not
	if !s.config.MatchesPrice(amount) {
		s.countEvent(types.KindPaid, "amount_mismatch")
		return nil, newError(KindAmountMismatch, "amount %q does not match the price %s", amount, s.config.Price.FloatString(2))
	}

	binding, err := s.binding(ctx)
	if err != nil {
		return nil, err
	}

	// renewals need no new link
	link, renewed, err := s.renewPaid(ctx, userID)
	if err != nil || renewed {
		return link, err
	}

	now := s.now()
	link, err = s.issueLink(ctx, binding.ChannelID, "Paid_"+userID, now.Add(s.config.InviteLinkLifetime))
	if err != nil {
		s.countEvent(types.KindPaid, "failed")
		return nil, err
	}

	unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		s.withdrawLink(ctx, binding.ChannelID, link.URL)
		return nil, fmt.Errorf("failed to lock user %s: %w", userID, err)
	}
	defer unlock()

	active, err := s.activeMembership(ctx, userID)
	if err != nil {
		s.withdrawLink(ctx, binding.ChannelID, link.URL)
		return nil, err
	}

	if active != nil && active.Kind == types.KindPaid {
		// a concurrent payment created the record while the link was issued
		s.withdrawLink(ctx, binding.ChannelID, link.URL)
		return s.extend(ctx, active)
	}

	consumed, err := s.storage.HasConsumedTrial(ctx, userID)
	if err != nil {
		s.withdrawLink(ctx, binding.ChannelID, link.URL)
		return nil, s.storeError("membership", err)
	}

	next := &types.Membership{
		UserID:        userID,
		Kind:          types.KindPaid,
		State:         types.StateActive,
		GrantedAt:     now,
		ExpiresAt:     s.paidExpiry(now),
		InviteLink:    link.URL,
		TrialConsumed: consumed,
	}

	if active == nil {
		_, err = s.storage.CreateMembership(ctx, next)
	} else {
		// trial upgrade, the user stays in the channel
		closing := active.Clone()
		closing.State = types.StateRevoked
		closing.Reason = types.ReasonUpgraded
		_, err = s.storage.ReplaceActiveMembership(ctx, closing, next)
	}

	if err != nil {
		s.withdrawLink(ctx, binding.ChannelID, link.URL)
		return nil, s.storeError("membership", err)
	}

	if active != nil {
		// the trial link is superseded by the paid one
		s.withdrawLink(ctx, binding.ChannelID, active.InviteLink)
		s.countEvent(types.KindTrial, string(types.ReasonUpgraded))
	}
	s.countEvent(types.KindPaid, "granted")
	s.logger.Infof("paid membership granted to user %s", userID)

	return link, nil
}

// renewPaid extends an active paid record, renewed is false when the user
// holds none.
func (s *Service) renewPaid(ctx context.Context, userID string) (*types.InviteLink, bool, error) {
	unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to lock user %s: %w", userID, err)
	}
	defer unlock()

	active, err := s.activeMembership(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	if active == nil || active.Kind != types.KindPaid {
		return nil, false, nil
	}

	link, err := s.extend(ctx, active)
	return link, err == nil, err
}

// extend pushes the expiry of an active paid record by one paid period,
// counted from its current expiry or from now if that already passed.
func (s *Service) extend(ctx context.Context, active *types.Membership) (*types.InviteLink, error) {
	renewed := active.Clone()

	if active.ExpiresAt != nil && !s.config.PaidIndefinite() {
		from := s.now()
		if active.ExpiresAt.After(from) {
			from = *active.ExpiresAt
		}
		e := from.Add(s.config.PaidDuration)
		renewed.ExpiresAt = &e
	} else {
		renewed.ExpiresAt = nil
	}

	updated, err := s.storage.UpdateMembership(ctx, renewed)
	if err != nil {
		return nil, s.storeError("membership", err)
	}

	s.countEvent(types.KindPaid, "renewed")
	s.logger.Infof("paid membership of user %s renewed", active.UserID)

	return s.existingLink(updated), nil
}

func (s *Service) Revoke(ctx context.Context, userID string, reason types.RevokeReason) error {
	ctx, span := s.tracer.Start(ctx, "access.Service.Revoke")
	defer span.End()

	if userID == "" {
		return newError(KindInvalidArgument, "user id is required")
	}

	if reason != types.ReasonExpired && reason != types.ReasonRevoked {
		return newError(KindInvalidArgument, "unsupported revoke reason %q", reason)
	}

	unlock, err := s.locks.Lock(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to lock user %s: %w", userID, err)
	}
	defer unlock()

	active, err := s.activeMembership(ctx, userID)
	if err != nil {
		return err
	}

	if active == nil {
		return nil
	}

	// renewed since it was listed as due
	if reason == types.ReasonExpired && !active.Due(s.now()) {
		s.logger.Debugf("membership %s of user %s is no longer due", active.ID, userID)
		return nil
	}

	binding, err := s.storage.GetChannelBinding(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return s.integrityError("channel_binding", fmt.Errorf("user %s holds an active membership but no channel is bound", userID))
	}
	if err != nil {
		return s.storeError("channel_binding", err)
	}

	// the lock stays held so a renewal cannot slip in between removal and the write
	removeCtx, cancel := context.WithTimeout(ctx, s.channelTimeout)
	err = s.channel.RemoveMember(removeCtx, binding.ChannelID, userID)
	cancel()

	if err != nil {
		s.countEvent(active.Kind, "revoke_failed")
		s.logger.Errorf("failed to remove user %s from channel %s: %v", userID, binding.ChannelID, err)
		return upstreamError(err)
	}

	closing := active.Clone()
	closing.State = reason.TerminalState()
	closing.Reason = reason

	if _, err := s.storage.UpdateMembership(ctx, closing); err != nil {
		return s.storeError("membership", err)
	}

	// an unused link must not outlive the grant
	s.withdrawLink(ctx, binding.ChannelID, active.InviteLink)

	s.countEvent(active.Kind, string(reason))
	s.logger.Security().AccessRevoked(userID, string(reason))

	return nil
}

func (s *Service) AdminRevoke(ctx context.Context, adminUserID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "access.Service.AdminRevoke")
	defer span.End()

	if err := s.requireAdmin(ctx, adminUserID, "membership:"+userID); err != nil {
		return err
	}

	return s.Revoke(ctx, userID, types.ReasonRevoked)
}

func (s *Service) BindChannel(ctx context.Context, adminUserID string, chat types.ChatContext) (string, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.BindChannel")
	defer span.End()

	if err := s.requireAdmin(ctx, adminUserID, "channel_binding"); err != nil {
		return "", err
	}

	if !chat.Type.Bindable() {
		return "", newError(KindWrongContext, "channels can only be bound from a group, supergroup or channel, not from a %q chat", chat.Type)
	}

	if chat.ChatID == "" {
		return "", newError(KindInvalidArgument, "chat id is required")
	}

	unlock, err := s.locks.Lock(ctx, bindingLockKey)
	if err != nil {
		return "", fmt.Errorf("failed to lock channel binding: %w", err)
	}
	defer unlock()

	existing, err := s.storage.GetChannelBinding(ctx)
	switch {
	case err == nil:
		return s.sameBinding(existing, chat.ChatID)
	case !errors.Is(err, storage.ErrNotFound):
		return "", s.storeError("channel_binding", err)
	}

	_, err = s.storage.CreateChannelBinding(ctx, &types.ChannelBinding{
		ChannelID: chat.ChatID,
		BoundBy:   adminUserID,
		BoundAt:   s.now(),
	})

	if errors.Is(err, storage.ErrDuplicateKey) {
		existing, err = s.storage.GetChannelBinding(ctx)
		if err != nil {
			return "", s.storeError("channel_binding", err)
		}
		return s.sameBinding(existing, chat.ChatID)
	}

	if err != nil {
		return "", s.storeError("channel_binding", err)
	}

	s.logger.Security().ChannelBound(adminUserID, chat.ChatID)

	return chat.ChatID, nil
}

func (s *Service) sameBinding(existing *types.ChannelBinding, chatID string) (string, error) {
	if existing.ChannelID != chatID {
		return "", newError(KindChannelAlreadyBound, "deployment is already bound to channel %s", existing.ChannelID)
	}

	return existing.ChannelID, nil
}

func (s *Service) ClaimAdmin(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "access.Service.ClaimAdmin")
	defer span.End()

	if userID == "" {
		return newError(KindInvalidArgument, "user id is required")
	}

	err := s.authority.Claim(ctx, userID)
	if errors.Is(err, authorization.ErrAdminAlreadyClaimed) {
		return &Error{Kind: KindAdminAlreadyClaimed, Err: err}
	}
	if err != nil {
		return s.storeError("admin", err)
	}

	return nil
}

func (s *Service) GetMembership(ctx context.Context, userID string) (*types.MembershipStatus, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.GetMembership")
	defer span.End()

	if userID == "" {
		return nil, newError(KindInvalidArgument, "user id is required")
	}

	active, err := s.activeMembership(ctx, userID)
	if err != nil {
		return nil, err
	}

	consumed, err := s.storage.HasConsumedTrial(ctx, userID)
	if err != nil {
		return nil, s.storeError("membership", err)
	}

	return &types.MembershipStatus{
		UserID:        userID,
		Active:        active,
		TrialConsumed: consumed,
	}, nil
}

func (s *Service) ListMemberships(ctx context.Context, userID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.ListMemberships")
	defer span.End()

	if userID == "" {
		return nil, newError(KindInvalidArgument, "user id is required")
	}

	memberships, err := s.storage.ListMemberships(ctx, userID)
	if err != nil {
		return nil, s.storeError("membership", err)
	}

	return memberships, nil
}

func (s *Service) GetChannelBinding(ctx context.Context) (*types.ChannelBinding, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.GetChannelBinding")
	defer span.End()

	return s.binding(ctx)
}

func (s *Service) binding(ctx context.Context) (*types.ChannelBinding, error) {
	binding, err := s.storage.GetChannelBinding(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(KindUnconfigured, "no channel is bound yet")
	}
	if err != nil {
		return nil, s.storeError("channel_binding", err)
	}

	return binding, nil
}

// activeMembership returns nil when the user holds no active grant.
func (s *Service) activeMembership(ctx context.Context, userID string) (*types.Membership, error) {
	active, err := s.storage.GetActiveMembership(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.storeError("membership", err)
	}

	return active, nil
}

func (s *Service) checkTrialEligible(ctx context.Context, userID string) error {
	consumed, err := s.storage.HasConsumedTrial(ctx, userID)
	if err != nil {
		return s.storeError("membership", err)
	}

	if consumed {
		return newError(KindTrialAlreadyUsed, "user %s already used the trial", userID)
	}

	active, err := s.activeMembership(ctx, userID)
	if err != nil {
		return err
	}

	if active != nil {
		return newError(KindAlreadyMember, "user %s already holds an active %s membership", userID, active.Kind)
	}

	return nil
}

func (s *Service) requireAdmin(ctx context.Context, userID, resource string) error {
	ok, err := s.authority.IsAdmin(ctx, userID)
	if err != nil {
		return s.storeError("admin", err)
	}

	if !ok {
		s.logger.Security().AuthzFailure(userID, resource)
		return newError(KindNotAuthorized, "user %q is not the admin", userID)
	}

	return nil
}

func (s *Service) paidExpiry(from time.Time) *time.Time {
	if s.config.PaidIndefinite() {
		return nil
	}

	e := from.Add(s.config.PaidDuration)
	return &e
}

func (s *Service) existingLink(m *types.Membership) *types.InviteLink {
	return &types.InviteLink{
		URL:       m.InviteLink,
		ExpiresAt: m.GrantedAt.Add(s.config.InviteLinkLifetime),
		MaxUses:   inviteMaxUses,
	}
}

func (s *Service) issueLink(ctx context.Context, channelID, name string, expiresAt time.Time) (*types.InviteLink, error) {
	ctx, cancel := context.WithTimeout(ctx, s.channelTimeout)
	defer cancel()

	link, err := s.channel.IssueInviteLink(ctx, channelID, name, inviteMaxUses, expiresAt)
	if err != nil {
		s.logger.Errorf("failed to issue invite link for channel %s: %v", channelID, err)
		return nil, upstreamError(err)
	}

	return link, nil
}

// withdrawLink revokes an invite link on a best effort basis.
func (s *Service) withdrawLink(ctx context.Context, channelID, link string) {
	if link == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.channelTimeout)
	defer cancel()

	if err := s.channel.RevokeInviteLink(ctx, channelID, link); err != nil {
		s.logger.Warnf("failed to revoke invite link for channel %s: %v", channelID, err)
	}
}

// storeError turns integrity failures into fatal errors and passes anything
// else through.
func (s *Service) storeError(resource string, err error) error {
	if errors.Is(err, storage.ErrIntegrity) || errors.Is(err, authorization.ErrAdminConflict) {
		return s.integrityError(resource, err)
	}

	return fmt.Errorf("%s storage failure: %w", resource, err)
}

func (s *Service) integrityError(resource string, err error) error {
	s.logger.Security().IntegrityViolation(resource, err.Error())
	s.monitor.IncIntegrityViolation(map[string]string{"resource": resource})

	return &Error{Kind: KindIntegrity, Err: err}
}

func (s *Service) countEvent(kind types.MembershipKind, outcome string) {
	if err := s.monitor.IncAccessEvent(map[string]string{"kind": string(kind), "outcome": outcome}); err != nil {
		s.logger.Debugf("failed to count access event: %v", err)
	}
}
