// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"fmt"
	"time"
)

type MembershipKind string

const (
	KindTrial MembershipKind = "trial"
	KindPaid  MembershipKind = "paid"
)

func (k MembershipKind) Valid() bool {
	return k == KindTrial || k == KindPaid
}

type MembershipState string

const (
	StateActive  MembershipState = "active"
	StateExpired MembershipState = "expired"
	StateRevoked MembershipState = "revoked"
)

func (s MembershipState) Valid() bool {
	return s == StateActive || s == StateExpired || s == StateRevoked
}

// RevokeReason explains why a record left the active state.
type RevokeReason string

const (
	ReasonExpired  RevokeReason = "expired"
	ReasonRevoked  RevokeReason = "revoked"
	ReasonUpgraded RevokeReason = "upgraded"
)

// TerminalState maps a reason to the state the record ends in.
func (r RevokeReason) TerminalState() MembershipState {
	if r == ReasonExpired {
		return StateExpired
	}

	return StateRevoked
}

type ChatType string

const (
	ChatPrivate    ChatType = "private"
	ChatGroup      ChatType = "group"
	ChatSupergroup ChatType = "supergroup"
	ChatChannel    ChatType = "channel"
)

// Bindable reports whether a chat of this type can be the target channel.
func (c ChatType) Bindable() bool {
	return c == ChatGroup || c == ChatSupergroup || c == ChatChannel
}

// ChatContext is the chat an admin command was issued from.
type ChatContext struct {
	ChatID string   `json:"chat_id" validate:"required"`
	Type   ChatType `json:"chat_type" validate:"required"`
}

type ChannelBinding struct {
	ChannelID string    `db:"channel_id" json:"channel_id"`
	BoundBy   string    `db:"bound_by" json:"bound_by"`
	BoundAt   time.Time `db:"bound_at" json:"bound_at"`
}

type Admin struct {
	UserID    string    `db:"user_id" json:"user_id"`
	ClaimedAt time.Time `db:"claimed_at" json:"claimed_at"`
}

type Membership struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"user_id"`
	Kind          MembershipKind  `db:"kind" json:"kind"`
	State         MembershipState `db:"state" json:"state"`
	GrantedAt     time.Time       `db:"granted_at" json:"granted_at"`
	ExpiresAt     *time.Time      `db:"expires_at" json:"expires_at,omitempty"`
	InviteLink    string          `db:"invite_link" json:"invite_link,omitempty"`
	TrialConsumed bool            `db:"trial_consumed" json:"trial_consumed"`
	Reason        RevokeReason    `db:"reason" json:"reason,omitempty"`
	Version       int64           `db:"version" json:"-"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Due reports whether an active record has reached its expiry at now.
func (m *Membership) Due(now time.Time) bool {
	return m.State == StateActive && m.ExpiresAt != nil && !m.ExpiresAt.After(now)
}

// Validate checks the record invariants that must hold for any persisted row.
func (m *Membership) Validate() error {
	if m.UserID == "" {
		return fmt.Errorf("membership %s has no user", m.ID)
	}

	if !m.Kind.Valid() {
		return fmt.Errorf("membership %s has unknown kind %q", m.ID, m.Kind)
	}

	if !m.State.Valid() {
		return fmt.Errorf("membership %s has unknown state %q", m.ID, m.State)
	}

	if m.ExpiresAt != nil && m.ExpiresAt.Before(m.GrantedAt) {
		return fmt.Errorf("membership %s expires before it was granted", m.ID)
	}

	if m.Kind == KindTrial && !m.TrialConsumed {
		return fmt.Errorf("trial membership %s does not mark the trial as consumed", m.ID)
	}

	return nil
}

// Clone returns a deep copy so callers can mutate without touching shared state.
func (m *Membership) Clone() *Membership {
	c := *m
	if m.ExpiresAt != nil {
		e := *m.ExpiresAt
		c.ExpiresAt = &e
	}

	return &c
}

// DueCursor is the position of the last record read from the due list,
// which is ordered by expiry then id.
type DueCursor struct {
	ExpiresAt time.Time
	ID        string
}

// After returns the cursor positioned on m.
func (m *Membership) After() *DueCursor {
	c := &DueCursor{ID: m.ID}
	if m.ExpiresAt != nil {
		c.ExpiresAt = *m.ExpiresAt
	}

	return c
}

type InviteLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	MaxUses   int       `json:"max_uses"`
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApplied  PaymentStatus = "applied"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRejected PaymentStatus = "rejected"
)

type Payment struct {
	ID        string        `db:"id" json:"id"`
	UserID    string        `db:"user_id" json:"user_id"`
	Amount    string        `db:"amount" json:"amount"`
	Status    PaymentStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// MembershipStatus is the current entitlement of a user.
type MembershipStatus struct {
	UserID        string      `json:"user_id"`
	Active        *Membership `json:"active,omitempty"`
	TrialConsumed bool        `json:"trial_consumed"`
}
