// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"errors"
	"fmt"
	"time"
)

type ErrorKind string

const (
	KindUnconfigured        ErrorKind = "unconfigured"
	KindTrialDisabled       ErrorKind = "trial_disabled"
	KindTrialAlreadyUsed    ErrorKind = "trial_already_used"
	KindAlreadyMember       ErrorKind = "already_member"
	KindAmountMismatch      ErrorKind = "amount_mismatch"
	KindNotAuthorized       ErrorKind = "not_authorized"
	KindWrongContext        ErrorKind = "wrong_context"
	KindAdminAlreadyClaimed ErrorKind = "admin_already_claimed"
	KindChannelAlreadyBound ErrorKind = "channel_already_bound"
	KindNotFound            ErrorKind = "not_found"
	KindInvalidArgument     ErrorKind = "invalid_argument"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	KindIntegrity           ErrorKind = "integrity"
)

// defaultRetryAfter is suggested when the platform gave no hint of its own.
const defaultRetryAfter = 30 * time.Second

// Error is the typed result of a failed access operation.
type Error struct {
	Kind ErrorKind
	Err  error
	// RetryAfter is set on upstream failures worth retrying
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnconfigured        = &Error{Kind: KindUnconfigured}
	ErrTrialDisabled       = &Error{Kind: KindTrialDisabled}
	ErrTrialAlreadyUsed    = &Error{Kind: KindTrialAlreadyUsed}
	ErrAlreadyMember       = &Error{Kind: KindAlreadyMember}
	ErrAmountMismatch      = &Error{Kind: KindAmountMismatch}
	ErrNotAuthorized       = &Error{Kind: KindNotAuthorized}
	ErrWrongContext        = &Error{Kind: KindWrongContext}
	ErrAdminAlreadyClaimed = &Error{Kind: KindAdminAlreadyClaimed}
	ErrChannelAlreadyBound = &Error{Kind: KindChannelAlreadyBound}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrInvalidArgument     = &Error{Kind: KindInvalidArgument}
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable}
	ErrIntegrity           = &Error{Kind: KindIntegrity}
)

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// upstreamError classifies a channel platform failure. Permanent failures
// carry no retry hint.
func upstreamError(err error) *Error {
	e := &Error{Kind: KindUpstreamUnavailable, Err: err, RetryAfter: defaultRetryAfter}

	var permanent interface{ Permanent() bool }
	if errors.As(err, &permanent) && permanent.Permanent() {
		e.RetryAfter = 0
		return e
	}

	var hinted interface{ RetryAfter() time.Duration }
	if errors.As(err, &hinted) && hinted.RetryAfter() > 0 {
		e.RetryAfter = hinted.RetryAfter()
	}

	return e
}

// KindOf returns the kind of an access error, empty for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
