// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package telegram

import (
	"fmt"
	"time"
)

type permanentError struct{}

func (permanentError) Error() string   { return "permanent bot api failure" }
func (permanentError) Permanent() bool { return true }

// ErrPermanent marks Bot API failures that retrying cannot fix, such as an
// unknown chat or a bot without admin rights.
var ErrPermanent error = permanentError{}

// APIError is a failed Bot API call.
type APIError struct {
	Method      string
	Code        int
	Description string
	retryAfter  time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s failed with %d: %s", e.Method, e.Code, e.Description)
}

// RetryAfter is the wait the Bot API asked for, zero when none was given.
func (e *APIError) RetryAfter() time.Duration {
	return e.retryAfter
}

// Permanent reports whether the call will keep failing if repeated.
func (e *APIError) Permanent() bool {
	switch {
	case e.Code == 429, e.Code >= 500:
		return false
	case e.Code >= 400:
		return true
	}
	return false
}

func (e *APIError) Is(target error) bool {
	return target == ErrPermanent && e.Permanent()
}
