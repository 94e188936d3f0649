// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// DeploymentConfig holds the commercial settings of a deployment. It is
// built once at startup and never mutated afterwards; the admin identity
// and the channel binding are persisted state and live in storage.
type DeploymentConfig struct {
	TrialEnabled  bool
	Price         *big.Rat
	TrialDuration time.Duration
	// PaidDuration is zero for indefinite paid access
	PaidDuration       time.Duration
	InviteLinkLifetime time.Duration
	AdminUserID        string
}

// MatchesPrice compares a decimal amount with the configured price exactly.
func (c *DeploymentConfig) MatchesPrice(amount string) bool {
	a, err := ParseAmount(amount)
	if err != nil {
		return false
	}

	return a.Cmp(c.Price) == 0
}

// PaidIndefinite reports whether paid grants never expire.
func (c *DeploymentConfig) PaidIndefinite() bool {
	return c.PaidDuration == 0
}

// ParseAmount parses a non negative decimal amount such as "20" or "19.99".
func ParseAmount(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	// big.Rat also accepts fractions and exponents, amounts are plain decimals
	if strings.ContainsAny(s, "/eE") {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	if r.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", s)
	}

	return r, nil
}

func NewDeploymentConfig(specs *EnvSpec) (*DeploymentConfig, error) {
	price, err := ParseAmount(specs.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}

	if specs.TrialDurationHours <= 0 {
		return nil, fmt.Errorf("trial duration must be positive, got %d hours", specs.TrialDurationHours)
	}

	if specs.InviteLinkLifetime <= 0 {
		return nil, fmt.Errorf("invite link lifetime must be positive, got %s", specs.InviteLinkLifetime)
	}

	c := new(DeploymentConfig)
	c.TrialEnabled = specs.TrialEnabled
	c.Price = price
	c.TrialDuration = time.Duration(specs.TrialDurationHours) * time.Hour
	c.InviteLinkLifetime = specs.InviteLinkLifetime
	c.AdminUserID = strings.TrimSpace(specs.AdminUserID)

	if specs.PaidDurationDays != nil {
		if *specs.PaidDurationDays <= 0 {
			return nil, fmt.Errorf("paid duration must be positive when set, got %d days", *specs.PaidDurationDays)
		}
		c.PaidDuration = time.Duration(*specs.PaidDurationDays) * 24 * time.Hour
	}

	return c, nil
}
