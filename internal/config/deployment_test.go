// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
)

func intPtr(i int) *int {
	return &i
}

func TestNewDeploymentConfig(t *testing.T) {
	testCases := []struct {
		name        string
		specs       EnvSpec
		expectedErr bool
		check       func(*testing.T, *DeploymentConfig)
	}{
		{
			name: "indefinite paid access",
			specs: EnvSpec{
				TrialEnabled:       true,
				Price:              "20",
				TrialDurationHours: 24,
				InviteLinkLifetime: time.Hour,
				AdminUserID:        " 42 ",
			},
			check: func(t *testing.T, c *DeploymentConfig) {
				if !c.PaidIndefinite() {
					t.Error("expected indefinite paid access")
				}
				if c.TrialDuration != 24*time.Hour {
					t.Errorf("unexpected trial duration %s", c.TrialDuration)
				}
				if c.AdminUserID != "42" {
					t.Errorf("expected trimmed admin id, got %q", c.AdminUserID)
				}
			},
		},
		{
			name: "thirty days paid access",
			specs: EnvSpec{
				Price:              "19.99",
				TrialDurationHours: 1,
				PaidDurationDays:   intPtr(30),
				InviteLinkLifetime: time.Hour,
			},
			check: func(t *testing.T, c *DeploymentConfig) {
				if c.PaidDuration != 30*24*time.Hour {
					t.Errorf("unexpected paid duration %s", c.PaidDuration)
				}
			},
		},
		{
			name:        "invalid price",
			specs:       EnvSpec{Price: "twenty", TrialDurationHours: 24, InviteLinkLifetime: time.Hour},
			expectedErr: true,
		},
		{
			name:        "fractional price notation",
			specs:       EnvSpec{Price: "40/2", TrialDurationHours: 24, InviteLinkLifetime: time.Hour},
			expectedErr: true,
		},
		{
			name:        "zero trial duration",
			specs:       EnvSpec{Price: "20", TrialDurationHours: 0, InviteLinkLifetime: time.Hour},
			expectedErr: true,
		},
		{
			name:        "zero paid duration",
			specs:       EnvSpec{Price: "20", TrialDurationHours: 24, PaidDurationDays: intPtr(0), InviteLinkLifetime: time.Hour},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewDeploymentConfig(&tc.specs)

			if tc.expectedErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			tc.check(t, c)
		})
	}
}

func TestDeploymentConfig_MatchesPrice(t *testing.T) {
	price, _ := ParseAmount("20")
	c := &DeploymentConfig{Price: price}

	testCases := []struct {
		amount   string
		expected bool
	}{
		{"20", true},
		{"20.00", true},
		{" 20 ", true},
		{"19.99", false},
		{"20.01", false},
		{"-20", false},
		{"2e1", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.amount, func(t *testing.T) {
			if got := c.MatchesPrice(tc.amount); got != tc.expected {
				t.Errorf("MatchesPrice(%q) = %v, expected %v", tc.amount, got, tc.expected)
			}
		})
	}
}

func TestEnvSpecDefaults(t *testing.T) {
	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.PaidDurationDays != nil {
		t.Errorf("expected paid duration to be unset, got %d", *specs.PaidDurationDays)
	}

	c, err := NewDeploymentConfig(specs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !c.TrialEnabled || !c.MatchesPrice("20") || c.TrialDuration != 24*time.Hour {
		t.Errorf("unexpected defaults: %+v", c)
	}
}
