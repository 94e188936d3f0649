// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDebugLogger(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("DEBUG")
	}()
}

func TestInvalidLevel(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("invalid")
	}()
}

func TestLoggerExposesSecurityLogger(t *testing.T) {
	l := NewLogger("info")

	if l.Security() == nil {
		t.Fatal("expected security logger to be set")
	}
}

func TestSecurityLoggerEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewSecurityLogger(zap.New(core))

	s.AdminClaimed("user-1")
	s.IntegrityViolation("membership", "two active records")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Message != eventAdminClaimed || entries[0].Level != zapcore.WarnLevel {
		t.Errorf("unexpected first entry %q at %v", entries[0].Message, entries[0].Level)
	}

	if entries[1].Level != zapcore.ErrorLevel {
		t.Errorf("expected integrity violation at error level, got %v", entries[1].Level)
	}

	if v := entries[1].ContextMap()["resource"]; v != "membership" {
		t.Errorf("expected resource field, got %v", v)
	}
}
