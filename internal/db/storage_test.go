// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/tracing"
)

func newTestSQLiteClient(t *testing.T) *DBClient {
	t.Helper()

	c, err := NewSQLiteClient(
		Config{DSN: filepath.Join(t.TempDir(), "db.sqlite")},
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("test"),
		logging.NewNoopLogger(),
	)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(c.Close)

	if _, err := c.DB().Exec("CREATE TABLE items (name TEXT PRIMARY KEY)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	return c
}

func countItems(t *testing.T, c *DBClient) int {
	t.Helper()

	var n int
	if err := c.Statement(context.Background()).Select("COUNT(*)").From("items").QueryRow().Scan(&n); err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	return n
}

func TestWithTx(t *testing.T) {
	errBoom := errors.New("boom")

	testCases := []struct {
		name          string
		fn            func(context.Context, *DBClient) error
		expectedErr   error
		expectedCount int
	}{
		{
			name: "commit",
			fn: func(ctx context.Context, c *DBClient) error {
				_, err := c.Statement(ctx).Insert("items").Columns("name").Values("a").Exec()
				return err
			},
			expectedCount: 1,
		},
		{
			name: "rollback on error",
			fn: func(ctx context.Context, c *DBClient) error {
				if _, err := c.Statement(ctx).Insert("items").Columns("name").Values("a").Exec(); err != nil {
					return err
				}
				return errBoom
			},
			expectedErr:   errBoom,
			expectedCount: 0,
		},
		{
			name: "nested call joins outer transaction",
			fn: func(ctx context.Context, c *DBClient) error {
				err := c.WithTx(ctx, func(inner context.Context) error {
					_, err := c.Statement(inner).Insert("items").Columns("name").Values("a").Exec()
					return err
				})
				if err != nil {
					return err
				}
				return errBoom
			},
			expectedErr:   errBoom,
			expectedCount: 0,
		},
		{
			name:          "no statements no transaction",
			fn:            func(context.Context, *DBClient) error { return nil },
			expectedCount: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestSQLiteClient(t)

			err := c.WithTx(context.Background(), func(ctx context.Context) error {
				return tc.fn(ctx, c)
			})

			if !errors.Is(err, tc.expectedErr) {
				t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
			}

			if n := countItems(t, c); n != tc.expectedCount {
				t.Errorf("expected %d rows, got %d", tc.expectedCount, n)
			}
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := sqliteDSN("file:test.db?mode=rwc"); got != "file:test.db?mode=rwc&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)" {
		t.Errorf("unexpected dsn %q", got)
	}

	if got := sqliteDSN("test.db"); got != "test.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)" {
		t.Errorf("unexpected dsn %q", got)
	}
}
