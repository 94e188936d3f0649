// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var EmbedMigrations embed.FS

// NewProvider returns a goose provider for the migrations of the given
// driver, either "postgres" or "sqlite".
func NewProvider(driver string, db *sql.DB, opts ...goose.ProviderOption) (*goose.Provider, error) {
	var dialect goose.Dialect

	switch driver {
	case "postgres":
		dialect = goose.DialectPostgres
	case "sqlite":
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("unsupported migration driver %q", driver)
	}

	fsys, err := fs.Sub(EmbedMigrations, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", driver, err)
	}

	return goose.NewProvider(dialect, db, fsys, opts...)
}
