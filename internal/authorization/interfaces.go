// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/membership-gateway/internal/types"
)

type AuthorityInterface interface {
	IsAdmin(context.Context, string) (bool, error)
	Admin(context.Context) (*types.Admin, error)
	Claim(context.Context, string) error
	// Bootstrap seeds the admin configured for the deployment, a different
	// stored admin is reported as ErrAdminConflict.
	Bootstrap(context.Context, string) error
}

type AdminStoreInterface interface {
	GetAdmin(context.Context) (*types.Admin, error)
	CreateAdmin(context.Context, *types.Admin) (*types.Admin, error)
}
