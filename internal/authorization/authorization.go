// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/storage"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
)

var (
	ErrAdminAlreadyClaimed = errors.New("admin already claimed")
	ErrAdminConflict       = errors.New("stored admin differs from the configured admin")
	ErrNoAdmin             = errors.New("no admin claimed")
)

var _ AuthorityInterface = (*Authority)(nil)

// Authority owns the single admin identity of the deployment. The admin is
// written once and never changes afterwards.
type Authority struct {
	store AdminStoreInterface

	// claims serializes claims inside the process, the store insert is the
	// cross process guard
	claims sync.Mutex

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authority) Admin(ctx context.Context) (*types.Admin, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authority.Admin")
	defer span.End()

	admin, err := a.store.GetAdmin(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoAdmin
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read admin: %w", err)
	}

	return admin, nil
}

func (a *Authority) IsAdmin(ctx context.Context, userID string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authority.IsAdmin")
	defer span.End()

	admin, err := a.Admin(ctx)
	if errors.Is(err, ErrNoAdmin) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return userID != "" && admin.UserID == userID, nil
}

func (a *Authority) Claim(ctx context.Context, userID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authority.Claim")
	defer span.End()

	a.claims.Lock()
	defer a.claims.Unlock()

	_, err := a.store.GetAdmin(ctx)
	switch {
	case err == nil:
		a.logger.Security().AdminClaimRejected(userID)
		return ErrAdminAlreadyClaimed
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("failed to read admin: %w", err)
	}

	_, err = a.store.CreateAdmin(ctx, &types.Admin{UserID: userID, ClaimedAt: time.Now()})
	if errors.Is(err, storage.ErrDuplicateKey) {
		a.logger.Security().AdminClaimRejected(userID)
		return ErrAdminAlreadyClaimed
	}
	if err != nil {
		return fmt.Errorf("failed to store admin: %w", err)
	}

	a.logger.Security().AdminClaimed(userID)
	return nil
}

func (a *Authority) Bootstrap(ctx context.Context, configured string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authority.Bootstrap")
	defer span.End()

	if configured == "" {
		return nil
	}

	a.claims.Lock()
	defer a.claims.Unlock()

	admin, err := a.store.GetAdmin(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		admin, err = a.store.CreateAdmin(ctx, &types.Admin{UserID: configured, ClaimedAt: time.Now()})
		if errors.Is(err, storage.ErrDuplicateKey) {
			// another replica seeded first, compare against what it wrote
			admin, err = a.store.GetAdmin(ctx)
		} else if err == nil {
			a.logger.Security().AdminClaimed(configured)
		}
	}

	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	if admin.UserID != configured {
		a.logger.Security().IntegrityViolation("admin", fmt.Sprintf("stored admin %s, configured admin %s", admin.UserID, configured))
		a.monitor.IncIntegrityViolation(map[string]string{"resource": "admin"})
		return ErrAdminConflict
	}

	return nil
}

func NewAuthority(store AdminStoreInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authority {
	a := new(Authority)
	a.store = store
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
