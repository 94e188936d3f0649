// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/membership-gateway/internal/db"
	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

var membershipColumns = []string{
	"id",
	"user_id",
	"kind",
	"state",
	"granted_at",
	"expires_at",
	"invite_link",
	"trial_consumed",
	"reason",
	"version",
	"updated_at",
}

// Storage is the SQL store, shared by the postgres and sqlite clients.
type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

// normalizeTime drops the monotonic reading and sub-microsecond precision so
// values round trip through every driver unchanged.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// nullableTime binds a missing expiry as SQL NULL.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return normalizeTime(*t)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMembership(row rowScanner) (*types.Membership, error) {
	var (
		m         types.Membership
		expiresAt sql.NullTime
	)

	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Kind,
		&m.State,
		&m.GrantedAt,
		&expiresAt,
		&m.InviteLink,
		&m.TrialConsumed,
		&m.Reason,
		&m.Version,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.GrantedAt = normalizeTime(m.GrantedAt)
	m.UpdatedAt = normalizeTime(m.UpdatedAt)
	if expiresAt.Valid {
		e := normalizeTime(expiresAt.Time)
		m.ExpiresAt = &e
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrIntegrity)
	}

	return &m, nil
}

func (s *Storage) queryMemberships(ctx context.Context, query sq.SelectBuilder) ([]*types.Membership, error) {
	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	memberships := make([]*types.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			if errors.Is(err, ErrIntegrity) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return memberships, nil
}

func (s *Storage) GetActiveMembership(ctx context.Context, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveMembership")
	defer span.End()

	memberships, err := s.queryMemberships(
		ctx,
		s.db.Statement(ctx).
			Select(membershipColumns...).
			From("memberships").
			Where(sq.Eq{"user_id": userID, "state": string(types.StateActive)}),
	)
	if err != nil {
		return nil, err
	}

	switch len(memberships) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return memberships[0], nil
	default:
		return nil, fmt.Errorf("user %s has %d active memberships: %w", userID, len(memberships), ErrIntegrity)
	}
}

func (s *Storage) HasConsumedTrial(ctx context.Context, userID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.HasConsumedTrial")
	defer span.End()

	var count int
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("memberships").
		Where(sq.Eq{"user_id": userID, "trial_consumed": true}).
		QueryRowContext(ctx).
		Scan(&count)

	if err != nil {
		return false, fmt.Errorf("failed to check trial status: %w", err)
	}

	return count > 0, nil
}

func (s *Storage) ListMemberships(ctx context.Context, userID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMemberships")
	defer span.End()

	return s.queryMemberships(
		ctx,
		s.db.Statement(ctx).
			Select(membershipColumns...).
			From("memberships").
			Where(sq.Eq{"user_id": userID}).
			OrderBy("granted_at ASC", "id ASC"),
	)
}

// ListDueMemberships pages through active records expired at now, ordered by
// expiry then id. A nil cursor starts from the oldest record.
func (s *Storage) ListDueMemberships(ctx context.Context, now time.Time, after *types.DueCursor, limit uint64) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListDueMemberships")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(membershipColumns...).
		From("memberships").
		Where(sq.Eq{"state": string(types.StateActive)}).
		Where(sq.NotEq{"expires_at": nil}).
		Where(sq.LtOrEq{"expires_at": normalizeTime(now)}).
		OrderBy("expires_at ASC", "id ASC")

	if after != nil {
		expiresAt := normalizeTime(after.ExpiresAt)
		query = query.Where(sq.Or{
			sq.Gt{"expires_at": expiresAt},
			sq.And{sq.Eq{"expires_at": expiresAt}, sq.Gt{"id": after.ID}},
		})
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	return s.queryMemberships(ctx, query)
}

func (s *Storage) CreateMembership(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateMembership")
	defer span.End()

	created := m.Clone()
	if created.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate membership ID: %w", err)
		}
		created.ID = id.String()
	}
	created.GrantedAt = normalizeTime(created.GrantedAt)
	created.UpdatedAt = normalizeTime(time.Now())
	created.Version = 1
	if created.ExpiresAt != nil {
		e := normalizeTime(*created.ExpiresAt)
		created.ExpiresAt = &e
	}

	if err := created.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to store membership: %v: %w", err, ErrIntegrity)
	}

	_, err := s.db.Statement(ctx).
		Insert("memberships").
		Columns(membershipColumns...).
		Values(
			created.ID,
			created.UserID,
			string(created.Kind),
			string(created.State),
			created.GrantedAt,
			nullableTime(created.ExpiresAt),
			created.InviteLink,
			created.TrialConsumed,
			string(created.Reason),
			created.Version,
			created.UpdatedAt,
		).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, fmt.Sprintf("membership for user %s", created.UserID))
		}
		return nil, fmt.Errorf("failed to insert membership: %w", err)
	}

	return created, nil
}

func (s *Storage) UpdateMembership(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMembership")
	defer span.End()

	updated := m.Clone()
	updated.Version = m.Version + 1
	updated.UpdatedAt = normalizeTime(time.Now())
	if updated.ExpiresAt != nil {
		e := normalizeTime(*updated.ExpiresAt)
		updated.ExpiresAt = &e
	}

	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to store membership: %v: %w", err, ErrIntegrity)
	}

	res, err := s.db.Statement(ctx).
		Update("memberships").
		SetMap(map[string]any{
			"state":          string(updated.State),
			"expires_at":     nullableTime(updated.ExpiresAt),
			"invite_link":    updated.InviteLink,
			"trial_consumed": updated.TrialConsumed,
			"reason":         string(updated.Reason),
			"version":        updated.Version,
			"updated_at":     updated.UpdatedAt,
		}).
		Where(sq.Eq{"id": m.ID, "version": m.Version}).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, fmt.Sprintf("membership for user %s", m.UserID))
		}
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("membership %s at version %d: %w", m.ID, m.Version, ErrVersionConflict)
	}

	return updated, nil
}

// ReplaceActiveMembership closes prev and inserts next in one transaction.
func (s *Storage) ReplaceActiveMembership(ctx context.Context, prev, next *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ReplaceActiveMembership")
	defer span.End()

	var created *types.Membership
	err := s.db.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.UpdateMembership(txCtx, prev); err != nil {
			return err
		}

		var err error
		created, err = s.CreateMembership(txCtx, next)
		return err
	})

	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Storage) GetChannelBinding(ctx context.Context) (*types.ChannelBinding, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetChannelBinding")
	defer span.End()

	var b types.ChannelBinding
	err := s.db.Statement(ctx).
		Select("channel_id", "bound_by", "bound_at").
		From("channel_bindings").
		QueryRowContext(ctx).
		Scan(&b.ChannelID, &b.BoundBy, &b.BoundAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get channel binding: %w", err)
	}

	b.BoundAt = normalizeTime(b.BoundAt)
	return &b, nil
}

func (s *Storage) CreateChannelBinding(ctx context.Context, b *types.ChannelBinding) (*types.ChannelBinding, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateChannelBinding")
	defer span.End()

	created := *b
	created.BoundAt = normalizeTime(b.BoundAt)

	_, err := s.db.Statement(ctx).
		Insert("channel_bindings").
		Columns("channel_id", "bound_by", "bound_at").
		Values(created.ChannelID, created.BoundBy, created.BoundAt).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "channel binding")
		}
		return nil, fmt.Errorf("failed to insert channel binding: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetAdmin(ctx context.Context) (*types.Admin, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAdmin")
	defer span.End()

	var a types.Admin
	err := s.db.Statement(ctx).
		Select("user_id", "claimed_at").
		From("admins").
		QueryRowContext(ctx).
		Scan(&a.UserID, &a.ClaimedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	a.ClaimedAt = normalizeTime(a.ClaimedAt)
	return &a, nil
}

func (s *Storage) CreateAdmin(ctx context.Context, a *types.Admin) (*types.Admin, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAdmin")
	defer span.End()

	created := *a
	created.ClaimedAt = normalizeTime(a.ClaimedAt)

	_, err := s.db.Statement(ctx).
		Insert("admins").
		Columns("user_id", "claimed_at").
		Values(created.UserID, created.ClaimedAt).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "admin")
		}
		return nil, fmt.Errorf("failed to insert admin: %w", err)
	}

	return &created, nil
}

func (s *Storage) ClaimPayment(ctx context.Context, p *types.Payment) error {
	ctx, span := s.tracer.Start(ctx, "storage.ClaimPayment")
	defer span.End()

	now := normalizeTime(time.Now())

	_, err := s.db.Statement(ctx).
		Insert("payments").
		Columns("id", "user_id", "amount", "status", "created_at", "updated_at").
		Values(p.ID, p.UserID, p.Amount, string(types.PaymentPending), now, now).
		ExecContext(ctx)

	if err == nil {
		return nil
	}

	if !IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	// a failed attempt can be retried by the next delivery
	res, err := s.db.Statement(ctx).
		Update("payments").
		Set("status", string(types.PaymentPending)).
		Set("updated_at", now).
		Where(sq.Eq{"id": p.ID, "status": string(types.PaymentFailed)}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to reclaim payment: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("payment %s: %w", p.ID, ErrDuplicateKey)
	}

	return nil
}

func (s *Storage) CompletePayment(ctx context.Context, id string, status types.PaymentStatus) error {
	ctx, span := s.tracer.Start(ctx, "storage.CompletePayment")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("payments").
		Set("status", string(status)).
		Set("updated_at", normalizeTime(time.Now())).
		Where(sq.Eq{"id": id, "status": string(types.PaymentPending)}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to complete payment: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("no pending payment %s: %w", id, ErrNotFound)
	}

	return nil
}

func (s *Storage) GetPayment(ctx context.Context, id string) (*types.Payment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPayment")
	defer span.End()

	var p types.Payment
	err := s.db.Statement(ctx).
		Select("id", "user_id", "amount", "status", "created_at", "updated_at").
		From("payments").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.UserID, &p.Amount, &p.Status, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	p.CreatedAt = normalizeTime(p.CreatedAt)
	p.UpdatedAt = normalizeTime(p.UpdatedAt)
	return &p, nil
}
