// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
)

var _ StorageInterface = (*MemoryStorage)(nil)

// MemoryStorage keeps everything in process, it enforces the same unique
// constraints as the SQL schema.
type MemoryStorage struct {
	mu sync.RWMutex

	memberships map[string]*types.Membership
	byUser      map[string][]string
	binding     *types.ChannelBinding
	admin       *types.Admin
	payments    map[string]*types.Payment

	tracer tracing.TracingInterface
}

func NewMemoryStorage(tracer tracing.TracingInterface) *MemoryStorage {
	s := new(MemoryStorage)

	s.memberships = make(map[string]*types.Membership)
	s.byUser = make(map[string][]string)
	s.payments = make(map[string]*types.Payment)

	s.tracer = tracer

	return s
}

func (s *MemoryStorage) activeLocked(userID string) []*types.Membership {
	active := make([]*types.Membership, 0, 1)
	for _, id := range s.byUser[userID] {
		if m := s.memberships[id]; m.State == types.StateActive {
			active = append(active, m)
		}
	}
	return active
}

func (s *MemoryStorage) GetActiveMembership(ctx context.Context, userID string) (*types.Membership, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetActiveMembership")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	active := s.activeLocked(userID)
	switch len(active) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return active[0].Clone(), nil
	default:
		return nil, fmt.Errorf("user %s has %d active memberships: %w", userID, len(active), ErrIntegrity)
	}
}

func (s *MemoryStorage) HasConsumedTrial(ctx context.Context, userID string) (bool, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.HasConsumedTrial")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.byUser[userID] {
		if s.memberships[id].TrialConsumed {
			return true, nil
		}
	}

	return false, nil
}

func (s *MemoryStorage) ListMemberships(ctx context.Context, userID string) ([]*types.Membership, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.ListMemberships")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	memberships := make([]*types.Membership, 0, len(s.byUser[userID]))
	for _, id := range s.byUser[userID] {
		memberships = append(memberships, s.memberships[id].Clone())
	}

	sort.SliceStable(memberships, func(i, j int) bool {
		if memberships[i].GrantedAt.Equal(memberships[j].GrantedAt) {
			return memberships[i].ID < memberships[j].ID
		}
		return memberships[i].GrantedAt.Before(memberships[j].GrantedAt)
	})

	return memberships, nil
}

func (s *MemoryStorage) ListDueMemberships(ctx context.Context, now time.Time, after *types.DueCursor, limit uint64) ([]*types.Membership, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.ListDueMemberships")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	due := make([]*types.Membership, 0)
	for _, m := range s.memberships {
		if m.Due(now) && (after == nil || dueAfter(m, after)) {
			due = append(due, m.Clone())
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].ExpiresAt.Equal(*due[j].ExpiresAt) {
			return due[i].ExpiresAt.Before(*due[j].ExpiresAt)
		}
		return due[i].ID < due[j].ID
	})

	if limit > 0 && uint64(len(due)) > limit {
		due = due[:limit]
	}

	return due, nil
}

func dueAfter(m *types.Membership, c *types.DueCursor) bool {
	if m.ExpiresAt.Equal(c.ExpiresAt) {
		return m.ID > c.ID
	}

	return m.ExpiresAt.After(c.ExpiresAt)
}

func (s *MemoryStorage) CreateMembership(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.CreateMembership")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createLocked(m)
}

func (s *MemoryStorage) createLocked(m *types.Membership) (*types.Membership, error) {
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

	if _, ok := s.memberships[created.ID]; ok {
		return nil, fmt.Errorf("membership %s: %w", created.ID, ErrDuplicateKey)
	}

	for _, id := range s.byUser[created.UserID] {
		existing := s.memberships[id]
		if created.State == types.StateActive && existing.State == types.StateActive {
			return nil, fmt.Errorf("active membership for user %s: %w", created.UserID, ErrDuplicateKey)
		}
		if created.Kind == types.KindTrial && existing.Kind == types.KindTrial {
			return nil, fmt.Errorf("trial membership for user %s: %w", created.UserID, ErrDuplicateKey)
		}
	}

	s.memberships[created.ID] = created
	s.byUser[created.UserID] = append(s.byUser[created.UserID], created.ID)

	return created.Clone(), nil
}

func (s *MemoryStorage) UpdateMembership(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.UpdateMembership")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateLocked(m)
}

func (s *MemoryStorage) updateLocked(m *types.Membership) (*types.Membership, error) {
	stored, ok := s.memberships[m.ID]
	if !ok || stored.Version != m.Version {
		return nil, fmt.Errorf("membership %s at version %d: %w", m.ID, m.Version, ErrVersionConflict)
	}

	updated := m.Clone()
	// identity columns are never rewritten
	updated.UserID = stored.UserID
	updated.Kind = stored.Kind
	updated.GrantedAt = stored.GrantedAt
	updated.Version = m.Version + 1
	updated.UpdatedAt = normalizeTime(time.Now())
	if updated.ExpiresAt != nil {
		e := normalizeTime(*updated.ExpiresAt)
		updated.ExpiresAt = &e
	}

	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to store membership: %v: %w", err, ErrIntegrity)
	}

	if updated.State == types.StateActive && stored.State != types.StateActive {
		for _, other := range s.activeLocked(updated.UserID) {
			if other.ID != updated.ID {
				return nil, fmt.Errorf("active membership for user %s: %w", updated.UserID, ErrDuplicateKey)
			}
		}
	}

	s.memberships[updated.ID] = updated

	return updated.Clone(), nil
}

func (s *MemoryStorage) ReplaceActiveMembership(ctx context.Context, prev, next *types.Membership) (*types.Membership, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.ReplaceActiveMembership")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	original := s.memberships[prev.ID]

	if _, err := s.updateLocked(prev); err != nil {
		return nil, err
	}

	created, err := s.createLocked(next)
	if err != nil {
		// undo the first half
		s.memberships[prev.ID] = original
		return nil, err
	}

	return created, nil
}

func (s *MemoryStorage) GetChannelBinding(ctx context.Context) (*types.ChannelBinding, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetChannelBinding")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.binding == nil {
		return nil, ErrNotFound
	}

	b := *s.binding
	return &b, nil
}

func (s *MemoryStorage) CreateChannelBinding(ctx context.Context, b *types.ChannelBinding) (*types.ChannelBinding, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.CreateChannelBinding")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.binding != nil {
		return nil, fmt.Errorf("channel binding: %w", ErrDuplicateKey)
	}

	created := *b
	created.BoundAt = normalizeTime(b.BoundAt)
	s.binding = &created

	out := created
	return &out, nil
}

func (s *MemoryStorage) GetAdmin(ctx context.Context) (*types.Admin, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetAdmin")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.admin == nil {
		return nil, ErrNotFound
	}

	a := *s.admin
	return &a, nil
}

func (s *MemoryStorage) CreateAdmin(ctx context.Context, a *types.Admin) (*types.Admin, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.CreateAdmin")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.admin != nil {
		return nil, fmt.Errorf("admin: %w", ErrDuplicateKey)
	}

	created := *a
	created.ClaimedAt = normalizeTime(a.ClaimedAt)
	s.admin = &created

	out := created
	return &out, nil
}

func (s *MemoryStorage) ClaimPayment(ctx context.Context, p *types.Payment) error {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.ClaimPayment")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := normalizeTime(time.Now())

	if existing, ok := s.payments[p.ID]; ok {
		if existing.Status != types.PaymentFailed {
			return fmt.Errorf("payment %s: %w", p.ID, ErrDuplicateKey)
		}
		existing.Status = types.PaymentPending
		existing.UpdatedAt = now
		return nil
	}

	s.payments[p.ID] = &types.Payment{
		ID:        p.ID,
		UserID:    p.UserID,
		Amount:    p.Amount,
		Status:    types.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return nil
}

func (s *MemoryStorage) CompletePayment(ctx context.Context, id string, status types.PaymentStatus) error {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.CompletePayment")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok || p.Status != types.PaymentPending {
		return fmt.Errorf("no pending payment %s: %w", id, ErrNotFound)
	}

	p.Status = status
	p.UpdatedAt = normalizeTime(time.Now())

	return nil
}

func (s *MemoryStorage) GetPayment(ctx context.Context, id string) (*types.Payment, error) {
	_, span := s.tracer.Start(ctx, "storage.MemoryStorage.GetPayment")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, ErrNotFound
	}

	out := *p
	return &out, nil
}
