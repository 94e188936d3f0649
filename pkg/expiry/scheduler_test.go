// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package expiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package expiry -destination ./mock_interfaces.go -source=./interfaces.go

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestScheduler(store StorageInterface, revoker RevokerInterface) *Scheduler {
	s := NewScheduler(store, revoker, time.Hour, 100, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	s.now = func() time.Time { return testNow }

	return s
}

func due(ids ...string) []*types.Membership {
	ms := make([]*types.Membership, 0, len(ids))
	for _, id := range ids {
		ms = append(ms, &types.Membership{ID: "m-" + id, UserID: id, Kind: types.KindTrial, State: types.StateActive})
	}
	return ms
}

func TestScheduler_Sweep(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*MockStorageInterface, *MockRevokerInterface)
		expectedResult SweepResult
		expectedErr    bool
	}{
		{
			name: "nothing due",
			setupMocks: func(s *MockStorageInterface, _ *MockRevokerInterface) {
				s.EXPECT().ListDueMemberships(gomock.Any(), testNow, gomock.Nil(), uint64(100)).Return(nil, nil)
			},
		},
		{
			name: "revokes every due record",
			setupMocks: func(s *MockStorageInterface, r *MockRevokerInterface) {
				s.EXPECT().ListDueMemberships(gomock.Any(), testNow, gomock.Nil(), uint64(100)).Return(due("1", "2"), nil)
				r.EXPECT().Revoke(gomock.Any(), "1", types.ReasonExpired).Return(nil)
				r.EXPECT().Revoke(gomock.Any(), "2", types.ReasonExpired).Return(nil)
			},
			expectedResult: SweepResult{Due: 2, Revoked: 2},
		},
		{
			name: "one failure does not stop the sweep",
			setupMocks: func(s *MockStorageInterface, r *MockRevokerInterface) {
				s.EXPECT().ListDueMemberships(gomock.Any(), testNow, gomock.Nil(), uint64(100)).Return(due("1", "2", "3"), nil)
				r.EXPECT().Revoke(gomock.Any(), "1", types.ReasonExpired).Return(nil)
				r.EXPECT().Revoke(gomock.Any(), "2", types.ReasonExpired).Return(errors.New("upstream unavailable"))
				r.EXPECT().Revoke(gomock.Any(), "3", types.ReasonExpired).Return(nil)
			},
			expectedResult: SweepResult{Due: 3, Revoked: 2, Failed: 1},
		},
		{
			name: "store unavailable",
			setupMocks: func(s *MockStorageInterface, _ *MockRevokerInterface) {
				s.EXPECT().ListDueMemberships(gomock.Any(), testNow, gomock.Nil(), uint64(100)).Return(nil, errors.New("connection refused"))
			},
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := NewMockStorageInterface(ctrl)
			mockRevoker := NewMockRevokerInterface(ctrl)
			tt.setupMocks(mockStore, mockRevoker)

			res, err := newTestScheduler(mockStore, mockRevoker).Sweep(context.Background())

			if tt.expectedErr != (err != nil) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}

			if res != tt.expectedResult {
				t.Fatalf("expected %+v, got %+v", tt.expectedResult, res)
			}
		})
	}
}

func TestScheduler_SweepSkipsWhileRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestScheduler(NewMockStorageInterface(ctrl), NewMockRevokerInterface(ctrl))

	s.sweeping.Lock()
	defer s.sweeping.Unlock()

	if _, err := s.Sweep(context.Background()); !errors.Is(err, ErrSweepInProgress) {
		t.Fatalf("expected ErrSweepInProgress, got %v", err)
	}
}

func TestScheduler_SweepStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockStore := NewMockStorageInterface(ctrl)
	mockRevoker := NewMockRevokerInterface(ctrl)

	mockStore.EXPECT().ListDueMemberships(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(due("1", "2"), nil)
	mockRevoker.EXPECT().Revoke(gomock.Any(), "1", types.ReasonExpired).DoAndReturn(
		func(context.Context, string, types.RevokeReason) error {
			cancel()
			return nil
		},
	)

	res, err := newTestScheduler(mockStore, mockRevoker).Sweep(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if res.Revoked != 1 {
		t.Fatalf("expected one revoked record, got %+v", res)
	}
}

func TestScheduler_RunSweepsImmediatelyAndStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	swept := make(chan struct{})

	mockStore := NewMockStorageInterface(ctrl)
	mockStore.EXPECT().ListDueMemberships(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, time.Time, *types.DueCursor, uint64) ([]*types.Membership, error) {
			close(swept)
			return nil, nil
		},
	)

	s := newTestScheduler(mockStore, NewMockRevokerInterface(ctrl))

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	select {
	case <-swept:
	case <-time.After(5 * time.Second):
		t.Fatal("expected an immediate sweep")
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
