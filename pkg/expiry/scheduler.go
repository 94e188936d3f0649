// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package expiry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
)

// ErrSweepInProgress is returned when a sweep is requested while another runs.
var ErrSweepInProgress = errors.New("expiry sweep already in progress")

// SweepResult summarizes one pass over the due records.
type SweepResult struct {
	Due     int `json:"due"`
	Revoked int `json:"revoked"`
	Failed  int `json:"failed"`
}

// Scheduler expires time-limited grants. It keeps no state of its own,
// every pass starts from what the store reports as due.
type Scheduler struct {
	storage StorageInterface
	revoker RevokerInterface

	interval  time.Duration
	batchSize uint64
	now       func() time.Time

	sweeping sync.Mutex

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Infof("expiry scheduler started, sweeping every %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweepLogged(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info("expiry scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) sweepLogged(ctx context.Context) {
	res, err := s.Sweep(ctx)

	switch {
	case errors.Is(err, ErrSweepInProgress):
		s.logger.Debug("previous expiry sweep still running, skipping")
	case errors.Is(err, context.Canceled):
	case err != nil:
		s.logger.Errorf("expiry sweep failed: %v", err)
	case res.Due > 0:
		s.logger.Infof("expiry sweep revoked %d of %d due memberships, %d failed", res.Revoked, res.Due, res.Failed)
	}
}

// Sweep revokes every record due when it starts, one failure does not stop
// the pass. The due list is read in pages of batchSize past the last record
// seen, so records that keep failing never hide the ones behind them. They
// stay active and are tried again by the next sweep.
func (s *Scheduler) Sweep(ctx context.Context) (SweepResult, error) {
	ctx, span := s.tracer.Start(ctx, "expiry.Scheduler.Sweep")
	defer span.End()

	var res SweepResult

	if !s.sweeping.TryLock() {
		s.observe("skipped", 0)
		return res, ErrSweepInProgress
	}
	defer s.sweeping.Unlock()

	start := time.Now()
	now := s.now()

	var cursor *types.DueCursor
	for {
		due, err := s.storage.ListDueMemberships(ctx, now, cursor, s.batchSize)
		if err != nil {
			s.observe("failed", time.Since(start))
			return res, fmt.Errorf("failed to list due memberships: %w", err)
		}

		res.Due += len(due)

		for _, m := range due {
			if err := ctx.Err(); err != nil {
				s.observe("interrupted", time.Since(start))
				return res, err
			}

			if err := s.revoker.Revoke(ctx, m.UserID, types.ReasonExpired); err != nil {
				res.Failed++
				s.logger.Errorf("failed to expire membership %s of user %s: %v", m.ID, m.UserID, err)
				continue
			}

			res.Revoked++
		}

		if s.batchSize == 0 || uint64(len(due)) < s.batchSize {
			break
		}

		cursor = due[len(due)-1].After()
	}

	outcome := "ok"
	if res.Failed > 0 {
		outcome = "partial"
	}
	s.observe(outcome, time.Since(start))

	return res, nil
}

func (s *Scheduler) observe(outcome string, d time.Duration) {
	if err := s.monitor.SetSweepMetric(map[string]string{"outcome": outcome}, d.Seconds()); err != nil {
		s.logger.Debugf("failed to record sweep metric: %v", err)
	}
}

func NewScheduler(
	storage StorageInterface,
	revoker RevokerInterface,
	interval time.Duration,
	batchSize uint64,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Scheduler {
	s := new(Scheduler)

	s.storage = storage
	s.revoker = revoker
	s.interval = interval
	s.batchSize = batchSize
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
