// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

type MonitorInterface interface {
	GetService() string
	SetResponseTimeMetric(map[string]string, float64) error
	SetDependencyAvailability(map[string]string, float64) error
	// IncAccessEvent counts membership state transitions, labels: kind, outcome
	IncAccessEvent(map[string]string) error
	// IncIntegrityViolation counts aborted operations caused by invalid stored state
	IncIntegrityViolation(map[string]string) error
	// SetSweepMetric records the duration of an expiry sweep, labels: outcome
	SetSweepMetric(map[string]string, float64) error
}
