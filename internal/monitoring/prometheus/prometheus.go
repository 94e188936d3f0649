// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec
	accessEvents           *prometheus.CounterVec
	integrityViolations    *prometheus.CounterVec
	sweepDuration          *prometheus.HistogramVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return errors.New("metric not initialized")
	}

	return observe(m.responseTime, tags, value)
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencyAvailability == nil {
		return errors.New("metric not initialized")
	}

	g, err := m.dependencyAvailability.GetMetricWith(m.withService(tags))
	if err != nil {
		return err
	}

	g.Set(value)
	return nil
}

func (m *Monitor) IncAccessEvent(tags map[string]string) error {
	if m.accessEvents == nil {
		return errors.New("metric not initialized")
	}

	c, err := m.accessEvents.GetMetricWith(m.withService(tags))
	if err != nil {
		return err
	}

	c.Inc()
	return nil
}

func (m *Monitor) IncIntegrityViolation(tags map[string]string) error {
	if m.integrityViolations == nil {
		return errors.New("metric not initialized")
	}

	c, err := m.integrityViolations.GetMetricWith(m.withService(tags))
	if err != nil {
		return err
	}

	c.Inc()
	return nil
}

func (m *Monitor) SetSweepMetric(tags map[string]string, value float64) error {
	if m.sweepDuration == nil {
		return errors.New("metric not initialized")
	}

	return observe(m.sweepDuration, m.withService(tags), value)
}

func (m *Monitor) withService(tags map[string]string) prometheus.Labels {
	labels := prometheus.Labels{"service": m.service}
	for k, v := range tags {
		labels[k] = v
	}

	return labels
}

func observe(h *prometheus.HistogramVec, tags map[string]string, value float64) error {
	o, err := h.GetMetricWith(tags)
	if err != nil {
		return err
	}

	o.Observe(value)
	return nil
}

// register adds the collector to the default registry, reusing the already
// registered one when the monitor is built more than once in a process.
func register[T prometheus.Collector](c T) T {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}

	return c
}

func (m *Monitor) registerMetrics() {
	m.responseTime = register(prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_time_seconds",
			Help: "http_response_time_seconds",
		},
		[]string{"route", "status"},
	))

	m.dependencyAvailability = register(prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "dependency_available",
		},
		[]string{"component", "service"},
	))

	m.accessEvents = register(prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "membership_access_events_total",
			Help: "membership state transitions by grant kind and outcome",
		},
		[]string{"kind", "outcome", "service"},
	))

	m.integrityViolations = register(prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "membership_integrity_violations_total",
			Help: "operations aborted because stored state violated an invariant",
		},
		[]string{"resource", "service"},
	))

	m.sweepDuration = register(prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "membership_expiry_sweep_seconds",
			Help: "duration of expiry sweeps",
		},
		[]string{"outcome", "service"},
	))
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerMetrics()

	return m
}
