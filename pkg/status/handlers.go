// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/membership-gateway/internal/http/types"
	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/version"
)

const pingTimeout = 2 * time.Second

// PingerInterface is satisfied by *sql.DB.
type PingerInterface interface {
	PingContext(ctx context.Context) error
}

type Status struct {
	Status    string     `json:"status"`
	Version   string     `json:"version"`
	BuildInfo *BuildInfo `json:"build_info,omitempty"`
	Storage   string     `json:"storage"`
}

type BuildInfo struct {
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

type API struct {
	db PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	s := Status{
		Status:    "ok",
		Version:   version.Version,
		BuildInfo: buildInfo(),
		Storage:   "embedded",
	}
	code := http.StatusOK

	if a.db != nil {
		s.Storage = "ok"

		ctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := a.db.PingContext(ctx)
		cancel()

		availability := 1.0
		if err != nil {
			a.logger.Errorf("storage ping failed: %v", err)
			s.Status = "degraded"
			s.Storage = "unavailable"
			code = http.StatusServiceUnavailable
			availability = 0
		}

		if err := a.monitor.SetDependencyAvailability(map[string]string{"component": "storage"}, availability); err != nil {
			a.logger.Debugf("failed to record storage availability: %v", err)
		}
	}

	if err := httptypes.WriteJSON(w, code, s); err != nil {
		a.logger.Errorf("failed to encode status: %v", err)
	}
}

func buildInfo() *BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	b := &BuildInfo{GoVersion: info.GoVersion}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			b.Commit = setting.Value
		case "vcs.modified":
			b.Modified = setting.Value == "true"
		}
	}

	return b
}

// NewAPI builds the status API, db is nil for the in memory store.
func NewAPI(db PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.db = db

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
