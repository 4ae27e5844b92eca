// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/noxera-service/internal/http/types"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/internal/version"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"

	pingTimeout = 2 * time.Second
)

type BuildInfo struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	Name       string `json:"name"`
}

type Status struct {
	Status    string     `json:"status"`
	Database  string     `json:"database"`
	BuildInfo *BuildInfo `json:"buildInfo"`
}

type API struct {
	db PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	s := Status{Status: statusOK, Database: statusOK, BuildInfo: buildInfo()}
	code := http.StatusOK

	if !a.databaseAvailable(ctx) {
		s.Status = statusDegraded
		s.Database = "unavailable"
		code = http.StatusServiceUnavailable
	}

	_ = httptypes.WriteJSON(w, code, s)
}

func (a *API) databaseAvailable(ctx context.Context) bool {
	if a.db == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	available := 1.0
	err := a.db.Ping(ctx)
	if err != nil {
		a.logger.Errorf("database ping failed: %v", err)
		available = 0
	}

	if mErr := a.monitor.SetDependencyAvailability(map[string]string{"component": "database"}, available); mErr != nil {
		a.logger.Debugf("error when setting dependency metric: %s", mErr)
	}

	return err == nil
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.version")
	defer span.End()

	_ = httptypes.WriteJSON(w, http.StatusOK, buildInfo())
}

func buildInfo() *BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return &BuildInfo{Version: version.Version}
	}

	b := &BuildInfo{Version: version.Version, Name: info.Main.Path}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			b.CommitHash = setting.Value
		}
	}

	return b
}

func NewAPI(db PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.db = db
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
