// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package features

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/noxera-service/internal/http/types"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
)

const maxOverrideBodyBytes = 1 << 20

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/admin/tenants/{id}/features", a.handleGetFeatures)
	mux.Put("/api/v0/admin/tenants/{id}/features/overrides", a.handlePutOverrides)
}

func (a *API) handleGetFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "features.API.handleGetFeatures")
	defer span.End()

	entitlements, err := a.service.Resolve(ctx, chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, entitlements)
}

func (a *API) handlePutOverrides(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "features.API.handlePutOverrides")
	defer span.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxOverrideBodyBytes))
	if err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entitlements, err := a.service.SetOverrides(ctx, chi.URLParam(r, "id"), body)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, entitlements)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		_ = httptypes.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		_ = httptypes.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		a.logger.Errorf("feature request failed: %v", err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
