// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/noxera-service/internal/http/types"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/internal/types"
)

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/admin/audit", a.handleList)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "audit.API.handleList")
	defer span.End()

	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	size, _ := strconv.ParseInt(q.Get("pageSize"), 10, 64)

	filter := types.AuditFilter{
		Query:      q.Get("q"),
		TenantID:   q.Get("tenantId"),
		Action:     q.Get("action"),
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
	}

	events, err := a.service.ListEvents(ctx, filter, page, size)
	if err != nil {
		a.logger.Errorf("failed to list audit events: %v", err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, events)
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
