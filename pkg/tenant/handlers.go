// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/canonical/noxera-service/internal/http/types"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/internal/types"
)

type createTenantRequest struct {
	Name       string `json:"name" validate:"required"`
	Slug       string `json:"slug" validate:"omitempty,max=63"`
	PlanID     string `json:"planId"`
	PlanTier   string `json:"planTier"`
	SeatsLimit *int32 `json:"seatsLimit" validate:"omitempty,min=0"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/admin/tenants", a.handleCreate)
	mux.Get("/api/v0/admin/tenants", a.handleList)
	mux.Get("/api/v0/admin/tenants/{id}", a.handleGet)
	mux.Patch("/api/v0/admin/tenants/{id}/status", a.handleSetStatus)
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.handleCreate")
	defer span.End()

	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	t, err := a.service.CreateTenant(ctx, CreateTenantInput{
		Name:       req.Name,
		Slug:       req.Slug,
		PlanID:     req.PlanID,
		PlanTier:   req.PlanTier,
		SeatsLimit: req.SeatsLimit,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusCreated, t)
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.handleList")
	defer span.End()

	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	size, _ := strconv.ParseInt(q.Get("pageSize"), 10, 64)

	filter := types.TenantFilter{
		Query:    q.Get("q"),
		Status:   types.TenantStatus(q.Get("status")),
		PlanTier: q.Get("planTier"),
	}

	tenants, err := a.service.ListTenants(ctx, filter, page, size)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, tenants)
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.handleGet")
	defer span.End()

	detail, err := a.service.GetTenant(ctx, chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, detail)
}

func (a *API) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.handleSetStatus")
	defer span.End()

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	change, err := a.service.SetStatus(ctx, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, change)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, types.ErrInvalidStatus):
		_ = httptypes.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		_ = httptypes.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSlugTaken):
		_ = httptypes.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNoPlanAvailable):
		_ = httptypes.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		a.logger.Errorf("tenant request failed: %v", err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// validationMessage describes the first failing field of a request body.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid request body"
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	}

	return fmt.Sprintf("%s is invalid", fe.Field())
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: newValidator(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
