// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/noxera-service/internal/authorization"
	"github.com/canonical/noxera-service/internal/db"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/storage"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/pkg/audit"
	"github.com/canonical/noxera-service/pkg/authentication"
	"github.com/canonical/noxera-service/pkg/features"
	"github.com/canonical/noxera-service/pkg/metrics"
	"github.com/canonical/noxera-service/pkg/status"
	"github.com/canonical/noxera-service/pkg/tenant"
)

type Config struct {
	CORSAllowedOrigins []string
	SecureCookie       bool
}

func NewRouter(
	cfg Config,
	s storage.StorageInterface,
	dbClient db.DBClientInterface,
	authenticator authentication.AuthenticatorInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.CORSAllowedOrigins),
	)

	router.Use(middlewares...)

	recorder := audit.NewRecorder(s, tracer, monitor, logger)
	featureService := features.NewService(s, dbClient, recorder, tracer, monitor, logger)
	tenantService := tenant.NewService(s, dbClient, recorder, featureService, tracer, monitor, logger)
	auditService := audit.NewService(s, tracer, monitor, logger)

	authenticate := authentication.NewMiddleware(authenticator, tracer, monitor, logger).Authenticate()
	requireAdmin := authorization.NewMiddleware(
		authorization.NewAuthorizer(tracer, monitor, logger),
		tracer,
		monitor,
		logger,
	).RequireRole(authentication.RoleSuperAdmin)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(dbClient, tracer, monitor, logger).RegisterEndpoints(router)
	authentication.NewAPI(authenticator, authenticate, cfg.SecureCookie, tracer, monitor, logger).RegisterEndpoints(router)

	router.Group(func(admin chi.Router) {
		admin.Use(authenticate, requireAdmin)

		tenant.NewAPI(tenantService, tracer, monitor, logger).RegisterEndpoints(admin)
		features.NewAPI(featureService, tracer, monitor, logger).RegisterEndpoints(admin)
		audit.NewAPI(auditService, tracer, monitor, logger).RegisterEndpoints(admin)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
