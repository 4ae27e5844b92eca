// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"errors"
	"net/http"

	httptypes "github.com/canonical/noxera-service/internal/http/types"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/pkg/authentication"
)

type Middleware struct {
	authz AuthorizerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RequireRole must run after authentication.Middleware.Authenticate.
// Allowed mutating requests are written to the security log.
func (m *Middleware) RequireRole(role authentication.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authorization.Middleware.RequireRole")
			defer span.End()

			principal, _ := authentication.PrincipalFromContext(ctx)

			if err := m.authz.Check(ctx, principal, role); err != nil {
				if errors.Is(err, ErrUnauthenticated) {
					_ = httptypes.WriteError(w, http.StatusUnauthorized, "missing session token")
					return
				}

				m.logger.Security().AuthzFailure(principal.UserID, r.Method+" "+r.URL.Path)
				_ = httptypes.WriteError(w, http.StatusForbidden, "forbidden")
				return
			}

			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				m.logger.Security().AdminAction(principal.UserID, r.Method, r.URL.Path)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func NewMiddleware(authz AuthorizerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		authz:   authz,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
