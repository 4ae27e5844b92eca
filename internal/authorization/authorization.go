// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/pkg/authentication"
)

var (
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Authorizer gates operations on the caller's single role attribute.
// SUPER_ADMIN satisfies every requirement.
type Authorizer struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) Check(ctx context.Context, principal *authentication.Principal, required authentication.Role) error {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.Check")
	defer span.End()

	if principal == nil {
		return ErrUnauthenticated
	}

	if principal.Role == authentication.RoleSuperAdmin || principal.Role == required {
		return nil
	}

	return fmt.Errorf("%w: role %s required", ErrForbidden, required)
}

func NewAuthorizer(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
