// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"

	"github.com/canonical/noxera-service/internal/db"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/internal/types"
)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ListEvents returns one page of the audit log, newest first.
func (s *Service) ListEvents(ctx context.Context, filter types.AuditFilter, page, size int64) (*types.Page[*types.AuditEvent], error) {
	ctx, span := s.tracer.Start(ctx, "audit.Service.ListEvents")
	defer span.End()

	pageSize := db.PageSize(size)

	events, total, err := s.storage.ListAuditEvents(ctx, filter, db.Offset(page, pageSize), pageSize)
	if err != nil {
		return nil, err
	}

	return &types.Page[*types.AuditEvent]{
		Page:     db.Page(page),
		PageSize: pageSize,
		Total:    total,
		Items:    events,
	}, nil
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
