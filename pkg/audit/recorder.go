// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/internal/types"
)

var ErrInvalidEvent = errors.New("invalid audit event")

// Recorder appends audit events. Events written while ctx carries a
// transaction commit or roll back with it.
type Recorder struct {
	storage StorageInterface
	now     func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (r *Recorder) Record(ctx context.Context, event *types.AuditEvent) error {
	ctx, span := r.tracer.Start(ctx, "audit.Recorder.Record")
	defer span.End()

	if event == nil || event.Action == "" || event.EntityType == "" || !event.ActorType.Valid() {
		return ErrInvalidEvent
	}

	if event.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate audit event ID: %w", err)
		}
		event.ID = id.String()
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now().UTC()
	}

	if len(event.Metadata) == 0 {
		event.Metadata = []byte("{}")
	}

	if err := r.storage.CreateAuditEvent(ctx, event); err != nil {
		return err
	}

	r.logger.Debugf("audit event %s recorded: %s %s", event.ID, event.Action, event.EntityType)

	return nil
}

func NewRecorder(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Recorder {
	return &Recorder{
		storage: storage,
		now:     time.Now,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
