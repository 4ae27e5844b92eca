// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"

	"github.com/canonical/noxera-service/internal/types"
)

type ServiceInterface interface {
	ListEvents(ctx context.Context, filter types.AuditFilter, page, size int64) (*types.Page[*types.AuditEvent], error)
}

type StorageInterface interface {
	CreateAuditEvent(ctx context.Context, e *types.AuditEvent) error
	ListAuditEvents(ctx context.Context, filter types.AuditFilter, offset, limit uint64) ([]*types.AuditEvent, uint64, error)
}
