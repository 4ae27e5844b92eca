// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/noxera-service/internal/types"
)

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context, filter types.TenantFilter, offset, limit uint64) ([]*types.Tenant, uint64, error)
	UpdateTenantStatus(ctx context.Context, id string, status types.TenantStatus, suspendedAt, cancelledAt *time.Time) (*types.Tenant, error)

	GetPlanByID(ctx context.Context, id string) (*types.Plan, error)
	GetOldestPlanByTier(ctx context.Context, tier string) (*types.Plan, error)
	GetOldestPlan(ctx context.Context) (*types.Plan, error)

	GetTenantFeatureDocuments(ctx context.Context, tenantID string) (*types.TenantFeatureDocuments, error)
	UpsertFeatureOverride(ctx context.Context, tenantID string, overrides []byte) (*types.TenantFeatureOverride, error)

	CreateAuditEvent(ctx context.Context, e *types.AuditEvent) error
	ListAuditEvents(ctx context.Context, filter types.AuditFilter, offset, limit uint64) ([]*types.AuditEvent, uint64, error)
}
