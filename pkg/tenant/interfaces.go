// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"time"

	"github.com/canonical/noxera-service/internal/types"
	"github.com/canonical/noxera-service/pkg/features"
)

type ServiceInterface interface {
	CreateTenant(ctx context.Context, input CreateTenantInput) (*types.Tenant, error)
	SetStatus(ctx context.Context, tenantID, status string) (*StatusChange, error)
	ListTenants(ctx context.Context, filter types.TenantFilter, page, size int64) (*types.Page[*types.Tenant], error)
	GetTenant(ctx context.Context, tenantID string) (*Detail, error)
}

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context, filter types.TenantFilter, offset, limit uint64) ([]*types.Tenant, uint64, error)
	UpdateTenantStatus(ctx context.Context, id string, status types.TenantStatus, suspendedAt, cancelledAt *time.Time) (*types.Tenant, error)
	GetPlanByID(ctx context.Context, id string) (*types.Plan, error)
	GetOldestPlanByTier(ctx context.Context, tier string) (*types.Plan, error)
	GetOldestPlan(ctx context.Context) (*types.Plan, error)
}

type TxRunnerInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

type AuditRecorderInterface interface {
	Record(ctx context.Context, event *types.AuditEvent) error
}

type FeatureResolverInterface interface {
	Resolve(ctx context.Context, tenantID string) (*features.Entitlements, error)
}
