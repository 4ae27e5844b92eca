// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package features

import (
	"context"

	"github.com/canonical/noxera-service/internal/types"
)

type ServiceInterface interface {
	Resolve(ctx context.Context, tenantID string) (*Entitlements, error)
	SetOverrides(ctx context.Context, tenantID string, raw []byte) (*Entitlements, error)
}

type StorageInterface interface {
	GetTenantFeatureDocuments(ctx context.Context, tenantID string) (*types.TenantFeatureDocuments, error)
	UpsertFeatureOverride(ctx context.Context, tenantID string, overrides []byte) (*types.TenantFeatureOverride, error)
}

type TxRunnerInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

type AuditRecorderInterface interface {
	Record(ctx context.Context, event *types.AuditEvent) error
}
