// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package features

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/storage"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/internal/types"
)

// Entitlements holds the three trees returned for a tenant.
type Entitlements struct {
	PlanFeatures      *Value `json:"planFeatures"`
	OverrideFeatures  *Value `json:"overrideFeatures"`
	EffectiveFeatures *Value `json:"effectiveFeatures"`
}

// Merge computes the effective tree from raw plan and override documents.
// Documents that are missing, malformed or not objects count as empty maps.
func Merge(plan, overrides []byte) *Entitlements {
	p := rootMap(plan)
	o := rootMap(overrides)

	return &Entitlements{
		PlanFeatures:      p,
		OverrideFeatures:  o,
		EffectiveFeatures: DeepMerge(p, o),
	}
}

func rootMap(doc []byte) *Value {
	if len(doc) == 0 {
		return NewMap()
	}

	v, err := Parse(doc)
	if err != nil || !v.IsMap() {
		return NewMap()
	}

	return v
}

type Service struct {
	storage  StorageInterface
	tx       TxRunnerInterface
	recorder AuditRecorderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Resolve loads the plan and override documents of a tenant and merges them.
// It has no side effects.
func (s *Service) Resolve(ctx context.Context, tenantID string) (*Entitlements, error) {
	ctx, span := s.tracer.Start(ctx, "features.Service.Resolve")
	defer span.End()

	docs, err := s.storage.GetTenantFeatureDocuments(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load feature documents: %w", err)
	}

	return Merge(docs.Plan, docs.Overrides), nil
}

// SetOverrides replaces the override document of a tenant and returns the
// entitlements it produces. The write and its audit event share a transaction.
func (s *Service) SetOverrides(ctx context.Context, tenantID string, raw []byte) (*Entitlements, error) {
	ctx, span := s.tracer.Start(ctx, "features.Service.SetOverrides")
	defer span.End()

	overrides, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: overrides must be valid JSON", ErrInvalidInput)
	}
	if !overrides.IsMap() {
		return nil, fmt.Errorf("%w: overrides must be a JSON object", ErrInvalidInput)
	}

	doc, err := overrides.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode overrides: %w", err)
	}

	metadata, err := json.Marshal(map[string]any{"keys": overrides.Keys()})
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit metadata: %w", err)
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.storage.UpsertFeatureOverride(ctx, tenantID, doc); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to store overrides: %w", err)
		}

		id := tenantID
		return s.recorder.Record(ctx, &types.AuditEvent{
			TenantID:   &id,
			ActorType:  types.ActorTypeSystem,
			Action:     types.AuditActionTenantFeaturesOverride,
			EntityType: types.EntityTypeTenant,
			EntityID:   &id,
			Success:    true,
			Metadata:   metadata,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.Resolve(ctx, tenantID)
}

func NewService(
	storage StorageInterface,
	tx TxRunnerInterface,
	recorder AuditRecorderInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		tx:       tx,
		recorder: recorder,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
