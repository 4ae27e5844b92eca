// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/noxera-service/internal/db"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/storage"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/internal/types"
	"github.com/canonical/noxera-service/pkg/features"
)

// TrialPeriod is how long a newly created tenant stays in TRIAL.
const TrialPeriod = 14 * 24 * time.Hour

type CreateTenantInput struct {
	Name       string
	Slug       string
	PlanID     string
	PlanTier   string
	SeatsLimit *int32
}

// Detail is a tenant together with its resolved entitlements.
type Detail struct {
	*types.Tenant
	Features *features.Entitlements `json:"features"`
}

type Service struct {
	storage  StorageInterface
	tx       TxRunnerInterface
	recorder AuditRecorderInterface
	features FeatureResolverInterface

	now     func() time.Time
	newSlug func(string) (string, error)

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// CreateTenant inserts a TRIAL tenant on the requested plan and records
// TENANT_CREATED in the same transaction.
func (s *Service) CreateTenant(ctx context.Context, input CreateTenantInput) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.CreateTenant")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		var err error
		if slug, err = s.newSlug(name); err != nil {
			return nil, err
		}
	} else if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	plan, err := s.selectPlan(ctx, strings.TrimSpace(input.PlanID), strings.TrimSpace(input.PlanTier))
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(map[string]string{"name": name, "slug": slug, "planId": plan.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit metadata: %w", err)
	}

	trialEndsAt := s.now().UTC().Add(TrialPeriod)

	var created *types.Tenant
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		t, err := s.storage.CreateTenant(ctx, &types.Tenant{
			Name:        name,
			Slug:        slug,
			Status:      types.TenantStatusTrial,
			PlanID:      plan.ID,
			PlanTier:    plan.Tier,
			SeatsLimit:  input.SeatsLimit,
			TrialEndsAt: &trialEndsAt,
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return fmt.Errorf("%w: %s", ErrSlugTaken, slug)
			}
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		id := t.ID
		if err := s.recorder.Record(ctx, &types.AuditEvent{
			TenantID:   &id,
			ActorType:  types.ActorTypeSystem,
			Action:     types.AuditActionTenantCreated,
			EntityType: types.EntityTypeTenant,
			EntityID:   &id,
			Success:    true,
			Metadata:   metadata,
		}); err != nil {
			return err
		}

		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("tenant %s created with slug %s on plan %s", created.ID, created.Slug, plan.ID)

	return created, nil
}

// selectPlan resolves the plan by id, then by tier, then falls back to the
// oldest plan.
func (s *Service) selectPlan(ctx context.Context, planID, tier string) (*types.Plan, error) {
	var (
		plan *types.Plan
		err  error
	)

	switch {
	case planID != "":
		plan, err = s.storage.GetPlanByID(ctx, planID)
	case tier != "":
		plan, err = s.storage.GetOldestPlanByTier(ctx, tier)
	default:
		plan, err = s.storage.GetOldestPlan(ctx)
	}

	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoPlanAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	return plan, nil
}

// SetStatus moves a tenant to status and records TENANT_STATUS_CHANGED.
// The status is validated before any store access.
func (s *Service) SetStatus(ctx context.Context, tenantID, status string) (*StatusChange, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.SetStatus")
	defer span.End()

	next, err := types.ParseTenantStatus(status)
	if err != nil {
		return nil, err
	}

	transition := NewStatusTransition(next, s.now().UTC())

	metadata, err := json.Marshal(map[string]types.TenantStatus{"status": next})
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit metadata: %w", err)
	}

	var change *StatusChange
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		t, err := s.storage.UpdateTenantStatus(ctx, tenantID, transition.Status, transition.SuspendedAt, transition.CancelledAt)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to update tenant status: %w", err)
		}

		id := t.ID
		if err := s.recorder.Record(ctx, &types.AuditEvent{
			TenantID:   &id,
			ActorType:  types.ActorTypeSystem,
			Action:     types.AuditActionTenantStatusChanged,
			EntityType: types.EntityTypeTenant,
			EntityID:   &id,
			Success:    true,
			Metadata:   metadata,
		}); err != nil {
			return err
		}

		change = &StatusChange{TenantID: t.ID, Status: t.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return change, nil
}

// ListTenants returns one page of tenants, newest first.
func (s *Service) ListTenants(ctx context.Context, filter types.TenantFilter, page, size int64) (*types.Page[*types.Tenant], error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTenants")
	defer span.End()

	if filter.Status != "" {
		if _, err := types.ParseTenantStatus(string(filter.Status)); err != nil {
			return nil, err
		}
	}

	pageSize := db.PageSize(size)

	tenants, total, err := s.storage.ListTenants(ctx, filter, db.Offset(page, pageSize), pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	return &types.Page[*types.Tenant]{
		Page:     db.Page(page),
		PageSize: pageSize,
		Total:    total,
		Items:    tenants,
	}, nil
}

func (s *Service) GetTenant(ctx context.Context, tenantID string) (*Detail, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.GetTenant")
	defer span.End()

	t, err := s.storage.GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	entitlements, err := s.features.Resolve(ctx, t.ID)
	if err != nil {
		if errors.Is(err, features.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &Detail{Tenant: t, Features: entitlements}, nil
}

func NewService(
	storage StorageInterface,
	tx TxRunnerInterface,
	recorder AuditRecorderInterface,
	resolver FeatureResolverInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		tx:       tx,
		recorder: recorder,
		features: resolver,
		now:      time.Now,
		newSlug:  GenerateSlug,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
