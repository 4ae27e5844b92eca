// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/noxera-service/internal/db"
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

var tenantColumns = []string{
	"t.id", "t.name", "t.slug", "t.status", "t.plan_id", "p.tier",
	"t.seats_limit", "t.suspended_at", "t.cancelled_at", "t.trial_ends_at",
	"t.created_at", "t.updated_at",
}

const tenantReturning = "RETURNING id, name, slug, status, plan_id, seats_limit, suspended_at, cancelled_at, trial_ends_at, created_at, updated_at"

var auditColumns = []string{
	"id", "tenant_id", "actor_type", "actor_id", "action", "entity_type",
	"entity_id", "success", "metadata", "created_at",
}

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner, withTier bool) (*types.Tenant, error) {
	var t types.Tenant
	var status string

	dest := []any{&t.ID, &t.Name, &t.Slug, &status, &t.PlanID}
	if withTier {
		dest = append(dest, &t.PlanTier)
	}
	dest = append(dest, &t.SeatsLimit, &t.SuspendedAt, &t.CancelledAt, &t.TrialEndsAt, &t.CreatedAt, &t.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	t.Status = types.TenantStatus(status)

	return &t, nil
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "name", "slug", "status", "plan_id", "seats_limit", "trial_ends_at").
		Values(id.String(), t.Name, t.Slug, string(t.Status), t.PlanID, t.SeatsLimit, t.TrialEndsAt).
		Suffix(tenantReturning).
		QueryRowContext(ctx)

	created, err := scanTenant(row, false)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "tenant slug "+t.Slug)
		}
		if IsForeignKeyViolation(err) {
			return nil, WrapForeignKeyError(err, "tenant plan "+t.PlanID)
		}
		return nil, fmt.Errorf("failed to insert tenant: %w", err)
	}

	created.PlanTier = t.PlanTier

	return created, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(tenantColumns...).
		From("tenants t").
		Join("plans p ON p.id = t.plan_id").
		Where(sq.Eq{"t.id": id}).
		QueryRowContext(ctx)

	t, err := scanTenant(row, true)
	if err != nil {
		if isNoRows(err) || IsInvalidIdentifier(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

func tenantFilterClause(filter types.TenantFilter) sq.And {
	where := sq.And{}

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		where = append(where, sq.Or{
			sq.ILike{"t.name": pattern},
			sq.ILike{"t.slug": pattern},
			sq.Expr("t.id::text ILIKE ?", pattern),
		})
	}
	if filter.Status != "" {
		where = append(where, sq.Eq{"t.status": string(filter.Status)})
	}
	if filter.PlanTier != "" {
		where = append(where, sq.Eq{"p.tier": filter.PlanTier})
	}

	return where
}

// ListTenants returns one page of tenants, newest first, and the total
// number of tenants matching filter.
func (s *Storage) ListTenants(ctx context.Context, filter types.TenantFilter, offset, limit uint64) ([]*types.Tenant, uint64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	where := tenantFilterClause(filter)

	var total uint64
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("tenants t").
		Join("plans p ON p.id = t.plan_id").
		Where(where).
		QueryRowContext(ctx).
		Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}

	rows, err := s.db.Statement(ctx).
		Select(tenantColumns...).
		From("tenants t").
		Join("plans p ON p.id = t.plan_id").
		Where(where).
		OrderBy("t.created_at DESC", "t.id DESC").
		Offset(offset).
		Limit(limit).
		QueryContext(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]*types.Tenant, 0)
	for rows.Next() {
		t, err := scanTenant(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return tenants, total, nil
}

// UpdateTenantStatus writes status and both lifecycle timestamps as given.
func (s *Storage) UpdateTenantStatus(ctx context.Context, id string, status types.TenantStatus, suspendedAt, cancelledAt *time.Time) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTenantStatus")
	defer span.End()

	row := s.db.Statement(ctx).
		Update("tenants").
		Set("status", string(status)).
		Set("suspended_at", suspendedAt).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix(tenantReturning).
		QueryRowContext(ctx)

	t, err := scanTenant(row, false)
	if err != nil {
		if isNoRows(err) || IsInvalidIdentifier(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tenant status: %w", err)
	}

	return t, nil
}

func (s *Storage) getPlan(ctx context.Context, where sq.Sqlizer) (*types.Plan, error) {
	query := s.db.Statement(ctx).
		Select("id", "tier", "name", "features", "created_at").
		From("plans").
		OrderBy("created_at ASC", "id ASC").
		Limit(1)

	if where != nil {
		query = query.Where(where)
	}

	var p types.Plan
	var features []byte
	err := query.QueryRowContext(ctx).Scan(&p.ID, &p.Tier, &p.Name, &features, &p.CreatedAt)
	if err != nil {
		if isNoRows(err) || IsInvalidIdentifier(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	p.Features = features

	return &p, nil
}

func (s *Storage) GetPlanByID(ctx context.Context, id string) (*types.Plan, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPlanByID")
	defer span.End()

	return s.getPlan(ctx, sq.Eq{"id": id})
}

// GetOldestPlanByTier returns the earliest created plan of tier.
func (s *Storage) GetOldestPlanByTier(ctx context.Context, tier string) (*types.Plan, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOldestPlanByTier")
	defer span.End()

	return s.getPlan(ctx, sq.Eq{"tier": tier})
}

// GetOldestPlan returns the earliest created plan of any tier.
func (s *Storage) GetOldestPlan(ctx context.Context) (*types.Plan, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOldestPlan")
	defer span.End()

	return s.getPlan(ctx, nil)
}

// GetTenantFeatureDocuments loads the plan features and the override document
// of a tenant in one query. Overrides is nil when no override row exists.
func (s *Storage) GetTenantFeatureDocuments(ctx context.Context, tenantID string) (*types.TenantFeatureDocuments, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantFeatureDocuments")
	defer span.End()

	var docs types.TenantFeatureDocuments
	var plan, overrides []byte

	err := s.db.Statement(ctx).
		Select("t.id", "p.features", "o.overrides").
		From("tenants t").
		Join("plans p ON p.id = t.plan_id").
		LeftJoin("tenant_feature_overrides o ON o.tenant_id = t.id").
		Where(sq.Eq{"t.id": tenantID}).
		QueryRowContext(ctx).
		Scan(&docs.TenantID, &plan, &overrides)
	if err != nil {
		if isNoRows(err) || IsInvalidIdentifier(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant features: %w", err)
	}

	docs.Plan = plan
	docs.Overrides = overrides

	return &docs, nil
}

// UpsertFeatureOverride replaces the override document of a tenant.
func (s *Storage) UpsertFeatureOverride(ctx context.Context, tenantID string, overrides []byte) (*types.TenantFeatureOverride, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertFeatureOverride")
	defer span.End()

	var o types.TenantFeatureOverride
	var doc []byte

	err := s.db.Statement(ctx).
		Insert("tenant_feature_overrides").
		Columns("tenant_id", "overrides").
		Values(tenantID, string(overrides)).
		Suffix("ON CONFLICT (tenant_id) DO UPDATE SET overrides = EXCLUDED.overrides, updated_at = NOW() RETURNING tenant_id, overrides, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&o.TenantID, &doc, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) || IsInvalidIdentifier(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to upsert feature overrides: %w", err)
	}
	o.Overrides = doc

	return &o, nil
}

func (s *Storage) CreateAuditEvent(ctx context.Context, e *types.AuditEvent) error {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAuditEvent")
	defer span.End()

	metadata := "{}"
	if len(e.Metadata) > 0 {
		metadata = string(e.Metadata)
	}

	_, err := s.db.Statement(ctx).
		Insert("audit_logs").
		Columns(auditColumns...).
		Values(e.ID, e.TenantID, string(e.ActorType), e.ActorID, e.Action, e.EntityType, e.EntityID, e.Success, metadata, e.CreatedAt).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}

	return nil
}

func auditFilterClause(filter types.AuditFilter) sq.And {
	where := sq.And{}

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		where = append(where, sq.Or{
			sq.ILike{"action": pattern},
			sq.ILike{"entity_type": pattern},
			sq.ILike{"entity_id": pattern},
		})
	}
	if filter.TenantID != "" {
		where = append(where, sq.Eq{"tenant_id": filter.TenantID})
	}
	if filter.Action != "" {
		where = append(where, sq.Eq{"action": filter.Action})
	}
	if filter.EntityType != "" {
		where = append(where, sq.Eq{"entity_type": filter.EntityType})
	}
	if filter.EntityID != "" {
		where = append(where, sq.Eq{"entity_id": filter.EntityID})
	}

	return where
}

// ListAuditEvents returns one page of audit events, newest first, and the
// total number of events matching filter.
func (s *Storage) ListAuditEvents(ctx context.Context, filter types.AuditFilter, offset, limit uint64) ([]*types.AuditEvent, uint64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAuditEvents")
	defer span.End()

	where := auditFilterClause(filter)

	var total uint64
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("audit_logs").
		Where(where).
		QueryRowContext(ctx).
		Scan(&total)
	if err != nil {
		if IsInvalidIdentifier(err) {
			return []*types.AuditEvent{}, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to count audit events: %w", err)
	}

	rows, err := s.db.Statement(ctx).
		Select(auditColumns...).
		From("audit_logs").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(limit).
		QueryContext(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	events := make([]*types.AuditEvent, 0)
	for rows.Next() {
		var e types.AuditEvent
		var actorType string
		var metadata []byte

		if err := rows.Scan(&e.ID, &e.TenantID, &actorType, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Success, &metadata, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit event: %w", err)
		}
		e.ActorType = types.ActorType(actorType)
		e.Metadata = metadata

		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating audit rows: %w", err)
	}

	return events, total, nil
}
