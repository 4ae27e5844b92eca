// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/storage"
	"github.com/canonical/noxera-service/internal/types"
	"github.com/canonical/noxera-service/pkg/features"
)

//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenant -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func runInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type serviceMocks struct {
	storage  *MockStorageInterface
	tx       *MockTxRunnerInterface
	recorder *MockAuditRecorderInterface
	features *MockFeatureResolverInterface
	tracer   *MockTracingInterface
}

func newTestService(ctrl *gomock.Controller) (*Service, *serviceMocks) {
	m := &serviceMocks{
		storage:  NewMockStorageInterface(ctrl),
		tx:       NewMockTxRunnerInterface(ctrl),
		recorder: NewMockAuditRecorderInterface(ctrl),
		features: NewMockFeatureResolverInterface(ctrl),
		tracer:   NewMockTracingInterface(ctrl),
	}

	s := NewService(m.storage, m.tx, m.recorder, m.features, m.tracer, monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	s.now = func() time.Time { return fixedNow }

	return s, m
}

func expectSpan(tracer *MockTracingInterface, name string) {
	tracer.EXPECT().Start(gomock.Any(), name).Return(context.Background(), trace.SpanFromContext(context.Background()))
}

func TestService_SetStatus(t *testing.T) {
	dbErr := errors.New("db error")
	auditErr := errors.New("audit insert failed")

	tests := []struct {
		name          string
		status        string
		setupMocks    func(*serviceMocks)
		expectedErr   error
		expectedEvent bool
	}{
		{
			name:   "active",
			status: "ACTIVE",
			setupMocks: func(m *serviceMocks) {
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().
					UpdateTenantStatus(gomock.Any(), "tenant-1", types.TenantStatusActive, nil, nil).
					Return(&types.Tenant{ID: "tenant-1", Status: types.TenantStatusActive}, nil)
			},
			expectedEvent: true,
		},
		{
			name:   "suspended stamps suspendedAt",
			status: "SUSPENDED",
			setupMocks: func(m *serviceMocks) {
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().
					UpdateTenantStatus(gomock.Any(), "tenant-1", types.TenantStatusSuspended, gomock.Any(), nil).
					DoAndReturn(func(_ context.Context, id string, status types.TenantStatus, suspendedAt, _ *time.Time) (*types.Tenant, error) {
						if suspendedAt == nil || !suspendedAt.Equal(fixedNow) {
							return nil, fmt.Errorf("unexpected suspendedAt %v", suspendedAt)
						}
						return &types.Tenant{ID: id, Status: status, SuspendedAt: suspendedAt}, nil
					})
			},
			expectedEvent: true,
		},
		{
			name:   "cancelled stamps cancelledAt",
			status: "CANCELLED",
			setupMocks: func(m *serviceMocks) {
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().
					UpdateTenantStatus(gomock.Any(), "tenant-1", types.TenantStatusCancelled, nil, gomock.Any()).
					DoAndReturn(func(_ context.Context, id string, status types.TenantStatus, _, cancelledAt *time.Time) (*types.Tenant, error) {
						if cancelledAt == nil || !cancelledAt.Equal(fixedNow) {
							return nil, fmt.Errorf("unexpected cancelledAt %v", cancelledAt)
						}
						return &types.Tenant{ID: id, Status: status, CancelledAt: cancelledAt}, nil
					})
			},
			expectedEvent: true,
		},
		{
			name:        "unknown status is rejected before any store access",
			status:      "DELETED",
			setupMocks:  func(*serviceMocks) {},
			expectedErr: types.ErrInvalidStatus,
		},
		{
			name:        "status match is case sensitive",
			status:      "active",
			setupMocks:  func(*serviceMocks) {},
			expectedErr: types.ErrInvalidStatus,
		},
		{
			name:   "missing tenant",
			status: "ACTIVE",
			setupMocks: func(m *serviceMocks) {
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().
					UpdateTenantStatus(gomock.Any(), "tenant-1", types.TenantStatusActive, nil, nil).
					Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrNotFound,
		},
		{
			name:   "store failure",
			status: "ACTIVE",
			setupMocks: func(m *serviceMocks) {
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().
					UpdateTenantStatus(gomock.Any(), "tenant-1", types.TenantStatusActive, nil, nil).
					Return(nil, dbErr)
			},
			expectedErr: dbErr,
		},
		{
			name:   "audit failure propagates",
			status: "PAST_DUE",
			setupMocks: func(m *serviceMocks) {
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().
					UpdateTenantStatus(gomock.Any(), "tenant-1", types.TenantStatusPastDue, nil, nil).
					Return(&types.Tenant{ID: "tenant-1", Status: types.TenantStatusPastDue}, nil)
				m.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(auditErr)
			},
			expectedErr: auditErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			expectSpan(m.tracer, "tenant.Service.SetStatus")
			tt.setupMocks(m)

			var recorded *types.AuditEvent
			if tt.expectedEvent {
				m.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, e *types.AuditEvent) error {
						recorded = e
						return nil
					},
				)
			}

			change, err := s.SetStatus(context.Background(), "tenant-1", tt.status)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				if change != nil {
					t.Fatalf("expected no result, got %+v", change)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if change.TenantID != "tenant-1" || string(change.Status) != tt.status {
				t.Fatalf("unexpected change: %+v", change)
			}

			if recorded.Action != types.AuditActionTenantStatusChanged {
				t.Fatalf("unexpected action %s", recorded.Action)
			}
			if recorded.ActorType != types.ActorTypeSystem {
				t.Fatalf("unexpected actor type %s", recorded.ActorType)
			}
			if recorded.EntityType != types.EntityTypeTenant || *recorded.EntityID != "tenant-1" || *recorded.TenantID != "tenant-1" {
				t.Fatalf("unexpected entity: %+v", recorded)
			}
			if !recorded.Success {
				t.Fatal("expected a successful event")
			}
			if string(recorded.Metadata) != fmt.Sprintf(`{"status":%q}`, tt.status) {
				t.Fatalf("unexpected metadata %s", recorded.Metadata)
			}
		})
	}
}

func TestService_CreateTenant(t *testing.T) {
	freePlan := &types.Plan{ID: "plan-free", Tier: "FREE", Name: "Free"}
	proPlan := &types.Plan{ID: "plan-pro", Tier: "PRO", Name: "Pro"}
	seats := int32(25)
	auditErr := errors.New("audit insert failed")

	created := func(_ context.Context, in *types.Tenant) (*types.Tenant, error) {
		out := *in
		out.ID = "tenant-new"
		out.CreatedAt = fixedNow
		out.UpdatedAt = fixedNow
		return &out, nil
	}

	tests := []struct {
		name         string
		input        CreateTenantInput
		setupMocks   func(*serviceMocks)
		expectedErr  error
		expectedPlan string
		expectedSlug *regexp.Regexp
		expectAudit  bool
	}{
		{
			name:  "defaults to the oldest plan",
			input: CreateTenantInput{Name: "  New Hope Chapel "},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetOldestPlan(gomock.Any()).Return(freePlan, nil)
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).DoAndReturn(created)
			},
			expectedPlan: "plan-free",
			expectedSlug: regexp.MustCompile(`^new-hope-chapel-[a-z0-9]{6}$`),
			expectAudit:  true,
		},
		{
			name:  "plan id wins over tier",
			input: CreateTenantInput{Name: "Acme", PlanID: "plan-pro", PlanTier: "FREE", SeatsLimit: &seats},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetPlanByID(gomock.Any(), "plan-pro").Return(proPlan, nil)
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).DoAndReturn(created)
			},
			expectedPlan: "plan-pro",
			expectedSlug: regexp.MustCompile(`^acme-[a-z0-9]{6}$`),
			expectAudit:  true,
		},
		{
			name:  "tier picks the oldest plan of that tier",
			input: CreateTenantInput{Name: "Acme", PlanTier: "PRO", Slug: " acme-hq "},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetOldestPlanByTier(gomock.Any(), "PRO").Return(proPlan, nil)
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).DoAndReturn(created)
			},
			expectedPlan: "plan-pro",
			expectedSlug: regexp.MustCompile(`^acme-hq$`),
			expectAudit:  true,
		},
		{
			name:        "blank name",
			input:       CreateTenantInput{Name: "   "},
			setupMocks:  func(*serviceMocks) {},
			expectedErr: ErrInvalidInput,
		},
		{
			name:  "no plans seeded",
			input: CreateTenantInput{Name: "Acme"},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetOldestPlan(gomock.Any()).Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrNoPlanAvailable,
		},
		{
			name:        "explicit slug with path characters",
			input:       CreateTenantInput{Name: "Acme", Slug: "Acme Church/x"},
			setupMocks:  func(*serviceMocks) {},
			expectedErr: ErrInvalidInput,
		},
		{
			name:        "explicit slug too long",
			input:       CreateTenantInput{Name: "Acme", Slug: strings.Repeat("a", 64)},
			setupMocks:  func(*serviceMocks) {},
			expectedErr: ErrInvalidInput,
		},
		{
			name:  "unknown plan id",
			input: CreateTenantInput{Name: "Acme", PlanID: "missing"},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetPlanByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrNoPlanAvailable,
		},
		{
			name:  "duplicate slug",
			input: CreateTenantInput{Name: "Acme", Slug: "acme"},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetOldestPlan(gomock.Any()).Return(freePlan, nil)
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: tenant slug acme", storage.ErrDuplicateKey))
			},
			expectedErr: ErrSlugTaken,
		},
		{
			name:  "audit failure propagates",
			input: CreateTenantInput{Name: "Acme"},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetOldestPlan(gomock.Any()).Return(freePlan, nil)
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				m.storage.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).DoAndReturn(created)
				m.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(auditErr)
			},
			expectedErr: auditErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			expectSpan(m.tracer, "tenant.Service.CreateTenant")
			tt.setupMocks(m)

			var recorded *types.AuditEvent
			if tt.expectAudit {
				m.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, e *types.AuditEvent) error {
						recorded = e
						return nil
					},
				)
			}

			tenant, err := s.CreateTenant(context.Background(), tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tenant.Status != types.TenantStatusTrial {
				t.Fatalf("expected TRIAL, got %s", tenant.Status)
			}
			if tenant.PlanID != tt.expectedPlan {
				t.Fatalf("expected plan %s, got %s", tt.expectedPlan, tenant.PlanID)
			}
			if !tt.expectedSlug.MatchString(tenant.Slug) {
				t.Fatalf("slug %q does not match %s", tenant.Slug, tt.expectedSlug)
			}
			if tenant.TrialEndsAt == nil || !tenant.TrialEndsAt.Equal(fixedNow.Add(TrialPeriod)) {
				t.Fatalf("unexpected trialEndsAt %v", tenant.TrialEndsAt)
			}
			if tt.input.SeatsLimit != nil && (tenant.SeatsLimit == nil || *tenant.SeatsLimit != *tt.input.SeatsLimit) {
				t.Fatalf("unexpected seats limit %v", tenant.SeatsLimit)
			}

			if recorded.Action != types.AuditActionTenantCreated || *recorded.EntityID != "tenant-new" {
				t.Fatalf("unexpected audit event %+v", recorded)
			}

			var metadata map[string]string
			if err := json.Unmarshal(recorded.Metadata, &metadata); err != nil {
				t.Fatalf("invalid metadata: %v", err)
			}
			if metadata["slug"] != tenant.Slug || metadata["planId"] != tt.expectedPlan || metadata["name"] != tenant.Name {
				t.Fatalf("unexpected metadata %v", metadata)
			}
		})
	}
}

func TestService_ListTenants(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl)

	filter := types.TenantFilter{Query: "acme", Status: types.TenantStatusActive, PlanTier: "PRO"}
	tenants := []*types.Tenant{{ID: "tenant-1"}, {ID: "tenant-2"}}

	expectSpan(m.tracer, "tenant.Service.ListTenants")
	m.storage.EXPECT().ListTenants(gomock.Any(), filter, uint64(20), uint64(10)).Return(tenants, uint64(22), nil)

	page, err := s.ListTenants(context.Background(), filter, 3, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Page != 3 || page.PageSize != 10 || page.Total != 22 || len(page.Items) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestService_ListTenantsRejectsUnknownStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl)
	expectSpan(m.tracer, "tenant.Service.ListTenants")

	_, err := s.ListTenants(context.Background(), types.TenantFilter{Status: "ARCHIVED"}, 1, 20)
	if !errors.Is(err, types.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestService_GetTenant(t *testing.T) {
	entitlements := features.Merge([]byte(`{"seats":5}`), nil)
	resolveErr := errors.New("resolve failed")

	tests := []struct {
		name        string
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name: "tenant with entitlements",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetTenantByID(gomock.Any(), "tenant-1").Return(&types.Tenant{ID: "tenant-1"}, nil)
				m.features.EXPECT().Resolve(gomock.Any(), "tenant-1").Return(entitlements, nil)
			},
		},
		{
			name: "missing tenant",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetTenantByID(gomock.Any(), "tenant-1").Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrNotFound,
		},
		{
			name: "resolver failure",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetTenantByID(gomock.Any(), "tenant-1").Return(&types.Tenant{ID: "tenant-1"}, nil)
				m.features.EXPECT().Resolve(gomock.Any(), "tenant-1").Return(nil, resolveErr)
			},
			expectedErr: resolveErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			expectSpan(m.tracer, "tenant.Service.GetTenant")
			tt.setupMocks(m)

			detail, err := s.GetTenant(context.Background(), "tenant-1")

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if detail.ID != "tenant-1" || detail.Features != entitlements {
				t.Fatalf("unexpected detail %+v", detail)
			}
		})
	}
}
