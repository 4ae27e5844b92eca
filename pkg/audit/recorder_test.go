// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package audit -destination ./mock_interfaces.go -source=./interfaces.go

func TestRecorder_Record(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tenantID := "tenant-1"

	tests := []struct {
		name        string
		event       *types.AuditEvent
		storageErr  error
		expectStore bool
		expectedErr error
		wantErr     bool
	}{
		{
			name: "fills id timestamp and metadata",
			event: &types.AuditEvent{
				TenantID:   &tenantID,
				ActorType:  types.ActorTypeSystem,
				Action:     types.AuditActionTenantStatusChanged,
				EntityType: types.EntityTypeTenant,
				EntityID:   &tenantID,
				Success:    true,
			},
			expectStore: true,
		},
		{
			name:        "nil event",
			expectedErr: ErrInvalidEvent,
		},
		{
			name: "unknown actor type",
			event: &types.AuditEvent{
				ActorType:  "ROBOT",
				Action:     types.AuditActionTenantCreated,
				EntityType: types.EntityTypeTenant,
			},
			expectedErr: ErrInvalidEvent,
		},
		{
			name: "missing action",
			event: &types.AuditEvent{
				ActorType:  types.ActorTypeUser,
				EntityType: types.EntityTypeTenant,
			},
			expectedErr: ErrInvalidEvent,
		},
		{
			name: "store failure is returned",
			event: &types.AuditEvent{
				ActorType:  types.ActorTypeSystem,
				Action:     types.AuditActionTenantCreated,
				EntityType: types.EntityTypeTenant,
			},
			storageErr:  errors.New("insert failed"),
			expectStore: true,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			if tt.expectStore {
				mockStorage.EXPECT().CreateAuditEvent(gomock.Any(), tt.event).Return(tt.storageErr)
			}

			r := NewRecorder(mockStorage, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
			r.now = func() time.Time { return fixed }

			err := r.Record(context.Background(), tt.event)

			if tt.expectedErr != nil || tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			id, err := uuid.Parse(tt.event.ID)
			if err != nil || id.Version() != 7 {
				t.Errorf("expected a v7 uuid, got %q", tt.event.ID)
			}
			if !tt.event.CreatedAt.Equal(fixed) {
				t.Errorf("expected created at %v, got %v", fixed, tt.event.CreatedAt)
			}
			if string(tt.event.Metadata) != "{}" {
				t.Errorf("expected empty metadata object, got %s", tt.event.Metadata)
			}
		})
	}
}

func TestRecorder_RecordKeepsProvidedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	event := &types.AuditEvent{
		ID:         "0190a5c8-0000-7000-8000-0000000000aa",
		ActorType:  types.ActorTypeSystem,
		Action:     types.AuditActionTenantCreated,
		EntityType: types.EntityTypeTenant,
		Metadata:   []byte(`{"name":"Acme"}`),
		CreatedAt:  created,
	}

	mockStorage := NewMockStorageInterface(ctrl)
	mockStorage.EXPECT().CreateAuditEvent(gomock.Any(), event).Return(nil)

	r := NewRecorder(mockStorage, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	if err := r.Record(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if event.ID != "0190a5c8-0000-7000-8000-0000000000aa" || !event.CreatedAt.Equal(created) || string(event.Metadata) != `{"name":"Acme"}` {
		t.Errorf("provided fields were overwritten: %+v", event)
	}
}
