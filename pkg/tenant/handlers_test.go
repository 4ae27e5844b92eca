// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httptypes "github.com/canonical/noxera-service/internal/http/types"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
	"github.com/canonical/noxera-service/internal/types"
)

func TestAPI_Tenants(t *testing.T) {
	seats := int32(10)

	tests := []struct {
		name            string
		method          string
		path            string
		body            string
		setupMocks      func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/api/v0/admin/tenants",
			body:   `{"name":"Acme","planTier":"PRO","seatsLimit":10}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().
					CreateTenant(gomock.Any(), CreateTenantInput{Name: "Acme", PlanTier: "PRO", SeatsLimit: &seats}).
					Return(&types.Tenant{ID: "tenant-1", Name: "Acme", Status: types.TenantStatusTrial}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:            "create without name",
			method:          http.MethodPost,
			path:            "/api/v0/admin/tenants",
			body:            `{"slug":"acme"}`,
			setupMocks:      func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "name is required",
		},
		{
			name:            "create with overlong slug",
			method:          http.MethodPost,
			path:            "/api/v0/admin/tenants",
			body:            `{"name":"Acme","slug":"` + strings.Repeat("a", 64) + `"}`,
			setupMocks:      func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "slug must be at most 63 characters",
		},
		{
			name:            "create with negative seats",
			method:          http.MethodPost,
			path:            "/api/v0/admin/tenants",
			body:            `{"name":"Acme","seatsLimit":-1}`,
			setupMocks:      func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "seatsLimit must be at least 0",
		},
		{
			name:           "create with malformed body",
			method:         http.MethodPost,
			path:           "/api/v0/admin/tenants",
			body:           `{"name":`,
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "create with taken slug",
			method: http.MethodPost,
			path:   "/api/v0/admin/tenants",
			body:   `{"name":"Acme","slug":"acme"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).Return(nil, ErrSlugTaken)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "create without plans",
			method: http.MethodPost,
			path:   "/api/v0/admin/tenants",
			body:   `{"name":"Acme"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).Return(nil, ErrNoPlanAvailable)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/api/v0/admin/tenants?q=acme&status=ACTIVE&planTier=PRO&page=2&pageSize=5",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().
					ListTenants(gomock.Any(), types.TenantFilter{Query: "acme", Status: types.TenantStatusActive, PlanTier: "PRO"}, int64(2), int64(5)).
					Return(&types.Page[*types.Tenant]{Page: 2, PageSize: 5}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "get",
			method: http.MethodGet,
			path:   "/api/v0/admin/tenants/tenant-1",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().GetTenant(gomock.Any(), "tenant-1").Return(&Detail{Tenant: &types.Tenant{ID: "tenant-1"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "get missing",
			method: http.MethodGet,
			path:   "/api/v0/admin/tenants/missing",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().GetTenant(gomock.Any(), "missing").Return(nil, ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "set status",
			method: http.MethodPatch,
			path:   "/api/v0/admin/tenants/tenant-1/status",
			body:   `{"status":"SUSPENDED"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().SetStatus(gomock.Any(), "tenant-1", "SUSPENDED").
					Return(&StatusChange{TenantID: "tenant-1", Status: types.TenantStatusSuspended}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "set invalid status",
			method: http.MethodPatch,
			path:   "/api/v0/admin/tenants/tenant-1/status",
			body:   `{"status":"DELETED"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().SetStatus(gomock.Any(), "tenant-1", "DELETED").Return(nil, types.ErrInvalidStatus)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:            "set status without body field",
			method:          http.MethodPatch,
			path:            "/api/v0/admin/tenants/tenant-1/status",
			body:            `{}`,
			setupMocks:      func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "status is required",
		},
		{
			name:   "internal failure hides detail",
			method: http.MethodPatch,
			path:   "/api/v0/admin/tenants/tenant-1/status",
			body:   `{"status":"ACTIVE"}`,
			setupMocks: func(svc *MockServiceInterface, logger *MockLoggerInterface) {
				svc.EXPECT().SetStatus(gomock.Any(), "tenant-1", "ACTIVE").Return(nil, errors.New("connection reset"))
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tt.setupMocks(mockService, mockLogger)

			router := chi.NewRouter()
			NewAPI(mockService, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), mockLogger).RegisterEndpoints(router)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}

			if tt.expectedMessage == "" {
				return
			}

			data, err := io.ReadAll(res.Body)
			if err != nil {
				t.Fatalf("failed to read body: %v", err)
			}

			var body httptypes.ErrorResponse
			if err := json.Unmarshal(data, &body); err != nil {
				t.Fatalf("invalid error body %s: %v", data, err)
			}
			if body.Status != tt.expectedStatus || body.Message != tt.expectedMessage {
				t.Fatalf("unexpected error body %+v", body)
			}
		})
	}
}
