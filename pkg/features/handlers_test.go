// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package features

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
	"github.com/canonical/noxera-service/internal/logging"
	"github.com/canonical/noxera-service/internal/monitoring"
	"github.com/canonical/noxera-service/internal/tracing"
)

func TestAPI_Features(t *testing.T) {
	entitlements := Merge([]byte(`{"seats":5}`), []byte(`{"beta":true}`))

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "get features",
			method: http.MethodGet,
			path:   "/api/v0/admin/tenants/tenant-1/features",
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().Resolve(gomock.Any(), "tenant-1").Return(entitlements, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"planFeatures":{"seats":5},"overrideFeatures":{"beta":true},"effectiveFeatures":{"seats":5,"beta":true}}`,
		},
		{
			name:   "get features of unknown tenant",
			method: http.MethodGet,
			path:   "/api/v0/admin/tenants/missing/features",
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().Resolve(gomock.Any(), "missing").Return(nil, ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "put overrides",
			method: http.MethodPut,
			path:   "/api/v0/admin/tenants/tenant-1/features/overrides",
			body:   `{"beta":true}`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().SetOverrides(gomock.Any(), "tenant-1", []byte(`{"beta":true}`)).Return(entitlements, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "put invalid overrides",
			method: http.MethodPut,
			path:   "/api/v0/admin/tenants/tenant-1/features/overrides",
			body:   `[]`,
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().SetOverrides(gomock.Any(), "tenant-1", gomock.Any()).Return(nil, ErrInvalidInput)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "internal error hides detail",
			method: http.MethodGet,
			path:   "/api/v0/admin/tenants/tenant-1/features",
			setupMocks: func(svc *MockServiceInterface) {
				svc.EXPECT().Resolve(gomock.Any(), "tenant-1").Return(nil, errors.New("pq: connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			mux := chi.NewMux()
			NewAPI(mockService, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).RegisterEndpoints(mux)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			body, _ := io.ReadAll(res.Body)

			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, body)
			}

			if tt.expectedBody != "" && strings.TrimSpace(string(body)) != tt.expectedBody {
				t.Errorf("expected body %s, got %s", tt.expectedBody, body)
			}

			if res.StatusCode >= http.StatusBadRequest {
				var e httptypes.ErrorResponse
				if err := json.Unmarshal(body, &e); err != nil {
					t.Fatalf("failed to decode error: %v", err)
				}
				if e.Status != tt.expectedStatus {
					t.Errorf("expected error status %d, got %d", tt.expectedStatus, e.Status)
				}
				if res.StatusCode == http.StatusInternalServerError && e.Message != "internal server error" {
					t.Errorf("internal detail leaked: %q", e.Message)
				}
			}
		})
	}
}
