package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tably/internal/reconciler/service"
	apperrors "tably/pkg/errors"
	"tably/pkg/logger"
	"tably/pkg/middleware"
)

type mockReconcilerService struct {
	reconcileFunc func(ctx context.Context) (*service.Result, error)
}

func (m *mockReconcilerService) Reconcile(ctx context.Context) (*service.Result, error) {
	if m.reconcileFunc != nil {
		return m.reconcileFunc(ctx)
	}
	return &service.Result{ProcessedAt: time.Now().UTC()}, nil
}

const testSecret = "sweep-secret"

func newTestServer(svc service.ReconcilerService) http.Handler {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	router := httprouter.New()
	NewReconcilerHandler(svc, log).RegisterRoutes(router)
	return middleware.SchedulerAuth(testSecret, log)(router)
}

func TestReconcile_RequiresBearerToken(t *testing.T) {
	server := newTestServer(&mockReconcilerService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReconcile_RejectsWrongToken(t *testing.T) {
	server := newTestServer(&mockReconcilerService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReconcile_ReturnsCounts(t *testing.T) {
	processedAt := time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)
	svc := &mockReconcilerService{
		reconcileFunc: func(ctx context.Context) (*service.Result, error) {
			return &service.Result{
				ExpiredEventBookings:  2,
				ExpiredTableBookings:  3,
				ExpiredPaymentHolds:   5,
				ExpiredWaitlistOffers: 1,
				ProcessedAt:           processedAt,
			}, nil
		},
	}
	server := newTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile", nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["expiredEventBookings"])
	assert.EqualValues(t, 3, body["expiredTableBookings"])
	assert.EqualValues(t, 5, body["expiredPaymentHolds"])
	assert.EqualValues(t, 1, body["expiredWaitlistOffers"])
	assert.Equal(t, processedAt.Format(time.RFC3339), body["processedAt"])
}

func TestReconcile_ServiceErrorMapsToStatus(t *testing.T) {
	svc := &mockReconcilerService{
		reconcileFunc: func(ctx context.Context) (*service.Result, error) {
			return nil, apperrors.Internal("sweep failed", errors.New("connection reset"))
		},
	}
	server := newTestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile", nil)
	req.Header.Set("Authorization", "Bearer "+testSecret)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
