package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tably/internal/availability/service"
	"tably/internal/availability/validator"
	apperrors "tably/pkg/errors"
	"tably/pkg/logger"
	"tably/pkg/model"
)

type mockAvailabilityService struct {
	checkFunc  func(ctx context.Context, date string, partySize int, bookingType string) (*service.DayAvailability, error)
	rangeFunc  func(ctx context.Context, startDate, endDate string, partySize int, bookingType string) (map[string]bool, error)
	nextFunc   func(ctx context.Context, partySize int, bookingType, preferredTime string) (*service.NextSlot, error)
	hoursFunc  func(ctx context.Context, date string) (*service.EffectiveHours, error)
	weeklyFunc func(ctx context.Context) ([]*model.BusinessHours, error)
}

func (m *mockAvailabilityService) CheckAvailability(ctx context.Context, date string, partySize int, bookingType string) (*service.DayAvailability, error) {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, date, partySize, bookingType)
	}
	return &service.DayAvailability{Date: date}, nil
}

func (m *mockAvailabilityService) GetAvailabilityRange(ctx context.Context, startDate, endDate string, partySize int, bookingType string) (map[string]bool, error) {
	if m.rangeFunc != nil {
		return m.rangeFunc(ctx, startDate, endDate, partySize, bookingType)
	}
	return map[string]bool{}, nil
}

func (m *mockAvailabilityService) NextAvailableSlot(ctx context.Context, partySize int, bookingType, preferredTime string) (*service.NextSlot, error) {
	if m.nextFunc != nil {
		return m.nextFunc(ctx, partySize, bookingType, preferredTime)
	}
	return &service.NextSlot{}, nil
}

func (m *mockAvailabilityService) ResolveHours(ctx context.Context, date string) (*service.EffectiveHours, error) {
	if m.hoursFunc != nil {
		return m.hoursFunc(ctx, date)
	}
	return &service.EffectiveHours{Date: date}, nil
}

func (m *mockAvailabilityService) WeeklyHours(ctx context.Context) ([]*model.BusinessHours, error) {
	if m.weeklyFunc != nil {
		return m.weeklyFunc(ctx)
	}
	return nil, nil
}

func newTestRouter(svc service.AvailabilityService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	h := NewAvailabilityHandler(svc, validator.NewQueryValidator(log), log)
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestCheck_ReturnsSlots(t *testing.T) {
	svc := &mockAvailabilityService{
		checkFunc: func(ctx context.Context, date string, partySize int, bookingType string) (*service.DayAvailability, error) {
			assert.Equal(t, "2026-09-10", date)
			assert.Equal(t, 4, partySize)
			assert.Equal(t, "regular", bookingType)
			return &service.DayAvailability{
				Date:      date,
				Available: true,
				TimeSlots: []service.TimeSlot{{Time: "18:00", AvailableCapacity: 30}},
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2026-09-10&party_size=4&booking_type=regular", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data service.DayAvailability `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data.Available)
	require.Len(t, body.Data.TimeSlots, 1)
	assert.Equal(t, "18:00", body.Data.TimeSlots[0].Time)
}

func TestCheck_RejectsMissingDate(t *testing.T) {
	router := newTestRouter(&mockAvailabilityService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?party_size=4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheck_RejectsNonNumericPartySize(t *testing.T) {
	router := newTestRouter(&mockAvailabilityService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2026-09-10&party_size=four", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckRange_ReturnsPerDayMap(t *testing.T) {
	svc := &mockAvailabilityService{
		rangeFunc: func(ctx context.Context, startDate, endDate string, partySize int, bookingType string) (map[string]bool, error) {
			return map[string]bool{"2026-09-01": true, "2026-09-02": false}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/range?start_date=2026-09-01&end_date=2026-09-02&party_size=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]bool `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data["2026-09-01"])
	assert.False(t, body.Data["2026-09-02"])
}

func TestNextAvailable_NotFoundPropagates(t *testing.T) {
	svc := &mockAvailabilityService{
		nextFunc: func(ctx context.Context, partySize int, bookingType, preferredTime string) (*service.NextSlot, error) {
			return nil, apperrors.NotFound("availability within 8 weeks")
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/next?party_size=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNextAvailable_RejectsBadPreferredTime(t *testing.T) {
	router := newTestRouter(&mockAvailabilityService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/next?party_size=2&preferred_time=6pm", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHours_WeeklyTemplateWithoutDate(t *testing.T) {
	svc := &mockAvailabilityService{
		weeklyFunc: func(ctx context.Context) ([]*model.BusinessHours, error) {
			return []*model.BusinessHours{
				{Weekday: "Monday", KitchenOpens: "12:00", KitchenCloses: "22:00"},
				{Weekday: "Tuesday", IsClosed: true},
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hours", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []model.BusinessHours `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Monday", body.Data[0].Weekday)
	assert.True(t, body.Data[1].IsClosed)
}

func TestHours_ReturnsResolvedWindow(t *testing.T) {
	svc := &mockAvailabilityService{
		hoursFunc: func(ctx context.Context, date string) (*service.EffectiveHours, error) {
			return &service.EffectiveHours{Date: date, Closed: true, Note: "Bank holiday"}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hours?date=2026-09-10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data service.EffectiveHours `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data.Closed)
	assert.Equal(t, "Bank holiday", body.Data.Note)
}
