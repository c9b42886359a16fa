package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mealframe/internal/metrics"
	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/stats"
	"github.com/julianstephens/mealframe/internal/utils"
)

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

type fakeReader struct {
	days []models.TrackedDay
	err  error
}

func (f *fakeReader) GetTrackedDays(_ context.Context, _, _ time.Time) ([]models.TrackedDay, error) {
	return f.days, f.err
}

func trackedDay(date time.Time, statuses ...models.CompletionStatus) models.TrackedDay {
	d := models.TrackedDay{Date: date}
	for i, s := range statuses {
		d.Slots = append(d.Slots, models.TrackedSlot{
			Date:         date,
			Position:     i + 1,
			MealTypeID:   "mt-lunch",
			MealTypeName: "Lunch",
			Status:       s,
		})
	}
	return d
}

func newTestServer(t *testing.T, reader stats.SlotReader, m *metrics.Metrics) *Server {
	t.Helper()
	svc := stats.NewService(reader, time.UTC, stats.WithClock(func() time.Time {
		return today.Add(15 * time.Hour)
	}))
	server, err := NewServer(svc, m, &Config{Host: "127.0.0.1", Port: 0})
	require.NoError(t, err)
	return server
}

func get(t *testing.T, server *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestNewServer(t *testing.T) {
	t.Run("nil reporter", func(t *testing.T) {
		_, err := NewServer(nil, nil, nil)
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		server, err := NewServer(stats.NewService(&fakeReader{}, nil), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "localhost:8000", server.config.Addr())
		assert.Equal(t, 30, server.config.DefaultDays)
	})

	t.Run("invalid default window", func(t *testing.T) {
		_, err := NewServer(stats.NewService(&fakeReader{}, nil), nil, &Config{DefaultDays: 400})
		assert.ErrorIs(t, err, stats.ErrInvalidWindow)
	})
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, &fakeReader{}, nil)

	rec := get(t, server, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestStatsEndpoint(t *testing.T) {
	reader := &fakeReader{days: []models.TrackedDay{
		trackedDay(utils.AddDays(today, -1), models.StatusFollowed, models.StatusAdjusted),
		trackedDay(today, models.StatusFollowed, models.StatusSkipped),
	}}
	server := newTestServer(t, reader, nil)

	rec := get(t, server, "/api/v1/stats?days=7")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 7, body["period_days"])
	assert.EqualValues(t, 4, body["total_slots"])
	assert.EqualValues(t, 4, body["completed_slots"])
	assert.Equal(t, "0.750", body["adherence_rate"])
	assert.EqualValues(t, 2, body["current_streak"])
	assert.EqualValues(t, 2, body["best_streak"])

	byMealType, ok := body["by_meal_type"].([]any)
	require.True(t, ok)
	require.Len(t, byMealType, 1)
	assert.Equal(t, map[string]any{"name": "Lunch", "adherence_rate": "0.750"}, byMealType[0])
}

func TestStatsEndpointDefaultWindow(t *testing.T) {
	server := newTestServer(t, &fakeReader{}, nil)

	rec := get(t, server, "/api/v1/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 30, body["period_days"])
	assert.Equal(t, "0", body["adherence_rate"])
	assert.Equal(t, []any{}, body["by_meal_type"])
	assert.Equal(t, []any{}, body["daily_adherence"])
}

func TestStatsEndpointRejectsBadWindow(t *testing.T) {
	reader := &fakeReader{}
	server := newTestServer(t, reader, nil)

	tests := []struct {
		name  string
		query string
	}{
		{"zero", "days=0"},
		{"negative", "days=-3"},
		{"too large", "days=366"},
		{"not a number", "days=week"},
		{"fractional", "days=7.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, server, "/api/v1/stats?"+tt.query)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Detail)
		})
	}
}

func TestStatsEndpointStoreFailure(t *testing.T) {
	server := newTestServer(t, &fakeReader{err: errors.New("disk on fire")}, nil)

	rec := get(t, server, "/api/v1/stats?days=7")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed to compute stats", resp.Detail)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t, &fakeReader{}, nil)

	rec := get(t, server, "/api/v2/stats")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Detail)
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New(false)
	server := newTestServer(t, &fakeReader{}, m)

	require.Equal(t, http.StatusOK, get(t, server, "/api/v1/stats?days=7").Code)
	require.Equal(t, http.StatusUnprocessableEntity, get(t, server, "/api/v1/stats?days=0").Code)
	require.Equal(t, http.StatusNotFound, get(t, server, "/nope").Code)

	rec := get(t, server, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `mealframe_http_requests_total{method="GET",path="/api/v1/stats",status="200"} 1`)
	assert.Contains(t, body, `mealframe_http_requests_total{method="GET",path="/api/v1/stats",status="422"} 1`)
	assert.False(t, strings.Contains(body, `path="/metrics"`), "scrapes should not be counted")
}

func TestCORS(t *testing.T) {
	svc := stats.NewService(&fakeReader{}, nil)
	server, err := NewServer(svc, nil, &Config{CORSOrigins: []string{"http://localhost:5173"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
