package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newHealthService() (*HealthService, *fixedClock) {
	clock := &fixedClock{now: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)}
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return NewHealthService(clock, logger), clock
}

func performHealthCheck(t *testing.T, service *HealthService) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()

	recorder := httptest.NewRecorder()
	service.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var response HealthResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	return recorder, response
}

func TestHealthService_ServeHTTP(t *testing.T) {
	t.Run("서비스 상태 확인 전에는 unhealthy", func(t *testing.T) {
		service, _ := newHealthService()

		recorder, response := performHealthCheck(t, service)

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Equal(t, StatusUnhealthy, response.Status)
	})

	t.Run("서비스 접근 가능이면 healthy", func(t *testing.T) {
		service, _ := newHealthService()
		service.UpdateServiceHealth(true, nil)
		service.RecordPass("verified", false)

		recorder, response := performHealthCheck(t, service)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, StatusHealthy, response.Status)
		assert.Equal(t, "verified", response.Statistics["last_outcome"])
		assert.Equal(t, float64(1), response.Statistics["passes_total"])
	})

	t.Run("서비스는 살아있지만 마지막 패스가 실패면 degraded", func(t *testing.T) {
		service, _ := newHealthService()
		service.UpdateServiceHealth(true, nil)
		service.RecordPass("failed", true)

		recorder, response := performHealthCheck(t, service)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, StatusDegraded, response.Status)
		assert.Equal(t, float64(1), response.Statistics["passes_failed"])
	})

	t.Run("서비스 에러가 컴포넌트에 노출", func(t *testing.T) {
		service, _ := newHealthService()
		service.UpdateServiceHealth(false, errors.New("host network service unreachable"))

		recorder, response := performHealthCheck(t, service)

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		component := response.Components["host_network_service"].(map[string]interface{})
		assert.Equal(t, false, component["healthy"])
		assert.Contains(t, component["error"], "unreachable")
	})

	t.Run("GET 외 메서드는 거부", func(t *testing.T) {
		service, _ := newHealthService()

		recorder := httptest.NewRecorder()
		service.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/healthz", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}
