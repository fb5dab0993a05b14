package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"detnet-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// HealthService provides health check functionality for watch mode
type HealthService struct {
	mu            sync.RWMutex
	clock         interfaces.Clock
	logger        *logrus.Logger
	startTime     time.Time
	serviceOK     bool
	serviceError  error
	passCount     int64
	failedPasses  int64
	lastOutcome   string
	lastPassTime  time.Time
}

// HealthStatus represents health check status
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the health check response struct
type HealthResponse struct {
	Status     HealthStatus           `json:"status"`
	Timestamp  string                 `json:"timestamp"`
	Components map[string]interface{} `json:"components"`
	Statistics map[string]interface{} `json:"statistics"`
}

// NewHealthService creates a new HealthService
func NewHealthService(clock interfaces.Clock, logger *logrus.Logger) *HealthService {
	return &HealthService{
		clock:     clock,
		logger:    logger,
		startTime: clock.Now(),
		serviceOK: false,
	}
}

// UpdateServiceHealth updates the host network service health status
func (h *HealthService) UpdateServiceHealth(healthy bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.serviceOK = healthy
	h.serviceError = err
}

// RecordPass records the outcome of one reconciliation pass
func (h *HealthService) RecordPass(outcome string, failed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.passCount++
	if failed {
		h.failedPasses++
	}
	h.lastOutcome = outcome
	h.lastPassTime = h.clock.Now()
}

// ServeHTTP handles the HTTP health check endpoint
func (h *HealthService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := h.buildHealthResponse()

	statusCode := http.StatusOK
	if response.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.WithError(err).Error("failed to encode health check response")
	}
}

// buildHealthResponse constructs the health check response
func (h *HealthService) buildHealthResponse() HealthResponse {
	h.mu.RLock()
	defer h.mu.RUnlock()

	now := h.clock.Now()

	status := StatusHealthy
	if !h.serviceOK {
		status = StatusUnhealthy
	} else if h.failedPasses > 0 && h.lastOutcome == "failed" {
		status = StatusDegraded
	}

	serviceComponent := map[string]interface{}{
		"healthy": h.serviceOK,
	}
	if h.serviceError != nil {
		serviceComponent["error"] = h.serviceError.Error()
	}

	lastPass := ""
	if !h.lastPassTime.IsZero() {
		lastPass = h.lastPassTime.Format(time.RFC3339)
	}

	return HealthResponse{
		Status:    status,
		Timestamp: now.Format(time.RFC3339),
		Components: map[string]interface{}{
			"host_network_service": serviceComponent,
		},
		Statistics: map[string]interface{}{
			"uptime_seconds": int64(now.Sub(h.startTime).Seconds()),
			"passes_total":   h.passCount,
			"passes_failed":  h.failedPasses,
			"last_outcome":   h.lastOutcome,
			"last_pass_at":   lastPass,
		},
	}
}
