package handler

import (
	"context"
	"net/http"
	"time"
)

// RedisPinger defines the interface for checking storage connectivity
type RedisPinger interface {
	Ping(ctx context.Context) error
}

// LedgerProbe reports whether the RPC connection is live.
type LedgerProbe interface {
	Connected() bool
}

// HealthHandler handles health check requests
type HealthHandler struct {
	storage RedisPinger
	ledger  LedgerProbe
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage RedisPinger, ledger LedgerProbe) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		ledger:  ledger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
	Uptime  string            `json:"uptime,omitempty"`
}

var startTime = time.Now()

// GetHealth handles GET /health
// Basic health check - returns 200 OK if service is running
func GetHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
		Uptime:  time.Since(startTime).String(),
		Checks:  map[string]string{},
	}

	respondWithJSON(w, http.StatusOK, response)
}

// GetLiveness handles GET /health/live
func GetLiveness(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// GetReadiness handles GET /health/ready
// Readiness probe - checks if the service can serve traffic
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "storage not ready")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// GetHealthDetailed handles GET /health/detailed
// Includes per-dependency connectivity checks
func (h *HealthHandler) GetHealthDetailed(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := "ok"

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		checks["storage"] = "unhealthy: " + err.Error()
		status = "degraded"
	} else {
		checks["storage"] = "healthy"
	}

	if h.ledger.Connected() {
		checks["rpc"] = "connected"
	} else {
		checks["rpc"] = "disconnected"
		status = "degraded"
	}

	httpStatus := http.StatusOK
	if status == "degraded" {
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:  status,
		Version: "1.0.0",
		Uptime:  time.Since(startTime).String(),
		Checks:  checks,
	}

	respondWithJSON(w, httpStatus, response)
}
