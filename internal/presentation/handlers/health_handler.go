package handlers

import (
	"net/http"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Network string `json:"network"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	version string
	network string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, network string) *HealthHandler {
	return &HealthHandler{version: version, network: network}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Network: h.network,
	})
}
