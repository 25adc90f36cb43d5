package handlers

import "net/http"

// HealthHandler reports service liveness.
type HealthHandler struct {
	service string
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service, version string) *HealthHandler {
	return &HealthHandler{
		service: service,
		version: version,
	}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": h.service,
		"version": h.version,
	})
}
