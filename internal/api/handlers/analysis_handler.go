package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/medviz/medical-analyzer/backend/internal/domain/entities"
	apperrors "github.com/medviz/medical-analyzer/backend/pkg/errors"
)

// AnalysisService defines the analysis operation used by the handler.
type AnalysisService interface {
	Analyze(ctx context.Context, req *entities.AnalysisRequest) (*entities.AnalysisResult, error)
}

// AnalysisHandler handles clinical description analysis requests.
type AnalysisHandler struct {
	service AnalysisService
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(service AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
	}
}

// Analyze handles POST /api/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var payload entities.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "no data provided")
		return
	}

	if err := payload.Validate(); err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		}
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.Analyze(r.Context(), &payload)
	if err != nil {
		h.respondWithAnalysisError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// respondWithAnalysisError is the only place internal failure types are
// translated into HTTP statuses.
func (h *AnalysisHandler) respondWithAnalysisError(w http.ResponseWriter, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		log.Error().Err(err).Msg("unexpected error in analyze endpoint")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeConfiguration:
		log.Error().Err(appErr).Msg("configuration error")
		respondWithError(w, http.StatusInternalServerError, appErr.Message)
	case apperrors.ErrorTypeUpstream:
		log.Error().Err(appErr).Str("kind", string(appErr.Kind)).Msg("upstream analysis failure")
		respondWithError(w, http.StatusInternalServerError, appErr.Message)
	default:
		log.Error().Err(appErr).Msg("unexpected error in analyze endpoint")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
