package routes

import (
	"net/http"

	"github.com/medviz/medical-analyzer/backend/internal/api/handlers"
	"github.com/medviz/medical-analyzer/backend/internal/api/middleware"
	"github.com/medviz/medical-analyzer/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	analysisHandler *handlers.AnalysisHandler
	healthHandler   *handlers.HealthHandler
	staticHandler   *handlers.StaticHandler

	allowedOrigins string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	analysisHandler *handlers.AnalysisHandler,
	healthHandler *handlers.HealthHandler,
	staticHandler *handlers.StaticHandler,
	allowedOrigins string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		analysisHandler: analysisHandler,
		healthHandler:   healthHandler,
		staticHandler:   staticHandler,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("POST /api/analyze", r.analysisHandler.Analyze)
	r.mux.HandleFunc("GET /api/health", r.healthHandler.Health)

	// Everything else serves the frontend bundle with an index fallback.
	r.mux.HandleFunc("/", r.staticHandler.Serve)

	// Apply middleware in reverse order (last middleware wraps first).
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	handler = middleware.RequestIDMiddleware(handler)

	// CORS wraps everything so headers are set even on error responses.
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
