package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medviz/medical-analyzer/backend/internal/api/middleware"
)

func newCORSHandler(origins string) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return middleware.CORSMiddleware(origins)(inner)
}

func TestCORS_AllowedDevOrigin(t *testing.T) {
	handler := newCORSHandler("")

	req := httptest.NewRequest("POST", "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	handler := newCORSHandler("")

	req := httptest.NewRequest("POST", "/api/analyze", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	handler := newCORSHandler("")

	req := httptest.NewRequest("OPTIONS", "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORS_ConfiguredOrigins(t *testing.T) {
	handler := newCORSHandler("https://app.example.com, https://staging.example.com")

	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("Origin", "https://staging.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "https://staging.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NonAPIPathUntouched(t *testing.T) {
	handler := newCORSHandler("")

	req := httptest.NewRequest("GET", "/index.html", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
}
