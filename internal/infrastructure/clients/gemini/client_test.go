package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medviz/medical-analyzer/backend/pkg/config"
	apperrors "github.com/medviz/medical-analyzer/backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: server.URL,
	})
}

func candidateReply(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{
						{"text": text},
					},
				},
			},
		},
	}
}

func TestAnalyzeDescription_Success(t *testing.T) {
	var gotPayload map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(candidateReply(`{"diagnosis":"Sinusitis","severity":"low"}`))
	})

	reply, err := client.AnalyzeDescription(context.Background(), "headache and sinus pressure")
	require.NoError(t, err)
	assert.Equal(t, "Sinusitis", reply["diagnosis"])

	genConfig, ok := gotPayload["generationConfig"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 0.2, genConfig["temperature"])
	assert.Equal(t, 0.8, genConfig["topP"])
	assert.Equal(t, float64(40), genConfig["topK"])
}

func TestAnalyzeDescription_FencedReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(candidateReply("```json\n{\"diagnosis\":\"X\"}\n```"))
	})

	reply, err := client.AnalyzeDescription(context.Background(), "cough")
	require.NoError(t, err)
	assert.Equal(t, "X", reply["diagnosis"])
}

func TestAnalyzeDescription_ProseWrappedReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(candidateReply(`Here is the result: {"diagnosis":"X","confidence":75} Thanks!`))
	})

	reply, err := client.AnalyzeDescription(context.Background(), "cough")
	require.NoError(t, err)
	assert.Equal(t, "X", reply["diagnosis"])
	assert.Equal(t, float64(75), reply["confidence"])
}

func TestAnalyzeDescription_MissingKey(t *testing.T) {
	client := NewClient(&config.GeminiConfig{Model: "gemini-test"})
	assert.False(t, client.Configured())

	_, err := client.AnalyzeDescription(context.Background(), "cough")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConfiguration, appErr.Type)
}

func TestAnalyzeDescription_HTTPErrorWithDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "quota exceeded"},
		})
	})

	_, err := client.AnalyzeDescription(context.Background(), "cough")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeUpstream, appErr.Type)
	assert.Equal(t, apperrors.UpstreamHTTPStatus, appErr.Kind)
	assert.Contains(t, appErr.Message, "quota exceeded")
}

func TestAnalyzeDescription_HTTPErrorWithoutDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.AnalyzeDescription(context.Background(), "cough")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.UpstreamHTTPStatus, appErr.Kind)
	assert.Contains(t, appErr.Message, "HTTP 502")
}

func TestAnalyzeDescription_MalformedEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	})

	_, err := client.AnalyzeDescription(context.Background(), "cough")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.UpstreamBadEnvelope, appErr.Kind)
}

func TestAnalyzeDescription_InvalidJSONReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(candidateReply("I cannot produce JSON today."))
	})

	_, err := client.AnalyzeDescription(context.Background(), "cough")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.UpstreamBadJSON, appErr.Kind)
	assert.Contains(t, appErr.Message, "try again")
}

func TestAnalyzeDescription_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(candidateReply(`{}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.AnalyzeDescription(ctx, "cough")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.UpstreamTimeout, appErr.Kind)
}

func TestAnalyzeDescription_Connection(t *testing.T) {
	client := NewClient(&config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: "http://127.0.0.1:1",
	})

	_, err := client.AnalyzeDescription(context.Background(), "cough")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.UpstreamConnection, appErr.Kind)
}
