package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/medviz/medical-analyzer/backend/internal/domain/entities"
	"github.com/medviz/medical-analyzer/backend/pkg/config"
	apperrors "github.com/medviz/medical-analyzer/backend/pkg/errors"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	requestTimeout = 30 * time.Second

	// Low-variance generation parameters for near-deterministic structured output.
	temperature = 0.2
	topP        = 0.8
	topK        = 40

	rawTextLogLimit = 500
)

// Client implements the Gemini diagnosis provider.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Gemini client. A missing API key is allowed at
// construction so the server can still come up; calls fail with a
// configuration error until a key is provided.
func NewClient(cfg *config.GeminiConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

type candidatePart struct {
	Text string `json:"text"`
}

type candidateContent struct {
	Parts []candidatePart `json:"parts"`
}

type candidate struct {
	Content candidateContent `json:"content"`
}

type generateEnvelope struct {
	Candidates []candidate `json:"candidates"`
}

type apiErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AnalyzeDescription sends the clinical description to the model and returns
// the parsed JSON object embedded in its reply.
func (c *Client) AnalyzeDescription(ctx context.Context, description string) (entities.RawModelReply, error) {
	if c.apiKey == "" {
		return nil, apperrors.NewConfigurationError("GEMINI_API_KEY environment variable is not set")
	}

	prompt := buildAnalysisPrompt(description)

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": temperature,
			"topP":        topP,
			"topK":        topK,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode request payload", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordGeminiMetric(ctx, c.model, 0, time.Since(start), err)
		if isTimeout(err) {
			log.Error().Err(err).Msg("gemini request timed out")
			return nil, apperrors.NewUpstreamError(apperrors.UpstreamTimeout,
				"Analysis service timeout. Please try again.", err)
		}
		log.Error().Err(err).Msg("gemini connection error")
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamConnection,
			"Failed to connect to analysis service. Please check your internet connection.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := errorDetail(resp)
		recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		log.Error().Int("status", resp.StatusCode).Str("detail", detail).Msg("gemini API HTTP error")
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamHTTPStatus,
			fmt.Sprintf("Analysis service error: %s", detail), nil)
	}

	var envelope generateEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamBadEnvelope,
			"Invalid response from analysis model", err)
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), errors.New("missing candidate text"))
		log.Error().Msg("unexpected gemini response structure")
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamBadEnvelope,
			"Invalid response from analysis model", nil)
	}

	rawText := envelope.Candidates[0].Content.Parts[0].Text
	cleaned := extractJSONObject(cleanModelText(rawText))

	var reply entities.RawModelReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		log.Error().Str("raw", truncate(cleaned, rawTextLogLimit)).Msg("failed to parse gemini JSON")
		return nil, apperrors.NewUpstreamError(apperrors.UpstreamBadJSON,
			fmt.Sprintf("Model returned invalid JSON. Please try again. Error: %v", err), err)
	}

	recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return reply, nil
}

// errorDetail extracts the message field from an error body when present.
func errorDetail(resp *http.Response) string {
	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var envelope apiErrorEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
			return envelope.Error.Message
		}
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

type geminiMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var metricsInit = false
var clientMetrics geminiMetrics

func ensureGeminiMetrics() {
	if metricsInit {
		return
	}
	meter := otel.Meter("github.com/medviz/medical-analyzer/backend/gemini")

	requestCount, err := meter.Int64Counter(
		"ai.gemini.request.count",
		metric.WithDescription("Number of Gemini requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.gemini.request.duration",
		metric.WithDescription("Gemini request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.gemini.request.errors",
		metric.WithDescription("Number of Gemini request errors"),
	)
	if err != nil {
		return
	}

	clientMetrics = geminiMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	metricsInit = true
}

func recordGeminiMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureGeminiMetrics()
	if !metricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	clientMetrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	clientMetrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		clientMetrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
