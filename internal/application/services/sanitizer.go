package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/medviz/medical-analyzer/backend/internal/domain/entities"
)

const (
	fallbackDiagnosis   = "Diagnosis unavailable"
	fallbackExplanation = "No detailed explanation provided."

	maxRecommendations = 5
	maxOrganDetailLen  = 100
)

// SanitizeModelReply converts the model's untyped JSON reply into a
// well-formed AnalysisResult. It never fails: missing or invalid fields are
// replaced with defaults, and every organ key in the output is canonical.
func SanitizeModelReply(raw entities.RawModelReply, description string) *entities.AnalysisResult {
	return &entities.AnalysisResult{
		Diagnosis:        stringField(raw["diagnosis"], fallbackDiagnosis),
		SupportingOrgans: sanitizeOrgans(raw["supporting_organs"]),
		OrganDetails:     sanitizeOrganDetails(raw["organ_details"]),
		Explanation:      stringField(raw["explanation"], fallbackExplanation),
		Confidence:       sanitizeConfidence(raw["confidence"]),
		Severity:         sanitizeSeverity(raw["severity"], description),
		Recommendations:  sanitizeRecommendations(raw["recommendations"]),
	}
}

func stringField(value interface{}, fallback string) string {
	if s, ok := value.(string); ok && s != "" {
		return s
	}
	return fallback
}

func sanitizeOrgans(value interface{}) []entities.OrganKey {
	list, ok := value.([]interface{})
	if !ok {
		return []entities.OrganKey{}
	}

	names := make([]string, 0, len(list))
	for _, item := range list {
		if name, ok := item.(string); ok {
			names = append(names, name)
		}
	}
	return entities.NormalizeOrgans(names)
}

func sanitizeOrganDetails(value interface{}) map[entities.OrganKey]string {
	details := make(map[entities.OrganKey]string)

	mapping, ok := value.(map[string]interface{})
	if !ok {
		return details
	}

	for rawOrgan, rawDetail := range mapping {
		detail, ok := rawDetail.(string)
		if !ok || strings.TrimSpace(detail) == "" {
			continue
		}
		key, ok := entities.CanonicalOrgan(rawOrgan)
		if !ok {
			continue
		}

		trimmed := strings.TrimSpace(detail)
		if len(trimmed) > maxOrganDetailLen {
			trimmed = trimmed[:maxOrganDetailLen]
		}

		// Two aliases can collapse onto the same key; the shorter detail wins.
		if existing, dup := details[key]; dup && len(existing) <= len(trimmed) {
			continue
		}
		details[key] = trimmed
	}

	return details
}

func sanitizeConfidence(value interface{}) *int {
	var confidence int
	switch v := value.(type) {
	case float64:
		confidence = int(v)
	case int:
		confidence = v
	case bool:
		if v {
			confidence = 1
		}
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		confidence = parsed
	default:
		return nil
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return &confidence
}

func sanitizeSeverity(value interface{}, description string) entities.Severity {
	if raw, ok := value.(string); ok {
		if severity, valid := entities.ParseSeverity(raw); valid {
			return severity
		}
	}
	return FallbackSeverity(description)
}

func sanitizeRecommendations(value interface{}) []string {
	if value == nil {
		return []string{}
	}

	list, ok := value.([]interface{})
	if !ok {
		// A scalar becomes a single-element list of its string form.
		list = []interface{}{value}
	}

	recommendations := make([]string, 0, len(list))
	for _, item := range list {
		text := strings.TrimSpace(stringify(item))
		if text == "" {
			continue
		}
		recommendations = append(recommendations, text)
		if len(recommendations) == maxRecommendations {
			break
		}
	}
	return recommendations
}

func stringify(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
