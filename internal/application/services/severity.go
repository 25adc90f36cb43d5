package services

import (
	"strings"

	"github.com/medviz/medical-analyzer/backend/internal/domain/entities"
)

// Keyword lists checked in priority order when the model omits or garbles the
// severity field. Matching is case-insensitive substring search.
var highSeverityKeywords = []string{
	"severe", "acute", "emergency", "critical", "intense pain",
	"difficulty breathing", "chest pain", "unconscious",
}

var mediumSeverityKeywords = []string{
	"moderate", "persistent", "recurring", "chronic", "fever",
}

// FallbackSeverity classifies a clinical description when the model did not
// provide a usable severity value.
func FallbackSeverity(description string) entities.Severity {
	lower := strings.ToLower(description)

	for _, keyword := range highSeverityKeywords {
		if strings.Contains(lower, keyword) {
			return entities.SeverityHigh
		}
	}
	for _, keyword := range mediumSeverityKeywords {
		if strings.Contains(lower, keyword) {
			return entities.SeverityMedium
		}
	}
	return entities.SeverityLow
}
