package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medviz/medical-analyzer/backend/internal/application/services"
	"github.com/medviz/medical-analyzer/backend/internal/domain/entities"
)

func TestFallbackSeverity(t *testing.T) {
	cases := []struct {
		description string
		want        entities.Severity
	}{
		{"Patient reports SEVERE abdominal pain", entities.SeverityHigh},
		{"sudden difficulty breathing at night", entities.SeverityHigh},
		{"chest pain radiating to the left arm", entities.SeverityHigh},
		{"found unconscious by family", entities.SeverityHigh},
		{"chronic lower back pain", entities.SeverityMedium},
		{"recurring migraines with fever", entities.SeverityMedium},
		{"moderate swelling of the ankle", entities.SeverityMedium},
		{"occasional mild headache", entities.SeverityLow},
		{"", entities.SeverityLow},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, services.FallbackSeverity(tc.description), "description: %q", tc.description)
	}
}

func TestFallbackSeverity_HighWinsOverMedium(t *testing.T) {
	// Both lists match; the high list is checked first.
	got := services.FallbackSeverity("chronic condition with acute flare-up")
	assert.Equal(t, entities.SeverityHigh, got)
}
