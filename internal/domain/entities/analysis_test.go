package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisRequest_Validate(t *testing.T) {
	req := &AnalysisRequest{
		PatientName: "  John Doe ",
		DoctorName:  "Dr. Smith",
		Description: " Persistent cough and fever. ",
	}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "John Doe", req.PatientName)
	assert.Equal(t, "Persistent cough and fever.", req.Description)
}

func TestAnalysisRequest_Validate_MissingFields(t *testing.T) {
	cases := []AnalysisRequest{
		{DoctorName: "Dr. Smith", Description: "cough"},
		{PatientName: "John", Description: "cough"},
		{PatientName: "John", DoctorName: "Dr. Smith"},
		{PatientName: "   ", DoctorName: "Dr. Smith", Description: "cough"},
	}
	for _, c := range cases {
		req := c
		assert.Error(t, req.Validate())
	}
}

func TestParseSeverity(t *testing.T) {
	sev, ok := ParseSeverity("HIGH")
	assert.True(t, ok)
	assert.Equal(t, SeverityHigh, sev)

	sev, ok = ParseSeverity(" medium ")
	assert.True(t, ok)
	assert.Equal(t, SeverityMedium, sev)

	_, ok = ParseSeverity("CRITICAL")
	assert.False(t, ok)

	_, ok = ParseSeverity("")
	assert.False(t, ok)
}
