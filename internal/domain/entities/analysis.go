package entities

import (
	"strings"

	apperrors "github.com/medviz/medical-analyzer/backend/pkg/errors"
)

// Severity classifies how urgent a clinical picture is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity validates a raw severity value from the model.
func ParseSeverity(raw string) (Severity, bool) {
	switch Severity(strings.ToLower(strings.TrimSpace(raw))) {
	case SeverityLow:
		return SeverityLow, true
	case SeverityMedium:
		return SeverityMedium, true
	case SeverityHigh:
		return SeverityHigh, true
	}
	return "", false
}

// AnalysisRequest is the inbound payload for a single analysis call.
type AnalysisRequest struct {
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Description string `json:"description"`
}

// Validate trims all fields and checks that none of them is empty.
func (r *AnalysisRequest) Validate() error {
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.DoctorName = strings.TrimSpace(r.DoctorName)
	r.Description = strings.TrimSpace(r.Description)

	if r.PatientName == "" || r.DoctorName == "" || r.Description == "" {
		return apperrors.NewValidationError("missing required fields: patient_name, doctor_name, description")
	}
	return nil
}

// RawModelReply is the untyped JSON object returned by the model. It is
// untrusted input and must not leak past the sanitizer.
type RawModelReply map[string]interface{}

// AnalysisResult is the frontend-safe analysis contract.
type AnalysisResult struct {
	Diagnosis        string              `json:"diagnosis"`
	SupportingOrgans []OrganKey          `json:"supporting_organs"`
	OrganDetails     map[OrganKey]string `json:"organ_details"`
	Explanation      string              `json:"explanation"`
	Confidence       *int                `json:"confidence"`
	Severity         Severity            `json:"severity"`
	Recommendations  []string            `json:"recommendations"`
}
