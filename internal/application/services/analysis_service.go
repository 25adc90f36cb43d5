package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/medviz/medical-analyzer/backend/internal/domain/entities"
	"github.com/medviz/medical-analyzer/backend/internal/domain/providers"
)

// AnalysisService runs a clinical description through the diagnosis provider
// and sanitizes the reply into the public contract.
type AnalysisService struct {
	provider providers.DiagnosisProvider
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(provider providers.DiagnosisProvider) *AnalysisService {
	return &AnalysisService{
		provider: provider,
	}
}

// Analyze performs a single synchronous analysis call. Provider failures pass
// through unchanged as typed errors; the sanitizer itself never fails.
func (s *AnalysisService) Analyze(ctx context.Context, req *entities.AnalysisRequest) (*entities.AnalysisResult, error) {
	log.Info().Str("patient", req.PatientName).Msg("analyzing clinical description")

	raw, err := s.provider.AnalyzeDescription(ctx, req.Description)
	if err != nil {
		return nil, err
	}

	result := SanitizeModelReply(raw, req.Description)

	log.Info().
		Int("organs", len(result.SupportingOrgans)).
		Str("severity", string(result.Severity)).
		Msg("analysis complete")

	return result, nil
}
