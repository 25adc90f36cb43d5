package providers

import (
	"context"

	"github.com/medviz/medical-analyzer/backend/internal/domain/entities"
)

// DiagnosisProvider defines a provider that can analyze a clinical
// description and return the model's raw JSON reply.
type DiagnosisProvider interface {
	AnalyzeDescription(ctx context.Context, description string) (entities.RawModelReply, error)
}
