package storage

import (
	"context"

	"github.com/pgtuner/workload-advisor/pkg/models"
)

// Store defines the interface for the opt-in analysis history. The
// analysis engine itself never reads from it; storage only records what
// a run produced.
type Store interface {
	SaveAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error)
	ListAnalyses(ctx context.Context, mode string, limit int) ([]*models.AnalysisRecord, error)

	Ping(ctx context.Context) error
	Close() error
}
