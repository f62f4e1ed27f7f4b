package converter

import (
	"github.com/pgtuner/workload-advisor/pkg/models"
)

// BurstToRecord converts a burst analysis result into a storable record.
func BurstToRecord(result *models.BurstAnalysis) *models.AnalysisRecord {
	return &models.AnalysisRecord{
		Mode:            models.ModeBurst,
		ReportPath:      result.ReportPath,
		Metrics:         result.Workload,
		Recommendations: result.Recommendations,
		Summary:         result.Summary,
	}
}

// SimulationToRecord converts a simulation analysis result into a
// storable record.
func SimulationToRecord(result *models.SimulationAnalysis) *models.AnalysisRecord {
	return &models.AnalysisRecord{
		Mode:            models.ModeSimulation,
		ReportPath:      result.ReportPath,
		TimelinePath:    result.TimelinePath,
		TimelinePoints:  result.TimelinePoints,
		Metrics:         result.Workload,
		Recommendations: result.Recommendations,
		Summary:         result.Summary,
	}
}
