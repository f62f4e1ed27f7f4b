// Package analyzer composes the report loader, normalizer, timeline
// analysis and rule engine into the three operations exposed to callers:
// burst analysis, simulation analysis and run comparison.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/pgtuner/workload-advisor/pkg/models"
	"github.com/pgtuner/workload-advisor/pkg/recommender"
	"github.com/pgtuner/workload-advisor/pkg/report"
	"github.com/pgtuner/workload-advisor/pkg/timeline"
)

// Analyzer holds the rule engine. It keeps no state across calls, so
// concurrent invocations are safe.
type Analyzer struct {
	recommender *recommender.Recommender
}

// New creates an analyzer with the default rule set.
func New() *Analyzer {
	return &Analyzer{recommender: recommender.New()}
}

// AnalyzeBurst analyzes a single-shot benchmark report and suggests
// tuning changes.
func (a *Analyzer) AnalyzeBurst(reportPath string) (*models.BurstAnalysis, error) {
	raw, err := report.Load(reportPath)
	if err != nil {
		return nil, err
	}
	metrics, err := report.Normalize(raw)
	if err != nil {
		return nil, err
	}

	recs := a.recommender.Evaluate(metrics, nil)

	var points []string
	if metrics.P99LatencyMs > recommender.P99LatencyThresholdMs {
		points = append(points, fmt.Sprintf("High P99 latency (%.1fms)", metrics.P99LatencyMs))
	}
	if metrics.Errors > 0 {
		points = append(points, fmt.Sprintf("Error rate: %.2f%%", recommender.ErrorRatePct(metrics)))
	}
	if metrics.TPS > 0 {
		points = append(points, fmt.Sprintf("Throughput: %.0f TPS", metrics.TPS))
	}

	summary := "Analysis complete"
	if len(points) > 0 {
		summary = strings.Join(points, "; ")
	}

	return &models.BurstAnalysis{
		Status:          models.StatusSuccess,
		ReportPath:      reportPath,
		Workload:        *metrics,
		Recommendations: recs,
		Summary:         summary,
	}, nil
}

// AnalyzeSimulation analyzes a simulation report, optionally counting
// the rows of its CSV timeline artifact. A missing timeline file is
// tolerated; a missing report is not.
func (a *Analyzer) AnalyzeSimulation(reportPath, timelinePath string) (*models.SimulationAnalysis, error) {
	raw, err := report.Load(reportPath)
	if err != nil {
		return nil, err
	}
	metrics, err := report.Normalize(raw)
	if err != nil {
		return nil, err
	}

	timelinePoints := 0
	if timelinePath != "" {
		timelinePoints, err = timeline.CountPoints(timelinePath)
		if err != nil {
			return nil, err
		}
	}

	samples := timeline.P99Samples(raw)

	var spike *timeline.Spike
	if s, ok := timeline.DetectSpike(samples); ok {
		spike = &s
	}
	stats, _ := timeline.Summarize(samples)

	recs := a.recommender.Evaluate(metrics, spike)

	points := []string{fmt.Sprintf("Simulated duration: %.0fs", metrics.DurationSeconds)}
	if timelinePoints > 0 {
		points = append(points, fmt.Sprintf("Timeline points: %d", timelinePoints))
	}
	points = append(points, fmt.Sprintf("Avg TPS: %.0f", metrics.TPS))

	return &models.SimulationAnalysis{
		Status:          models.StatusSuccess,
		ReportPath:      reportPath,
		TimelinePath:    timelinePath,
		Workload:        *metrics,
		TimelinePoints:  timelinePoints,
		TimelineStats:   stats,
		Recommendations: recs,
		Summary:         strings.Join(points, "; "),
	}, nil
}
