package models

import (
	"time"

	"github.com/pgtuner/workload-advisor/pkg/timeline"
)

// StatusSuccess is the status of every result that is returned at all;
// unrecoverable input errors fail the operation instead of degrading it.
const StatusSuccess = "success"

// BurstAnalysis is the result of analyzing a single-shot benchmark report.
type BurstAnalysis struct {
	Status          string           `json:"status"`
	ReportPath      string           `json:"report_path"`
	Workload        WorkloadMetrics  `json:"workload"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         string           `json:"summary"`
}

// SimulationAnalysis is the result of analyzing a simulation report with
// optional time-series data.
type SimulationAnalysis struct {
	Status          string           `json:"status"`
	ReportPath      string           `json:"report_path"`
	TimelinePath    string           `json:"timeline_path,omitempty"`
	Workload        WorkloadMetrics  `json:"workload"`
	TimelinePoints  int              `json:"timeline_points"`
	TimelineStats   *timeline.Stats  `json:"timeline_stats,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         string           `json:"summary"`
}

// Comparison classifies the relative change between two benchmark runs.
type Comparison struct {
	Status         string   `json:"status"`
	BaselinePath   string   `json:"baseline_path"`
	ComparisonPath string   `json:"comparison_path"`
	TPSChangePct   float64  `json:"tps_change_pct"`
	LatencyChange  float64  `json:"latency_change_pct"`
	Regressions    []string `json:"regressions"`
	Improvements   []string `json:"improvements"`
	Summary        string   `json:"summary"`
}

// AnalysisRecord is a stored analysis run.
type AnalysisRecord struct {
	ID              string
	Mode            string
	ReportPath      string
	TimelinePath    string
	TimelinePoints  int
	Metrics         WorkloadMetrics
	Recommendations []Recommendation
	Summary         string
	CreatedAt       time.Time
}
