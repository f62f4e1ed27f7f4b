package recommender

import (
	"fmt"

	"github.com/pgtuner/workload-advisor/pkg/models"
	"github.com/pgtuner/workload-advisor/pkg/timeline"
)

// Fixed business thresholds; not configurable at call time.
const (
	// P99LatencyThresholdMs is the tail-latency ceiling above which
	// work_mem tuning is suggested.
	P99LatencyThresholdMs = 100.0

	// errorRateThresholdPct is the error-rate ceiling above which
	// connection exhaustion is suspected.
	errorRateThresholdPct = 1.0
)

// Current values assume a stock postgresql.conf baseline; the engine
// never reads the live configuration.

// ErrorRatePct is the percentage of failed transactions for a run.
// The denominator is floored at one transaction.
func ErrorRatePct(m *models.WorkloadMetrics) float64 {
	total := m.TotalTransactions
	if total < 1 {
		total = 1
	}
	return float64(m.Errors) / float64(total) * 100
}

type highTailLatencyRule struct{}

func (highTailLatencyRule) Name() string { return "high_tail_latency" }

func (highTailLatencyRule) Evaluate(m *models.WorkloadMetrics, _ *timeline.Spike) *models.Recommendation {
	if m.P99LatencyMs <= P99LatencyThresholdMs {
		return nil
	}
	return &models.Recommendation{
		Category:        "performance",
		Parameter:       "work_mem",
		CurrentValue:    "4MB",
		SuggestedValue:  "64MB",
		Confidence:      models.ConfidenceMedium,
		RestartRequired: false,
		Evidence:        []string{fmt.Sprintf("P99 latency %.1fms > 100ms threshold", m.P99LatencyMs)},
		Impact:          "May reduce sort/hash spills to disk",
		Risk:            "Increases per-connection memory usage",
	}
}

type elevatedErrorRateRule struct{}

func (elevatedErrorRateRule) Name() string { return "elevated_error_rate" }

func (elevatedErrorRateRule) Evaluate(m *models.WorkloadMetrics, _ *timeline.Spike) *models.Recommendation {
	if m.Errors <= 0 {
		return nil
	}
	rate := ErrorRatePct(m)
	if rate <= errorRateThresholdPct {
		return nil
	}
	return &models.Recommendation{
		Category:        "connections",
		Parameter:       "max_connections",
		CurrentValue:    "100",
		SuggestedValue:  "200",
		Confidence:      models.ConfidenceLow,
		RestartRequired: true,
		Evidence:        []string{fmt.Sprintf("Error rate %.2f%% may indicate connection exhaustion", rate)},
		Impact:          "Allows more concurrent connections",
		Risk:            "Increases memory overhead per connection",
	}
}

type checkpointSpikeRule struct{}

func (checkpointSpikeRule) Name() string { return "checkpoint_spike" }

func (checkpointSpikeRule) Evaluate(_ *models.WorkloadMetrics, spike *timeline.Spike) *models.Recommendation {
	if spike == nil {
		return nil
	}
	return &models.Recommendation{
		Category:        "wal",
		Parameter:       "checkpoint_completion_target",
		CurrentValue:    "0.5",
		SuggestedValue:  "0.9",
		Confidence:      models.ConfidenceMedium,
		RestartRequired: false,
		Evidence: []string{fmt.Sprintf("Latency spikes detected: max %.1fms vs avg %.1fms",
			spike.MaxP99Ms, spike.MeanP99Ms)},
		Impact: "Spreads checkpoint I/O over longer period",
		Risk:   "Slightly longer recovery time after crash",
	}
}
