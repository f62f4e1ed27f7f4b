package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/pgtuner/workload-advisor/pkg/models"
	"github.com/pgtuner/workload-advisor/pkg/report"
)

// Classification thresholds for run comparison.
const (
	tpsChangeThresholdPct     = 5.0
	latencyChangeThresholdPct = 10.0

	// Error counts below this floor are noise and never classified.
	errorCountFloor   = 10
	errorGrowthFactor = 1.5
	errorShrinkFactor = 0.5
)

// Compare computes relative deltas between a baseline run and a
// comparison run and classifies them into regressions and improvements.
// Both report files must exist and parse.
func (a *Analyzer) Compare(baselinePath, comparisonPath string) (*models.Comparison, error) {
	baseline, err := report.LoadMetrics(baselinePath)
	if err != nil {
		return nil, err
	}
	candidate, err := report.LoadMetrics(comparisonPath)
	if err != nil {
		return nil, err
	}

	tpsChange := 0.0
	if baseline.TPS > 0 {
		tpsChange = (candidate.TPS - baseline.TPS) / baseline.TPS * 100
	}

	latencyChange := 0.0
	if baseline.AvgLatencyMs > 0 {
		latencyChange = (candidate.AvgLatencyMs - baseline.AvgLatencyMs) / baseline.AvgLatencyMs * 100
	}

	var regressions, improvements []string

	if tpsChange < -tpsChangeThresholdPct {
		regressions = append(regressions, fmt.Sprintf("TPS decreased by %.1f%%", math.Abs(tpsChange)))
	} else if tpsChange > tpsChangeThresholdPct {
		improvements = append(improvements, fmt.Sprintf("TPS increased by %.1f%%", tpsChange))
	}

	if latencyChange > latencyChangeThresholdPct {
		regressions = append(regressions, fmt.Sprintf("Latency increased by %.1f%%", latencyChange))
	} else if latencyChange < -latencyChangeThresholdPct {
		improvements = append(improvements, fmt.Sprintf("Latency decreased by %.1f%%", math.Abs(latencyChange)))
	}

	if float64(candidate.Errors) > float64(baseline.Errors)*errorGrowthFactor && candidate.Errors > errorCountFloor {
		regressions = append(regressions,
			fmt.Sprintf("Errors increased from %d to %d", baseline.Errors, candidate.Errors))
	} else if float64(candidate.Errors) < float64(baseline.Errors)*errorShrinkFactor && baseline.Errors > errorCountFloor {
		improvements = append(improvements,
			fmt.Sprintf("Errors decreased from %d to %d", baseline.Errors, candidate.Errors))
	}

	var summary string
	switch {
	case len(regressions) > 0 && len(improvements) == 0:
		summary = "Performance regression detected: " + strings.Join(regressions, "; ")
	case len(improvements) > 0 && len(regressions) == 0:
		summary = "Performance improved: " + strings.Join(improvements, "; ")
	case len(regressions) > 0 && len(improvements) > 0:
		summary = "Mixed results with both improvements and regressions"
	default:
		summary = "No significant performance changes detected"
	}

	return &models.Comparison{
		Status:         models.StatusSuccess,
		BaselinePath:   baselinePath,
		ComparisonPath: comparisonPath,
		TPSChangePct:   tpsChange,
		LatencyChange:  latencyChange,
		Regressions:    regressions,
		Improvements:   improvements,
		Summary:        summary,
	}, nil
}
