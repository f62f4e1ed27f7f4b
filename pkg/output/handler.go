package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pgtuner/workload-advisor/pkg/models"
)

// Handler defines the interface for output formatting
type Handler interface {
	Burst(result *models.BurstAnalysis) error
	Simulation(result *models.SimulationAnalysis) error
	Comparison(result *models.Comparison) error
	Format() string
}

// NewHandler returns a handler for the requested format (text or json).
func NewHandler(format string, w io.Writer) Handler {
	if format == "json" {
		return &jsonHandler{w: w}
	}
	return &textHandler{w: w}
}

type jsonHandler struct {
	w io.Writer
}

func (h *jsonHandler) Format() string { return "json" }

func (h *jsonHandler) Burst(result *models.BurstAnalysis) error      { return h.encode(result) }
func (h *jsonHandler) Simulation(result *models.SimulationAnalysis) error { return h.encode(result) }
func (h *jsonHandler) Comparison(result *models.Comparison) error    { return h.encode(result) }

func (h *jsonHandler) encode(v interface{}) error {
	enc := json.NewEncoder(h.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type textHandler struct {
	w io.Writer
}

func (h *textHandler) Format() string { return "text" }

func (h *textHandler) Burst(result *models.BurstAnalysis) error {
	fmt.Fprintf(h.w, "Report: %s\n", result.ReportPath)
	h.metrics(&result.Workload)
	h.recommendations(result.Recommendations)
	fmt.Fprintf(h.w, "\nSummary: %s\n", result.Summary)
	return nil
}

func (h *textHandler) Simulation(result *models.SimulationAnalysis) error {
	fmt.Fprintf(h.w, "Report: %s\n", result.ReportPath)
	if result.TimelinePath != "" {
		fmt.Fprintf(h.w, "Timeline: %s (%d points)\n", result.TimelinePath, result.TimelinePoints)
	}
	if result.TimelineStats != nil {
		s := result.TimelineStats
		fmt.Fprintf(h.w, "Latency pattern: %s (p50 %.1fms / p95 %.1fms / max %.1fms)\n",
			s.Pattern, s.P50, s.P95, s.Max)
	}
	h.metrics(&result.Workload)
	h.recommendations(result.Recommendations)
	fmt.Fprintf(h.w, "\nSummary: %s\n", result.Summary)
	return nil
}

func (h *textHandler) Comparison(result *models.Comparison) error {
	fmt.Fprintf(h.w, "Baseline:   %s\n", result.BaselinePath)
	fmt.Fprintf(h.w, "Comparison: %s\n\n", result.ComparisonPath)
	fmt.Fprintf(h.w, "TPS change:     %+.1f%%\n", result.TPSChangePct)
	fmt.Fprintf(h.w, "Latency change: %+.1f%%\n", result.LatencyChange)

	if len(result.Regressions) > 0 {
		fmt.Fprintln(h.w, "\nRegressions:")
		for _, r := range result.Regressions {
			fmt.Fprintf(h.w, "  - %s\n", r)
		}
	}
	if len(result.Improvements) > 0 {
		fmt.Fprintln(h.w, "\nImprovements:")
		for _, imp := range result.Improvements {
			fmt.Fprintf(h.w, "  - %s\n", imp)
		}
	}

	fmt.Fprintf(h.w, "\nSummary: %s\n", result.Summary)
	return nil
}

func (h *textHandler) metrics(m *models.WorkloadMetrics) {
	fmt.Fprintf(h.w, "Mode: %s\n\n", m.Mode)
	fmt.Fprintf(h.w, "  Duration:     %.0fs\n", m.DurationSeconds)
	fmt.Fprintf(h.w, "  Transactions: %d\n", m.TotalTransactions)
	fmt.Fprintf(h.w, "  TPS:          %.2f\n", m.TPS)
	fmt.Fprintf(h.w, "  Latency:      avg %.1fms / p50 %.1fms / p95 %.1fms / p99 %.1fms\n",
		m.AvgLatencyMs, m.P50LatencyMs, m.P95LatencyMs, m.P99LatencyMs)
	fmt.Fprintf(h.w, "  Errors:       %d\n", m.Errors)
}

func (h *textHandler) recommendations(recs []models.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(h.w, "\nNo tuning recommendations")
		return
	}

	fmt.Fprintf(h.w, "\nRecommendations (%d):\n", len(recs))
	for i, rec := range recs {
		restart := ""
		if rec.RestartRequired {
			restart = " (restart required)"
		}
		fmt.Fprintf(h.w, "%d. [%s] %s: %s -> %s%s\n",
			i+1, rec.Category, rec.Parameter, rec.CurrentValue, rec.SuggestedValue, restart)
		fmt.Fprintf(h.w, "   Confidence: %s\n", rec.Confidence)
		for _, e := range rec.Evidence {
			fmt.Fprintf(h.w, "   Evidence: %s\n", e)
		}
		fmt.Fprintf(h.w, "   Impact: %s\n", rec.Impact)
		fmt.Fprintf(h.w, "   Risk: %s\n", rec.Risk)
	}
}
