package reporter

import (
	"fmt"
	"io"
)

// GenerateMarkdown creates a Markdown report of the analysis
func GenerateMarkdown(report *Report, writer io.Writer) error {
	a := report.Analysis

	fmt.Fprintf(writer, "# Workload Tuning Report\n\n")
	fmt.Fprintf(writer, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "- Report: `%s`\n", a.ReportPath)
	if a.TimelinePath != "" {
		fmt.Fprintf(writer, "- Timeline: `%s` (%d points)\n", a.TimelinePath, a.TimelinePoints)
	}
	fmt.Fprintf(writer, "- Mode: %s\n\n", a.Mode)

	fmt.Fprintf(writer, "## Metrics\n\n")
	fmt.Fprintf(writer, "| Metric | Value |\n")
	fmt.Fprintf(writer, "|--------|-------|\n")
	fmt.Fprintf(writer, "| Duration | %.0fs |\n", a.Metrics.DurationSeconds)
	fmt.Fprintf(writer, "| Transactions | %d |\n", a.Metrics.TotalTransactions)
	fmt.Fprintf(writer, "| TPS | %.2f |\n", a.Metrics.TPS)
	fmt.Fprintf(writer, "| Avg latency | %.1fms |\n", a.Metrics.AvgLatencyMs)
	fmt.Fprintf(writer, "| P50 latency | %.1fms |\n", a.Metrics.P50LatencyMs)
	fmt.Fprintf(writer, "| P95 latency | %.1fms |\n", a.Metrics.P95LatencyMs)
	fmt.Fprintf(writer, "| P99 latency | %.1fms |\n", a.Metrics.P99LatencyMs)
	fmt.Fprintf(writer, "| Errors | %d |\n\n", a.Metrics.Errors)

	fmt.Fprintf(writer, "## Recommendations\n\n")
	if len(a.Recommendations) == 0 {
		fmt.Fprintf(writer, "No tuning recommendations.\n\n")
	}
	for _, rec := range a.Recommendations {
		restart := "no"
		if rec.RestartRequired {
			restart = "yes"
		}
		fmt.Fprintf(writer, "### %s (%s)\n\n", rec.Parameter, rec.Category)
		fmt.Fprintf(writer, "- Change: `%s` -> `%s`\n", rec.CurrentValue, rec.SuggestedValue)
		fmt.Fprintf(writer, "- Confidence: %s\n", rec.Confidence)
		fmt.Fprintf(writer, "- Restart required: %s\n", restart)
		for _, e := range rec.Evidence {
			fmt.Fprintf(writer, "- Evidence: %s\n", e)
		}
		fmt.Fprintf(writer, "- Impact: %s\n", rec.Impact)
		fmt.Fprintf(writer, "- Risk: %s\n\n", rec.Risk)
	}

	fmt.Fprintf(writer, "## Summary\n\n%s\n", a.Summary)
	return nil
}
