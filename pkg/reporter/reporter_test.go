package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pgtuner/workload-advisor/pkg/models"
)

func sampleRecord() *models.AnalysisRecord {
	return &models.AnalysisRecord{
		Mode:       models.ModeBurst,
		ReportPath: "/tmp/report.json",
		Metrics: models.WorkloadMetrics{
			Mode:              models.ModeBurst,
			DurationSeconds:   60,
			TotalTransactions: 10000,
			TPS:               166.67,
			AvgLatencyMs:      5.0,
			P99LatencyMs:      150.0,
		},
		Recommendations: []models.Recommendation{
			{
				Category:       "performance",
				Parameter:      "work_mem",
				CurrentValue:   "4MB",
				SuggestedValue: "64MB",
				Confidence:     models.ConfidenceMedium,
				Evidence:       []string{"P99 latency 150.0ms > 100ms threshold"},
				Impact:         "May reduce sort/hash spills to disk",
				Risk:           "Increases per-connection memory usage",
			},
		},
		Summary: "High P99 latency (150.0ms); Throughput: 167 TPS",
	}
}

func TestGenerate(t *testing.T) {
	report, err := New(FormatMarkdown).Generate(sampleRecord())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("Expected a generation timestamp")
	}

	if _, err := New(FormatMarkdown).Generate(nil); err == nil {
		t.Error("Expected error for nil analysis")
	}
}

func TestGenerateMarkdown(t *testing.T) {
	report, _ := New(FormatMarkdown).Generate(sampleRecord())

	var buf bytes.Buffer
	if err := GenerateMarkdown(report, &buf); err != nil {
		t.Fatalf("GenerateMarkdown failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Workload Tuning Report",
		"### work_mem (performance)",
		"`4MB` -> `64MB`",
		"| TPS | 166.67 |",
		"High P99 latency (150.0ms)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown report missing %q", want)
		}
	}
}

func TestGenerateHTML(t *testing.T) {
	report, _ := New(FormatHTML).Generate(sampleRecord())

	var buf bytes.Buffer
	if err := GenerateHTML(report, &buf); err != nil {
		t.Fatalf("GenerateHTML failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<title>Workload Tuning Report - /tmp/report.json</title>",
		"work_mem",
		`class="badge medium"`,
		"P99 latency 150.0ms &gt; 100ms threshold",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML report missing %q", want)
		}
	}
}

func TestGenerateCSV(t *testing.T) {
	report, _ := New(FormatCSV).Generate(sampleRecord())

	var buf bytes.Buffer
	if err := GenerateCSV(report, &buf); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header plus one row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "work_mem") {
		t.Errorf("CSV row missing parameter, got %q", lines[1])
	}
}
