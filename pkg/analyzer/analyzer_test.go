package analyzer

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pgtuner/workload-advisor/pkg/report"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

const cleanBurstReport = `{
	"mode": "burst",
	"summary": {
		"actual_duration_seconds": 60,
		"total_transactions": 10000,
		"tps": 166.67,
		"avg_latency_ms": 5.0,
		"p50_latency_ms": 4.0,
		"p95_latency_ms": 9.0,
		"p99_latency_ms": 12.0,
		"errors": 0
	}
}`

func TestAnalyzeBurstCleanRun(t *testing.T) {
	path := writeFixture(t, "report.json", cleanBurstReport)

	result, err := New().AnalyzeBurst(path)
	if err != nil {
		t.Fatalf("AnalyzeBurst failed: %v", err)
	}

	if result.Status != "success" {
		t.Errorf("Expected success status, got %q", result.Status)
	}
	if result.ReportPath != path {
		t.Errorf("Expected report path %s, got %s", path, result.ReportPath)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("Expected zero recommendations, got %d", len(result.Recommendations))
	}
	if !strings.Contains(result.Summary, "Throughput: 167 TPS") {
		t.Errorf("Summary must cite throughput, got %q", result.Summary)
	}
	if result.Workload.TPS != 166.67 {
		t.Errorf("Expected TPS 166.67, got %.2f", result.Workload.TPS)
	}
}

func TestAnalyzeBurstHighTailLatency(t *testing.T) {
	path := writeFixture(t, "report.json", `{
		"summary": {
			"actual_duration_seconds": 60,
			"total_transactions": 10000,
			"tps": 166.67,
			"avg_latency_ms": 5.0,
			"p99_latency_ms": 150.0,
			"errors": 0
		}
	}`)

	result, err := New().AnalyzeBurst(path)
	if err != nil {
		t.Fatalf("AnalyzeBurst failed: %v", err)
	}

	if len(result.Recommendations) != 1 {
		t.Fatalf("Expected exactly one recommendation, got %d", len(result.Recommendations))
	}
	if result.Recommendations[0].Parameter != "work_mem" {
		t.Errorf("Expected work_mem, got %s", result.Recommendations[0].Parameter)
	}
	if !strings.Contains(result.Summary, "High P99 latency (150.0ms)") {
		t.Errorf("Summary must cite the high P99, got %q", result.Summary)
	}
}

func TestAnalyzeBurstErrorRateInSummary(t *testing.T) {
	// 0.5% error rate: below the rule threshold but still summarized.
	path := writeFixture(t, "report.json", `{
		"summary": {"total_transactions": 10000, "tps": 100, "errors": 50}
	}`)

	result, err := New().AnalyzeBurst(path)
	if err != nil {
		t.Fatalf("AnalyzeBurst failed: %v", err)
	}

	if len(result.Recommendations) != 0 {
		t.Errorf("Expected no recommendations at 0.5%% error rate, got %d", len(result.Recommendations))
	}
	if !strings.Contains(result.Summary, "Error rate: 0.50%") {
		t.Errorf("Summary must cite the error rate, got %q", result.Summary)
	}
}

func TestAnalyzeBurstEmptyReport(t *testing.T) {
	path := writeFixture(t, "report.json", `{}`)

	result, err := New().AnalyzeBurst(path)
	if err != nil {
		t.Fatalf("AnalyzeBurst failed: %v", err)
	}

	if result.Summary != "Analysis complete" {
		t.Errorf("Expected fallback summary, got %q", result.Summary)
	}
	if result.Workload.Mode != "burst" {
		t.Errorf("Expected default mode burst, got %q", result.Workload.Mode)
	}
}

func TestAnalyzeBurstMissingReport(t *testing.T) {
	result, err := New().AnalyzeBurst(filepath.Join(t.TempDir(), "missing.json"))

	if err == nil {
		t.Fatal("Expected failure for missing report, got a result")
	}
	if !errors.Is(err, report.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if result != nil {
		t.Error("A failed call must not return a partial result")
	}
}

func TestAnalyzeBurstInvalidJSON(t *testing.T) {
	path := writeFixture(t, "report.json", "not json at all")

	_, err := New().AnalyzeBurst(path)
	if !errors.Is(err, report.ErrParse) {
		t.Errorf("Expected ErrParse, got %v", err)
	}
}

func TestAnalyzeSimulationWithSpike(t *testing.T) {
	path := writeFixture(t, "report.json", `{
		"mode": "simulation",
		"summary": {"actual_duration_seconds": 3600, "tps": 120.4},
		"timeline": [
			{"p99_latency_ms": 50},
			{"p99_latency_ms": 52},
			{"p99_latency_ms": 48},
			{"p99_latency_ms": 500}
		]
	}`)

	result, err := New().AnalyzeSimulation(path, "")
	if err != nil {
		t.Fatalf("AnalyzeSimulation failed: %v", err)
	}

	if len(result.Recommendations) != 1 {
		t.Fatalf("Expected the spike rule to fire exactly once, got %d recommendations",
			len(result.Recommendations))
	}
	if result.Recommendations[0].Parameter != "checkpoint_completion_target" {
		t.Errorf("Expected checkpoint_completion_target, got %s", result.Recommendations[0].Parameter)
	}
	if result.TimelinePoints != 0 {
		t.Errorf("Expected 0 timeline points without an artifact, got %d", result.TimelinePoints)
	}
	if !strings.Contains(result.Summary, "Simulated duration: 3600s") {
		t.Errorf("Summary must cite the simulated duration, got %q", result.Summary)
	}
	if strings.Contains(result.Summary, "Timeline points") {
		t.Errorf("Summary must omit timeline points when there are none, got %q", result.Summary)
	}
	if !strings.Contains(result.Summary, "Avg TPS: 120") {
		t.Errorf("Summary must cite avg TPS, got %q", result.Summary)
	}
	if result.TimelineStats == nil {
		t.Fatal("Expected timeline stats when samples are present")
	}
	if result.TimelineStats.Max != 500 {
		t.Errorf("Expected max sample 500, got %.1f", result.TimelineStats.Max)
	}
}

func TestAnalyzeSimulationSteadyTimeline(t *testing.T) {
	path := writeFixture(t, "report.json", `{
		"mode": "simulation",
		"summary": {"actual_duration_seconds": 600, "tps": 100},
		"timeline": [
			{"p99_latency_ms": 50},
			{"p99_latency_ms": 52},
			{"p99_latency_ms": 48}
		]
	}`)

	result, err := New().AnalyzeSimulation(path, "")
	if err != nil {
		t.Fatalf("AnalyzeSimulation failed: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("Steady timeline must not produce recommendations, got %d", len(result.Recommendations))
	}
}

func TestAnalyzeSimulationTimelineArtifact(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.json")
	timelinePath := filepath.Join(dir, "timeline.csv")

	reportJSON := `{"mode": "simulation", "summary": {"actual_duration_seconds": 600, "tps": 100}}`
	if err := os.WriteFile(reportPath, []byte(reportJSON), 0o644); err != nil {
		t.Fatalf("Failed to write report: %v", err)
	}
	csv := "timestamp,actual_qps,p99_latency_us\n1,100,5000\n2,101,5100\n3,99,5050\n4,100,4900\n"
	if err := os.WriteFile(timelinePath, []byte(csv), 0o644); err != nil {
		t.Fatalf("Failed to write timeline: %v", err)
	}

	result, err := New().AnalyzeSimulation(reportPath, timelinePath)
	if err != nil {
		t.Fatalf("AnalyzeSimulation failed: %v", err)
	}

	if result.TimelinePoints != 4 {
		t.Errorf("Expected 4 timeline points, got %d", result.TimelinePoints)
	}
	if result.TimelinePath != timelinePath {
		t.Errorf("Expected timeline path in result, got %q", result.TimelinePath)
	}
	if !strings.Contains(result.Summary, "Timeline points: 4") {
		t.Errorf("Summary must cite timeline points, got %q", result.Summary)
	}
}

func TestAnalyzeSimulationMissingTimelineTolerated(t *testing.T) {
	path := writeFixture(t, "report.json", `{"summary": {"actual_duration_seconds": 60, "tps": 10}}`)

	result, err := New().AnalyzeSimulation(path, filepath.Join(t.TempDir(), "missing.csv"))
	if err != nil {
		t.Fatalf("Missing timeline must be tolerated, got %v", err)
	}
	if result.TimelinePoints != 0 {
		t.Errorf("Expected 0 points for missing timeline, got %d", result.TimelinePoints)
	}
}

func TestAnalyzeConcurrentInvocations(t *testing.T) {
	path := writeFixture(t, "report.json", cleanBurstReport)
	a := New()

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := a.AnalyzeBurst(path)
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Errorf("Concurrent analysis failed: %v", err)
		}
	}
}

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
