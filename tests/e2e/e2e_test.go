//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/pgtuner/workload-advisor/pkg/analyzer"
	"github.com/pgtuner/workload-advisor/pkg/converter"
	"github.com/pgtuner/workload-advisor/pkg/storage"
)

func getStore(t *testing.T) storage.Store {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping e2e tests")
	}

	store, err := storage.NewPostgresStore(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestRealDatabaseConnection(t *testing.T) {
	store := getStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	t.Log("✓ Connected to database")
}

func TestSaveAndLoadAnalysis(t *testing.T) {
	store := getStore(t)
	ctx := context.Background()

	path := t.TempDir() + "/report.json"
	content := `{"summary": {"tps": 166.67, "p99_latency_ms": 150.0, "total_transactions": 10000}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write report: %v", err)
	}

	result, err := analyzer.New().AnalyzeBurst(path)
	if err != nil {
		t.Fatalf("Analysis failed: %v", err)
	}

	rec := converter.BurstToRecord(result)
	if err := store.SaveAnalysis(ctx, rec); err != nil {
		t.Fatalf("Failed to save analysis: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Expected an assigned ID after save")
	}

	loaded, err := store.GetAnalysis(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Failed to load analysis: %v", err)
	}

	if loaded.ReportPath != path {
		t.Errorf("Expected report path %q, got %q", path, loaded.ReportPath)
	}
	if loaded.Metrics.P99LatencyMs != 150.0 {
		t.Errorf("Expected P99 150.0, got %.1f", loaded.Metrics.P99LatencyMs)
	}
	if len(loaded.Recommendations) != len(rec.Recommendations) {
		t.Errorf("Expected %d recommendations, got %d",
			len(rec.Recommendations), len(loaded.Recommendations))
	}

	t.Logf("✓ Round-tripped analysis %s", rec.ID)
}

func TestListAnalysesByMode(t *testing.T) {
	store := getStore(t)
	ctx := context.Background()

	analyses, err := store.ListAnalyses(ctx, "burst", 5)
	if err != nil {
		t.Fatalf("Failed to list analyses: %v", err)
	}

	for _, a := range analyses {
		if a.Mode != "burst" {
			t.Errorf("Mode filter leaked a %q analysis", a.Mode)
		}
	}
}
