package models

// WorkloadMetrics is the canonical summary of a single benchmark run,
// normalized from a pg_workload JSON report. Every numeric field defaults
// to zero when the source report omits it.
type WorkloadMetrics struct {
	Mode              string  `json:"mode"`
	DurationSeconds   float64 `json:"duration_seconds"`
	TotalTransactions int64   `json:"total_transactions"`
	TPS               float64 `json:"tps"`
	AvgLatencyMs      float64 `json:"avg_latency_ms"`
	P50LatencyMs      float64 `json:"p50_latency_ms"`
	P95LatencyMs      float64 `json:"p95_latency_ms"`
	P99LatencyMs      float64 `json:"p99_latency_ms"`
	Errors            int64   `json:"errors"`
}

// Run modes produced by pg_workload.
const (
	ModeBurst      = "burst"
	ModeSimulation = "simulation"
)
