package report

import (
	"fmt"

	"github.com/pgtuner/workload-advisor/pkg/models"
)

// Normalize converts a raw decoded report into WorkloadMetrics.
//
// Reports come in two shapes: nested, where a top-level "summary" object
// holds the numeric fields, and flat, where the same fields sit at the
// top level. The field source is picked once here so no consumer ever
// branches on the shape. Missing and null fields default to zero; a
// field present with an incompatible type fails with ErrBadShape.
func Normalize(raw map[string]interface{}) (*models.WorkloadMetrics, error) {
	src := raw
	if v, present := raw["summary"]; present && v != nil {
		nested, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: summary is %T, want object", ErrBadShape, v)
		}
		src = nested
	}

	// mode is read from the top level only, never from the summary.
	mode := models.ModeBurst
	if v, present := raw["mode"]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: mode is %T, want string", ErrBadShape, v)
		}
		mode = s
	}

	m := &models.WorkloadMetrics{Mode: mode}

	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"actual_duration_seconds", &m.DurationSeconds},
		{"tps", &m.TPS},
		{"avg_latency_ms", &m.AvgLatencyMs},
		{"p50_latency_ms", &m.P50LatencyMs},
		{"p95_latency_ms", &m.P95LatencyMs},
		{"p99_latency_ms", &m.P99LatencyMs},
	} {
		v, err := floatField(src, f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	for _, f := range []struct {
		key string
		dst *int64
	}{
		{"total_transactions", &m.TotalTransactions},
		{"errors", &m.Errors},
	} {
		v, err := intField(src, f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	return m, nil
}

func floatField(src map[string]interface{}, key string) (float64, error) {
	v, present := src[key]
	if !present || v == nil {
		return 0, nil
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s is %T, want number", ErrBadShape, key, v)
	}
	return f, nil
}

func intField(src map[string]interface{}, key string) (int64, error) {
	f, err := floatField(src, key)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
