// Package timeline analyzes the time-series side of simulation runs:
// point counting of the CSV artifact and latency-spike detection over
// the per-interval samples embedded in the report.
package timeline

import (
	"bufio"
	"fmt"
	"os"
)

// A spike is flagged when the peak P99 exceeds spikeRatio times the mean.
const spikeRatio = 3.0

// Spike describes a latency-spike condition found in interval samples.
type Spike struct {
	MaxP99Ms  float64
	MeanP99Ms float64
}

// CountPoints returns the number of data rows in a timeline CSV artifact.
// The first line is a header and is never counted. A missing file yields
// zero points without error; the timeline is an optional input.
func CountPoints(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to open timeline %s: %w", path, err)
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines++
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("failed to read timeline %s: %w", path, err)
	}

	if lines == 0 {
		return 0, nil
	}
	return lines - 1, nil
}

// P99Samples extracts the p99_latency_ms value from every entry of the
// report's embedded "timeline" list that carries one.
func P99Samples(raw map[string]interface{}) []float64 {
	entries, ok := raw["timeline"].([]interface{})
	if !ok {
		return nil
	}

	var samples []float64
	for _, e := range entries {
		point, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		if v, ok := point["p99_latency_ms"].(float64); ok {
			samples = append(samples, v)
		}
	}
	return samples
}

// DetectSpike reports whether the samples contain a latency spike.
// It is a pure function of the sample list.
func DetectSpike(samples []float64) (Spike, bool) {
	if len(samples) == 0 {
		return Spike{}, false
	}

	max := samples[0]
	sum := 0.0
	for _, s := range samples {
		if s > max {
			max = s
		}
		sum += s
	}
	mean := sum / float64(len(samples))

	if max > mean*spikeRatio {
		return Spike{MaxP99Ms: max, MeanP99Ms: mean}, true
	}
	return Spike{}, false
}
