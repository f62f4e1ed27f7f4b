package timeline

import (
	"math"
	"sort"
)

// Stats summarizes the distribution of P99 latency samples in a
// simulation timeline.
type Stats struct {
	Mean      float64 `json:"mean_ms"`
	P50       float64 `json:"p50_ms"`
	P95       float64 `json:"p95_ms"`
	P99       float64 `json:"p99_ms"`
	Max       float64 `json:"max_ms"`
	Variation float64 `json:"variation"`
	Pattern   string  `json:"pattern"`
}

// Summarize computes distribution statistics for the samples. Returns
// false when there are no samples.
func Summarize(samples []float64) (*Stats, bool) {
	if len(samples) == 0 {
		return nil, false
	}

	values := make([]float64, len(samples))
	copy(values, samples)
	sort.Float64s(values)

	stats := &Stats{
		Mean: mean(values),
		P50:  percentile(values, 50),
		P95:  percentile(values, 95),
		P99:  percentile(values, 99),
		Max:  values[len(values)-1],
	}
	stats.Variation = coefficientOfVariation(values, stats.Mean)
	stats.Pattern = classifyPattern(stats.Variation)

	return stats, true
}

// percentile computes the Nth percentile using linear interpolation
func percentile(sortedValues []float64, p float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if len(sortedValues) == 1 {
		return sortedValues[0]
	}

	n := float64(len(sortedValues))
	rank := (p / 100.0) * (n - 1)

	lowerIndex := int(math.Floor(rank))
	upperIndex := int(math.Ceil(rank))
	if lowerIndex == upperIndex {
		return sortedValues[lowerIndex]
	}

	lowerValue := sortedValues[lowerIndex]
	upperValue := sortedValues[upperIndex]
	fraction := rank - float64(lowerIndex)

	return lowerValue + (upperValue-lowerValue)*fraction
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// coefficientOfVariation measures the relative variability
// High CV (>0.5) = spiky latency
// Low CV (<0.2) = steady latency
func coefficientOfVariation(values []float64, mean float64) float64 {
	if len(values) < 2 || mean == 0 {
		return 0
	}

	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	variance := sumSquaredDiff / float64(len(values))
	return math.Sqrt(variance) / mean
}

func classifyPattern(cv float64) string {
	switch {
	case cv < 0.15:
		return "steady"
	case cv < 0.35:
		return "moderate"
	case cv < 0.70:
		return "spiky"
	default:
		return "highly-variable"
	}
}
