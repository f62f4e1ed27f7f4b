package models

// Confidence is a coarse qualitative label attached to a recommendation.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Recommendation is a single tuning suggestion for a PostgreSQL parameter.
// It is a value object: rules construct it fresh and never mutate it afterward.
type Recommendation struct {
	// Category of the tunable: memory, io, wal, connections, performance.
	Category  string `json:"category"`
	Parameter string `json:"parameter"`

	// Current state (assumed baseline) and suggested change
	CurrentValue   string `json:"current_value"`
	SuggestedValue string `json:"suggested_value"`

	// Analysis
	Confidence      Confidence `json:"confidence"`
	RestartRequired bool       `json:"restart_required"`
	Evidence        []string   `json:"evidence"`
	Impact          string     `json:"impact"`
	Risk            string     `json:"risk"`
}
