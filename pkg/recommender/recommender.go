// Package recommender turns normalized workload metrics into PostgreSQL
// tuning recommendations through a fixed, ordered set of independent rules.
package recommender

import (
	"github.com/pgtuner/workload-advisor/pkg/models"
	"github.com/pgtuner/workload-advisor/pkg/timeline"
)

// Rule inspects one normalized run and may emit a single recommendation.
// Rules never observe each other's output and never fail.
type Rule interface {
	Name() string
	Evaluate(m *models.WorkloadMetrics, spike *timeline.Spike) *models.Recommendation
}

// Recommender evaluates its rules in registration order and concatenates
// whatever they emit, preserving that order.
type Recommender struct {
	rules []Rule
}

// New creates a recommender with the default rule set. Adding a tunable
// means registering a new rule; existing rules stay untouched.
func New() *Recommender {
	r := &Recommender{}
	r.Register(highTailLatencyRule{})
	r.Register(elevatedErrorRateRule{})
	r.Register(checkpointSpikeRule{})
	return r
}

// Register appends a rule to the evaluation order.
func (r *Recommender) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Evaluate runs every rule in order. spike is nil when no time-series
// data accompanies the run.
func (r *Recommender) Evaluate(m *models.WorkloadMetrics, spike *timeline.Spike) []models.Recommendation {
	var recs []models.Recommendation
	for _, rule := range r.rules {
		if rec := rule.Evaluate(m, spike); rec != nil {
			recs = append(recs, *rec)
		}
	}
	return recs
}
