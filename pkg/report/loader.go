// Package report loads pg_workload run-report artifacts and normalizes
// them into canonical workload metrics.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pgtuner/workload-advisor/pkg/models"
)

// Failure kinds surfaced to callers. Test with errors.Is.
var (
	// ErrNotFound means the report file does not exist.
	ErrNotFound = errors.New("report not found")
	// ErrParse means the report file is not valid JSON.
	ErrParse = errors.New("invalid report JSON")
	// ErrBadShape means a field is present with a type that cannot be
	// defaulted away.
	ErrBadShape = errors.New("incompatible report field")
)

// Load reads a run-report artifact and decodes it into a raw mapping.
// No schema validation happens here; unknown and missing keys are
// resolved during normalization.
func Load(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return raw, nil
}

// LoadMetrics loads a report file and normalizes it in one step.
func LoadMetrics(path string) (*models.WorkloadMetrics, error) {
	raw, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Normalize(raw)
}
