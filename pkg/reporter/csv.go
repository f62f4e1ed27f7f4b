package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// GenerateCSV creates a CSV report of the recommendations
func GenerateCSV(report *Report, writer io.Writer) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	// Write header
	header := []string{
		"Category",
		"Parameter",
		"Current Value",
		"Suggested Value",
		"Confidence",
		"Restart Required",
		"Evidence",
		"Impact",
		"Risk",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write recommendations
	for _, rec := range report.Analysis.Recommendations {
		row := []string{
			rec.Category,
			rec.Parameter,
			rec.CurrentValue,
			rec.SuggestedValue,
			string(rec.Confidence),
			fmt.Sprintf("%t", rec.RestartRequired),
			strings.Join(rec.Evidence, "; "),
			rec.Impact,
			rec.Risk,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
