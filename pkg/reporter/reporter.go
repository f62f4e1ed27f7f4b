package reporter

import (
	"fmt"
	"os"
	"time"

	"github.com/pgtuner/workload-advisor/pkg/models"
)

// ReportFormat represents the output format
type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatCSV      ReportFormat = "csv"
	FormatHTML     ReportFormat = "html"
)

// Report contains all data for generating a report artifact
type Report struct {
	GeneratedAt time.Time
	Analysis    *models.AnalysisRecord
}

// Reporter generates tuning report artifacts
type Reporter struct {
	format ReportFormat
}

// New creates a new reporter
func New(format ReportFormat) *Reporter {
	return &Reporter{
		format: format,
	}
}

// Generate builds a report from an analysis record
func (r *Reporter) Generate(analysis *models.AnalysisRecord) (*Report, error) {
	if analysis == nil {
		return nil, fmt.Errorf("no analysis to report on")
	}
	return &Report{
		GeneratedAt: time.Now(),
		Analysis:    analysis,
	}, nil
}

// WriteToFile renders the report to a file in the configured format
func (r *Reporter) WriteToFile(report *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	switch r.format {
	case FormatMarkdown:
		return GenerateMarkdown(report, f)
	case FormatCSV:
		return GenerateCSV(report, f)
	case FormatHTML:
		return GenerateHTML(report, f)
	default:
		return fmt.Errorf("unsupported report format: %s", r.format)
	}
}
