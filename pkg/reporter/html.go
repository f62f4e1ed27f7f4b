package reporter

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

const htmlTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Workload Tuning Report - {{.ReportPath}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #333;
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 1100px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #336791 0%, #1a3d5c 100%);
            color: white;
            padding: 40px;
        }
        .header h1 {
            font-size: 2.2em;
            margin-bottom: 10px;
        }
        .header .meta {
            opacity: 0.95;
        }
        .metrics {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 20px;
            padding: 40px;
            background: #f8f9fa;
        }
        .metric-card {
            background: white;
            padding: 20px;
            border-radius: 8px;
            border-left: 4px solid #336791;
        }
        .metric-card .label {
            font-size: 0.85em;
            text-transform: uppercase;
            color: #777;
        }
        .metric-card .value {
            font-size: 1.6em;
            font-weight: 600;
        }
        .section {
            padding: 30px 40px;
        }
        .section h2 {
            margin-bottom: 15px;
            color: #1a3d5c;
        }
        .recommendation {
            border: 1px solid #e1e4e8;
            border-radius: 8px;
            padding: 20px;
            margin-bottom: 15px;
        }
        .recommendation h3 {
            margin-bottom: 8px;
        }
        .badge {
            display: inline-block;
            padding: 2px 10px;
            border-radius: 12px;
            font-size: 0.8em;
            font-weight: 600;
            color: white;
        }
        .badge.high { background: #d73a49; }
        .badge.medium { background: #f66a0a; }
        .badge.low { background: #28a745; }
        .change {
            font-family: 'SFMono-Regular', Consolas, monospace;
            background: #f6f8fa;
            padding: 2px 6px;
            border-radius: 4px;
        }
        .summary {
            background: #f8f9fa;
            padding: 30px 40px;
            border-top: 1px solid #e1e4e8;
        }
        .footer {
            padding: 15px 40px;
            font-size: 0.85em;
            color: #777;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Workload Tuning Report</h1>
            <div class="meta">
                <strong>Report:</strong> {{.ReportPath}}<br>
                <strong>Mode:</strong> {{.Mode}}
                {{if .TimelinePath}}<br><strong>Timeline:</strong> {{.TimelinePath}} ({{.TimelinePoints}} points){{end}}
            </div>
        </div>

        <div class="metrics">
            <div class="metric-card">
                <div class="label">Duration</div>
                <div class="value">{{printf "%.0fs" .Metrics.DurationSeconds}}</div>
            </div>
            <div class="metric-card">
                <div class="label">Transactions</div>
                <div class="value">{{.Metrics.TotalTransactions}}</div>
            </div>
            <div class="metric-card">
                <div class="label">TPS</div>
                <div class="value">{{printf "%.2f" .Metrics.TPS}}</div>
            </div>
            <div class="metric-card">
                <div class="label">P99 Latency</div>
                <div class="value">{{printf "%.1fms" .Metrics.P99LatencyMs}}</div>
            </div>
            <div class="metric-card">
                <div class="label">Errors</div>
                <div class="value">{{.Metrics.Errors}}</div>
            </div>
        </div>

        <div class="section">
            <h2>Recommendations</h2>
            {{if not .Recommendations}}
            <p>No tuning recommendations.</p>
            {{end}}
            {{range .Recommendations}}
            <div class="recommendation">
                <h3>{{.Parameter}} <span class="badge {{confidenceClass .Confidence}}">{{.Confidence}}</span></h3>
                <p><span class="change">{{.CurrentValue}}</span> &rarr; <span class="change">{{.SuggestedValue}}</span>
                   {{if .RestartRequired}}(restart required){{end}}</p>
                <p><strong>Evidence:</strong> {{joinEvidence .Evidence}}</p>
                <p><strong>Impact:</strong> {{.Impact}}</p>
                <p><strong>Risk:</strong> {{.Risk}}</p>
            </div>
            {{end}}
        </div>

        <div class="summary">
            <h2>Summary</h2>
            <p>{{.Summary}}</p>
        </div>

        <div class="footer">
            Generated {{.GeneratedAt}}
        </div>
    </div>
</body>
</html>
`

type htmlReportData struct {
	ReportPath      string
	Mode            string
	TimelinePath    string
	TimelinePoints  int
	Metrics         htmlMetrics
	Recommendations []htmlRecommendation
	Summary         string
	GeneratedAt     string
}

type htmlMetrics struct {
	DurationSeconds   float64
	TotalTransactions int64
	TPS               float64
	P99LatencyMs      float64
	Errors            int64
}

type htmlRecommendation struct {
	Parameter       string
	CurrentValue    string
	SuggestedValue  string
	Confidence      string
	RestartRequired bool
	Evidence        []string
	Impact          string
	Risk            string
}

// GenerateHTML creates a styled HTML report of the analysis
func GenerateHTML(report *Report, writer io.Writer) error {
	funcs := template.FuncMap{
		"confidenceClass": func(c string) string {
			return strings.ToLower(c)
		},
		"joinEvidence": func(evidence []string) string {
			return strings.Join(evidence, "; ")
		},
	}

	tmpl, err := template.New("report").Funcs(funcs).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	a := report.Analysis
	data := htmlReportData{
		ReportPath:     a.ReportPath,
		Mode:           a.Mode,
		TimelinePath:   a.TimelinePath,
		TimelinePoints: a.TimelinePoints,
		Metrics: htmlMetrics{
			DurationSeconds:   a.Metrics.DurationSeconds,
			TotalTransactions: a.Metrics.TotalTransactions,
			TPS:               a.Metrics.TPS,
			P99LatencyMs:      a.Metrics.P99LatencyMs,
			Errors:            a.Metrics.Errors,
		},
		Summary:     a.Summary,
		GeneratedAt: report.GeneratedAt.Format("2006-01-02 15:04:05"),
	}
	for _, rec := range a.Recommendations {
		data.Recommendations = append(data.Recommendations, htmlRecommendation{
			Parameter:       rec.Parameter,
			CurrentValue:    rec.CurrentValue,
			SuggestedValue:  rec.SuggestedValue,
			Confidence:      string(rec.Confidence),
			RestartRequired: rec.RestartRequired,
			Evidence:        rec.Evidence,
			Impact:          rec.Impact,
			Risk:            rec.Risk,
		})
	}

	if err := tmpl.Execute(writer, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}
