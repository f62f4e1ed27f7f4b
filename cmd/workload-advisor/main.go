package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pgtuner/workload-advisor/pkg/analyzer"
	"github.com/pgtuner/workload-advisor/pkg/config"
	"github.com/pgtuner/workload-advisor/pkg/converter"
	"github.com/pgtuner/workload-advisor/pkg/mcp"
	"github.com/pgtuner/workload-advisor/pkg/models"
	"github.com/pgtuner/workload-advisor/pkg/output"
	"github.com/pgtuner/workload-advisor/pkg/reporter"
	"github.com/pgtuner/workload-advisor/pkg/storage"
)

const version = "0.2.0"

var (
	// Analysis flags
	outputFormat string
	saveResults  bool
	dryRun       bool
	verbose      bool
	timelinePath string
	reportFormat string
	reportOutput string

	// History flags
	historyLimit int
	historyMode  string

	// Global config
	cfg   *config.Config
	store storage.Store
)

func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func main() {
	// Initialize config
	cfg = config.NewConfig()

	var rootCmd = &cobra.Command{
		Use:     "workload-advisor",
		Short:   "PostgreSQL workload report analysis and tuning advisor",
		Long:    `Analyze pg_workload benchmark reports, suggest configuration tuning changes and compare runs for regressions.`,
		Version: version,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze <report.json>",
		Short: "Analyze a burst benchmark report",
		Args:  cobra.ExactArgs(1),
		Run:   runAnalyze,
	}
	addAnalysisFlags(analyzeCmd)

	analyzeSimCmd := &cobra.Command{
		Use:   "analyze-sim <report.json>",
		Short: "Analyze a simulation report with time-series data",
		Args:  cobra.ExactArgs(1),
		Run:   runAnalyzeSim,
	}
	addAnalysisFlags(analyzeSimCmd)
	analyzeSimCmd.Flags().StringVar(&timelinePath, "timeline", "", "Path to the CSV timeline artifact")

	compareCmd := &cobra.Command{
		Use:   "compare <baseline.json> <comparison.json>",
		Short: "Compare two benchmark reports",
		Args:  cobra.ExactArgs(2),
		Run:   runCompare,
	}
	compareCmd.Flags().StringVarP(&outputFormat, "output", "o", cfg.OutputFormat, "Output format: text, json")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis tools over MCP (stdio)",
		Run:   runServe,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "View past analyses saved to the database",
		Args:  cobra.NoArgs,
		Run:   runHistory,
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of analyses to show")
	historyCmd.Flags().StringVar(&historyMode, "mode", "", "Filter by run mode: burst, simulation")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(analyzeSimCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "output", "o", cfg.OutputFormat, "Output format: text, json")
	cmd.Flags().BoolVar(&saveResults, "save", false, "Save the analysis to the database")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the analysis without saving")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.Flags().StringVar(&reportFormat, "report-format", "markdown", "Report format: markdown, csv, html")
	cmd.Flags().StringVar(&reportOutput, "report-output", "", "Write a report artifact to this file")
}

func validateOutputFormat() {
	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintln(os.Stderr, "Error: output must be text or json")
		os.Exit(1)
	}
}

func initStorage() error {
	if !saveResults || dryRun {
		return nil
	}

	var err error
	store, err = storage.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	return nil
}

func initStorageForced() error {
	var err error
	store, err = storage.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	return nil
}

func saveRecord(rec *models.AnalysisRecord) {
	if store == nil {
		return
	}

	if err := store.SaveAnalysis(context.Background(), rec); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to save analysis: %v\n", err)
	} else if outputFormat == "text" {
		fmt.Printf("[INFO] Saved analysis (ID: %s)\n\n", rec.ID)
	}
}

func writeReportArtifact(rec *models.AnalysisRecord) {
	if reportOutput == "" {
		return
	}

	rep := reporter.New(reporter.ReportFormat(reportFormat))
	report, err := rep.Generate(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] Failed to generate report: %v\n", err)
		return
	}
	if err := rep.WriteToFile(report, reportOutput); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] Failed to write report: %v\n", err)
		return
	}
	if outputFormat == "text" {
		fmt.Printf("[INFO] Report written to %s\n", reportOutput)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) {
	validateOutputFormat()

	if err := initStorage(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
	}

	logVerbose("Analyzing burst report %s", args[0])

	result, err := analyzer.New().AnalyzeBurst(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rec := converter.BurstToRecord(result)
	saveRecord(rec)

	handler := output.NewHandler(outputFormat, os.Stdout)
	if err := handler.Burst(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	writeReportArtifact(rec)
}

func runAnalyzeSim(cmd *cobra.Command, args []string) {
	validateOutputFormat()

	if err := initStorage(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
	}

	logVerbose("Analyzing simulation report %s (timeline: %s)", args[0], timelinePath)

	result, err := analyzer.New().AnalyzeSimulation(args[0], timelinePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rec := converter.SimulationToRecord(result)
	saveRecord(rec)

	handler := output.NewHandler(outputFormat, os.Stdout)
	if err := handler.Simulation(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	writeReportArtifact(rec)
}

func runCompare(cmd *cobra.Command, args []string) {
	validateOutputFormat()

	result, err := analyzer.New().Compare(args[0], args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	handler := output.NewHandler(outputFormat, os.Stdout)
	if err := handler.Comparison(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	server := mcp.NewServer(analyzer.New(), version, logger)
	if err := server.Start(); err != nil {
		logger.WithError(err).Error("MCP server stopped")
		os.Exit(1)
	}
}

func runHistory(cmd *cobra.Command, args []string) {
	// Force initialize storage
	if err := initStorageForced(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	analyses, err := store.ListAnalyses(ctx, historyMode, historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(analyses) == 0 {
		fmt.Println("No saved analyses found")
		return
	}

	fmt.Printf("Recent analyses:\n\n")
	for i, rec := range analyses {
		fmt.Printf("%d. %s (ID: %s)\n", i+1, rec.ReportPath, rec.ID)
		fmt.Printf("   Mode: %s\n", rec.Mode)
		fmt.Printf("   TPS: %.2f, P99: %.1fms, Errors: %d\n",
			rec.Metrics.TPS, rec.Metrics.P99LatencyMs, rec.Metrics.Errors)
		fmt.Printf("   Recommendations: %d\n", len(rec.Recommendations))
		fmt.Printf("   Summary: %s\n", rec.Summary)
		fmt.Printf("   Created: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Println()
	}
}
