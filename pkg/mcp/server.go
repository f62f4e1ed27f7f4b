// Package mcp exposes the workload analysis engine over the Model
// Context Protocol with a stdio transport.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/pgtuner/workload-advisor/pkg/analyzer"
)

// Server wraps the analyzer behind MCP tools.
type Server struct {
	analyzer *analyzer.Analyzer
	version  string
	logger   *logrus.Logger
	server   *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(a *analyzer.Analyzer, version string, logger *logrus.Logger) *Server {
	s := &Server{
		analyzer: a,
		version:  version,
		logger:   logger,
	}

	s.server = server.NewMCPServer(
		"workload-advisor",
		version,
		server.WithToolCapabilities(true),
	)
	s.setupTools()

	return s
}

// Start serves MCP over stdio until the client disconnects. Logs go to
// stderr; stdout carries the protocol.
func (s *Server) Start() error {
	s.logger.WithFields(logrus.Fields{
		"transport": "stdio",
		"version":   s.version,
	}).Info("starting MCP server")

	return server.ServeStdio(s.server)
}

// setupTools configures all available MCP tools
func (s *Server) setupTools() {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Check if the workload advisor server is running and responsive"),
	)
	s.server.AddTool(pingTool, s.handlePing)

	burstTool := mcp.NewTool("analyze_burst_report",
		mcp.WithDescription("Analyze a pg_workload burst mode report and provide tuning recommendations"),
		mcp.WithString("report_path",
			mcp.Required(),
			mcp.Description("Path to the JSON report file generated by pg_workload"),
		),
	)
	s.server.AddTool(burstTool, s.handleAnalyzeBurst)

	simulationTool := mcp.NewTool("analyze_simulation_report",
		mcp.WithDescription("Analyze a pg_workload simulation mode report with time-series data"),
		mcp.WithString("report_path",
			mcp.Required(),
			mcp.Description("Path to the JSON report file generated by pg_workload simulate"),
		),
		mcp.WithString("timeline_path",
			mcp.Description("Optional path to the CSV timeline file"),
		),
	)
	s.server.AddTool(simulationTool, s.handleAnalyzeSimulation)

	compareTool := mcp.NewTool("compare_reports",
		mcp.WithDescription("Compare two pg_workload reports to identify performance changes"),
		mcp.WithString("baseline_path",
			mcp.Required(),
			mcp.Description("Path to the baseline report JSON file"),
		),
		mcp.WithString("comparison_path",
			mcp.Required(),
			mcp.Description("Path to the comparison report JSON file"),
		),
	)
	s.server.AddTool(compareTool, s.handleCompareReports)
}

// Tool Handler Functions

func (s *Server) handlePing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.jsonResult(map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) handleAnalyzeBurst(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.GetArguments()

	reportPath, ok := arguments["report_path"].(string)
	if !ok || reportPath == "" {
		return errorResult("report_path is required"), nil
	}

	result, err := s.analyzer.AnalyzeBurst(reportPath)
	if err != nil {
		s.logger.WithError(err).WithField("report", reportPath).Error("burst analysis failed")
		return errorResult(err.Error()), nil
	}

	return s.jsonResult(result)
}

func (s *Server) handleAnalyzeSimulation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.GetArguments()

	reportPath, ok := arguments["report_path"].(string)
	if !ok || reportPath == "" {
		return errorResult("report_path is required"), nil
	}

	timelinePath := ""
	if tp, ok := arguments["timeline_path"].(string); ok {
		timelinePath = tp
	}

	result, err := s.analyzer.AnalyzeSimulation(reportPath, timelinePath)
	if err != nil {
		s.logger.WithError(err).WithField("report", reportPath).Error("simulation analysis failed")
		return errorResult(err.Error()), nil
	}

	return s.jsonResult(result)
}

func (s *Server) handleCompareReports(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.GetArguments()

	baselinePath, ok := arguments["baseline_path"].(string)
	if !ok || baselinePath == "" {
		return errorResult("baseline_path is required"), nil
	}
	comparisonPath, ok := arguments["comparison_path"].(string)
	if !ok || comparisonPath == "" {
		return errorResult("comparison_path is required"), nil
	}

	result, err := s.analyzer.Compare(baselinePath, comparisonPath)
	if err != nil {
		s.logger.WithError(err).Error("report comparison failed")
		return errorResult(err.Error()), nil
	}

	return s.jsonResult(result)
}

func (s *Server) jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: string(data),
			},
		},
	}, nil
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: message,
			},
		},
	}
}
