// Package mcp provides MCP (Model Context Protocol) tool adapters for
// autodes. It lets coding agents log days and read analytics over stdio
// without shelling out to the CLI.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/RodrigoDSVDF/autodes"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with autodes tools.
type Server struct {
	client    *autodes.Client
	mcpServer *server.MCPServer
}

// ToolResult represents the result of a tool call.
type ToolResult struct {
	Content string
	IsError bool
}

// ToolInfo represents a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// NewServer creates a new MCP server with autodes tools registered.
func NewServer(client *autodes.Client) *Server {
	s := &Server{client: client}

	s.mcpServer = server.NewMCPServer(
		"autodes",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout.
// It uses os.Stdin and os.Stdout internally via the mcp-go ServeStdio function.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// HandleMessage processes a raw JSON-RPC message and returns a response.
// This is primarily for testing the MCP protocol layer.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, message)
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{Name: "autodes_log", Description: "Record one day of personal development metrics and get the computed score"},
		{Name: "autodes_dashboard", Description: "Summarize recent performance over a window of days"},
		{Name: "autodes_trend", Description: "Classify the direction of recent daily scores"},
		{Name: "autodes_insights", Description: "Rank tracked metrics by correlation with the daily score"},
		{Name: "autodes_progress", Description: "Report XP, level, goal streak and unlocked achievements"},
	}
}

// CallTool executes a tool by name with the given arguments.
// This is used for testing and direct invocation.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	switch name {
	case "autodes_log":
		return s.handleLog(ctx, args)
	case "autodes_dashboard":
		return s.handleDashboard(ctx, args)
	case "autodes_trend":
		return s.handleTrend(ctx, args)
	case "autodes_insights":
		return s.handleInsights(ctx, args)
	case "autodes_progress":
		return s.handleProgress(ctx, args)
	default:
		return &ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}, nil
	}
}

func (s *Server) registerTools() {
	// autodes_log
	s.mcpServer.AddTool(mcp.NewTool("autodes_log",
		mcp.WithDescription("Record one day of personal development metrics. Omitted metrics fall back to a typical day (60 study minutes, 45 exercise minutes, 7 hours sleep, ratings of 7, plan adhered). Returns the computed daily score."),
		mcp.WithString("date",
			mcp.Description("Date to log as YYYY-MM-DD (default: today)"),
		),
		mcp.WithNumber("study_minutes",
			mcp.Description("Minutes spent studying"),
		),
		mcp.WithBoolean("adhered_to_plan",
			mcp.Description("Whether the day followed the plan"),
		),
		mcp.WithNumber("exercise_minutes",
			mcp.Description("Minutes of physical exercise"),
		),
		mcp.WithNumber("wellbeing",
			mcp.Description("Wellbeing self-rating 1-10"),
		),
		mcp.WithNumber("nutrition",
			mcp.Description("Nutrition self-rating 1-10"),
		),
		mcp.WithNumber("motivation",
			mcp.Description("Motivation self-rating 1-10"),
		),
		mcp.WithNumber("relationships",
			mcp.Description("Relationships self-rating 1-10"),
		),
		mcp.WithNumber("sleep_hours",
			mcp.Description("Hours of sleep"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes for the day"),
		),
	), s.mcpHandleLog)

	// autodes_dashboard
	s.mcpServer.AddTool(mcp.NewTool("autodes_dashboard",
		mcp.WithDescription("Summarize recent performance: totals, latest score, rolling average and trend over a window of days."),
		mcp.WithNumber("window_days",
			mcp.Description("Window in days ending at the latest record (default: 30, 0 = all time)"),
		),
	), s.mcpHandleDashboard)

	// autodes_trend
	s.mcpServer.AddTool(mcp.NewTool("autodes_trend",
		mcp.WithDescription("Fit a line through recent daily scores and classify the direction."),
		mcp.WithNumber("tail",
			mcp.Description("Number of most recent records to fit (default: 5)"),
		),
	), s.mcpHandleTrend)

	// autodes_insights
	s.mcpServer.AddTool(mcp.NewTool("autodes_insights",
		mcp.WithDescription("Rank tracked metrics by correlation with the daily score. Needs at least 10 records."),
	), s.mcpHandleInsights)

	// autodes_progress
	s.mcpServer.AddTool(mcp.NewTool("autodes_progress",
		mcp.WithDescription("Report gamified progression: XP, level, goal streak, achievements and goal attainment over the recent window."),
	), s.mcpHandleProgress)
}

// MCP handlers that wrap internal handlers

func (s *Server) mcpHandleLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleLog(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleDashboard(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleTrend(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleInsights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleInsights(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleProgress(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func toMCPResult(r *ToolResult) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: r.Content,
			},
		},
	}
	if r.IsError {
		result.IsError = true
	}
	return result
}

// Internal handlers

func (s *Server) handleLog(ctx context.Context, args map[string]any) (*ToolResult, error) {
	params := autodes.LogParams{
		StudyMinutes:    60,
		AdheredToPlan:   true,
		ExerciseMinutes: 45,
		Wellbeing:       7,
		Nutrition:       7,
		Motivation:      7,
		Relationships:   7,
		SleepHours:      7,
	}

	if dateStr, ok := args["date"].(string); ok && dateStr != "" {
		date, err := time.ParseInLocation(autodes.DateLayout, dateStr, time.UTC)
		if err != nil {
			return &ToolResult{Content: fmt.Sprintf("invalid date: %v", err), IsError: true}, nil
		}
		params.Date = date
	}
	if v, ok := args["study_minutes"].(float64); ok {
		params.StudyMinutes = v
	}
	if v, ok := args["adhered_to_plan"].(bool); ok {
		params.AdheredToPlan = v
	}
	if v, ok := args["exercise_minutes"].(float64); ok {
		params.ExerciseMinutes = v
	}
	if v, ok := args["wellbeing"].(float64); ok {
		params.Wellbeing = v
	}
	if v, ok := args["nutrition"].(float64); ok {
		params.Nutrition = v
	}
	if v, ok := args["motivation"].(float64); ok {
		params.Motivation = v
	}
	if v, ok := args["relationships"].(float64); ok {
		params.Relationships = v
	}
	if v, ok := args["sleep_hours"].(float64); ok {
		params.SleepHours = v
	}
	if v, ok := args["notes"].(string); ok {
		params.Notes = v
	}

	rec, err := s.client.Log(ctx, params)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("log failed: %v", err), IsError: true}, nil
	}

	return &ToolResult{Content: formatRecord(rec)}, nil
}

func (s *Server) handleDashboard(ctx context.Context, args map[string]any) (*ToolResult, error) {
	window := autodes.DashboardWindowDefault
	if v, ok := args["window_days"].(float64); ok {
		window = int(v)
	}

	report, err := s.client.Dashboard(ctx, window)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("dashboard failed: %v", err), IsError: true}, nil
	}

	return &ToolResult{Content: formatDashboard(report)}, nil
}

func (s *Server) handleTrend(ctx context.Context, args map[string]any) (*ToolResult, error) {
	tail := autodes.TrendTailDefault
	if v, ok := args["tail"].(float64); ok {
		tail = int(v)
	}

	trend, err := s.client.Trend(ctx, tail)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("trend failed: %v", err), IsError: true}, nil
	}

	return &ToolResult{Content: formatTrend(trend)}, nil
}

func (s *Server) handleInsights(ctx context.Context, args map[string]any) (*ToolResult, error) {
	report, err := s.client.Insights(ctx)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("insights failed: %v", err), IsError: true}, nil
	}

	return &ToolResult{Content: formatInsights(report)}, nil
}

func (s *Server) handleProgress(ctx context.Context, args map[string]any) (*ToolResult, error) {
	state, err := s.client.Progress(ctx)
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("progress failed: %v", err), IsError: true}, nil
	}

	return &ToolResult{Content: formatProgress(state)}, nil
}

// Formatters render tool output as plain text for agent consumption.

func formatRecord(rec *autodes.DailyRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Logged %s: score %.0f\n", rec.Date.Format(autodes.DateLayout), rec.Score)
	fmt.Fprintf(&b, "study %.0fm, exercise %.0fm, sleep %.1fh, plan adhered: %v\n",
		rec.StudyMinutes, rec.ExerciseMinutes, rec.SleepHours, rec.AdheredToPlan)
	fmt.Fprintf(&b, "wellbeing %.0f, nutrition %.0f, motivation %.0f, relationships %.0f",
		rec.Wellbeing, rec.Nutrition, rec.Motivation, rec.Relationships)
	if rec.Notes != "" {
		fmt.Fprintf(&b, "\nnotes: %s", rec.Notes)
	}
	return b.String()
}

func formatDashboard(r *autodes.DashboardReport) string {
	if r.Latest == nil {
		return "No records yet. Log a day first with autodes_log."
	}

	window := fmt.Sprintf("last %d days", r.WindowDays)
	if r.WindowDays <= 0 {
		window = "all time"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dashboard (%s), %d records\n", window, r.Totals.Records)
	fmt.Fprintf(&b, "Latest score %.0f", r.Latest.Score)
	if r.HasDelta {
		fmt.Fprintf(&b, " (%+.1f vs previous)", r.ScoreDelta)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Mean score %.1f, mean sleep %.1fh, adherent days %d/%d\n",
		r.Totals.MeanScore, r.Totals.MeanSleepHours, r.Totals.AdherentDays, r.Totals.Records)
	fmt.Fprintf(&b, "Study %.1fh total, exercise %.1fh total\n",
		r.Totals.StudyMinutes/60, r.Totals.ExerciseMinutes/60)
	b.WriteString(formatTrend(r.Trend))
	return b.String()
}

func formatTrend(t autodes.TrendResult) string {
	if t.Label == autodes.TrendInsufficient {
		return fmt.Sprintf("Trend: insufficient data (have %d records)", t.Samples)
	}
	return fmt.Sprintf("Trend: %s (slope %+.2f points/day over %d records)", t.Label, t.Slope, t.Samples)
}

func formatInsights(r *autodes.InsightsReport) string {
	if !r.Sufficient {
		return fmt.Sprintf("Not enough data: %d records, need %d. Keep logging daily.",
			r.SampleSize, autodes.MinCorrelationSamples)
	}
	if len(r.Ranking) == 0 {
		return "No metric varies enough to correlate yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Correlation with daily score (%d records):\n", r.SampleSize)
	for _, inf := range r.Ranking {
		fmt.Fprintf(&b, "%-14s %+.2f\n", inf.Metric, inf.Coefficient)
	}
	if r.Top != nil {
		fmt.Fprintf(&b, "Strongest factor: %s (r = %+.2f)", r.Top.Metric, r.Top.Coefficient)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatProgress(st *autodes.GamificationState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level %d, %d XP (%.0f%% toward level %d)\n", st.Level, st.XP, st.LevelPct, st.Level+1)
	fmt.Fprintf(&b, "Goal streak: %d day(s)\n", st.Streak)
	if len(st.Achievements) == 0 {
		b.WriteString("Achievements: none yet\n")
	} else {
		names := make([]string, len(st.Achievements))
		for i, a := range st.Achievements {
			names[i] = a.Info().Title
		}
		fmt.Fprintf(&b, "Achievements: %s\n", strings.Join(names, ", "))
	}
	for _, g := range st.Goals {
		status := "met"
		if !g.Met {
			status = fmt.Sprintf("gap %.1f", g.Gap)
		}
		fmt.Fprintf(&b, "goal %s: target %.1f, actual %.1f (%s)\n", g.Metric, g.Target, g.Actual, status)
	}
	return strings.TrimRight(b.String(), "\n")
}
