package insight_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetwise/meetwise/internal/insight"
	"github.com/meetwise/meetwise/internal/instrumentation"
	"github.com/meetwise/meetwise/internal/server"
	"github.com/meetwise/meetwise/internal/tools/common"
)

// defaultWorkloadWindow is the trailing period summed when the caller does
// not supply an explicit time range.
const defaultWorkloadWindow = 14 * 24 * time.Hour

// RegisterInsightTools registers analytics tools with the MCP server
func RegisterInsightTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	patternsTool := mcp.NewTool("analyze_meeting_patterns",
		mcp.WithDescription("Analyze a user's meeting patterns over a period"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("User ID to analyze"),
		),
		mcp.WithString("period",
			mcp.Required(),
			mcp.Description("Analysis period: week, month, or quarter"),
		),
	)

	s.AddTool(patternsTool, common.InstrumentedToolHandler("analyze_meeting_patterns", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAnalyzePatterns(ctx, request, sc)
		}))

	workloadTool := mcp.NewTool("calculate_workload_balance",
		mcp.WithDescription("Calculate meeting workload balance across team members"),
		mcp.WithString("team_members",
			mcp.Required(),
			mcp.Description("Comma-separated list of team member user IDs"),
		),
		mcp.WithString("start_time",
			mcp.Description("Start of the analysis range (RFC3339 format, default: 14 days ago)"),
		),
		mcp.WithString("end_time",
			mcp.Description("End of the analysis range (RFC3339 format, default: now)"),
		),
	)

	s.AddTool(workloadTool, common.InstrumentedToolHandlerWithOperation("calculate_workload_balance", instrumentation.OperationWorkload, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCalculateWorkload(ctx, request, sc)
		}))

	return nil
}

func handleAnalyzePatterns(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	userID, err := common.RequiredString(args, "user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	period, err := common.RequiredString(args, "period")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	switch period {
	case insight.PeriodWeek, insight.PeriodMonth, insight.PeriodQuarter:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid period %q: must be week, month, or quarter", period)), nil
	}

	report, err := sc.Analyzer().AnalyzePatterns(userID, period, time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

func handleCalculateWorkload(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	teamMembers := common.StringList(args, "team_members")
	if len(teamMembers) == 0 {
		return mcp.NewToolResultError("team_members is required"), nil
	}

	now := time.Now().UTC()
	end, err := common.OptionalTime(args, "end_time", now)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start, err := common.OptionalTime(args, "start_time", end.Add(-defaultWorkloadWindow))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := sc.Balancer().CalculateWorkload(teamMembers, start, end)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
