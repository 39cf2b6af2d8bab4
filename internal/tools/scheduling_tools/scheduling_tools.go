package scheduling_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetwise/meetwise/internal/instrumentation"
	"github.com/meetwise/meetwise/internal/schedule"
	"github.com/meetwise/meetwise/internal/server"
	"github.com/meetwise/meetwise/internal/tools/common"
)

// defaultReviewWindow is the trailing period analyzed when the caller does
// not supply an explicit time range.
const defaultReviewWindow = 14 * 24 * time.Hour

// RegisterSchedulingTools registers scheduling analysis tools with the MCP server
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	findSlotsTool := mcp.NewTool("find_optimal_slots",
		mcp.WithDescription("Find optimal meeting time slots ranked by schedule fit"),
		mcp.WithString("participants",
			mcp.Required(),
			mcp.Description("Comma-separated list of participant user IDs"),
		),
		mcp.WithNumber("duration",
			mcp.Required(),
			mcp.Description("Meeting duration in minutes"),
		),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Search start date (YYYY-MM-DD, interpreted as UTC)"),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("Search end date, inclusive (YYYY-MM-DD, interpreted as UTC)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of slots to return (default: 10)"),
		),
	)

	s.AddTool(findSlotsTool, common.InstrumentedToolHandlerWithOperation("find_optimal_slots", instrumentation.OperationFindSlots, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindOptimalSlots(ctx, request, sc)
		}))

	detectConflictsTool := mcp.NewTool("detect_scheduling_conflicts",
		mcp.WithDescription("Detect scheduling conflicts for a user within a time range"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("User ID to check"),
		),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description("Start of the check range (RFC3339 format)"),
		),
		mcp.WithString("end_time",
			mcp.Required(),
			mcp.Description("End of the check range (RFC3339 format)"),
		),
	)

	s.AddTool(detectConflictsTool, common.InstrumentedToolHandlerWithOperation("detect_scheduling_conflicts", instrumentation.OperationDetectConflict, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDetectConflicts(ctx, request, sc)
		}))

	optimizeTool := mcp.NewTool("optimize_meeting_schedule",
		mcp.WithDescription("Provide schedule optimization recommendations for a user"),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("User ID to optimize"),
		),
		mcp.WithString("start_time",
			mcp.Description("Start of the analysis range (RFC3339 format, default: 14 days ago)"),
		),
		mcp.WithString("end_time",
			mcp.Description("End of the analysis range (RFC3339 format, default: now)"),
		),
	)

	s.AddTool(optimizeTool, common.InstrumentedToolHandlerWithOperation("optimize_meeting_schedule", instrumentation.OperationOptimize, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleOptimizeSchedule(ctx, request, sc)
		}))

	return nil
}

// slotResult is the wire shape of a recommended slot. It adds the end
// instant and duration that SlotCandidate derives on demand.
type slotResult struct {
	Start           time.Time              `json:"start"`
	End             time.Time              `json:"end"`
	DurationMinutes int                    `json:"duration_minutes"`
	Score           float64                `json:"score"`
	Factors         []schedule.ScoreFactor `json:"factors"`
	Reasons         []string               `json:"reasons"`
}

func handleFindOptimalSlots(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	participants := common.StringList(args, "participants")
	if len(participants) == 0 {
		return mcp.NewToolResultError("participants is required"), nil
	}

	duration, err := common.RequiredInt(args, "duration")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	startDate, err := parseDate(args, "start_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endDate, err := parseDate(args, "end_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// The end date is inclusive; the search range extends to its midnight.
	rangeEnd := endDate.AddDate(0, 0, 1)

	maxResults := common.OptionalInt(args, "max_results", 0)

	slots, err := sc.Recommender().FindOptimalSlots(participants, time.Duration(duration)*time.Minute, startDate, rangeEnd, maxResults)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := make([]slotResult, 0, len(slots))
	for _, s := range slots {
		results = append(results, slotResult{
			Start:           s.Start,
			End:             s.End(),
			DurationMinutes: duration,
			Score:           s.Score,
			Factors:         s.Factors,
			Reasons:         s.Reasons,
		})
	}

	response := map[string]interface{}{
		"participants": participants,
		"slot_count":   len(results),
		"slots":        results,
	}
	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

func handleDetectConflicts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	userID, err := common.RequiredString(args, "user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start, err := common.RequiredTime(args, "start_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := common.RequiredTime(args, "end_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	conflicts, err := sc.Detector().FindConflicts(userID, start, end)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if metrics := sc.Metrics(); metrics != nil {
		byKind := make(map[schedule.ConflictKind]int)
		for _, c := range conflicts {
			byKind[c.Kind]++
		}
		for kind, count := range byKind {
			metrics.RecordConflictsDetected(ctx, string(kind), count)
		}
	}

	response := map[string]interface{}{
		"user_id":        userID,
		"conflict_count": len(conflicts),
		"conflicts":      conflicts,
	}
	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

func handleOptimizeSchedule(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	userID, err := common.RequiredString(args, "user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	now := time.Now().UTC()
	end, err := common.OptionalTime(args, "end_time", now)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start, err := common.OptionalTime(args, "start_time", end.Add(-defaultReviewWindow))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := sc.Optimizer().OptimizeSchedule(userID, start, end)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// parseDate extracts a required YYYY-MM-DD argument as a UTC midnight instant.
func parseDate(args map[string]interface{}, key string) (time.Time, error) {
	raw, err := common.RequiredString(args, key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format: %v", key, err)
	}
	return t, nil
}
