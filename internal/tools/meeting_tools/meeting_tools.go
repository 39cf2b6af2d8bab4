package meeting_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meetwise/meetwise/internal/agenda"
	"github.com/meetwise/meetwise/internal/calendar"
	"github.com/meetwise/meetwise/internal/instrumentation"
	"github.com/meetwise/meetwise/internal/server"
	"github.com/meetwise/meetwise/internal/tools/batch"
	"github.com/meetwise/meetwise/internal/tools/common"
)

// RegisterMeetingTools registers meeting lifecycle tools with the MCP server
func RegisterMeetingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createMeetingTool := mcp.NewTool("create_meeting",
		mcp.WithDescription("Schedule a new meeting with conflict detection and an auto-generated agenda"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Meeting title"),
		),
		mcp.WithString("participants",
			mcp.Required(),
			mcp.Description("Comma-separated list of participant user IDs"),
		),
		mcp.WithNumber("duration",
			mcp.Required(),
			mcp.Description("Meeting duration in minutes"),
		),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description("Meeting start time (RFC3339 format, e.g., '2025-01-15T14:00:00Z')"),
		),
		mcp.WithString("meeting_type",
			mcp.Description("Meeting type (standup, review, planning, brainstorm, one_on_one, presentation, training, other). Inferred from the title when omitted."),
		),
	)

	s.AddTool(createMeetingTool, common.InstrumentedToolHandler("create_meeting", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateMeeting(ctx, request, sc)
		}))

	// Score tool (supports single or multiple meetings)
	scoreMeetingTool := mcp.NewTool("score_meeting_effectiveness",
		mcp.WithDescription("Score meeting effectiveness and provide improvement suggestions"),
		mcp.WithString("meeting_id",
			mcp.Required(),
			mcp.Description("Meeting ID (string) or array of meeting IDs to score"),
		),
	)

	s.AddTool(scoreMeetingTool, common.InstrumentedToolHandlerWithOperation("score_meeting_effectiveness", instrumentation.OperationScoreMeeting, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleScoreMeeting(ctx, request, sc)
		}))

	agendaTool := mcp.NewTool("generate_agenda_suggestions",
		mcp.WithDescription("Generate smart agenda suggestions for a meeting topic"),
		mcp.WithString("meeting_topic",
			mcp.Required(),
			mcp.Description("Meeting topic or title"),
		),
		mcp.WithString("participants",
			mcp.Required(),
			mcp.Description("Comma-separated list of participant user IDs"),
		),
	)

	s.AddTool(agendaTool, common.InstrumentedToolHandler("generate_agenda_suggestions", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGenerateAgenda(ctx, request, sc)
		}))

	return nil
}

func handleCreateMeeting(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, err := common.RequiredString(args, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	participants := common.StringList(args, "participants")
	if len(participants) == 0 {
		return mcp.NewToolResultError("participants is required"), nil
	}

	duration, err := common.RequiredInt(args, "duration")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if duration <= 0 {
		return mcp.NewToolResultError("duration must be positive"), nil
	}

	start, err := common.RequiredTime(args, "start_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meetingType := agenda.ClassifyTopic(title, len(participants))
	if typeStr := common.OptionalString(args, "meeting_type", ""); typeStr != "" {
		meetingType, err = calendar.ParseMeetingType(typeStr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	candidate := &calendar.Meeting{
		Title:        title,
		Participants: participants,
		Organizer:    participants[0],
		Start:        start.UTC(),
		End:          start.UTC().Add(time.Duration(duration) * time.Minute),
		Agenda:       agenda.Suggest(title, participants),
		Type:         meetingType,
	}

	conflicts, err := sc.Detector().WouldConflict(candidate)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to check conflicts: %v", err)), nil
	}

	if len(conflicts) > 0 {
		response := map[string]interface{}{
			"success":   false,
			"conflicts": conflicts,
			"message":   "Meeting conflicts detected",
		}
		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}

	stored, err := sc.Store().AddMeeting(candidate)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create meeting: %v", err)), nil
	}

	if metrics := sc.Metrics(); metrics != nil {
		metrics.RecordMeetingCreated(ctx, string(stored.Type))
	}

	response := map[string]interface{}{
		"success":          true,
		"meeting_id":       stored.ID,
		"meeting":          stored,
		"suggested_agenda": stored.Agenda,
		"message":          "Meeting created successfully",
	}
	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

func handleScoreMeeting(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	// Parse meeting_id - can be string or array
	meetingIDs, err := batch.ParseStringOrArray(args["meeting_id"], "meeting_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(meetingIDs) == 1 {
		jsonData, err := scoreOne(sc, meetingIDs[0])
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(jsonData), nil
	}

	results := batch.ProcessBatch(meetingIDs, func(id string) (string, error) {
		return scoreOne(sc, id)
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

// scoreOne scores a single meeting, persists the score, and returns the
// response as indented JSON.
func scoreOne(sc *server.ServerContext, meetingID string) (string, error) {
	meeting, err := sc.Store().GetMeeting(meetingID)
	if err != nil {
		return "", err
	}

	result := sc.Scorer().ScoreMeeting(meeting)

	if err := sc.Store().SetEffectivenessScore(meetingID, result.Score); err != nil {
		return "", fmt.Errorf("failed to record score: %w", err)
	}

	response := map[string]interface{}{
		"meeting_id":    meetingID,
		"meeting_title": meeting.Title,
		"score":         result.Score,
		"breakdown":     result.Breakdown,
		"suggestions":   result.Suggestions,
	}
	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(jsonData), nil
}

func handleGenerateAgenda(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	topic, err := common.RequiredString(args, "meeting_topic")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	participants := common.StringList(args, "participants")
	if len(participants) == 0 {
		return mcp.NewToolResultError("participants is required"), nil
	}

	response := map[string]interface{}{
		"meeting_topic": topic,
		"meeting_type":  agenda.ClassifyTopic(topic, len(participants)),
		"agenda":        agenda.Suggest(topic, participants),
	}
	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
