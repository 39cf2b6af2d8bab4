package insight_tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meetwise/meetwise/internal/calendar"
	"github.com/meetwise/meetwise/internal/server"
)

func workHours() calendar.WorkHours {
	hours := calendar.WorkHours{}
	for d := time.Monday; d <= time.Friday; d++ {
		hours[d] = calendar.ClockRange{
			Start: calendar.MustClockTime("09:00"),
			End:   calendar.MustClockTime("17:00"),
		}
	}
	return hours
}

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()

	store := calendar.NewMemoryStore()
	users := []*calendar.User{
		{
			ID:        "alice",
			Name:      "Alice",
			Timezone:  "UTC",
			WorkHours: workHours(),
			Preferences: calendar.Preferences{
				MaxMeetingsPerDay:      6,
				PreferredMeetingLength: 30,
			},
		},
		{
			ID:        "bob",
			Name:      "Bob",
			Timezone:  "America/New_York",
			WorkHours: workHours(),
			Preferences: calendar.Preferences{
				MaxMeetingsPerDay:      6,
				PreferredMeetingLength: 60,
			},
		},
	}
	for _, u := range users {
		if err := store.AddUser(u); err != nil {
			t.Fatalf("failed to add user %s: %v", u.ID, err)
		}
	}

	sc, err := server.NewServerContext(context.Background(), store)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("nil result")
	}
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return tc.Text
}

func TestHandleAnalyzePatterns(t *testing.T) {
	sc := newTestContext(t)
	ctx := context.Background()

	// Two recent meetings inside the one-week window.
	base := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Hour)
	seed := []*calendar.Meeting{
		{
			Title:        "Daily standup",
			Participants: []string{"alice", "bob"},
			Organizer:    "alice",
			Start:        base,
			End:          base.Add(15 * time.Minute),
			Type:         calendar.TypeStandup,
		},
		{
			Title:        "Code review",
			Participants: []string{"alice", "bob"},
			Organizer:    "bob",
			Start:        base.Add(2 * time.Hour),
			End:          base.Add(2*time.Hour + 45*time.Minute),
			Type:         calendar.TypeReview,
		},
	}
	for _, m := range seed {
		if _, err := sc.Store().AddMeeting(m); err != nil {
			t.Fatalf("failed to seed meeting %q: %v", m.Title, err)
		}
	}

	request := toolRequest("analyze_meeting_patterns", map[string]interface{}{
		"user_id": "alice",
		"period":  "week",
	})

	result, err := handleAnalyzePatterns(ctx, request, sc)
	if err != nil {
		t.Fatalf("handleAnalyzePatterns() unexpected error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handleAnalyzePatterns() returned error result: %s", resultText(t, result))
	}

	var response map[string]interface{}
	if err := json.Unmarshal([]byte(resultText(t, result)), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if got, _ := response["total_meetings"].(float64); got != 2 {
		t.Errorf("expected total_meetings=2, got %v", got)
	}
	if response["period"] != "week" {
		t.Errorf("expected period=week, got %v", response["period"])
	}

	types, _ := response["type_distribution"].(map[string]interface{})
	if got, _ := types["standup"].(float64); got != 1 {
		t.Errorf("expected one standup in type distribution, got %v", got)
	}
}

func TestHandleAnalyzePatterns_InvalidPeriod(t *testing.T) {
	sc := newTestContext(t)
	ctx := context.Background()

	request := toolRequest("analyze_meeting_patterns", map[string]interface{}{
		"user_id": "alice",
		"period":  "fortnight",
	})

	result, err := handleAnalyzePatterns(ctx, request, sc)
	if err != nil {
		t.Fatalf("handleAnalyzePatterns() unexpected error = %v", err)
	}
	if !result.IsError {
		t.Error("expected an error result for an unsupported period")
	}
}

func TestHandleAnalyzePatterns_UnknownUser(t *testing.T) {
	sc := newTestContext(t)
	ctx := context.Background()

	request := toolRequest("analyze_meeting_patterns", map[string]interface{}{
		"user_id": "mallory",
		"period":  "month",
	})

	result, err := handleAnalyzePatterns(ctx, request, sc)
	if err != nil {
		t.Fatalf("handleAnalyzePatterns() unexpected error = %v", err)
	}
	if !result.IsError {
		t.Error("expected an error result for an unknown user")
	}
}

func TestHandleCalculateWorkload(t *testing.T) {
	sc := newTestContext(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-72 * time.Hour).Truncate(time.Hour)
	m := &calendar.Meeting{
		Title:        "Quarterly planning",
		Participants: []string{"alice"},
		Organizer:    "alice",
		Start:        base,
		End:          base.Add(2 * time.Hour),
		Type:         calendar.TypePlanning,
	}
	if _, err := sc.Store().AddMeeting(m); err != nil {
		t.Fatalf("failed to seed meeting: %v", err)
	}

	request := toolRequest("calculate_workload_balance", map[string]interface{}{
		"team_members": "alice,bob",
	})

	result, err := handleCalculateWorkload(ctx, request, sc)
	if err != nil {
		t.Fatalf("handleCalculateWorkload() unexpected error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handleCalculateWorkload() returned error result: %s", resultText(t, result))
	}

	var response map[string]interface{}
	if err := json.Unmarshal([]byte(resultText(t, result)), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	members, _ := response["members"].([]interface{})
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	// Members are ordered by total minutes descending.
	first := members[0].(map[string]interface{})
	if first["user_id"] != "alice" {
		t.Errorf("expected alice first, got %v", first["user_id"])
	}
	if got, _ := first["total_minutes"].(float64); got != 120 {
		t.Errorf("expected 120 total minutes, got %v", got)
	}

	if mean, _ := response["mean_minutes"].(float64); mean != 60 {
		t.Errorf("expected mean of 60 minutes, got %v", mean)
	}
}

func TestHandleCalculateWorkload_InvalidArgs(t *testing.T) {
	sc := newTestContext(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "missing team members",
			args: map[string]interface{}{},
		},
		{
			name: "unknown member",
			args: map[string]interface{}{
				"team_members": "alice,mallory",
			},
		},
		{
			name: "malformed end time",
			args: map[string]interface{}{
				"team_members": "alice,bob",
				"end_time":     "yesterday",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleCalculateWorkload(ctx, toolRequest("calculate_workload_balance", tt.args), sc)
			if err != nil {
				t.Fatalf("handleCalculateWorkload() unexpected error = %v", err)
			}
			if !result.IsError {
				t.Error("expected an error result")
			}
		})
	}
}
