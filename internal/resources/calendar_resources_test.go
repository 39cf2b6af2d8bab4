package resources

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meetwise/meetwise/internal/calendar"
	"github.com/meetwise/meetwise/internal/server"
)

func newResourceContext(t *testing.T) *server.ServerContext {
	t.Helper()
	store := calendar.NewMemoryStore()
	if err := store.AddUser(&calendar.User{
		ID:        "alice",
		Name:      "Alice",
		Timezone:  "UTC",
		WorkHours: calendar.Weekdays(calendar.MustClockTime("09:00"), calendar.MustClockTime("17:00")),
		Preferences: calendar.Preferences{
			MaxMeetingsPerDay:      6,
			PreferredMeetingLength: 30,
		},
	}); err != nil {
		t.Fatalf("AddUser() unexpected error = %v", err)
	}

	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	if _, err := store.AddMeeting(&calendar.Meeting{
		Title:        "Design Review",
		Participants: []string{"alice"},
		Start:        start,
		End:          start.Add(time.Hour),
		Type:         calendar.TypeReview,
	}); err != nil {
		t.Fatalf("AddMeeting() unexpected error = %v", err)
	}

	sc, err := server.NewServerContext(context.Background(), store)
	if err != nil {
		t.Fatalf("NewServerContext() unexpected error = %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func readRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: uri},
	}
}

func TestHandleMeetings(t *testing.T) {
	sc := newResourceContext(t)

	contents, err := handleMeetings(context.Background(), readRequest("calendar://meetings"), sc)
	if err != nil {
		t.Fatalf("handleMeetings() unexpected error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}

	text, ok := contents[0].(*mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want *mcp.TextResourceContents", contents[0])
	}
	if text.URI != "calendar://meetings" {
		t.Errorf("URI = %q", text.URI)
	}
	if text.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q", text.MIMEType)
	}

	var meetings []*calendar.Meeting
	if err := json.Unmarshal([]byte(text.Text), &meetings); err != nil {
		t.Fatalf("response is not a meeting list: %v", err)
	}
	if len(meetings) != 1 || meetings[0].Title != "Design Review" {
		t.Errorf("meetings = %+v", meetings)
	}
}

func TestHandleUsers(t *testing.T) {
	sc := newResourceContext(t)

	contents, err := handleUsers(context.Background(), readRequest("calendar://users"), sc)
	if err != nil {
		t.Fatalf("handleUsers() unexpected error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}

	text, ok := contents[0].(*mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want *mcp.TextResourceContents", contents[0])
	}

	var users []*calendar.User
	if err := json.Unmarshal([]byte(text.Text), &users); err != nil {
		t.Fatalf("response is not a user list: %v", err)
	}
	if len(users) != 1 || users[0].ID != "alice" {
		t.Errorf("users = %+v", users)
	}
	if users[0].Timezone != "UTC" {
		t.Errorf("Timezone = %q", users[0].Timezone)
	}
}
