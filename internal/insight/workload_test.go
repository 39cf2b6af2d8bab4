package insight

import (
	"math"
	"testing"
	"time"

	"github.com/meetwise/meetwise/internal/calendar"
	"github.com/meetwise/meetwise/internal/schedule"
)

func newInsightStore(t *testing.T, ids ...string) *calendar.MemoryStore {
	t.Helper()
	store := calendar.NewMemoryStore()
	for _, id := range ids {
		if err := store.AddUser(&calendar.User{
			ID:        id,
			Name:      id,
			Timezone:  "UTC",
			WorkHours: calendar.Weekdays(calendar.MustClockTime("09:00"), calendar.MustClockTime("17:00")),
			Preferences: calendar.Preferences{
				MaxMeetingsPerDay:      6,
				PreferredMeetingLength: 30,
			},
		}); err != nil {
			t.Fatalf("AddUser(%s) unexpected error = %v", id, err)
		}
	}
	return store
}

func newTestBalancer(store *calendar.MemoryStore) *Balancer {
	resolver := schedule.NewCachingResolver()
	detector := schedule.NewDetector(store, resolver, schedule.DefaultDetectorConfig())
	return NewBalancer(store, detector)
}

func addTimedMeeting(t *testing.T, store *calendar.MemoryStore, userID string, start time.Time, minutes int, recurring bool) *calendar.Meeting {
	t.Helper()
	m, err := store.AddMeeting(&calendar.Meeting{
		Title:        userID + " meeting",
		Participants: []string{userID},
		Start:        start,
		End:          start.Add(time.Duration(minutes) * time.Minute),
		Recurring:    recurring,
	})
	if err != nil {
		t.Fatalf("AddMeeting() unexpected error = %v", err)
	}
	return m
}

func TestCalculateWorkload_LevelsAndOrdering(t *testing.T) {
	store := newInsightStore(t, "a", "b", "c", "d")
	balancer := newTestBalancer(store)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	// Totals 400/200/200/0 give mean 200 and stddev ~141.4, putting only
	// a and d beyond one standard deviation.
	day := start.Add(9 * time.Hour)
	addTimedMeeting(t, store, "a", day, 400, false)
	addTimedMeeting(t, store, "b", day.AddDate(0, 0, 1), 200, false)
	addTimedMeeting(t, store, "c", day.AddDate(0, 0, 2), 200, false)

	report, err := balancer.CalculateWorkload([]string{"a", "b", "c", "d"}, start, end)
	if err != nil {
		t.Fatalf("CalculateWorkload() unexpected error = %v", err)
	}
	if len(report.Members) != 4 {
		t.Fatalf("got %d members, want 4", len(report.Members))
	}

	if report.MeanMinutes != 200 {
		t.Errorf("MeanMinutes = %f, want 200", report.MeanMinutes)
	}
	if math.Abs(report.StddevMinutes-math.Sqrt(20000)) > 0.001 {
		t.Errorf("StddevMinutes = %f, want %f", report.StddevMinutes, math.Sqrt(20000))
	}

	// Descending minutes, ties by user id.
	wantOrder := []string{"a", "b", "c", "d"}
	for i, m := range report.Members {
		if m.UserID != wantOrder[i] {
			t.Fatalf("member %d = %s, want %s", i, m.UserID, wantOrder[i])
		}
	}

	if report.Members[0].Level != LoadOverloaded {
		t.Errorf("a level = %s, want overloaded", report.Members[0].Level)
	}
	if report.Members[1].Level != LoadBalanced || report.Members[2].Level != LoadBalanced {
		t.Errorf("b/c levels = %s/%s, want balanced", report.Members[1].Level, report.Members[2].Level)
	}
	if report.Members[3].Level != LoadUnderloaded {
		t.Errorf("d level = %s, want underloaded", report.Members[3].Level)
	}
}

func TestCalculateWorkload_RedistributionSuggestions(t *testing.T) {
	store := newInsightStore(t, "a", "b", "c", "d")
	balancer := newTestBalancer(store)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	day := start.Add(9 * time.Hour)

	// Overloaded member a has one scored recurring meeting and one
	// unscored; only the scored one is a candidate.
	scored := addTimedMeeting(t, store, "a", day, 200, true)
	if err := store.SetEffectivenessScore(scored.ID, 2); err != nil {
		t.Fatalf("SetEffectivenessScore() unexpected error = %v", err)
	}
	addTimedMeeting(t, store, "a", day.AddDate(0, 0, 1), 200, true)
	addTimedMeeting(t, store, "b", day.AddDate(0, 0, 2), 200, false)
	addTimedMeeting(t, store, "c", day.AddDate(0, 0, 3), 200, false)

	report, err := balancer.CalculateWorkload([]string{"a", "b", "c", "d"}, start, end)
	if err != nil {
		t.Fatalf("CalculateWorkload() unexpected error = %v", err)
	}

	if len(report.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1: %+v", len(report.Suggestions), report.Suggestions)
	}
	s := report.Suggestions[0]
	if s.UserID != "a" || s.MeetingID != scored.ID {
		t.Errorf("suggestion = %+v, want a/%s", s, scored.ID)
	}
	if s.Score != 2 {
		t.Errorf("suggestion score = %f, want 2", s.Score)
	}
}

func TestCalculateWorkload_SingleMemberIsBalanced(t *testing.T) {
	store := newInsightStore(t, "a")
	balancer := newTestBalancer(store)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	addTimedMeeting(t, store, "a", start.Add(9*time.Hour), 120, false)

	report, err := balancer.CalculateWorkload([]string{"a"}, start, start.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("CalculateWorkload() unexpected error = %v", err)
	}
	// Zero spread means nobody is an outlier.
	if report.Members[0].Level != LoadBalanced {
		t.Errorf("level = %s, want balanced", report.Members[0].Level)
	}
	if report.StddevMinutes != 0 {
		t.Errorf("StddevMinutes = %f, want 0", report.StddevMinutes)
	}
}

func TestCalculateWorkload_Validation(t *testing.T) {
	store := newInsightStore(t, "a")
	balancer := newTestBalancer(store)
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := balancer.CalculateWorkload(nil, start, start.AddDate(0, 0, 7)); !calendar.IsValidation(err) {
		t.Errorf("empty team: error = %v, want validation error", err)
	}
	if _, err := balancer.CalculateWorkload([]string{"a"}, start, start); !calendar.IsValidation(err) {
		t.Errorf("empty period: error = %v, want validation error", err)
	}
	if _, err := balancer.CalculateWorkload([]string{"ghost"}, start, start.AddDate(0, 0, 7)); !calendar.IsNotFound(err) {
		t.Errorf("unknown member: error = %v, want NotFound", err)
	}
}
