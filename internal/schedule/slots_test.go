package schedule

import (
	"testing"
	"time"

	"github.com/meetwise/meetwise/internal/calendar"
)

func newTestRecommender(t *testing.T, store *calendar.MemoryStore) *Recommender {
	t.Helper()
	resolver := NewCachingResolver()
	detector := NewDetector(store, resolver, DefaultDetectorConfig())
	return NewRecommender(store, detector, resolver, DefaultRecommenderConfig())
}

// Monday. New York is four hours behind UTC on this date, so bob's
// 09:00-17:00 local day is 13:00-21:00 UTC and the shared window with
// alice is 13:00-17:00 UTC.
var slotsMonday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestFindOptimalSlots_RanksSharedWindow(t *testing.T) {
	store := newConflictStore(t)
	recommender := newTestRecommender(t, store)

	slots, err := recommender.FindOptimalSlots([]string{"alice", "bob"}, 30*time.Minute,
		slotsMonday, slotsMonday.AddDate(0, 0, 1), 50)
	if err != nil {
		t.Fatalf("FindOptimalSlots() unexpected error = %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected candidate slots in the shared window")
	}

	windowStart := slotsMonday.Add(13 * time.Hour)
	windowEnd := slotsMonday.Add(17 * time.Hour)
	for _, s := range slots {
		if s.Start.Before(windowStart) || s.End().After(windowEnd) {
			t.Errorf("slot %s-%s outside shared window", s.Start, s.End())
		}
	}

	for i := 1; i < len(slots); i++ {
		if slots[i].Score > slots[i-1].Score {
			t.Errorf("slots not ordered by score: %f after %f", slots[i].Score, slots[i-1].Score)
		}
	}

	// 14:00 UTC is mid-afternoon for alice and mid-morning for bob, both
	// prime bands, and it is the earliest instant where both hit one.
	best := slots[0]
	if want := slotsMonday.Add(14 * time.Hour); !best.Start.Equal(want) {
		t.Errorf("best slot starts %s, want %s", best.Start, want)
	}
}

func TestFindOptimalSlots_ExcludesConflictingSlots(t *testing.T) {
	store := newConflictStore(t)
	recommender := newTestRecommender(t, store)

	busyStart := slotsMonday.Add(14 * time.Hour)
	seedMeeting(t, store, "busy", []string{"alice"}, busyStart, time.Hour)

	slots, err := recommender.FindOptimalSlots([]string{"alice", "bob"}, 30*time.Minute,
		slotsMonday, slotsMonday.AddDate(0, 0, 1), 50)
	if err != nil {
		t.Fatalf("FindOptimalSlots() unexpected error = %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots outside the busy hour")
	}

	// Slots overlapping or immediately touching the busy meeting are out.
	blockedFrom := busyStart.Add(-30 * time.Minute)
	blockedTo := busyStart.Add(time.Hour)
	for _, s := range slots {
		if !s.Start.Before(blockedFrom) && !s.Start.After(blockedTo) {
			t.Errorf("slot starting %s collides with the busy hour", s.Start)
		}
	}
}

func TestFindOptimalSlots_RespectsNoMeetingWindows(t *testing.T) {
	store := newConflictStore(t)
	if err := store.AddUser(&calendar.User{
		ID:        "carol",
		Name:      "Carol",
		Timezone:  "UTC",
		WorkHours: calendar.Weekdays(calendar.MustClockTime("09:00"), calendar.MustClockTime("17:00")),
		Preferences: calendar.Preferences{
			MaxMeetingsPerDay: 6,
			NoMeetingWindows: []calendar.ClockRange{
				{Start: calendar.MustClockTime("12:00"), End: calendar.MustClockTime("13:00")},
			},
		},
	}); err != nil {
		t.Fatalf("AddUser(carol) unexpected error = %v", err)
	}
	recommender := newTestRecommender(t, store)

	slots, err := recommender.FindOptimalSlots([]string{"carol"}, 30*time.Minute,
		slotsMonday, slotsMonday.AddDate(0, 0, 1), 100)
	if err != nil {
		t.Fatalf("FindOptimalSlots() unexpected error = %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots outside the blocked window")
	}

	lunchStart := slotsMonday.Add(12 * time.Hour)
	lunchEnd := slotsMonday.Add(13 * time.Hour)
	for _, s := range slots {
		if s.Start.Before(lunchEnd) && lunchStart.Before(s.End()) {
			t.Errorf("slot %s-%s intrudes on the blocked window", s.Start, s.End())
		}
	}
}

func TestFindOptimalSlots_WeekendIsEmpty(t *testing.T) {
	store := newConflictStore(t)
	recommender := newTestRecommender(t, store)

	saturday := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	slots, err := recommender.FindOptimalSlots([]string{"alice"}, 30*time.Minute,
		saturday, saturday.AddDate(0, 0, 1), 10)
	if err != nil {
		t.Fatalf("FindOptimalSlots() unexpected error = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %d slots on a non-working day, want 0", len(slots))
	}
}

func TestFindOptimalSlots_MaxResults(t *testing.T) {
	store := newConflictStore(t)
	recommender := newTestRecommender(t, store)

	slots, err := recommender.FindOptimalSlots([]string{"alice"}, 30*time.Minute,
		slotsMonday, slotsMonday.AddDate(0, 0, 1), 3)
	if err != nil {
		t.Fatalf("FindOptimalSlots() unexpected error = %v", err)
	}
	if len(slots) > 3 {
		t.Errorf("got %d slots, want at most 3", len(slots))
	}
}

func TestFindOptimalSlots_Validation(t *testing.T) {
	store := newConflictStore(t)
	recommender := newTestRecommender(t, store)
	end := slotsMonday.AddDate(0, 0, 1)

	if _, err := recommender.FindOptimalSlots([]string{"alice"}, 0, slotsMonday, end, 10); !calendar.IsValidation(err) {
		t.Errorf("zero duration: error = %v, want validation error", err)
	}
	if _, err := recommender.FindOptimalSlots([]string{"alice"}, 30*time.Minute, end, slotsMonday, 10); !calendar.IsValidation(err) {
		t.Errorf("inverted range: error = %v, want validation error", err)
	}
	if _, err := recommender.FindOptimalSlots(nil, 30*time.Minute, slotsMonday, end, 10); !calendar.IsValidation(err) {
		t.Errorf("empty participants: error = %v, want validation error", err)
	}
	if _, err := recommender.FindOptimalSlots([]string{"ghost"}, 30*time.Minute, slotsMonday, end, 10); !calendar.IsNotFound(err) {
		t.Errorf("unknown participant: error = %v, want NotFound", err)
	}
}

func TestScoreFactorContribution(t *testing.T) {
	f := ScoreFactor{Name: FactorOptimalBand, Raw: 0.5, Weight: 1.0}
	if got := f.Contribution(); got != 0.5 {
		t.Errorf("Contribution() = %f, want 0.5", got)
	}
	penalty := ScoreFactor{Name: FactorDailyLoad, Raw: 2, Weight: -0.15}
	if got := penalty.Contribution(); got != -0.3 {
		t.Errorf("Contribution() = %f, want -0.3", got)
	}
}
