package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/meetwise/meetwise/internal/calendar"
)

func meetingOf(mt calendar.MeetingType, minutes, participants, agendaItems int) *calendar.Meeting {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	people := make([]string, participants)
	for i := range people {
		people[i] = "user"
	}
	agenda := make([]string, agendaItems)
	for i := range agenda {
		agenda[i] = "item"
	}
	return &calendar.Meeting{
		Title:        "test",
		Participants: people,
		Start:        start,
		End:          start.Add(time.Duration(minutes) * time.Minute),
		Agenda:       agenda,
		Type:         mt,
	}
}

func TestScoreMeeting_IdealMeeting(t *testing.T) {
	scorer := NewScorer(DefaultEffectivenessWeights())

	// 30 minutes, 4 people, agenda, and a duration squarely inside the
	// review band leaves nothing to improve.
	result := scorer.ScoreMeeting(meetingOf(calendar.TypeReview, 30, 4, 3))
	if result.Score != 5 {
		t.Errorf("Score = %f, want 5", result.Score)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("unexpected suggestions for an ideal meeting: %v", result.Suggestions)
	}
	for name, v := range result.Breakdown {
		if v != 1 {
			t.Errorf("factor %s = %f, want 1", name, v)
		}
	}
}

func TestScoreMeeting_PoorMeeting(t *testing.T) {
	scorer := NewScorer(DefaultEffectivenessWeights())

	// A three-hour solo standup with no agenda fails every factor.
	result := scorer.ScoreMeeting(meetingOf(calendar.TypeStandup, 180, 1, 0))
	if result.Score >= 2 {
		t.Errorf("Score = %f, want below 2", result.Score)
	}
	if result.Score < 1 {
		t.Errorf("Score = %f, below the scale floor", result.Score)
	}
	if len(result.Suggestions) != 4 {
		t.Errorf("got %d suggestions, want 4: %v", len(result.Suggestions), result.Suggestions)
	}

	joined := strings.Join(result.Suggestions, "; ")
	for _, want := range []string{"shorten", "agenda", "standup usually runs 10-20"} {
		if !strings.Contains(joined, want) {
			t.Errorf("suggestions %q missing %q", joined, want)
		}
	}
}

func TestScoreMeeting_AgendaImprovesScore(t *testing.T) {
	scorer := NewScorer(DefaultEffectivenessWeights())

	without := scorer.ScoreMeeting(meetingOf(calendar.TypeReview, 45, 4, 0))
	withAgenda := scorer.ScoreMeeting(meetingOf(calendar.TypeReview, 45, 4, 2))

	if withAgenda.Score <= without.Score {
		t.Errorf("agenda did not improve score: %f vs %f", withAgenda.Score, without.Score)
	}
	if without.Breakdown[FactorAgenda] != 0 || withAgenda.Breakdown[FactorAgenda] != 1 {
		t.Errorf("agenda factors = %f, %f", without.Breakdown[FactorAgenda], withAgenda.Breakdown[FactorAgenda])
	}
}

func TestScoreMeeting_ScoreStaysInRange(t *testing.T) {
	scorer := NewScorer(DefaultEffectivenessWeights())

	for _, mt := range calendar.MeetingTypes {
		for _, minutes := range []int{5, 15, 30, 60, 120, 300} {
			for _, people := range []int{1, 2, 5, 12} {
				result := scorer.ScoreMeeting(meetingOf(mt, minutes, people, 1))
				if result.Score < 1 || result.Score > 5 {
					t.Errorf("ScoreMeeting(%s, %dm, %dp) = %f, outside [1,5]",
						mt, minutes, people, result.Score)
				}
			}
		}
	}
}

func TestScoreMeeting_Deterministic(t *testing.T) {
	scorer := NewScorer(DefaultEffectivenessWeights())
	m := meetingOf(calendar.TypePlanning, 60, 5, 2)

	first := scorer.ScoreMeeting(m)
	second := scorer.ScoreMeeting(m)

	if first.Score != second.Score {
		t.Errorf("scores differ across calls: %f vs %f", first.Score, second.Score)
	}
	for name, v := range first.Breakdown {
		if second.Breakdown[name] != v {
			t.Errorf("factor %s differs across calls: %f vs %f", name, v, second.Breakdown[name])
		}
	}
}

func TestScoreMeeting_LongStandupLosesOnFit(t *testing.T) {
	scorer := NewScorer(DefaultEffectivenessWeights())

	long := scorer.ScoreMeeting(meetingOf(calendar.TypeStandup, 90, 3, 4))
	short := scorer.ScoreMeeting(meetingOf(calendar.TypeStandup, 15, 3, 4))

	if long.Breakdown[FactorDuration] >= short.Breakdown[FactorDuration] {
		t.Errorf("duration factor: 90m = %f, 15m = %f; want the long standup lower",
			long.Breakdown[FactorDuration], short.Breakdown[FactorDuration])
	}
	if long.Breakdown[FactorCongruence] >= short.Breakdown[FactorCongruence] {
		t.Errorf("congruence factor: 90m = %f, 15m = %f; want the long standup lower",
			long.Breakdown[FactorCongruence], short.Breakdown[FactorCongruence])
	}
}

func TestDurationFactor(t *testing.T) {
	tests := []struct {
		minutes  int
		expected float64
	}{
		{30, 1},
		{45, 1},
		{15, 0.6},
		{90, 0.4},
		{0, 0},
	}
	for _, tt := range tests {
		if got := durationFactor(tt.minutes); got != tt.expected {
			t.Errorf("durationFactor(%d) = %f, want %f", tt.minutes, got, tt.expected)
		}
	}
}

func TestCongruenceFactor(t *testing.T) {
	// Inside the standup band.
	if got := congruenceFactor(calendar.TypeStandup, 15); got != 1 {
		t.Errorf("congruenceFactor(standup, 15) = %f, want 1", got)
	}
	// Just outside decays with distance over the band width.
	if got := congruenceFactor(calendar.TypeStandup, 25); got != 0.5 {
		t.Errorf("congruenceFactor(standup, 25) = %f, want 0.5", got)
	}
	// Far outside floors at zero.
	if got := congruenceFactor(calendar.TypeStandup, 120); got != 0 {
		t.Errorf("congruenceFactor(standup, 120) = %f, want 0", got)
	}
	// Unknown types use the catch-all band.
	if got := congruenceFactor(calendar.MeetingType("mystery"), 30); got != 1 {
		t.Errorf("congruenceFactor(mystery, 30) = %f, want 1", got)
	}
}
