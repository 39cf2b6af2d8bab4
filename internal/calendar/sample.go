package calendar

import (
	"fmt"
	"math/rand"
	"time"
)

// sampleSeed fixes the RNG so sample data is reproducible across runs.
const sampleSeed = 42

// sampleMeetingCount is how many historical meetings the sample calendar gets.
const sampleMeetingCount = 70

// SampleStore builds a demo calendar: five users spread across timezones
// and a month of generated meetings ending at the anchor instant. The same
// anchor always produces the same calendar.
func SampleStore(anchor time.Time) (*MemoryStore, error) {
	store := NewMemoryStore()
	for _, u := range sampleUsers() {
		if err := store.AddUser(u); err != nil {
			return nil, err
		}
	}
	if err := generateSampleMeetings(store, anchor.UTC()); err != nil {
		return nil, err
	}
	return store, nil
}

func sampleUsers() []*User {
	lunch := []ClockRange{{Start: MustClockTime("12:00"), End: MustClockTime("13:00")}}
	earlyLunch := []ClockRange{{Start: MustClockTime("11:30"), End: MustClockTime("12:30")}}
	lateLunch := []ClockRange{{Start: MustClockTime("13:00"), End: MustClockTime("14:00")}}
	nineThirty := MustClockTime("09:30")
	ten := MustClockTime("10:00")

	return []*User{
		{
			ID: "user_1", Name: "Alice Johnson", Email: "alice@company.com",
			Timezone:  "America/New_York",
			WorkHours: Weekdays(MustClockTime("09:00"), MustClockTime("17:00")),
			Preferences: Preferences{
				MaxMeetingsPerDay:      6,
				PreferredMeetingLength: 30,
				NoMeetingWindows:       lunch,
				PreferredStartTime:     &ten,
			},
		},
		{
			ID: "user_2", Name: "Bob Smith", Email: "bob@company.com",
			Timezone:  "Europe/London",
			WorkHours: Weekdays(MustClockTime("08:00"), MustClockTime("16:00")),
			Preferences: Preferences{
				MaxMeetingsPerDay:      5,
				PreferredMeetingLength: 45,
				NoMeetingWindows:       earlyLunch,
			},
		},
		{
			ID: "user_3", Name: "Carol Davis", Email: "carol@company.com",
			Timezone:  "Asia/Tokyo",
			WorkHours: Weekdays(MustClockTime("09:00"), MustClockTime("18:00")),
			Preferences: Preferences{
				MaxMeetingsPerDay:      4,
				PreferredMeetingLength: 60,
				NoMeetingWindows:       lunch,
				PreferredStartTime:     &nineThirty,
			},
		},
		{
			ID: "user_4", Name: "David Wilson", Email: "david@company.com",
			Timezone:  "America/Los_Angeles",
			WorkHours: Weekdays(MustClockTime("08:00"), MustClockTime("17:00")),
			Preferences: Preferences{
				MaxMeetingsPerDay:      7,
				PreferredMeetingLength: 30,
				NoMeetingWindows:       lateLunch,
			},
		},
		{
			ID: "user_5", Name: "Emma Brown", Email: "emma@company.com",
			Timezone:  "Australia/Sydney",
			WorkHours: Weekdays(MustClockTime("09:00"), MustClockTime("17:00")),
			Preferences: Preferences{
				MaxMeetingsPerDay:      5,
				PreferredMeetingLength: 45,
				NoMeetingWindows:       lunch,
			},
		},
	}
}

var sampleTitles = map[MeetingType][]string{
	TypeStandup:      {"Daily Standup", "Team Sync", "Morning Check-in"},
	TypeReview:       {"Sprint Review", "Project Review", "Quarterly Review"},
	TypePlanning:     {"Sprint Planning", "Project Planning", "Strategic Planning"},
	TypeBrainstorm:   {"Innovation Session", "Problem Solving", "Creative Workshop"},
	TypeOneOnOne:     {"1:1 Check-in", "Performance Review", "Career Discussion"},
	TypePresentation: {"Demo Day", "Client Presentation", "Team Showcase"},
	TypeTraining:     {"Skills Workshop", "Training Session", "Knowledge Transfer"},
	TypeOther:        {"Ad-hoc Discussion", "Working Session", "Coffee Chat"},
}

func generateSampleMeetings(store *MemoryStore, anchor time.Time) error {
	rng := rand.New(rand.NewSource(sampleSeed))
	base := anchor.AddDate(0, 0, -30).Truncate(24 * time.Hour)
	userIDs := []string{"user_1", "user_2", "user_3", "user_4", "user_5"}
	durations := []int{15, 30, 45, 60, 90}

	for i := 0; i < sampleMeetingCount; i++ {
		mt := MeetingTypes[rng.Intn(len(MeetingTypes))]
		titles := sampleTitles[mt]
		title := fmt.Sprintf("%s #%d", titles[rng.Intn(len(titles))], i+1)

		// 2-4 participants, distinct
		n := 2 + rng.Intn(3)
		perm := rng.Perm(len(userIDs))
		participants := make([]string, n)
		for j := 0; j < n; j++ {
			participants[j] = userIDs[perm[j]]
		}

		start := base.AddDate(0, 0, rng.Intn(30)).
			Add(time.Duration(9+rng.Intn(8)) * time.Hour).
			Add(time.Duration(15*rng.Intn(4)) * time.Minute)
		dur := durations[rng.Intn(len(durations))]

		m := &Meeting{
			ID:           fmt.Sprintf("meeting_%d", i+1),
			Title:        title,
			Participants: participants,
			Organizer:    participants[rng.Intn(n)],
			Start:        start,
			End:          start.Add(time.Duration(dur) * time.Minute),
			Agenda:       DefaultAgenda(mt),
			Type:         mt,
			Recurring:    rng.Intn(2) == 0,
		}
		// Leave roughly a quarter of meetings unscored so redistribution
		// suggestions have something to skip.
		if rng.Intn(4) != 0 {
			score := 2.5 + rng.Float64()*2.5
			m.EffectivenessScore = &score
		}
		if _, err := store.AddMeeting(m); err != nil {
			return err
		}
	}
	return nil
}

// DefaultAgenda returns a generic agenda for the meeting type, used when
// sample meetings are generated. Tool callers wanting tailored suggestions
// use the agenda package instead.
func DefaultAgenda(mt MeetingType) []string {
	switch mt {
	case TypeStandup:
		return []string{"Yesterday's progress", "Today's plan", "Blockers"}
	case TypeReview:
		return []string{"Review action items", "Project progress", "Next steps"}
	case TypePlanning:
		return []string{"Scope and objectives", "Timeline estimates", "Assignments"}
	case TypeBrainstorm:
		return []string{"Problem statement", "Idea generation", "Prioritization"}
	case TypeOneOnOne:
		return []string{"Goal review", "Feedback", "Action items"}
	default:
		return []string{"Discussion", "Action items"}
	}
}
