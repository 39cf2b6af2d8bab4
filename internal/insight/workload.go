package insight

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meetwise/meetwise/internal/calendar"
	"github.com/meetwise/meetwise/internal/schedule"
)

// LoadLevel classifies a member's load relative to the team.
type LoadLevel string

// Load levels. A member is overloaded or underloaded when more than one
// standard deviation from the team mean of total meeting minutes.
const (
	LoadBalanced    LoadLevel = "balanced"
	LoadOverloaded  LoadLevel = "overloaded"
	LoadUnderloaded LoadLevel = "underloaded"
)

// MemberWorkload is the per-member slice of a workload report.
type MemberWorkload struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	TotalMinutes int       `json:"total_minutes"`
	MeetingCount int       `json:"meeting_count"`
	OverloadDays int       `json:"overload_days"`
	Level        LoadLevel `json:"level"`
}

// RedistributionSuggestion points at a recurring meeting an overloaded
// member could drop or delegate.
type RedistributionSuggestion struct {
	UserID       string  `json:"user_id"`
	MeetingID    string  `json:"meeting_id"`
	MeetingTitle string  `json:"meeting_title"`
	Score        float64 `json:"effectiveness_score"`
	Detail       string  `json:"detail"`
}

// WorkloadReport aggregates team workload over a period. Members are
// ordered by total minutes descending, ties broken by user id ascending.
type WorkloadReport struct {
	Members       []MemberWorkload           `json:"members"`
	MeanMinutes   float64                    `json:"mean_minutes"`
	StddevMinutes float64                    `json:"stddev_minutes"`
	Suggestions   []RedistributionSuggestion `json:"suggestions,omitempty"`
}

// maxSuggestionsPerMember caps redistribution noise for a single member.
const maxSuggestionsPerMember = 3

// Balancer computes team workload reports.
type Balancer struct {
	store    calendar.Store
	detector *schedule.Detector
}

// NewBalancer builds a Balancer over the store and conflict detector.
func NewBalancer(store calendar.Store, detector *schedule.Detector) *Balancer {
	return &Balancer{store: store, detector: detector}
}

// CalculateWorkload sums each member's meeting time and count within
// [start, end), counts their daily-overload days via the conflict
// detector, flags members beyond one standard deviation of the team mean,
// and proposes redistribution candidates from the overloaded members'
// lowest-scored recurring meetings. Meetings without an effectiveness
// score are skipped as candidates, not treated as zero.
func (b *Balancer) CalculateWorkload(teamMembers []string, start, end time.Time) (*WorkloadReport, error) {
	if len(teamMembers) == 0 {
		return nil, calendar.ValidationError("team member set must not be empty")
	}
	if !end.After(start) {
		return nil, calendar.ValidationError("period end %s is not after start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	members := make([]MemberWorkload, 0, len(teamMembers))
	meetingsByMember := make(map[string][]*calendar.Meeting, len(teamMembers))

	for _, id := range teamMembers {
		user, err := b.store.GetUser(id)
		if err != nil {
			return nil, err
		}
		meetings, err := b.store.MeetingsForUser(id, start, end)
		if err != nil {
			return nil, err
		}
		meetingsByMember[id] = meetings

		total := 0
		for _, m := range meetings {
			total += int(m.Duration().Minutes())
		}

		conflicts, err := b.detector.FindConflicts(id, start, end)
		if err != nil {
			return nil, err
		}
		overloadDays := 0
		for _, c := range conflicts {
			if c.Kind == schedule.KindDailyOverload {
				overloadDays++
			}
		}

		members = append(members, MemberWorkload{
			UserID:       id,
			Name:         user.Name,
			TotalMinutes: total,
			MeetingCount: len(meetings),
			OverloadDays: overloadDays,
			Level:        LoadBalanced,
		})
	}

	mean, stddev := meanStddev(members)
	for i := range members {
		switch {
		case float64(members[i].TotalMinutes) > mean+stddev && stddev > 0:
			members[i].Level = LoadOverloaded
		case float64(members[i].TotalMinutes) < mean-stddev && stddev > 0:
			members[i].Level = LoadUnderloaded
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		if members[i].TotalMinutes != members[j].TotalMinutes {
			return members[i].TotalMinutes > members[j].TotalMinutes
		}
		return members[i].UserID < members[j].UserID
	})

	return &WorkloadReport{
		Members:       members,
		MeanMinutes:   mean,
		StddevMinutes: stddev,
		Suggestions:   redistribution(members, meetingsByMember),
	}, nil
}

// meanStddev returns the population mean and standard deviation of total
// minutes across members.
func meanStddev(members []MemberWorkload) (float64, float64) {
	if len(members) == 0 {
		return 0, 0
	}
	var sum float64
	for _, m := range members {
		sum += float64(m.TotalMinutes)
	}
	mean := sum / float64(len(members))

	var variance float64
	for _, m := range members {
		d := float64(m.TotalMinutes) - mean
		variance += d * d
	}
	variance /= float64(len(members))
	return mean, math.Sqrt(variance)
}

// redistribution proposes each overloaded member's lowest-scored recurring
// meetings as removal or delegation candidates.
func redistribution(members []MemberWorkload, meetingsByMember map[string][]*calendar.Meeting) []RedistributionSuggestion {
	var out []RedistributionSuggestion
	for _, member := range members {
		if member.Level != LoadOverloaded {
			continue
		}
		var candidates []*calendar.Meeting
		for _, m := range meetingsByMember[member.UserID] {
			if m.Recurring && m.EffectivenessScore != nil {
				candidates = append(candidates, m)
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			if *candidates[i].EffectivenessScore != *candidates[j].EffectivenessScore {
				return *candidates[i].EffectivenessScore < *candidates[j].EffectivenessScore
			}
			return candidates[i].ID < candidates[j].ID
		})
		if len(candidates) > maxSuggestionsPerMember {
			candidates = candidates[:maxSuggestionsPerMember]
		}
		for _, m := range candidates {
			out = append(out, RedistributionSuggestion{
				UserID:       member.UserID,
				MeetingID:    m.ID,
				MeetingTitle: m.Title,
				Score:        *m.EffectivenessScore,
				Detail: fmt.Sprintf("recurring meeting %q scores %.1f; consider dropping or delegating it",
					m.Title, *m.EffectivenessScore),
			})
		}
	}
	return out
}
