package insight

import (
	"fmt"
	"sort"
	"time"

	"github.com/meetwise/meetwise/internal/calendar"
	"github.com/meetwise/meetwise/internal/schedule"
)

// Suggestion priorities, ordered by how much they pull the optimization
// score down.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// OptimizationSuggestion is one actionable piece of schedule advice.
type OptimizationSuggestion struct {
	Priority string `json:"priority"`
	Category string `json:"category"`
	Detail   string `json:"detail"`
}

// OptimizationReport grades a user's schedule and lists improvements.
// Score starts at 100 and loses points per suggestion by priority.
type OptimizationReport struct {
	UserID      string                   `json:"user_id"`
	Score       int                      `json:"optimization_score"`
	Suggestions []OptimizationSuggestion `json:"suggestions,omitempty"`
}

const minFocusBlock = 2 * time.Hour

// Optimizer analyzes a user's schedule for structural improvements.
type Optimizer struct {
	store    calendar.Store
	resolver schedule.LocalTimeResolver
}

// NewOptimizer builds an Optimizer over the store and resolver.
func NewOptimizer(store calendar.Store, resolver schedule.LocalTimeResolver) *Optimizer {
	return &Optimizer{store: store, resolver: resolver}
}

// OptimizeSchedule inspects the user's meetings within [start, end) and
// returns a graded report. The report is advisory; nothing is changed.
func (o *Optimizer) OptimizeSchedule(userID string, start, end time.Time) (*OptimizationReport, error) {
	user, err := o.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, calendar.ValidationError("period end %s is not after start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	loc, err := o.resolver.Location(user.Timezone)
	if err != nil {
		return nil, err
	}
	meetings, err := o.store.MeetingsForUser(userID, start, end)
	if err != nil {
		return nil, err
	}

	byDay := groupByLocalDay(meetings, loc)

	var suggestions []OptimizationSuggestion
	suggestions = append(suggestions, focusBlockSuggestions(byDay)...)
	suggestions = append(suggestions, clusteringSuggestion(byDay)...)
	suggestions = append(suggestions, offHoursSuggestions(user, meetings, loc)...)
	suggestions = append(suggestions, recurringReview(meetings)...)

	score := 100
	for _, s := range suggestions {
		switch s.Priority {
		case PriorityHigh:
			score -= 25
		case PriorityMedium:
			score -= 15
		default:
			score -= 10
		}
	}
	if score < 0 {
		score = 0
	}

	return &OptimizationReport{
		UserID:      userID,
		Score:       score,
		Suggestions: suggestions,
	}, nil
}

// groupByLocalDay buckets meetings by their local start day, keeping each
// day's meetings in start order.
func groupByLocalDay(meetings []*calendar.Meeting, loc *time.Location) map[string][]*calendar.Meeting {
	byDay := make(map[string][]*calendar.Meeting)
	for _, m := range meetings {
		day := m.Start.In(loc).Format("2006-01-02")
		byDay[day] = append(byDay[day], m)
	}
	return byDay
}

func sortedDays(byDay map[string][]*calendar.Meeting) []string {
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// focusBlockSuggestions flags days with three or more meetings and no gap
// of at least two hours between consecutive ones.
func focusBlockSuggestions(byDay map[string][]*calendar.Meeting) []OptimizationSuggestion {
	var out []OptimizationSuggestion
	for _, day := range sortedDays(byDay) {
		meetings := byDay[day]
		if len(meetings) < 3 {
			continue
		}
		hasFocus := false
		for i := 0; i+1 < len(meetings); i++ {
			if meetings[i+1].Start.Sub(meetings[i].End) >= minFocusBlock {
				hasFocus = true
				break
			}
		}
		if !hasFocus {
			out = append(out, OptimizationSuggestion{
				Priority: PriorityHigh,
				Category: "focus_time",
				Detail:   fmt.Sprintf("no 2-hour focus block on %s; consolidate meetings to free one", day),
			})
		}
	}
	return out
}

// clusteringSuggestion flags schedules where meetings sprawl across the
// day instead of clustering: more than 30% of busy days have over two
// meetings spread across a span wider than six hours.
func clusteringSuggestion(byDay map[string][]*calendar.Meeting) []OptimizationSuggestion {
	if len(byDay) == 0 {
		return nil
	}
	sprawling := 0
	for _, meetings := range byDay {
		if len(meetings) <= 2 {
			continue
		}
		span := meetings[len(meetings)-1].End.Sub(meetings[0].Start)
		if span > 6*time.Hour {
			sprawling++
		}
	}
	if float64(sprawling) > 0.3*float64(len(byDay)) {
		return []OptimizationSuggestion{{
			Priority: PriorityMedium,
			Category: "clustering",
			Detail:   "meetings are spread across the day; cluster them into blocks to protect focus time",
		}}
	}
	return nil
}

// offHoursSuggestions flags meetings outside the user's local work hours.
func offHoursSuggestions(user *calendar.User, meetings []*calendar.Meeting, loc *time.Location) []OptimizationSuggestion {
	var out []OptimizationSuggestion
	for _, m := range meetings {
		localStart := m.Start.In(loc)
		work, working := user.WorkHours[localStart.Weekday()]
		inHours := working
		if working {
			slot := calendar.ClockRange{
				Start: calendar.ClockTimeOf(localStart),
				End:   calendar.ClockTimeOf(localStart) + calendar.ClockTime(m.Duration()/time.Minute),
			}
			inHours = work.ContainsRange(slot)
		}
		if !inHours {
			out = append(out, OptimizationSuggestion{
				Priority: PriorityMedium,
				Category: "work_hours",
				Detail:   fmt.Sprintf("%q falls outside work hours; move it into the working day", m.Title),
			})
		}
	}
	return out
}

// recurringReview flags a heavy recurring-meeting footprint.
func recurringReview(meetings []*calendar.Meeting) []OptimizationSuggestion {
	recurring := 0
	for _, m := range meetings {
		if m.Recurring {
			recurring++
		}
	}
	if recurring > 5 {
		return []OptimizationSuggestion{{
			Priority: PriorityLow,
			Category: "recurring",
			Detail:   fmt.Sprintf("%d recurring meetings in the period; audit which still earn their slot", recurring),
		}}
	}
	return nil
}
