package insight

import (
	"sort"
	"time"

	"github.com/meetwise/meetwise/internal/calendar"
)

// Period names accepted by AnalyzePatterns.
const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
)

// PeriodDays maps a period name to its length in days. Unknown names fall
// back to a month.
func PeriodDays(period string) int {
	switch period {
	case PeriodWeek:
		return 7
	case PeriodQuarter:
		return 90
	default:
		return 30
	}
}

// PatternReport summarizes a user's meeting behavior over a period.
type PatternReport struct {
	UserID             string         `json:"user_id"`
	Period             string         `json:"period"`
	TotalMeetings      int            `json:"total_meetings"`
	TotalHours         float64        `json:"total_hours"`
	AvgDurationMinutes float64        `json:"average_duration_minutes"`
	AvgEffectiveness   float64        `json:"average_effectiveness"`
	TypeDistribution   map[string]int `json:"type_distribution"`
	WeekdayCounts      map[string]int `json:"weekday_distribution"`
	PeakHour           int            `json:"peak_meeting_hour"`
	Recommendations    []string       `json:"recommendations,omitempty"`
}

// Analyzer computes meeting-pattern reports.
type Analyzer struct {
	store calendar.Store
}

// NewAnalyzer builds an Analyzer over the store.
func NewAnalyzer(store calendar.Store) *Analyzer {
	return &Analyzer{store: store}
}

// AnalyzePatterns aggregates the user's meetings over the period ending at
// now. A user with no meetings yields an empty report, not an error.
func (a *Analyzer) AnalyzePatterns(userID, period string, now time.Time) (*PatternReport, error) {
	end := now.UTC()
	start := end.AddDate(0, 0, -PeriodDays(period))

	meetings, err := a.store.MeetingsForUser(userID, start, end)
	if err != nil {
		return nil, err
	}

	report := &PatternReport{
		UserID:           userID,
		Period:           period,
		TotalMeetings:    len(meetings),
		TypeDistribution: make(map[string]int),
		WeekdayCounts:    make(map[string]int),
	}
	if len(meetings) == 0 {
		return report, nil
	}

	var totalMinutes float64
	var effSum float64
	var effCount int
	hourCounts := make(map[int]int)

	for _, m := range meetings {
		totalMinutes += m.Duration().Minutes()
		report.TypeDistribution[string(m.Type)]++
		report.WeekdayCounts[m.Start.UTC().Weekday().String()]++
		hourCounts[m.Start.UTC().Hour()]++
		if m.EffectivenessScore != nil {
			effSum += *m.EffectivenessScore
			effCount++
		}
	}

	report.TotalHours = totalMinutes / 60
	report.AvgDurationMinutes = totalMinutes / float64(len(meetings))
	if effCount > 0 {
		report.AvgEffectiveness = effSum / float64(effCount)
	}
	report.PeakHour = peakHour(hourCounts)
	report.Recommendations = patternRecommendations(meetings, report)
	return report, nil
}

// peakHour returns the hour with the most meeting starts; ties resolve to
// the earliest hour so the report is deterministic.
func peakHour(counts map[int]int) int {
	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	best, bestCount := 0, -1
	for _, h := range hours {
		if counts[h] > bestCount {
			best, bestCount = h, counts[h]
		}
	}
	return best
}

func patternRecommendations(meetings []*calendar.Meeting, report *PatternReport) []string {
	var out []string

	days := make(map[string]int)
	for _, m := range meetings {
		days[m.Start.UTC().Format("2006-01-02")]++
	}
	if len(days) > 0 && float64(len(meetings))/float64(len(days)) > 6 {
		out = append(out, "daily meeting load is high; consider declining or consolidating")
	}

	if report.AvgEffectiveness > 0 && report.AvgEffectiveness < 3 {
		out = append(out, "average effectiveness is below 3; review agendas and attendee lists")
	}

	long := 0
	for _, m := range meetings {
		if m.Duration() > 90*time.Minute {
			long++
		}
	}
	if float64(long) > 0.3*float64(len(meetings)) {
		out = append(out, "many meetings run over 90 minutes; break them into shorter sessions")
	}

	adjacent := 0
	for i := 0; i+1 < len(meetings); i++ {
		if !meetings[i+1].Start.After(meetings[i].End) {
			adjacent++
		}
	}
	if float64(adjacent) > 0.2*float64(len(meetings)) {
		out = append(out, "schedule buffer time between meetings to avoid fatigue")
	}

	return out
}
