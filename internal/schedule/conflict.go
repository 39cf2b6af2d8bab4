package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/meetwise/meetwise/internal/calendar"
)

// ConflictKind classifies a detected scheduling conflict.
type ConflictKind string

// Conflict kinds.
const (
	KindOverlap       ConflictKind = "overlap"
	KindBackToBack    ConflictKind = "back_to_back"
	KindDailyOverload ConflictKind = "daily_overload"
)

// Severity ranks how urgent a conflict is.
type Severity string

// Severities.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Conflict describes a single detected problem on a user's calendar.
// Conflicts are derived values, produced fresh per call and never cached.
type Conflict struct {
	UserID   string       `json:"user_id"`
	Kind     ConflictKind `json:"kind"`
	Severity Severity     `json:"severity"`

	// Meeting is the first meeting involved. For a candidate check this is
	// the hypothetical meeting.
	Meeting *calendar.Meeting `json:"meeting,omitempty"`

	// Other is the second meeting involved for overlap and back_to_back
	// conflicts; nil for daily_overload.
	Other *calendar.Meeting `json:"other,omitempty"`

	// Day is the offending local calendar day for daily_overload conflicts,
	// formatted 2006-01-02 in the user's home timezone.
	Day string `json:"day,omitempty"`

	// Count and Limit carry the daily meeting count versus the user's
	// configured maximum for daily_overload conflicts.
	Count int `json:"count,omitempty"`
	Limit int `json:"limit,omitempty"`

	// Detail is a human-readable description of the conflict.
	Detail string `json:"detail"`
}

// DetectorConfig holds the tunable thresholds of the conflict detector.
// The defaults are heuristics, not derived truths; operators can adjust
// them without touching the algorithm.
type DetectorConfig struct {
	// BackToBackGap is the minimum buffer expected between two meetings.
	// Two non-overlapping meetings separated by this much or less are
	// reported as back_to_back. The default of zero flags only immediately
	// adjacent meetings.
	BackToBackGap time.Duration

	// TypicalMeetingLength is the look-back/look-ahead margin used when
	// fetching meetings around the queried window, so adjacency at the
	// window edges is caught. Used when a user has no preferred length.
	TypicalMeetingLength time.Duration
}

// DefaultDetectorConfig returns the standard thresholds.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		BackToBackGap:        0,
		TypicalMeetingLength: 30 * time.Minute,
	}
}

// Detector finds scheduling conflicts against a calendar Store.
// It holds only read dependencies and never mutates the Store.
type Detector struct {
	store    calendar.Store
	resolver LocalTimeResolver
	cfg      DetectorConfig
}

// NewDetector builds a Detector over the given store and resolver.
func NewDetector(store calendar.Store, resolver LocalTimeResolver, cfg DetectorConfig) *Detector {
	return &Detector{store: store, resolver: resolver, cfg: cfg}
}

// margin returns the fetch margin for a user: one typical meeting length,
// preferring the user's own preferred duration.
func (d *Detector) margin(u *calendar.User) time.Duration {
	if u.Preferences.PreferredMeetingLength > 0 {
		return time.Duration(u.Preferences.PreferredMeetingLength) * time.Minute
	}
	return d.cfg.TypicalMeetingLength
}

// FindConflicts reports all conflicts on the user's calendar within
// [start, end). An empty result means a clean calendar, not an error.
func (d *Detector) FindConflicts(userID string, start, end time.Time) ([]Conflict, error) {
	user, err := d.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, calendar.ValidationError("window end %s is not after start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	margin := d.margin(user)
	meetings, err := d.store.MeetingsForUser(userID, start.Add(-margin), end.Add(margin))
	if err != nil {
		return nil, err
	}

	conflicts := d.pairwiseConflicts(user, meetings, start, end)

	overloads, err := d.dailyOverloads(user, meetings, start, end)
	if err != nil {
		return nil, err
	}
	return append(conflicts, overloads...), nil
}

// WouldConflict reports the conflicts that committing the candidate meeting
// would introduce, for every participant. The candidate is treated as a
// hypothetical addition; the Store is not touched.
func (d *Detector) WouldConflict(candidate *calendar.Meeting) ([]Conflict, error) {
	if !candidate.End.After(candidate.Start) {
		return nil, calendar.ValidationError("candidate end %s is not after start %s",
			candidate.End.Format(time.RFC3339), candidate.Start.Format(time.RFC3339))
	}
	if len(candidate.Participants) == 0 {
		return nil, calendar.ValidationError("candidate has no participants")
	}

	var conflicts []Conflict
	for _, userID := range candidate.Participants {
		user, err := d.store.GetUser(userID)
		if err != nil {
			return nil, err
		}
		margin := d.margin(user)
		existing, err := d.store.MeetingsForUser(userID,
			candidate.Start.Add(-margin), candidate.End.Add(margin))
		if err != nil {
			return nil, err
		}

		dayCount := 1 // the candidate itself
		loc, err := d.resolver.Location(user.Timezone)
		if err != nil {
			return nil, err
		}
		candidateDay := localDay(candidate.Start, loc)

		for _, m := range existing {
			if m.ID != "" && m.ID == candidate.ID {
				continue // rescheduling an existing meeting
			}
			if m.Overlaps(candidate.Start, candidate.End) {
				conflicts = append(conflicts, overlapConflict(userID, candidate, m))
				continue
			}
			if gap, ok := gapBetween(candidate, m); ok && gap <= d.cfg.BackToBackGap {
				conflicts = append(conflicts, backToBackConflict(userID, candidate, m, gap))
			}
			if localDay(m.Start, loc) == candidateDay {
				dayCount++
			}
		}

		if max := user.Preferences.MaxMeetingsPerDay; dayCount > max {
			conflicts = append(conflicts, Conflict{
				UserID:   userID,
				Kind:     KindDailyOverload,
				Severity: SeverityLow,
				Meeting:  candidate.Clone(),
				Day:      candidateDay,
				Count:    dayCount,
				Limit:    max,
				Detail: fmt.Sprintf("%s would have %d meetings on %s (max %d)",
					userID, dayCount, candidateDay, max),
			})
		}
	}
	return conflicts, nil
}

// pairwiseConflicts finds overlap and back-to-back conflicts among the
// fetched meetings. Back-to-back fires only when both meetings intersect
// the queried window; margin-only meetings participate in overlap checks
// but do not generate adjacency noise at the edges.
func (d *Detector) pairwiseConflicts(user *calendar.User, meetings []*calendar.Meeting, start, end time.Time) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(meetings); i++ {
		for j := i + 1; j < len(meetings); j++ {
			a, b := meetings[i], meetings[j]
			if a.Overlaps(b.Start, b.End) {
				conflicts = append(conflicts, overlapConflict(user.ID, a, b))
				continue
			}
			if !a.Overlaps(start, end) || !b.Overlaps(start, end) {
				continue
			}
			if gap, ok := gapBetween(a, b); ok && gap <= d.cfg.BackToBackGap {
				conflicts = append(conflicts, backToBackConflict(user.ID, a, b, gap))
			}
		}
	}
	return conflicts
}

// dailyOverloads emits one conflict per local calendar day whose meeting
// count exceeds the user's maximum. Days are reckoned in the user's home
// timezone; only meetings intersecting the queried window are counted.
func (d *Detector) dailyOverloads(user *calendar.User, meetings []*calendar.Meeting, start, end time.Time) ([]Conflict, error) {
	loc, err := d.resolver.Location(user.Timezone)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, m := range meetings {
		if !m.Overlaps(start, end) {
			continue
		}
		counts[localDay(m.Start, loc)]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	var conflicts []Conflict
	max := user.Preferences.MaxMeetingsPerDay
	for _, day := range days {
		if counts[day] <= max {
			continue
		}
		conflicts = append(conflicts, Conflict{
			UserID:   user.ID,
			Kind:     KindDailyOverload,
			Severity: SeverityLow,
			Day:      day,
			Count:    counts[day],
			Limit:    max,
			Detail: fmt.Sprintf("%s has %d meetings on %s (max %d)",
				user.ID, counts[day], day, max),
		})
	}
	return conflicts, nil
}

func overlapConflict(userID string, a, b *calendar.Meeting) Conflict {
	return Conflict{
		UserID:   userID,
		Kind:     KindOverlap,
		Severity: SeverityHigh,
		Meeting:  a.Clone(),
		Other:    b.Clone(),
		Detail:   fmt.Sprintf("%q overlaps %q", a.Title, b.Title),
	}
}

func backToBackConflict(userID string, a, b *calendar.Meeting, gap time.Duration) Conflict {
	return Conflict{
		UserID:   userID,
		Kind:     KindBackToBack,
		Severity: SeverityMedium,
		Meeting:  a.Clone(),
		Other:    b.Clone(),
		Detail: fmt.Sprintf("%q and %q are %s apart",
			a.Title, b.Title, gap),
	}
}

// gapBetween returns the non-negative gap between two non-overlapping
// meetings, earliest end to latest start. ok is false when the meetings
// overlap.
func gapBetween(a, b *calendar.Meeting) (time.Duration, bool) {
	switch {
	case !a.End.After(b.Start):
		return b.Start.Sub(a.End), true
	case !b.End.After(a.Start):
		return a.Start.Sub(b.End), true
	default:
		return 0, false
	}
}

// localDay formats the local calendar day of an instant in the given
// location.
func localDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
