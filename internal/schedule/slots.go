package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/meetwise/meetwise/internal/calendar"
)

// ScoreFactor is one named, weighted component of a slot's quality score.
// Representing the weighting as data keeps the scheme tunable without
// touching the ranking algorithm.
type ScoreFactor struct {
	Name   string  `json:"name"`
	Raw    float64 `json:"raw_value"`
	Weight float64 `json:"weight"`
}

// Contribution is the factor's weighted contribution to the total score.
func (f ScoreFactor) Contribution() float64 {
	return f.Raw * f.Weight
}

// SlotCandidate is a hypothetical meeting placement with its quality score
// and the reasons that produced it. Candidates are ephemeral; they are
// never persisted or cached across calls.
type SlotCandidate struct {
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"-"`
	Score    float64       `json:"score"`
	Factors  []ScoreFactor `json:"factors"`
	Reasons  []string      `json:"reasons"`
}

// End returns the slot's end instant.
func (s SlotCandidate) End() time.Time {
	return s.Start.Add(s.Duration)
}

// RecommenderConfig holds the tunable knobs of slot recommendation. The
// optimal bands and weights are heuristic defaults, exposed as
// configuration rather than hardcoded.
type RecommenderConfig struct {
	// Granularity is the step between candidate start instants.
	Granularity time.Duration

	// MorningBand and AfternoonBand are the local-time bands considered
	// prime meeting time.
	MorningBand   calendar.ClockRange
	AfternoonBand calendar.ClockRange

	// PreferredStartTolerance is how far from a user's preferred start a
	// slot can be and still earn partial credit.
	PreferredStartTolerance time.Duration

	// Factor weights. DailyLoadWeight should be negative: it penalizes
	// busy days.
	PreferredStartWeight float64
	OptimalBandWeight    float64
	DailyLoadWeight      float64
	LengthMatchWeight    float64

	// DefaultMaxResults applies when the caller passes maxResults <= 0.
	DefaultMaxResults int
}

// DefaultRecommenderConfig returns the standard recommendation knobs.
func DefaultRecommenderConfig() RecommenderConfig {
	return RecommenderConfig{
		Granularity:             15 * time.Minute,
		MorningBand:             calendar.ClockRange{Start: calendar.MustClockTime("10:00"), End: calendar.MustClockTime("11:30")},
		AfternoonBand:           calendar.ClockRange{Start: calendar.MustClockTime("14:00"), End: calendar.MustClockTime("15:30")},
		PreferredStartTolerance: 2 * time.Hour,
		PreferredStartWeight:    1.5,
		OptimalBandWeight:       1.0,
		DailyLoadWeight:         -0.15,
		LengthMatchWeight:       0.5,
		DefaultMaxResults:       10,
	}
}

// Factor names used in slot score breakdowns.
const (
	FactorPreferredStart = "preferred_start"
	FactorOptimalBand    = "optimal_band"
	FactorDailyLoad      = "daily_load"
	FactorLengthMatch    = "length_match"
)

// Recommender finds and ranks candidate meeting slots.
type Recommender struct {
	store    calendar.Store
	detector *Detector
	resolver LocalTimeResolver
	cfg      RecommenderConfig
}

// NewRecommender builds a Recommender sharing the detector's store and
// resolver.
func NewRecommender(store calendar.Store, detector *Detector, resolver LocalTimeResolver, cfg RecommenderConfig) *Recommender {
	return &Recommender{store: store, detector: detector, resolver: resolver, cfg: cfg}
}

// participantView bundles everything the scoring loop needs per user.
type participantView struct {
	user     *calendar.User
	loc      *time.Location
	dayLoad  map[string]int // local day -> existing meeting count
	duration time.Duration
}

// FindOptimalSlots enumerates candidate start instants at the configured
// granularity across [rangeStart, rangeEnd), filters out anything that
// violates a participant's availability or would create a conflict, and
// returns the top maxResults candidates ordered by score descending, ties
// broken by earliest start. An empty result is a valid outcome, not an
// error.
func (r *Recommender) FindOptimalSlots(participants []string, duration time.Duration, rangeStart, rangeEnd time.Time, maxResults int) ([]SlotCandidate, error) {
	if duration <= 0 {
		return nil, calendar.ValidationError("slot duration must be positive, got %s", duration)
	}
	if !rangeEnd.After(rangeStart) {
		return nil, calendar.ValidationError("date range end %s is not after start %s",
			rangeEnd.Format(time.RFC3339), rangeStart.Format(time.RFC3339))
	}
	if len(participants) == 0 {
		return nil, calendar.ValidationError("participant set must not be empty")
	}
	if maxResults <= 0 {
		maxResults = r.cfg.DefaultMaxResults
	}

	views, err := r.participantViews(participants, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	var candidates []SlotCandidate
	for start := rangeStart.Truncate(r.cfg.Granularity); !start.Add(duration).After(rangeEnd); start = start.Add(r.cfg.Granularity) {
		if start.Before(rangeStart) {
			continue
		}
		ok, err := r.available(views, participants, start, duration)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		candidates = append(candidates, r.score(views, start, duration))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Start.Before(candidates[j].Start)
	})
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates, nil
}

// participantViews resolves users, their locations, and their existing
// per-day meeting counts for the search range.
func (r *Recommender) participantViews(participants []string, rangeStart, rangeEnd time.Time) ([]*participantView, error) {
	views := make([]*participantView, 0, len(participants))
	for _, id := range participants {
		user, err := r.store.GetUser(id)
		if err != nil {
			return nil, err
		}
		loc, err := r.resolver.Location(user.Timezone)
		if err != nil {
			return nil, err
		}
		// A day's margin on each side so local-day counts near the range
		// edges are complete.
		meetings, err := r.store.MeetingsForUser(id,
			rangeStart.Add(-24*time.Hour), rangeEnd.Add(24*time.Hour))
		if err != nil {
			return nil, err
		}
		load := make(map[string]int)
		for _, m := range meetings {
			load[localDay(m.Start, loc)]++
		}
		views = append(views, &participantView{user: user, loc: loc, dayLoad: load})
	}
	return views, nil
}

// available reports whether the slot fits every participant: entirely
// inside that weekday's work window, clear of no-meeting windows, and free
// of conflicts per WouldConflict.
func (r *Recommender) available(views []*participantView, participants []string, start time.Time, duration time.Duration) (bool, error) {
	for _, v := range views {
		localStart := start.In(v.loc)
		localEnd := start.Add(duration).In(v.loc)

		// A slot crossing local midnight cannot fit a single day's window.
		if localStart.YearDay() != localEnd.YearDay() && calendar.ClockTimeOf(localEnd) != 0 {
			return false, nil
		}

		work, working := v.user.WorkHours[localStart.Weekday()]
		if !working {
			return false, nil
		}
		slotRange := calendar.ClockRange{
			Start: calendar.ClockTimeOf(localStart),
			End:   calendar.ClockTimeOf(localStart) + calendar.ClockTime(duration/time.Minute),
		}
		if !work.ContainsRange(slotRange) {
			return false, nil
		}
		for _, blocked := range v.user.Preferences.NoMeetingWindows {
			if blocked.Overlaps(slotRange) {
				return false, nil
			}
		}
	}

	conflicts, err := r.detector.WouldConflict(&calendar.Meeting{
		Title:        "candidate slot",
		Participants: participants,
		Start:        start,
		End:          start.Add(duration),
	})
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// score computes the weighted factor score for a surviving candidate.
func (r *Recommender) score(views []*participantView, start time.Time, duration time.Duration) SlotCandidate {
	var (
		prefSum, prefCount float64
		bandHits           float64
		loadSum            float64
		lengthHits         float64
	)
	durationMinutes := int(duration / time.Minute)

	for _, v := range views {
		localStart := start.In(v.loc)
		localClock := calendar.ClockTimeOf(localStart)

		if pref := v.user.Preferences.PreferredStartTime; pref != nil {
			deltaMin := float64(localClock - *pref)
			if deltaMin < 0 {
				deltaMin = -deltaMin
			}
			tolMin := r.cfg.PreferredStartTolerance.Minutes()
			proximity := 1 - deltaMin/tolMin
			if proximity < 0 {
				proximity = 0
			}
			prefSum += proximity
			prefCount++
		}

		if r.cfg.MorningBand.Contains(localClock) || r.cfg.AfternoonBand.Contains(localClock) {
			bandHits++
		}

		loadSum += float64(v.dayLoad[localDay(start, v.loc)])

		if v.user.Preferences.PreferredMeetingLength == durationMinutes {
			lengthHits++
		}
	}

	n := float64(len(views))
	factors := []ScoreFactor{
		{Name: FactorPreferredStart, Raw: safeDiv(prefSum, prefCount), Weight: r.cfg.PreferredStartWeight},
		{Name: FactorOptimalBand, Raw: bandHits / n, Weight: r.cfg.OptimalBandWeight},
		{Name: FactorDailyLoad, Raw: loadSum / n, Weight: r.cfg.DailyLoadWeight},
		{Name: FactorLengthMatch, Raw: lengthHits / n, Weight: r.cfg.LengthMatchWeight},
	}

	var score float64
	for _, f := range factors {
		score += f.Contribution()
	}

	return SlotCandidate{
		Start:    start,
		Duration: duration,
		Score:    score,
		Factors:  factors,
		Reasons:  slotReasons(factors, n),
	}
}

// slotReasons renders the human-readable reasons behind a score.
func slotReasons(factors []ScoreFactor, participants float64) []string {
	var reasons []string
	for _, f := range factors {
		switch f.Name {
		case FactorPreferredStart:
			if f.Raw >= 0.5 {
				reasons = append(reasons, "within preferred start time")
			}
		case FactorOptimalBand:
			if f.Raw >= 0.5 {
				reasons = append(reasons, "falls in a mid-morning or early-afternoon band")
			}
		case FactorDailyLoad:
			if f.Raw <= 1 {
				reasons = append(reasons, "avoids overloaded days")
			} else {
				reasons = append(reasons, fmt.Sprintf("average of %.1f existing meetings that day", f.Raw))
			}
		case FactorLengthMatch:
			if f.Raw == 1 && participants > 0 {
				reasons = append(reasons, "matches preferred meeting length")
			}
		}
	}
	return reasons
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
