package insight

import (
	"fmt"

	"github.com/meetwise/meetwise/internal/calendar"
)

// Factor names in an effectiveness breakdown.
const (
	FactorDuration     = "duration"
	FactorParticipants = "participants"
	FactorAgenda       = "agenda"
	FactorCongruence   = "type_congruence"
)

// EffectivenessWeights control the blend of the four factors. They are
// data, not code, so the scheme can be tuned without touching the scoring
// algorithm. Weights should sum to 1.
type EffectivenessWeights struct {
	Duration     float64
	Participants float64
	Agenda       float64
	Congruence   float64
}

// DefaultEffectivenessWeights returns the standard factor blend.
func DefaultEffectivenessWeights() EffectivenessWeights {
	return EffectivenessWeights{
		Duration:     0.3,
		Participants: 0.2,
		Agenda:       0.2,
		Congruence:   0.3,
	}
}

// durationRange is an inclusive expected duration band in minutes.
type durationRange struct {
	min, max int
}

// expectedDurations maps each meeting type to the duration band it is
// expected to fit. Outside the band the congruence factor decays with
// distance relative to the band's width.
var expectedDurations = map[calendar.MeetingType]durationRange{
	calendar.TypeStandup:      {10, 20},
	calendar.TypeOneOnOne:     {20, 45},
	calendar.TypeReview:       {30, 60},
	calendar.TypeBrainstorm:   {30, 90},
	calendar.TypePlanning:     {45, 120},
	calendar.TypePresentation: {30, 60},
	calendar.TypeTraining:     {60, 180},
	calendar.TypeOther:        {15, 60},
}

// EffectivenessResult carries the final 1-5 score, the per-factor values
// in [0,1], and improvement suggestions derived from the weak factors.
type EffectivenessResult struct {
	Score       float64            `json:"score"`
	Breakdown   map[string]float64 `json:"breakdown"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

// Scorer computes meeting effectiveness scores.
type Scorer struct {
	weights EffectivenessWeights
}

// NewScorer builds a Scorer with the given weights.
func NewScorer(weights EffectivenessWeights) *Scorer {
	return &Scorer{weights: weights}
}

// ScoreMeeting rates the meeting on duration fit, participant-count fit,
// agenda presence, and type/duration congruence, and blends the factors
// into a score in [1,5]. It is deterministic and never fails for a
// structurally valid meeting.
func (s *Scorer) ScoreMeeting(m *calendar.Meeting) EffectivenessResult {
	minutes := int(m.Duration().Minutes())

	breakdown := map[string]float64{
		FactorDuration:     durationFactor(minutes),
		FactorParticipants: participantFactor(len(m.Participants)),
		FactorAgenda:       agendaFactor(len(m.Agenda)),
		FactorCongruence:   congruenceFactor(m.Type, minutes),
	}

	blended := breakdown[FactorDuration]*s.weights.Duration +
		breakdown[FactorParticipants]*s.weights.Participants +
		breakdown[FactorAgenda]*s.weights.Agenda +
		breakdown[FactorCongruence]*s.weights.Congruence

	return EffectivenessResult{
		Score:       1 + 4*blended,
		Breakdown:   breakdown,
		Suggestions: suggestions(m, minutes, breakdown),
	}
}

// durationFactor peaks at 30-45 minutes and decays linearly outside
// [15, 90], flooring at 0.
func durationFactor(minutes int) float64 {
	d := float64(minutes)
	switch {
	case d >= 30 && d <= 45:
		return 1
	case d >= 15 && d < 30:
		return 0.6 + 0.4*(d-15)/15
	case d > 45 && d <= 90:
		return 1 - 0.6*(d-45)/45
	case d > 90:
		return clampZero(0.4 - 0.4*(d-90)/90)
	case d > 0:
		return 0.6 * d / 15
	default:
		return 0
	}
}

// participantFactor peaks at 3-6 participants, penalizing isolated and
// unfocused sizes.
func participantFactor(count int) float64 {
	switch {
	case count >= 3 && count <= 6:
		return 1
	case count == 2:
		return 0.7
	case count == 1:
		return 0.4
	case count > 6:
		return clampZero(1 - 0.15*float64(count-6))
	default:
		return 0
	}
}

// agendaFactor gives full credit for two or more items and partial credit
// for one.
func agendaFactor(items int) float64 {
	switch {
	case items >= 2:
		return 1
	case items == 1:
		return 0.5
	default:
		return 0
	}
}

// congruenceFactor is 1 inside the type's expected duration band and
// decays with distance, scaled by the band width.
func congruenceFactor(mt calendar.MeetingType, minutes int) float64 {
	band, ok := expectedDurations[mt]
	if !ok {
		band = expectedDurations[calendar.TypeOther]
	}
	if minutes >= band.min && minutes <= band.max {
		return 1
	}
	width := float64(band.max - band.min)
	var dist float64
	if minutes < band.min {
		dist = float64(band.min - minutes)
	} else {
		dist = float64(minutes - band.max)
	}
	return clampZero(1 - dist/width)
}

// suggestions derives improvement advice from the weak factors.
func suggestions(m *calendar.Meeting, minutes int, breakdown map[string]float64) []string {
	var out []string
	if breakdown[FactorDuration] < 0.7 {
		if minutes > 45 {
			out = append(out, fmt.Sprintf("shorten from %d to 45 minutes or less", minutes))
		} else {
			out = append(out, "allow at least 15 minutes for a focused discussion")
		}
	}
	if breakdown[FactorParticipants] < 0.7 {
		if len(m.Participants) > 6 {
			out = append(out, "reduce the participant list to key stakeholders")
		} else {
			out = append(out, "consider whether a meeting is needed for so few people")
		}
	}
	if breakdown[FactorAgenda] < 1 {
		out = append(out, "add a structured agenda with at least two items")
	}
	if breakdown[FactorCongruence] < 0.7 {
		band, ok := expectedDurations[m.Type]
		if !ok {
			band = expectedDurations[calendar.TypeOther]
		}
		out = append(out, fmt.Sprintf("a %s usually runs %d-%d minutes", m.Type, band.min, band.max))
	}
	return out
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
