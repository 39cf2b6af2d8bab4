package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MeetingType classifies a meeting. The set is closed; unknown values are
// rejected by ParseMeetingType.
type MeetingType string

// Known meeting types.
const (
	TypeStandup      MeetingType = "standup"
	TypeReview       MeetingType = "review"
	TypePlanning     MeetingType = "planning"
	TypeBrainstorm   MeetingType = "brainstorm"
	TypeOneOnOne     MeetingType = "one_on_one"
	TypePresentation MeetingType = "presentation"
	TypeTraining     MeetingType = "training"
	TypeOther        MeetingType = "other"
)

// MeetingTypes lists all valid meeting types.
var MeetingTypes = []MeetingType{
	TypeStandup, TypeReview, TypePlanning, TypeBrainstorm,
	TypeOneOnOne, TypePresentation, TypeTraining, TypeOther,
}

// ParseMeetingType converts a string into a MeetingType.
// The empty string maps to TypeOther.
func ParseMeetingType(s string) (MeetingType, error) {
	if s == "" {
		return TypeOther, nil
	}
	mt := MeetingType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MeetingTypes {
		if mt == known {
			return mt, nil
		}
	}
	return "", ValidationError("unknown meeting type %q", s)
}

// ClockTime is a local wall-clock time of day, stored as minutes since
// midnight. It is timezone-agnostic; interpreting it requires a location.
type ClockTime int

// ParseClockTime parses "HH:MM" into a ClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, ValidationError("invalid clock time %q (want HH:MM)", s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// MustClockTime is ParseClockTime that panics on error. For constants and tests.
func MustClockTime(s string) ClockTime {
	ct, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return ct
}

// ClockTimeOf extracts the local wall-clock time from an instant that has
// already been shifted into the relevant location.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

// Hour returns the hour component (0-23).
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute returns the minute component (0-59).
func (c ClockTime) Minute() int { return int(c) % 60 }

// String formats the time as "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// MarshalJSON encodes the clock time as a "HH:MM" string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a "HH:MM" string.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ct, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = ct
	return nil
}

// ClockRange is a half-open [Start, End) interval of local clock time
// within a single day.
type ClockRange struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Valid reports whether the range is well-formed (start before end).
func (r ClockRange) Valid() bool { return r.Start < r.End }

// Contains reports whether t falls inside the half-open range.
func (r ClockRange) Contains(t ClockTime) bool {
	return t >= r.Start && t < r.End
}

// ContainsRange reports whether other lies entirely within r.
// A range touching r's end is still contained: a 09:00-17:00 work window
// admits a meeting ending exactly at 17:00.
func (r ClockRange) ContainsRange(other ClockRange) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps reports whether the two half-open ranges intersect on more than
// a single instant. Touching endpoints do not overlap.
func (r ClockRange) Overlaps(other ClockRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// WorkHours maps weekdays to the local work window for that day.
// Days absent from the map are non-working days.
type WorkHours map[time.Weekday]ClockRange

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// MarshalJSON encodes work hours keyed by lowercase weekday name.
func (w WorkHours) MarshalJSON() ([]byte, error) {
	out := make(map[string]ClockRange, len(w))
	for day, r := range w {
		out[strings.ToLower(day.String())] = r
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes work hours keyed by lowercase weekday name.
func (w *WorkHours) UnmarshalJSON(data []byte) error {
	var raw map[string]ClockRange
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(WorkHours, len(raw))
	for name, r := range raw {
		day, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return ValidationError("unknown weekday %q in work hours", name)
		}
		out[day] = r
	}
	*w = out
	return nil
}

// Weekdays is a convenience constructor that applies the same window to
// Monday through Friday.
func Weekdays(start, end ClockTime) WorkHours {
	r := ClockRange{Start: start, End: end}
	return WorkHours{
		time.Monday:    r,
		time.Tuesday:   r,
		time.Wednesday: r,
		time.Thursday:  r,
		time.Friday:    r,
	}
}

// Preferences captures a user's scheduling preferences.
type Preferences struct {
	// MaxMeetingsPerDay is the daily meeting count above which the user is
	// considered overloaded. Zero means no meetings are acceptable.
	MaxMeetingsPerDay int `json:"max_meetings_per_day"`

	// PreferredMeetingLength is the user's preferred duration in minutes.
	PreferredMeetingLength int `json:"preferred_meeting_length"`

	// NoMeetingWindows are recurring daily local-time intervals the user
	// has blocked regardless of availability.
	NoMeetingWindows []ClockRange `json:"no_meeting_windows,omitempty"`

	// PreferredStartTime, when set, is the local clock time the user likes
	// meetings to start at.
	PreferredStartTime *ClockTime `json:"preferred_start_time,omitempty"`
}

// User is a member of the roster with a home timezone and availability.
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	Timezone    string      `json:"timezone"`
	WorkHours   WorkHours   `json:"work_hours"`
	Preferences Preferences `json:"preferences"`
}

// Validate checks the user's structural invariants.
func (u *User) Validate() error {
	if u.ID == "" {
		return ValidationError("user id must not be empty")
	}
	if u.Timezone == "" {
		return ValidationError("user %s has no timezone", u.ID)
	}
	for day, r := range u.WorkHours {
		if !r.Valid() {
			return ValidationError("user %s has malformed work hours on %s (%s-%s)",
				u.ID, strings.ToLower(day.String()), r.Start, r.End)
		}
	}
	for _, w := range u.Preferences.NoMeetingWindows {
		if !w.Valid() {
			return ValidationError("user %s has malformed no-meeting window (%s-%s)",
				u.ID, w.Start, w.End)
		}
	}
	if u.Preferences.MaxMeetingsPerDay < 0 {
		return ValidationError("user %s has negative max_meetings_per_day", u.ID)
	}
	return nil
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	out := *u
	out.WorkHours = make(WorkHours, len(u.WorkHours))
	for day, r := range u.WorkHours {
		out.WorkHours[day] = r
	}
	out.Preferences.NoMeetingWindows = append([]ClockRange(nil), u.Preferences.NoMeetingWindows...)
	if u.Preferences.PreferredStartTime != nil {
		ct := *u.Preferences.PreferredStartTime
		out.Preferences.PreferredStartTime = &ct
	}
	return &out
}

// Meeting is a scheduled event. Start and End are absolute UTC instants;
// the interval is half-open [Start, End).
type Meeting struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Participants []string    `json:"participants"`
	Organizer    string      `json:"organizer"`
	Start        time.Time   `json:"start"`
	End          time.Time   `json:"end"`
	Agenda       []string    `json:"agenda,omitempty"`
	Type         MeetingType `json:"meeting_type"`
	Recurring    bool        `json:"recurring"`

	// EffectivenessScore is in [1,5] once the meeting has been scored,
	// nil until then.
	EffectivenessScore *float64 `json:"effectiveness_score,omitempty"`
}

// Duration returns the meeting length.
func (m *Meeting) Duration() time.Duration {
	return m.End.Sub(m.Start)
}

// Overlaps reports whether the meeting's interval intersects [start, end)
// on more than a single instant. Touching endpoints do not overlap.
func (m *Meeting) Overlaps(start, end time.Time) bool {
	return m.Start.Before(end) && start.Before(m.End)
}

// HasParticipant reports whether the given user participates.
func (m *Meeting) HasParticipant(userID string) bool {
	for _, p := range m.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the meeting.
func (m *Meeting) Clone() *Meeting {
	out := *m
	out.Participants = append([]string(nil), m.Participants...)
	out.Agenda = append([]string(nil), m.Agenda...)
	if m.EffectivenessScore != nil {
		s := *m.EffectivenessScore
		out.EffectivenessScore = &s
	}
	return &out
}
