package calendar

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the read/write contract the advisory engines require. The Store
// exclusively owns the canonical User and Meeting collections; engines get
// defensive copies and commit changes only through AddMeeting and
// SetEffectivenessScore.
type Store interface {
	// GetUser returns the user with the given id, or a NotFound error.
	GetUser(id string) (*User, error)

	// Users returns all users, ordered by id.
	Users() []*User

	// GetMeeting returns the meeting with the given id, or a NotFound error.
	GetMeeting(id string) (*Meeting, error)

	// Meetings returns all meetings, ordered by start instant then id.
	Meetings() []*Meeting

	// MeetingsForUser returns all meetings the user participates in whose
	// [start,end) interval intersects the query window, ordered by start
	// instant. Returns a NotFound error for an unknown user.
	MeetingsForUser(id string, start, end time.Time) ([]*Meeting, error)

	// AddMeeting validates the meeting, assigns an identifier if absent,
	// stores it, and returns the stored copy. On validation failure the
	// store is left unchanged.
	AddMeeting(m *Meeting) (*Meeting, error)

	// SetEffectivenessScore records a score in [1,5] for an existing meeting.
	SetEffectivenessScore(id string, score float64) error
}

// MemoryStore is the in-memory Store implementation. It is safe for
// concurrent use; all reads return defensive copies.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*User
	meetings map[string]*Meeting
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*User),
		meetings: make(map[string]*Meeting),
	}
}

// AddUser validates and stores a user. Existing users with the same id are
// replaced.
func (s *MemoryStore) AddUser(u *User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u.Clone()
	return nil
}

// GetUser implements Store.
func (s *MemoryStore) GetUser(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, NotFoundError("user", id)
	}
	return u.Clone(), nil
}

// Users implements Store.
func (s *MemoryStore) Users() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetMeeting implements Store.
func (s *MemoryStore) GetMeeting(id string) (*Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meetings[id]
	if !ok {
		return nil, NotFoundError("meeting", id)
	}
	return m.Clone(), nil
}

// Meetings implements Store.
func (s *MemoryStore) Meetings() []*Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Meeting, 0, len(s.meetings))
	for _, m := range s.meetings {
		out = append(out, m.Clone())
	}
	sortMeetings(out)
	return out
}

// MeetingsForUser implements Store.
func (s *MemoryStore) MeetingsForUser(id string, start, end time.Time) ([]*Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[id]; !ok {
		return nil, NotFoundError("user", id)
	}
	var out []*Meeting
	for _, m := range s.meetings {
		if m.HasParticipant(id) && m.Overlaps(start, end) {
			out = append(out, m.Clone())
		}
	}
	sortMeetings(out)
	return out, nil
}

// AddMeeting implements Store.
func (s *MemoryStore) AddMeeting(m *Meeting) (*Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(m.Participants) == 0 {
		return nil, ValidationError("meeting has no participants")
	}
	if !m.End.After(m.Start) {
		return nil, ValidationError("meeting end %s is not after start %s",
			m.End.Format(time.RFC3339), m.Start.Format(time.RFC3339))
	}
	for _, p := range m.Participants {
		if _, ok := s.users[p]; !ok {
			return nil, ValidationError("unknown participant %q", p)
		}
	}

	stored := m.Clone()
	if stored.Organizer == "" {
		stored.Organizer = stored.Participants[0]
	} else if !stored.HasParticipant(stored.Organizer) {
		return nil, ValidationError("organizer %q is not a participant", stored.Organizer)
	}
	if stored.Type == "" {
		stored.Type = TypeOther
	}
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Start = stored.Start.UTC()
	stored.End = stored.End.UTC()

	s.meetings[stored.ID] = stored
	return stored.Clone(), nil
}

// SetEffectivenessScore implements Store.
func (s *MemoryStore) SetEffectivenessScore(id string, score float64) error {
	if score < 1 || score > 5 {
		return ValidationError("effectiveness score %.2f outside [1,5]", score)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meetings[id]
	if !ok {
		return NotFoundError("meeting", id)
	}
	m.EffectivenessScore = &score
	return nil
}

func sortMeetings(ms []*Meeting) {
	sort.Slice(ms, func(i, j int) bool {
		if !ms[i].Start.Equal(ms[j].Start) {
			return ms[i].Start.Before(ms[j].Start)
		}
		return ms[i].ID < ms[j].ID
	})
}
