package calendar

import (
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot is the JSON wire form of a complete calendar: the roster plus
// all meetings. It is how an externally maintained calendar is handed to
// the engine.
type Snapshot struct {
	Users    []*User    `json:"users"`
	Meetings []*Meeting `json:"meetings"`
}

// LoadSnapshot reads a snapshot file and builds a populated MemoryStore.
// Users are loaded before meetings so participant references validate.
func LoadSnapshot(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse calendar snapshot %s: %w", path, err)
	}
	return StoreFromSnapshot(&snap)
}

// StoreFromSnapshot builds a MemoryStore from an in-memory snapshot.
func StoreFromSnapshot(snap *Snapshot) (*MemoryStore, error) {
	store := NewMemoryStore()
	for _, u := range snap.Users {
		if err := store.AddUser(u); err != nil {
			return nil, fmt.Errorf("invalid user %s in snapshot: %w", u.ID, err)
		}
	}
	for _, m := range snap.Meetings {
		if _, err := store.AddMeeting(m); err != nil {
			return nil, fmt.Errorf("invalid meeting %s in snapshot: %w", m.ID, err)
		}
	}
	return store, nil
}

// Snapshot returns the store's current contents in wire form.
func (s *MemoryStore) Snapshot() *Snapshot {
	return &Snapshot{
		Users:    s.Users(),
		Meetings: s.Meetings(),
	}
}
