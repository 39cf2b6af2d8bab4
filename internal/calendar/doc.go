// Package calendar holds the canonical data model for users and meetings
// and the Store that owns them.
//
// The package provides:
//   - User and Meeting types with their validation invariants
//   - Local clock-time types (ClockTime, ClockRange, WorkHours) used to
//     express per-weekday work hours and recurring no-meeting windows
//   - A Store interface with an in-memory implementation
//   - JSON snapshot loading so a calendar can be supplied externally
//   - Deterministic sample data for development and demos
//
// All meeting instants are stored as UTC; timezone resolution is the
// concern of the schedule package. The Store is a dumb, consistent ledger:
// it validates structural invariants on write but performs no conflict
// checking. Callers that care about conflicts must consult the schedule
// package before committing a meeting.
package calendar
