// Package schedule implements the scheduling advisory engines: conflict
// detection and optimal-slot recommendation.
//
// The Detector reports overlaps, back-to-back adjacency, and daily-load
// violations for a user's calendar, either over a time window or for a
// hypothetical candidate meeting. The Recommender enumerates candidate
// slots for a participant set, filters them against every participant's
// work hours, no-meeting windows, and conflicts, and ranks the survivors
// with a weighted-factor score.
//
// Both engines map UTC instants into participant-local wall-clock time
// through a LocalTimeResolver so that IANA timezone rules (including DST
// transitions) are honored. They never mutate the Store.
package schedule
