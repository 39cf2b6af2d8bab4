// Package agenda generates agenda suggestions for meetings from a topic,
// a participant list, and a small library of per-type templates.
package agenda
