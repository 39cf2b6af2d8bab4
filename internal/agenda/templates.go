package agenda

import "github.com/meetwise/meetwise/internal/calendar"

// templates holds the base agenda for each meeting type that has a
// structured shape. Types without a template fall back to a single
// discussion item.
var templates = map[calendar.MeetingType][]string{
	calendar.TypeStandup: {
		"What did you accomplish yesterday?",
		"What are you working on today?",
		"Any blockers or challenges?",
		"Team updates and announcements",
	},
	calendar.TypeReview: {
		"Review previous action items",
		"Discuss project progress",
		"Identify risks and issues",
		"Plan next steps",
		"Assign action items",
	},
	calendar.TypePlanning: {
		"Define project scope and objectives",
		"Identify key deliverables",
		"Estimate timelines and resources",
		"Assign responsibilities",
		"Set milestones and checkpoints",
	},
	calendar.TypeBrainstorm: {
		"Problem statement review",
		"Idea generation session",
		"Evaluate and prioritize ideas",
		"Action plan development",
		"Next steps and ownership",
	},
	calendar.TypeOneOnOne: {
		"Performance and goal review",
		"Current project discussion",
		"Career development topics",
		"Feedback and concerns",
		"Action items and follow-ups",
	},
}

// Template returns a copy of the base agenda for the meeting type.
func Template(mt calendar.MeetingType) []string {
	base, ok := templates[mt]
	if !ok {
		return []string{"Meeting discussion"}
	}
	out := make([]string, len(base))
	copy(out, base)
	return out
}
