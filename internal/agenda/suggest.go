package agenda

import (
	"strings"

	"github.com/meetwise/meetwise/internal/calendar"
)

const closingItem = "Action items and next steps"

// ClassifyTopic infers a meeting type from the topic text. A two-person
// meeting with no recognizable topic keywords is treated as a one-on-one;
// anything else defaults to a review.
func ClassifyTopic(topic string, participantCount int) calendar.MeetingType {
	lower := strings.ToLower(topic)
	switch {
	case containsAny(lower, "standup", "daily", "sync"):
		return calendar.TypeStandup
	case containsAny(lower, "review", "retrospective"):
		return calendar.TypeReview
	case containsAny(lower, "planning", "plan"):
		return calendar.TypePlanning
	case containsAny(lower, "brainstorm", "ideation", "creative"):
		return calendar.TypeBrainstorm
	case participantCount == 2:
		return calendar.TypeOneOnOne
	default:
		return calendar.TypeReview
	}
}

// Suggest builds an agenda for the topic and participants: the type's base
// template, adjusted for large groups, extended with topic-specific items,
// and always closed with an action-items entry.
func Suggest(topic string, participants []string) []string {
	mt := ClassifyTopic(topic, len(participants))
	items := Template(mt)

	if len(participants) > 5 {
		items = append([]string{"Introductions and attendance"}, items...)
		items = append(items, "Large group coordination")
	}

	lower := strings.ToLower(topic)
	if strings.Contains(lower, "project") {
		items = append(items, "Project timeline review")
	}
	if strings.Contains(lower, "budget") {
		items = append(items, "Budget discussion")
	}
	if strings.Contains(lower, "launch") {
		items = append(items, "Launch preparation checklist")
	}

	for _, item := range items {
		if item == closingItem {
			return items
		}
	}
	return append(items, closingItem)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
