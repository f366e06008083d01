package timer

import "fmt"

// Phase is the current half of the focus/break cycle.
type Phase string

const (
	PhaseFocus Phase = "FOCUS"
	PhaseBreak Phase = "BREAK"
)

// EventType identifies a phase completion.
type EventType string

const (
	EventSessionCompleted EventType = "session_completed"
	EventBreakCompleted   EventType = "break_completed"
)

// Notification is the user-facing message attached to a completion.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Event is emitted once each time a phase counts down to zero.
type Event struct {
	Type            EventType    `json:"type"`
	DurationMinutes int          `json:"durationMinutes,omitempty"`
	Notification    Notification `json:"notification"`
}

func sessionCompleted(minutes int) Event {
	return Event{
		Type:            EventSessionCompleted,
		DurationMinutes: minutes,
		Notification: Notification{
			Title: "Focus Session Complete!",
			Body:  fmt.Sprintf("Great job! You focused for %d minutes. Time for a break.", minutes),
		},
	}
}

func breakCompleted() Event {
	return Event{
		Type: EventBreakCompleted,
		Notification: Notification{
			Title: "Break Complete!",
			Body:  "Ready for another focus session?",
		},
	}
}
