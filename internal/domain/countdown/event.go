package countdown

// EventType represents a countdown event type.
type EventType int

const (
	EventTick         EventType = iota // One second elapsed while running
	EventStateChanged                  // Status changed (start/pause/reset)
	EventCompleted                     // Remaining time reached zero
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTick:
		return "tick"
	case EventStateChanged:
		return "state_changed"
	case EventCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Event represents a countdown event.
type Event struct {
	Type             EventType
	Status           Status
	RemainingSeconds int
}

// Handler receives countdown events synchronously.
type Handler func(Event)
