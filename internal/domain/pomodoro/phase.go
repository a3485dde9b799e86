// Package pomodoro provides the work/break cycle built on a countdown.
package pomodoro

// Phase represents the active Pomodoro phase.
type Phase int

const (
	PhaseWork  Phase = iota // Focused work
	PhaseBreak              // Short or long break
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWork:
		return "work"
	case PhaseBreak:
		return "break"
	default:
		return "unknown"
	}
}

// EventType represents a Pomodoro event type.
type EventType int

const (
	EventTick          EventType = iota // One second elapsed in the active phase
	EventStateChanged                   // Started or paused
	EventPhaseComplete                  // Active phase reached zero
	EventPhaseChanged                   // Next phase loaded
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTick:
		return "tick"
	case EventStateChanged:
		return "state_changed"
	case EventPhaseComplete:
		return "phase_complete"
	case EventPhaseChanged:
		return "phase_changed"
	default:
		return "unknown"
	}
}

// Event represents a Pomodoro event.
type Event struct {
	Type             EventType
	Phase            Phase // Phase after the event
	CompletedPhase   Phase // Set for EventPhaseComplete and EventPhaseChanged
	IsLongBreak      bool
	DurationSeconds  int // Duration of the newly loaded phase (EventPhaseChanged)
	RemainingSeconds int
	Running          bool
	CyclesCompleted  int
}

// Handler receives Pomodoro events synchronously.
type Handler func(Event)
