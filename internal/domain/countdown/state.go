// Package countdown provides the single-timer countdown state machine.
package countdown

// Status represents the countdown lifecycle status.
type Status int

const (
	StatusIdle     Status = iota // Loaded but never started since the last reset
	StatusRunning                // Ticking
	StatusPaused                 // Stopped with remaining time preserved
	StatusFinished               // Reached zero; terminal until Reset
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// State is the observable countdown state.
// Finished implies RemainingSeconds == 0 and !IsRunning.
type State struct {
	RemainingSeconds int
	IsRunning        bool
	IsFinished       bool
}
