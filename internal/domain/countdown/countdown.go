package countdown

import (
	"github.com/cockroachdb/errors"
)

// Errors
var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrFinished        = errors.New("countdown finished")
)

// Countdown tracks the remaining time of a single timer.
// It is not safe for concurrent use; one owner drives each instance.
type Countdown struct {
	remaining int
	status    Status
	handler   Handler
}

// New creates an idle countdown loaded with durationSeconds.
func New(durationSeconds int) (*Countdown, error) {
	if durationSeconds < 0 {
		return nil, errors.Wrapf(ErrInvalidDuration, "duration %d", durationSeconds)
	}
	return &Countdown{
		remaining: durationSeconds,
		status:    StatusIdle,
	}, nil
}

// OnEvent registers the event handler, replacing any previous one.
func (c *Countdown) OnEvent(h Handler) {
	c.handler = h
}

// Start transitions to running. It is a no-op when already running.
// A countdown loaded with zero seconds completes immediately.
func (c *Countdown) Start() error {
	switch c.status {
	case StatusRunning:
		return nil
	case StatusFinished:
		return ErrFinished
	}

	if c.remaining == 0 {
		c.complete()
		return nil
	}

	c.status = StatusRunning
	c.emit(EventStateChanged)
	return nil
}

// Pause stops ticking and preserves the remaining time.
func (c *Countdown) Pause() {
	if c.status != StatusRunning {
		return
	}
	c.status = StatusPaused
	c.emit(EventStateChanged)
}

// Reset loads a new duration and clears the running and finished flags.
// On error the previous state is left untouched.
func (c *Countdown) Reset(durationSeconds int) error {
	if durationSeconds < 0 {
		return errors.Wrapf(ErrInvalidDuration, "duration %d", durationSeconds)
	}
	c.remaining = durationSeconds
	c.status = StatusIdle
	c.emit(EventStateChanged)
	return nil
}

// Tick consumes one elapsed second. Ticks outside the running status are ignored.
func (c *Countdown) Tick() {
	if c.status != StatusRunning {
		return
	}

	c.remaining--
	if c.remaining <= 0 {
		c.complete()
		return
	}
	c.emit(EventTick)
}

// Snapshot returns the current state.
func (c *Countdown) Snapshot() State {
	return State{
		RemainingSeconds: c.remaining,
		IsRunning:        c.status == StatusRunning,
		IsFinished:       c.status == StatusFinished,
	}
}

// Status returns the current lifecycle status.
func (c *Countdown) Status() Status {
	return c.status
}

// IsRunning reports whether the countdown is ticking.
func (c *Countdown) IsRunning() bool {
	return c.status == StatusRunning
}

// Remaining returns the remaining seconds.
func (c *Countdown) Remaining() int {
	return c.remaining
}

func (c *Countdown) complete() {
	c.remaining = 0
	c.status = StatusFinished
	c.emit(EventCompleted)
}

func (c *Countdown) emit(t EventType) {
	if c.handler == nil {
		return
	}
	c.handler(Event{
		Type:             t,
		Status:           c.status,
		RemainingSeconds: c.remaining,
	})
}
