// Package timer provides the adjustable countdown widget.
package timer

import (
	"github.com/cockroachdb/errors"

	"github.com/osa030/focusbox/internal/domain/countdown"
)

// DefaultSeconds is the duration loaded when no other is given.
const DefaultSeconds = 5 * 60

const maxMinutes = 59

// Preset is a quick-pick duration.
type Preset struct {
	Label   string
	Minutes int
	Seconds int
}

// Total returns the preset duration in seconds.
func (p Preset) Total() int {
	return p.Minutes*60 + p.Seconds
}

// Presets are the quick-pick durations offered by the widget.
var Presets = []Preset{
	{Label: "30s", Minutes: 0, Seconds: 30},
	{Label: "1m", Minutes: 1, Seconds: 0},
	{Label: "2m", Minutes: 2, Seconds: 0},
	{Label: "5m", Minutes: 5, Seconds: 0},
	{Label: "10m", Minutes: 10, Seconds: 0},
	{Label: "15m", Minutes: 15, Seconds: 0},
}

// Urgency classifies how close the countdown is to the end.
type Urgency int

const (
	UrgencyCalm     Urgency = iota // Less than half elapsed
	UrgencySteady                  // Less than 90% elapsed
	UrgencyCritical                // Final stretch
)

// String returns the string representation of the urgency.
func (u Urgency) String() string {
	switch u {
	case UrgencyCalm:
		return "calm"
	case UrgencySteady:
		return "steady"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Timer wraps a countdown with the editable input duration.
type Timer struct {
	countdown *countdown.Countdown
	minutes   int
	seconds   int
}

// New creates a timer loaded with totalSeconds.
func New(totalSeconds int) (*Timer, error) {
	c, err := countdown.New(totalSeconds)
	if err != nil {
		return nil, err
	}
	return &Timer{
		countdown: c,
		minutes:   totalSeconds / 60,
		seconds:   totalSeconds % 60,
	}, nil
}

// Countdown returns the underlying engine.
func (t *Timer) Countdown() *countdown.Countdown {
	return t.countdown
}

// Initial returns the configured duration in seconds.
func (t *Timer) Initial() int {
	return t.minutes*60 + t.seconds
}

// Input returns the configured minutes and seconds.
func (t *Timer) Input() (minutes, seconds int) {
	return t.minutes, t.seconds
}

// Editable reports whether the input duration may be changed.
func (t *Timer) Editable() bool {
	switch t.countdown.Status() {
	case countdown.StatusRunning, countdown.StatusFinished:
		return false
	default:
		return true
	}
}

// Set loads a new input duration and stops the countdown.
func (t *Timer) Set(minutes, seconds int) error {
	if minutes < 0 || seconds < 0 || seconds > 59 {
		return errors.Wrapf(countdown.ErrInvalidDuration, "%dm%ds", minutes, seconds)
	}
	total := minutes*60 + seconds
	if err := t.countdown.Reset(total); err != nil {
		return err
	}
	t.minutes, t.seconds = minutes, seconds
	return nil
}

// ApplyPreset loads a quick-pick duration.
func (t *Timer) ApplyPreset(p Preset) error {
	return t.Set(p.Minutes, p.Seconds)
}

// AdjustMinutes moves the input minutes by delta, clamped to 0..59.
func (t *Timer) AdjustMinutes(delta int) error {
	m := t.minutes + delta
	if m < 0 {
		m = 0
	}
	if m > maxMinutes {
		m = maxMinutes
	}
	s := t.seconds
	if m == 0 && s == 0 {
		s = 1
	}
	return t.Set(m, s)
}

// AdjustSeconds moves the input seconds by delta, carrying into minutes.
// The input never drops to 0:00.
func (t *Timer) AdjustSeconds(delta int) error {
	m, s := t.minutes, t.seconds+delta
	switch {
	case s >= 60:
		s = 0
		m = min(maxMinutes, m+1)
	case s < 0:
		s = 59
		m = max(0, m-1)
	}
	if m == 0 && s == 0 {
		s = 1
	}
	return t.Set(m, s)
}

// Toggle starts or pauses the countdown. A finished countdown is reset instead.
func (t *Timer) Toggle() error {
	switch t.countdown.Status() {
	case countdown.StatusFinished:
		return t.Reset()
	case countdown.StatusRunning:
		t.countdown.Pause()
		return nil
	default:
		return t.countdown.Start()
	}
}

// Reset reloads the configured duration.
func (t *Timer) Reset() error {
	return t.countdown.Reset(t.Initial())
}

// Progress returns the elapsed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	initial := t.Initial()
	if initial <= 0 {
		return 0
	}
	return float64(initial-t.countdown.Remaining()) / float64(initial)
}

// Urgency classifies the current progress for display.
func (t *Timer) Urgency() Urgency {
	progress := t.Progress()
	switch {
	case t.countdown.Remaining() <= 5:
		return UrgencyCritical
	case progress < 0.5:
		return UrgencyCalm
	case progress < 0.9:
		return UrgencySteady
	default:
		return UrgencyCritical
	}
}
