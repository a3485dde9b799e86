// Package cue maps timer events to audible cues and hands them to a sink.
package cue

import (
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/focusbox/internal/domain/countdown"
	"github.com/osa030/focusbox/internal/domain/pomodoro"
)

// Note is a single tone within a sequence.
type Note struct {
	FrequencyHz float64
	OffsetMs    int // Delay from the start of the sequence
	DurationMs  int
}

// Sink plays tones. Implementations must return without waiting for playback.
type Sink interface {
	PlayTone(frequencyHz float64, durationMs int)
	PlaySequence(notes []Note)
}

// WarningSeconds is the countdown tail during which every tick beeps.
const WarningSeconds = 5

var (
	warningTone = Note{FrequencyHz: 600, DurationMs: 100}

	victoryMelody = []Note{
		{FrequencyHz: 523.25, OffsetMs: 0, DurationMs: 150},
		{FrequencyHz: 659.25, OffsetMs: 200, DurationMs: 150},
		{FrequencyHz: 783.99, OffsetMs: 400, DurationMs: 150},
		{FrequencyHz: 1046.5, OffsetMs: 600, DurationMs: 150},
		{FrequencyHz: 1046.5, OffsetMs: 800, DurationMs: 400},
	}
)

// VictoryMelody returns the countdown completion melody.
func VictoryMelody() []Note {
	return append([]Note(nil), victoryMelody...)
}

// PhaseChime returns the three-tone chime played when a Pomodoro phase ends.
// It descends after work and ascends after a break.
func PhaseChime(completed pomodoro.Phase) []Note {
	freqs := []float64{600, 500, 400}
	if completed == pomodoro.PhaseBreak {
		freqs = []float64{400, 500, 600}
	}
	notes := make([]Note, len(freqs))
	for i, f := range freqs {
		notes[i] = Note{FrequencyHz: f, OffsetMs: i * 200, DurationMs: 300}
	}
	return notes
}

// Notifier turns engine events into cues.
type Notifier struct {
	sink Sink
}

// NewNotifier creates a notifier writing to sink.
func NewNotifier(sink Sink) *Notifier {
	return &Notifier{sink: sink}
}

// OnCountdown handles a countdown event.
func (n *Notifier) OnCountdown(e countdown.Event) {
	switch e.Type {
	case countdown.EventTick:
		if e.RemainingSeconds > 0 && e.RemainingSeconds <= WarningSeconds {
			n.sink.PlayTone(warningTone.FrequencyHz, warningTone.DurationMs)
		}
	case countdown.EventCompleted:
		zlog.Debug().Msg("countdown completed, playing victory melody")
		n.sink.PlaySequence(VictoryMelody())
	}
}

// OnPomodoro handles a Pomodoro event.
func (n *Notifier) OnPomodoro(e pomodoro.Event) {
	if e.Type != pomodoro.EventPhaseChanged {
		return
	}
	zlog.Debug().Msgf("pomodoro phase changed: completed=%s next=%s long_break=%v",
		e.CompletedPhase, e.Phase, e.IsLongBreak)
	n.sink.PlaySequence(PhaseChime(e.CompletedPhase))
}
