// Package sound provides notification sinks for the terminal.
package sound

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/focusbox/internal/app/cue"
)

// Muted discards every cue.
type Muted struct{}

func (Muted) PlayTone(float64, int) {}

func (Muted) PlaySequence([]cue.Note) {}

// schedule plays each note of a sequence at its offset without blocking the caller.
func schedule(notes []cue.Note, play func(cue.Note)) {
	for _, n := range notes {
		if n.OffsetMs <= 0 {
			go play(n)
			continue
		}
		time.AfterFunc(time.Duration(n.OffsetMs)*time.Millisecond, func() { play(n) })
	}
}

// Bell rings the terminal bell once per tone.
type Bell struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBell creates a bell sink writing to out (stderr when nil).
func NewBell(out io.Writer) *Bell {
	if out == nil {
		out = os.Stderr
	}
	return &Bell{out: out}
}

func (b *Bell) ring(cue.Note) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.out, "\a"); err != nil {
		zlog.Debug().Err(err).Msg("failed to ring bell")
	}
}

// PlayTone rings the bell.
func (b *Bell) PlayTone(frequencyHz float64, durationMs int) {
	go b.ring(cue.Note{FrequencyHz: frequencyHz, DurationMs: durationMs})
}

// PlaySequence rings the bell once per note at the note's offset.
func (b *Bell) PlaySequence(notes []cue.Note) {
	schedule(notes, b.ring)
}

// Command plays tones by running a shell command template.
// {freq} and {ms} are replaced with the tone frequency and duration.
type Command struct {
	template string
	timeout  time.Duration
}

// NewCommand creates a command sink. Each invocation is killed after timeout.
func NewCommand(template string, timeout time.Duration) *Command {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Command{template: template, timeout: timeout}
}

// Expand returns the shell command for a note.
func (c *Command) Expand(n cue.Note) string {
	r := strings.NewReplacer(
		"{freq}", strconv.FormatFloat(n.FrequencyHz, 'f', -1, 64),
		"{ms}", strconv.Itoa(n.DurationMs),
	)
	return r.Replace(c.template)
}

func (c *Command) run(n cue.Note) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	line := c.Expand(n)
	cmd := exec.CommandContext(ctx, "sh", "-c", line)
	if err := cmd.Run(); err != nil {
		zlog.Warn().Err(err).Msgf("tone command failed: %s", line)
	}
}

// PlayTone runs the command once in the background.
func (c *Command) PlayTone(frequencyHz float64, durationMs int) {
	go c.run(cue.Note{FrequencyHz: frequencyHz, DurationMs: durationMs})
}

// PlaySequence runs the command for each note at its offset.
func (c *Command) PlaySequence(notes []cue.Note) {
	schedule(notes, c.run)
}

// Log records cues at debug level. Useful alongside a real sink.
type Log struct{}

func (Log) PlayTone(frequencyHz float64, durationMs int) {
	zlog.Debug().Msgf("tone: freq=%.2fHz duration=%dms", frequencyHz, durationMs)
}

func (Log) PlaySequence(notes []cue.Note) {
	zlog.Debug().Msgf("sequence: notes=%d", len(notes))
}

// Multi fans cues out to several sinks.
type Multi []cue.Sink

func (m Multi) PlayTone(frequencyHz float64, durationMs int) {
	for _, s := range m {
		s.PlayTone(frequencyHz, durationMs)
	}
}

func (m Multi) PlaySequence(notes []cue.Note) {
	for _, s := range m {
		s.PlaySequence(notes)
	}
}

// New builds the sink for the given settings. Tones go to command when set
// and to the terminal bell otherwise.
func New(enabled bool, command string, timeout time.Duration, out io.Writer) cue.Sink {
	if !enabled {
		return Muted{}
	}
	if command != "" {
		return Multi{Log{}, NewCommand(command, timeout)}
	}
	return Multi{Log{}, NewBell(out)}
}
