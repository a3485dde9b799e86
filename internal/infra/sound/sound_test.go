package sound

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/focusbox/internal/app/cue"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestBell_PlaySequenceDoesNotBlock(t *testing.T) {
	out := &syncBuffer{}
	b := NewBell(out)

	start := time.Now()
	b.PlaySequence(cue.VictoryMelody())
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	assert.Eventually(t, func() bool {
		return out.String() == "\a\a\a\a\a"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestBell_PlayTone(t *testing.T) {
	out := &syncBuffer{}
	NewBell(out).PlayTone(600, 100)

	assert.Eventually(t, func() bool { return out.String() == "\a" }, time.Second, 10*time.Millisecond)
}

func TestCommand_Expand(t *testing.T) {
	c := NewCommand("beep -f {freq} -l {ms}", 0)
	assert.Equal(t, "beep -f 523.25 -l 150", c.Expand(cue.Note{FrequencyHz: 523.25, DurationMs: 150}))
	assert.Equal(t, "beep -f 600 -l 100", c.Expand(cue.Note{FrequencyHz: 600, DurationMs: 100}))
}

func TestNew(t *testing.T) {
	assert.IsType(t, Muted{}, New(false, "beep", 0, nil))
	assert.IsType(t, Multi{}, New(true, "", 0, nil))

	m := New(true, "beep -f {freq}", time.Second, nil).(Multi)
	assert.IsType(t, &Command{}, m[1])
}
