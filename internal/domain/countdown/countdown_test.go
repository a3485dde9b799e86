package countdown

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type recorder struct {
	events []Event
}

func (r *recorder) handle(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newRecorded(t *testing.T, d int) (*Countdown, *recorder) {
	t.Helper()
	c, err := New(d)
	require.NoError(t, err)
	rec := &recorder{}
	c.OnEvent(rec.handle)
	return c, rec
}

func TestNew_RejectsNegative(t *testing.T) {
	_, err := New(-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDuration))
}

func TestCountdown_RunToCompletion(t *testing.T) {
	c, rec := newRecorded(t, 10)
	require.NoError(t, c.Reset(3))
	require.NoError(t, c.Start())

	c.Tick()
	c.Tick()
	c.Tick()

	assert.Equal(t, State{RemainingSeconds: 0, IsRunning: false, IsFinished: true}, c.Snapshot())
	assert.Equal(t, StatusFinished, c.Status())
	assert.Equal(t, 1, rec.count(EventCompleted))
	assert.Equal(t, 2, rec.count(EventTick))
}

func TestCountdown_TicksAfterFinishAreIgnored(t *testing.T) {
	c, rec := newRecorded(t, 1)
	require.NoError(t, c.Start())
	c.Tick()
	c.Tick()
	c.Tick()

	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, 1, rec.count(EventCompleted))
}

func TestCountdown_StartWhenFinished(t *testing.T) {
	c, _ := newRecorded(t, 1)
	require.NoError(t, c.Start())
	c.Tick()

	err := c.Start()
	assert.ErrorIs(t, err, ErrFinished)
	assert.True(t, c.Snapshot().IsFinished)

	require.NoError(t, c.Reset(5))
	assert.Equal(t, State{RemainingSeconds: 5}, c.Snapshot())
	require.NoError(t, c.Start())
	assert.True(t, c.Snapshot().IsRunning)
}

func TestCountdown_StartIsIdempotent(t *testing.T) {
	c, rec := newRecorded(t, 5)
	require.NoError(t, c.Start())
	require.NoError(t, c.Start())

	assert.Equal(t, 1, rec.count(EventStateChanged))
}

func TestCountdown_PauseResume(t *testing.T) {
	c, _ := newRecorded(t, 5)
	require.NoError(t, c.Start())
	c.Tick()
	c.Pause()
	assert.Equal(t, StatusPaused, c.Status())

	c.Tick()
	c.Tick()
	assert.Equal(t, 4, c.Remaining())

	require.NoError(t, c.Start())
	c.Tick()
	assert.Equal(t, 3, c.Remaining())
}

func TestCountdown_ResetNegativeKeepsState(t *testing.T) {
	c, _ := newRecorded(t, 5)
	require.NoError(t, c.Start())
	c.Tick()
	before := c.Snapshot()

	err := c.Reset(-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDuration))
	assert.Equal(t, before, c.Snapshot())
	assert.Equal(t, StatusRunning, c.Status())
}

func TestCountdown_ZeroDurationCompletesOnStart(t *testing.T) {
	c, rec := newRecorded(t, 0)
	assert.Equal(t, StatusIdle, c.Status())

	require.NoError(t, c.Start())
	assert.True(t, c.Snapshot().IsFinished)
	assert.Equal(t, 1, rec.count(EventCompleted))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "paused", StatusPaused.String())
	assert.Equal(t, "finished", StatusFinished.String())
	assert.Equal(t, "unknown", Status(42).String())
}

func TestProperty_DTicksFinishOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.IntRange(1, 5000).Draw(rt, "d")

		c, err := New(0)
		if err != nil {
			rt.Fatal(err)
		}
		completions := 0
		c.OnEvent(func(e Event) {
			if e.Type == EventCompleted {
				completions++
			}
		})

		if err := c.Reset(d); err != nil {
			rt.Fatal(err)
		}
		if err := c.Start(); err != nil {
			rt.Fatal(err)
		}
		for i := 0; i < d; i++ {
			c.Tick()
		}

		if !c.Snapshot().IsFinished {
			rt.Fatalf("not finished after %d ticks", d)
		}
		if completions != 1 {
			rt.Fatalf("expected 1 completion, got %d", completions)
		}
	})
}

func TestProperty_PausedTicksKeepRemaining(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.IntRange(2, 1000).Draw(rt, "d")
		before := rapid.IntRange(0, d-1).Draw(rt, "before")
		ticks := rapid.IntRange(0, 1000).Draw(rt, "ticks")

		c, err := New(d)
		if err != nil {
			rt.Fatal(err)
		}
		if err := c.Start(); err != nil {
			rt.Fatal(err)
		}
		for i := 0; i < before; i++ {
			c.Tick()
		}
		c.Pause()
		remaining := c.Remaining()
		for i := 0; i < ticks; i++ {
			c.Tick()
		}

		if c.Remaining() != remaining {
			rt.Fatalf("remaining changed while paused: %d -> %d", remaining, c.Remaining())
		}
	})
}

func TestProperty_FinishedInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c, err := New(rapid.IntRange(0, 20).Draw(rt, "d"))
		if err != nil {
			rt.Fatal(err)
		}
		ops := rapid.SliceOfN(rapid.IntRange(0, 3), 0, 100).Draw(rt, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				_ = c.Start()
			case 1:
				c.Pause()
			case 2:
				c.Tick()
			case 3:
				_ = c.Reset(rapid.IntRange(-2, 20).Draw(rt, "reset"))
			}

			s := c.Snapshot()
			if s.IsFinished && (s.RemainingSeconds != 0 || s.IsRunning) {
				rt.Fatalf("invariant violated: %+v", s)
			}
			if s.RemainingSeconds < 0 {
				rt.Fatalf("negative remaining: %+v", s)
			}
		}
	})
}
