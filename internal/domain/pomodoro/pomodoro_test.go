package pomodoro

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestPomodoro(t *testing.T, cfg Config) (*Pomodoro, *fakeClock, *[]Event) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	p, err := New(cfg, WithClock(clock.Now))
	require.NoError(t, err)
	events := &[]Event{}
	p.OnEvent(func(e Event) { *events = append(*events, e) })
	return p, clock, events
}

// runPhase starts the active phase and ticks it to completion.
func runPhase(t *testing.T, p *Pomodoro, clock *fakeClock) {
	t.Helper()
	clock.Advance(p.CooldownRemaining())
	require.NoError(t, p.Start())
	for n := p.Remaining(); n > 0; n-- {
		p.Tick()
	}
}

func phaseChanges(events []Event) []Event {
	var out []Event
	for _, e := range events {
		if e.Type == EventPhaseChanged {
			out = append(out, e)
		}
	}
	return out
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default", mutate: func(*Config) {}},
		{name: "zero work", mutate: func(c *Config) { c.WorkSeconds = 0 }, wantErr: true},
		{name: "negative break", mutate: func(c *Config) { c.BreakSeconds = -5 }, wantErr: true},
		{name: "zero long break", mutate: func(c *Config) { c.LongBreakSeconds = 0 }, wantErr: true},
		{name: "zero cadence", mutate: func(c *Config) { c.SessionsUntilLongBreak = 0 }, wantErr: true},
		{name: "cadence of one", mutate: func(c *Config) { c.SessionsUntilLongBreak = 1 }},
		{name: "negative cooldown", mutate: func(c *Config) { c.Cooldown = -time.Second }, wantErr: true},
		{name: "no cooldown", mutate: func(c *Config) { c.Cooldown = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			_, err := New(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfiguration))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPomodoro_InitialState(t *testing.T) {
	p, _, _ := newTestPomodoro(t, DefaultConfig())

	st := p.State()
	assert.Equal(t, PhaseWork, st.Phase)
	assert.Equal(t, 0, st.CyclesCompleted)
	assert.Equal(t, 1, st.CurrentSession)
	assert.Equal(t, 1500, st.RemainingSeconds)
	assert.False(t, st.IsRunning)
	assert.False(t, p.NextBreakIsLong())
}

func TestPomodoro_LongBreakCadence(t *testing.T) {
	cfg := Config{
		WorkSeconds:            1500,
		BreakSeconds:           300,
		LongBreakSeconds:       900,
		SessionsUntilLongBreak: 4,
		Cooldown:               DefaultCooldown,
	}
	p, clock, events := newTestPomodoro(t, cfg)

	for i := 0; i < 4; i++ {
		runPhase(t, p, clock) // work
		if i < 3 {
			runPhase(t, p, clock) // break
		}
	}

	assert.Equal(t, 4, p.State().CyclesCompleted)

	var breaks []Event
	for _, e := range phaseChanges(*events) {
		if e.Phase == PhaseBreak {
			breaks = append(breaks, e)
		}
	}
	require.Len(t, breaks, 4)
	for i, e := range breaks[:3] {
		assert.False(t, e.IsLongBreak, "break %d", i+1)
		assert.Equal(t, 300, e.DurationSeconds)
	}
	assert.True(t, breaks[3].IsLongBreak)
	assert.Equal(t, 900, breaks[3].DurationSeconds)
	assert.Equal(t, 900, p.Remaining())
}

func TestPomodoro_NoAutoStartAndCooldown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkSeconds = 2
	p, clock, _ := newTestPomodoro(t, cfg)

	runPhase(t, p, clock)
	st := p.State()
	assert.Equal(t, PhaseBreak, st.Phase)
	assert.False(t, st.IsRunning)
	assert.Equal(t, cfg.BreakSeconds, st.RemainingSeconds)

	err := p.Start()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCoolingDown))

	clock.Advance(time.Second)
	assert.Equal(t, time.Second, p.CooldownRemaining())
	assert.Error(t, p.Start())

	clock.Advance(time.Second)
	require.NoError(t, p.Start())
	assert.True(t, p.State().IsRunning)
}

func TestPomodoro_BreakCompletionAdvancesSession(t *testing.T) {
	cfg := Config{WorkSeconds: 3, BreakSeconds: 2, LongBreakSeconds: 4, SessionsUntilLongBreak: 2}
	p, clock, events := newTestPomodoro(t, cfg)

	runPhase(t, p, clock)
	runPhase(t, p, clock)

	st := p.State()
	assert.Equal(t, PhaseWork, st.Phase)
	assert.Equal(t, 2, st.CurrentSession)
	assert.Equal(t, 1, st.CyclesCompleted)
	assert.True(t, p.NextBreakIsLong())

	changes := phaseChanges(*events)
	require.Len(t, changes, 2)
	assert.Equal(t, PhaseWork, changes[0].CompletedPhase)
	assert.Equal(t, PhaseBreak, changes[1].CompletedPhase)
	assert.Equal(t, 3, changes[1].DurationSeconds)
}

func TestPomodoro_PhaseCompleteEmittedOnce(t *testing.T) {
	cfg := Config{WorkSeconds: 2, BreakSeconds: 1, LongBreakSeconds: 1, SessionsUntilLongBreak: 4}
	p, clock, events := newTestPomodoro(t, cfg)

	runPhase(t, p, clock)
	p.Tick()
	p.Tick()

	n := 0
	for _, e := range *events {
		if e.Type == EventPhaseComplete {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestPomodoro_ResetSession(t *testing.T) {
	cfg := Config{WorkSeconds: 2, BreakSeconds: 1, LongBreakSeconds: 1, SessionsUntilLongBreak: 4, Cooldown: time.Minute}
	p, clock, _ := newTestPomodoro(t, cfg)

	runPhase(t, p, clock)
	require.Error(t, p.Start())

	p.ResetSession()
	st := p.State()
	assert.Equal(t, PhaseWork, st.Phase)
	assert.Equal(t, 0, st.CyclesCompleted)
	assert.Equal(t, 1, st.CurrentSession)
	assert.Equal(t, 2, st.RemainingSeconds)
	assert.Zero(t, p.CooldownRemaining())
	assert.NoError(t, p.Start())
}

func TestPomodoro_ToggleAndProgress(t *testing.T) {
	cfg := Config{WorkSeconds: 4, BreakSeconds: 1, LongBreakSeconds: 1, SessionsUntilLongBreak: 4}
	p, _, _ := newTestPomodoro(t, cfg)

	require.NoError(t, p.Toggle())
	assert.True(t, p.State().IsRunning)
	p.Tick()
	assert.InDelta(t, 0.25, p.Progress(), 1e-9)

	require.NoError(t, p.Toggle())
	assert.False(t, p.State().IsRunning)
	p.Tick()
	assert.Equal(t, 3, p.Remaining())
}

func TestProperty_LongBreakEveryN(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "sessionsUntilLongBreak")
		works := rapid.IntRange(1, 20).Draw(rt, "works")

		p, err := New(Config{WorkSeconds: 1, BreakSeconds: 1, LongBreakSeconds: 2, SessionsUntilLongBreak: n})
		if err != nil {
			rt.Fatal(err)
		}
		var breaks []Event
		p.OnEvent(func(e Event) {
			if e.Type == EventPhaseChanged && e.Phase == PhaseBreak {
				breaks = append(breaks, e)
			}
		})

		for i := 0; i < works; i++ {
			for p.State().Phase != PhaseWork {
				_ = p.Start()
				p.Tick()
			}
			_ = p.Start()
			p.Tick()
		}

		if len(breaks) != works {
			rt.Fatalf("expected %d breaks, got %d", works, len(breaks))
		}
		for i, e := range breaks {
			want := (i+1)%n == 0
			if e.IsLongBreak != want {
				rt.Fatalf("break %d: long=%v want %v", i+1, e.IsLongBreak, want)
			}
		}
	})
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "work", PhaseWork.String())
	assert.Equal(t, "break", PhaseBreak.String())
	assert.Equal(t, "phase_changed", EventPhaseChanged.String())
}
