package pomodoro

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/focusbox/internal/domain/countdown"
)

// ErrCoolingDown is returned by Start during the cool-down after a phase completes.
var ErrCoolingDown = errors.New("cooling down after phase change")

// State is the observable Pomodoro state.
type State struct {
	Phase                  Phase
	IsLongBreak            bool
	CyclesCompleted        int
	CurrentSession         int
	WorkDuration           int
	BreakDuration          int
	LongBreakDuration      int
	SessionsUntilLongBreak int
	RemainingSeconds       int
	IsRunning              bool
}

// Option configures a Pomodoro.
type Option func(*Pomodoro)

// WithClock overrides the clock used for the cool-down.
func WithClock(now func() time.Time) Option {
	return func(p *Pomodoro) {
		p.now = now
	}
}

// Pomodoro drives a work/break cycle over a single countdown that is
// reloaded on each phase change. It is not safe for concurrent use.
type Pomodoro struct {
	config Config
	timer  *countdown.Countdown

	phase           Phase
	longBreak       bool
	cyclesCompleted int
	currentSession  int

	now           func() time.Time
	cooldownUntil time.Time
	reloading     bool

	handler Handler
}

// New creates a Pomodoro in the work phase with the work duration loaded.
func New(config Config, opts ...Option) (*Pomodoro, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timer, err := countdown.New(config.WorkSeconds)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create countdown")
	}

	p := &Pomodoro{
		config:         config,
		timer:          timer,
		phase:          PhaseWork,
		currentSession: 1,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	timer.OnEvent(p.onCountdownEvent)
	return p, nil
}

// OnEvent registers the event handler, replacing any previous one.
func (p *Pomodoro) OnEvent(h Handler) {
	p.handler = h
}

// Start resumes or starts the active phase.
func (p *Pomodoro) Start() error {
	if remaining := p.CooldownRemaining(); remaining > 0 {
		return errors.Wrapf(ErrCoolingDown, "%s left", remaining)
	}
	return p.timer.Start()
}

// Pause pauses the active phase.
func (p *Pomodoro) Pause() {
	p.timer.Pause()
}

// Toggle starts when stopped and pauses when running.
func (p *Pomodoro) Toggle() error {
	if p.timer.IsRunning() {
		p.Pause()
		return nil
	}
	return p.Start()
}

// Tick forwards one elapsed second to the active phase.
func (p *Pomodoro) Tick() {
	p.timer.Tick()
}

// ResetSession stops the timer and returns to the first work session.
func (p *Pomodoro) ResetSession() {
	p.phase = PhaseWork
	p.longBreak = false
	p.cyclesCompleted = 0
	p.currentSession = 1
	p.cooldownUntil = time.Time{}
	p.reload(p.config.WorkSeconds)
	p.emit(Event{Type: EventStateChanged})
}

// CooldownRemaining returns how long Start is still refused.
func (p *Pomodoro) CooldownRemaining() time.Duration {
	if p.cooldownUntil.IsZero() {
		return 0
	}
	remaining := p.cooldownUntil.Sub(p.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// State returns the current state.
func (p *Pomodoro) State() State {
	snap := p.timer.Snapshot()
	return State{
		Phase:                  p.phase,
		IsLongBreak:            p.longBreak,
		CyclesCompleted:        p.cyclesCompleted,
		CurrentSession:         p.currentSession,
		WorkDuration:           p.config.WorkSeconds,
		BreakDuration:          p.config.BreakSeconds,
		LongBreakDuration:      p.config.LongBreakSeconds,
		SessionsUntilLongBreak: p.config.SessionsUntilLongBreak,
		RemainingSeconds:       snap.RemainingSeconds,
		IsRunning:              snap.IsRunning,
	}
}

// IsRunning reports whether the active phase is ticking.
func (p *Pomodoro) IsRunning() bool {
	return p.timer.IsRunning()
}

// Remaining returns the remaining seconds of the active phase.
func (p *Pomodoro) Remaining() int {
	return p.timer.Remaining()
}

// CurrentSession returns the 1-based work session number.
func (p *Pomodoro) CurrentSession() int {
	return p.currentSession
}

// NextBreakIsLong reports whether the break following the current (or next)
// work phase will be a long one.
func (p *Pomodoro) NextBreakIsLong() bool {
	n := p.config.SessionsUntilLongBreak
	return p.cyclesCompleted%n == n-1
}

// Progress returns the elapsed fraction of the active phase in [0, 1].
func (p *Pomodoro) Progress() float64 {
	total := p.phaseDuration()
	if total <= 0 {
		return 0
	}
	progress := float64(total-p.timer.Remaining()) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (p *Pomodoro) phaseDuration() int {
	switch {
	case p.phase == PhaseWork:
		return p.config.WorkSeconds
	case p.longBreak:
		return p.config.LongBreakSeconds
	default:
		return p.config.BreakSeconds
	}
}

func (p *Pomodoro) onCountdownEvent(e countdown.Event) {
	switch e.Type {
	case countdown.EventTick:
		p.emit(Event{Type: EventTick})
	case countdown.EventStateChanged:
		if !p.reloading {
			p.emit(Event{Type: EventStateChanged})
		}
	case countdown.EventCompleted:
		p.advance()
	}
}

// advance runs the phase transition after the active countdown completes.
func (p *Pomodoro) advance() {
	completed := p.phase
	p.emit(Event{Type: EventPhaseComplete, CompletedPhase: completed})

	if completed == PhaseWork {
		p.cyclesCompleted++
		p.longBreak = p.cyclesCompleted%p.config.SessionsUntilLongBreak == 0
		p.phase = PhaseBreak
	} else {
		p.longBreak = false
		p.currentSession++
		p.phase = PhaseWork
	}

	duration := p.phaseDuration()
	p.reload(duration)
	if p.config.Cooldown > 0 {
		p.cooldownUntil = p.now().Add(p.config.Cooldown)
	}

	p.emit(Event{
		Type:            EventPhaseChanged,
		CompletedPhase:  completed,
		DurationSeconds: duration,
	})
}

func (p *Pomodoro) reload(seconds int) {
	p.reloading = true
	defer func() { p.reloading = false }()
	// Durations are validated at construction so Reset cannot fail here.
	_ = p.timer.Reset(seconds)
}

func (p *Pomodoro) emit(e Event) {
	if p.handler == nil {
		return
	}
	e.Phase = p.phase
	e.IsLongBreak = p.longBreak
	e.RemainingSeconds = p.timer.Remaining()
	e.Running = p.timer.IsRunning()
	e.CyclesCompleted = p.cyclesCompleted
	p.handler(e)
}
