package pomodoro

import (
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultCooldown is the pause after a phase completes before Start is accepted again.
const DefaultCooldown = 2 * time.Second

// ErrInvalidConfiguration is returned for non-positive durations or cadence.
var ErrInvalidConfiguration = errors.New("invalid pomodoro configuration")

// Config holds the phase durations in seconds and the long-break cadence.
type Config struct {
	WorkSeconds            int
	BreakSeconds           int
	LongBreakSeconds       int
	SessionsUntilLongBreak int
	Cooldown               time.Duration // Zero disables the cool-down
}

// DefaultConfig returns the classic 25/5/15 cadence with a long break every 4 sessions.
func DefaultConfig() Config {
	return Config{
		WorkSeconds:            25 * 60,
		BreakSeconds:           5 * 60,
		LongBreakSeconds:       15 * 60,
		SessionsUntilLongBreak: 4,
		Cooldown:               DefaultCooldown,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.WorkSeconds <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "work duration %d", c.WorkSeconds)
	}
	if c.BreakSeconds <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "break duration %d", c.BreakSeconds)
	}
	if c.LongBreakSeconds <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "long break duration %d", c.LongBreakSeconds)
	}
	if c.SessionsUntilLongBreak < 1 {
		return errors.Wrapf(ErrInvalidConfiguration, "sessions until long break %d", c.SessionsUntilLongBreak)
	}
	if c.Cooldown < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "cooldown %s", c.Cooldown)
	}
	return nil
}
