// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osa030/focusbox/internal/domain/pomodoro"
)

// Environment variables overriding file values.
const (
	EnvDB    = "FOCUSBOX_DB"
	EnvSound = "FOCUSBOX_SOUND"
)

// Config represents the application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Timer    TimerConfig    `yaml:"timer"`
	Pomodoro PomodoroConfig `yaml:"pomodoro"`
	Sound    SoundConfig    `yaml:"sound"`
	Focus    FocusConfig    `yaml:"focus"`
	Hooks    HooksConfig    `yaml:"hooks"`
}

// StoreConfig represents persistence configuration.
type StoreConfig struct {
	Path string `yaml:"path"` // Empty means the user config directory
}

// TimerConfig represents countdown widget configuration.
type TimerConfig struct {
	DefaultSeconds int `yaml:"default_seconds" default:"300" validate:"gte=1,lte=3599"`
	TickIntervalMs int `yaml:"tick_interval_ms" default:"1000" validate:"gte=10,lte=60000"`
}

// PomodoroConfig represents Pomodoro durations in minutes.
type PomodoroConfig struct {
	WorkMinutes            int  `yaml:"work_minutes" default:"25" validate:"gte=1,lte=180"`
	BreakMinutes           int  `yaml:"break_minutes" default:"5" validate:"gte=1,lte=60"`
	LongBreakMinutes       int  `yaml:"long_break_minutes" default:"15" validate:"gte=1,lte=120"`
	SessionsUntilLongBreak int  `yaml:"sessions_until_long_break" default:"4" validate:"gte=1,lte=12"`
	CooldownMs             *int `yaml:"cooldown_ms" default:"2000" validate:"gte=0,lte=60000"`
}

// SoundConfig represents cue playback configuration.
type SoundConfig struct {
	Enabled   *bool  `yaml:"enabled" default:"true"`
	Command   string `yaml:"command"` // Tone command template with {freq} and {ms}
	TimeoutMs int    `yaml:"timeout_ms" default:"2000" validate:"gte=100,lte=30000"`
}

// FocusConfig represents ambient sound playback configuration.
type FocusConfig struct {
	PlayerCommand string `yaml:"player_command" default:"mpv --no-video --really-quiet --loop=inf --volume={volume} {file}"`
	SoundDir      string `yaml:"sound_dir"`
	QuoteSeconds  int    `yaml:"quote_seconds" default:"10" validate:"gte=1,lte=3600"`
}

// HooksConfig represents timer hooks configuration.
type HooksConfig struct {
	OnComplete    []string `yaml:"on_complete"`
	OnPhaseChange []string `yaml:"on_phase_change"`
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults. Environment variables take precedence
// over file values.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvSound); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Sound.Enabled = &enabled
		}
	}
}

// resolvePaths fills in paths under the user config directory.
func (c *Config) resolvePaths() error {
	if c.Store.Path != "" && c.Focus.SoundDir != "" {
		return nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return errors.Wrap(err, "failed to resolve user config directory")
	}
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(base, "focusbox", "focusbox.db")
	}
	if c.Focus.SoundDir == "" {
		c.Focus.SoundDir = filepath.Join(base, "focusbox", "sounds")
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// SoundEnabled reports whether cues are audible.
func (c *Config) SoundEnabled() bool {
	return c.Sound.Enabled == nil || *c.Sound.Enabled
}

// PomodoroConfig converts the minute based settings to an engine configuration.
func (c *Config) PomodoroConfig() pomodoro.Config {
	return pomodoro.Config{
		WorkSeconds:            c.Pomodoro.WorkMinutes * 60,
		BreakSeconds:           c.Pomodoro.BreakMinutes * 60,
		LongBreakSeconds:       c.Pomodoro.LongBreakMinutes * 60,
		SessionsUntilLongBreak: c.Pomodoro.SessionsUntilLongBreak,
		Cooldown:               c.cooldown(),
	}
}

func (c *Config) cooldown() time.Duration {
	if c.Pomodoro.CooldownMs == nil {
		return pomodoro.DefaultCooldown
	}
	return time.Duration(*c.Pomodoro.CooldownMs) * time.Millisecond
}

// TickInterval returns the driver tick interval.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Timer.TickIntervalMs) * time.Millisecond
}

// SoundTimeout returns the tone command timeout.
func (c *Config) SoundTimeout() time.Duration {
	return time.Duration(c.Sound.TimeoutMs) * time.Millisecond
}
