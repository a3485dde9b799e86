package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/focusbox/internal/app/cue"
	"github.com/osa030/focusbox/internal/app/driver"
	"github.com/osa030/focusbox/internal/app/hooks"
	"github.com/osa030/focusbox/internal/app/notification"
	"github.com/osa030/focusbox/internal/app/timer"
	"github.com/osa030/focusbox/internal/domain/countdown"
	"github.com/osa030/focusbox/internal/domain/pomodoro"
	"github.com/osa030/focusbox/internal/domain/settings"
	"github.com/osa030/focusbox/internal/infra/config"
	"github.com/osa030/focusbox/internal/infra/sound"
	"github.com/osa030/focusbox/internal/infra/store"
	"github.com/osa030/focusbox/internal/ui/tui"
)

const relayBuffer = 16

// application holds the dependencies shared by the commands.
type application struct {
	cfg  *config.Config
	repo *store.Repository
}

// cues builds the cue notifier and hook runner for the stored settings.
func (a *application) cues(s settings.Settings, live bool) (*cue.Notifier, *hooks.Runner) {
	out := os.Stdout
	if live {
		out = os.Stderr
	}
	sink := sound.New(a.cfg.SoundEnabled() && s.SoundEnabled, a.cfg.Sound.Command, a.cfg.SoundTimeout(), out)
	runner := hooks.New(hooks.Config{
		OnComplete:    a.cfg.Hooks.OnComplete,
		OnPhaseChange: a.cfg.Hooks.OnPhaseChange,
	})
	return cue.NewNotifier(sink), runner
}

func (a *application) timer(ctx context.Context, d time.Duration, headless bool) error {
	s, err := a.repo.LoadSettings(ctx)
	if err != nil {
		return err
	}

	seconds := a.cfg.Timer.DefaultSeconds
	if d > 0 {
		seconds = int(d.Round(time.Second) / time.Second)
	}
	t, err := timer.New(seconds)
	if err != nil {
		return err
	}

	notifier, runner := a.cues(s, !headless)
	defer runner.Wait()

	events := notification.NewManager[countdown.Event]()
	defer events.Close()
	events.Subscribe(func(_ uint64, e countdown.Event) { notifier.OnCountdown(e) })
	events.Subscribe(func(_ uint64, e countdown.Event) { runner.OnCountdown(e) })
	t.Countdown().OnEvent(events.Publish)

	if !headless {
		_, err := tea.NewProgram(tui.NewTimerModel(t, tui.NewStyles(s.Theme), a.cfg.TickInterval()), tea.WithContext(ctx)).Run()
		return ignoreInterrupt(err)
	}

	relay := driver.NewRelay[countdown.Event](relayBuffer)
	events.Subscribe(func(_ uint64, e countdown.Event) { relay.Send(e) })

	drv := driver.New(t.Countdown(), driver.Config{TickInterval: a.cfg.TickInterval()})
	defer drv.Close()
	fmt.Printf("Timer started: %s\n", formatClock(seconds))
	if err := drv.Start(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			var left int
			_ = drv.Do(func() error {
				left = t.Countdown().Remaining()
				return nil
			})
			fmt.Printf("\nStopped with %s left\n", formatClock(left))
			return nil
		case e := <-relay.Events():
			switch e.Type {
			case countdown.EventTick:
				fmt.Printf("\r%s ", formatClock(e.RemainingSeconds))
			case countdown.EventCompleted:
				fmt.Println("\rTime's up!")
				// let the melody finish
				time.Sleep(time.Second)
				return nil
			}
		}
	}
}

func (a *application) pomodoro(ctx context.Context, headless, auto bool, sessions int) error {
	s, err := a.repo.LoadSettings(ctx)
	if err != nil {
		return err
	}
	engine, err := pomodoro.New(a.cfg.PomodoroConfig())
	if err != nil {
		return err
	}

	notifier, runner := a.cues(s, !headless)
	defer runner.Wait()

	events := notification.NewManager[pomodoro.Event]()
	defer events.Close()
	events.Subscribe(func(_ uint64, e pomodoro.Event) { notifier.OnPomodoro(e) })
	events.Subscribe(func(_ uint64, e pomodoro.Event) { runner.OnPomodoro(e) })
	engine.OnEvent(events.Publish)

	if !headless {
		_, err := tea.NewProgram(tui.NewPomodoroModel(engine, tui.NewStyles(s.Theme), a.cfg.TickInterval()), tea.WithContext(ctx)).Run()
		return ignoreInterrupt(err)
	}

	relay := driver.NewRelay[pomodoro.Event](relayBuffer)
	events.Subscribe(func(_ uint64, e pomodoro.Event) { relay.Send(e) })

	fmt.Printf("Session %d: work %s\n", engine.CurrentSession(), formatClock(engine.Remaining()))
	drv := driver.New(engine, driver.Config{TickInterval: a.cfg.TickInterval()})
	defer drv.Close()
	if err := drv.Start(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case e := <-relay.Events():
			switch e.Type {
			case pomodoro.EventTick:
				fmt.Printf("\r%s %s ", e.Phase, formatClock(e.RemainingSeconds))
			case pomodoro.EventPhaseChanged:
				label := "short break"
				switch {
				case e.Phase == pomodoro.PhaseWork:
					label = "work"
				case e.IsLongBreak:
					label = "long break"
				}
				fmt.Printf("\r%s complete. Next: %s %s\n", e.CompletedPhase, label, formatClock(e.DurationSeconds))

				if e.CompletedPhase == pomodoro.PhaseWork && e.CyclesCompleted >= sessions {
					return nil
				}
				if !auto {
					return nil
				}
				if err := startAfterCooldown(ctx, drv, engine); err != nil {
					return err
				}
			}
		}
	}
}

// startAfterCooldown waits out the phase change cool-down and starts the next phase.
func startAfterCooldown(ctx context.Context, drv *driver.Driver, engine *pomodoro.Pomodoro) error {
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(engine.CooldownRemaining()):
	}
	if err := drv.Start(ctx); err != nil {
		if errors.Is(err, pomodoro.ErrCoolingDown) {
			zlog.Warn().Err(err).Msg("cool-down still active, retrying")
			return startAfterCooldown(ctx, drv, engine)
		}
		return err
	}
	return nil
}

func ignoreInterrupt(err error) error {
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
