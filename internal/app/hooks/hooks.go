// Package hooks runs user shell commands when timers complete.
package hooks

import (
	"os"
	"os/exec"
	"strconv"
	"sync"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/focusbox/internal/domain/countdown"
	"github.com/osa030/focusbox/internal/domain/pomodoro"
)

// Config lists the commands per stage.
type Config struct {
	OnComplete    []string
	OnPhaseChange []string
}

// Runner executes hooks in the background so engine callbacks never block.
type Runner struct {
	cfg  Config
	wg   sync.WaitGroup
	exec func(command string, env []string) error
}

// New creates a hook runner.
func New(cfg Config) *Runner {
	return &Runner{cfg: cfg, exec: runShell}
}

// OnCountdown runs the completion hooks.
func (r *Runner) OnCountdown(e countdown.Event) {
	if e.Type != countdown.EventCompleted {
		return
	}
	r.execute(r.cfg.OnComplete, "on_complete", []string{"FOCUSBOX_EVENT=complete"})
}

// OnPomodoro runs the phase change hooks.
func (r *Runner) OnPomodoro(e pomodoro.Event) {
	if e.Type != pomodoro.EventPhaseChanged {
		return
	}
	r.execute(r.cfg.OnPhaseChange, "on_phase_change", []string{
		"FOCUSBOX_EVENT=phase_change",
		"FOCUSBOX_COMPLETED_PHASE=" + e.CompletedPhase.String(),
		"FOCUSBOX_PHASE=" + e.Phase.String(),
		"FOCUSBOX_LONG_BREAK=" + strconv.FormatBool(e.IsLongBreak),
		"FOCUSBOX_CYCLES=" + strconv.Itoa(e.CyclesCompleted),
	})
}

// Wait blocks until every started hook has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) execute(hooks []string, stage string, env []string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for _, hook := range hooks {
			zlog.Debug().Msgf("Executing hook: %s", hook)
			if err := r.exec(hook, env); err != nil {
				zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
			}
		}
	}()
}

func runShell(command string, env []string) error {
	// Use sh -c to allow shell features like redirection or pipes
	cmd := exec.Command("sh", "-c", command)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
