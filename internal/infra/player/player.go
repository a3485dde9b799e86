// Package player plays ambient loops through an external media command.
package player

import (
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/focusbox/internal/app/focus"
)

// ErrNotConfigured is returned by Play when no command template is set.
var ErrNotConfigured = errors.New("player command not configured")

// Command runs a shell command template per ambient sound.
// {file} and {volume} are replaced before the command starts.
type Command struct {
	mu       sync.Mutex
	template string
	dir      string
	cmd      *exec.Cmd
	done     chan struct{}
}

// New creates a command player resolving sound files inside dir.
func New(template, dir string) *Command {
	return &Command{template: template, dir: dir}
}

// Expand returns the command line for a sound.
func (c *Command) Expand(sound focus.Sound, volume int) string {
	r := strings.NewReplacer(
		"{file}", filepath.Join(c.dir, sound.File),
		"{volume}", strconv.Itoa(focus.ClampVolume(volume)),
	)
	return r.Replace(c.template)
}

// Play stops any current loop and starts sound.
func (c *Command) Play(ctx context.Context, sound focus.Sound, volume int) error {
	if c.template == "" {
		return ErrNotConfigured
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()

	line := c.Expand(sound, volume)
	// exec replaces the shell so killing the process stops the player itself.
	cmd := exec.CommandContext(ctx, "sh", "-c", "exec "+line)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "failed to start player: %s", line)
	}
	zlog.Info().Msgf("ambient sound started: sound=%s pid=%d", sound.ID, cmd.Process.Pid)

	done := make(chan struct{})
	go func() {
		if err := cmd.Wait(); err != nil {
			zlog.Debug().Err(err).Msgf("player exited: sound=%s", sound.ID)
		}
		close(done)
	}()
	c.cmd = cmd
	c.done = done
	return nil
}

// Stop kills the current loop, if any, and waits for it to exit.
func (c *Command) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	return nil
}

// Playing reports whether a loop process is alive.
func (c *Command) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

func (c *Command) stopLocked() {
	if c.cmd == nil {
		return
	}
	if c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
	<-c.done
	c.cmd = nil
	c.done = nil
}
