// Package driver provides the periodic tick source for timer engines.
package driver

import (
	"context"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// Engine is a timer state machine driven one second at a time.
type Engine interface {
	Start() error
	Pause()
	Tick()
	IsRunning() bool
}

// Config contains runtime options for the driver.
type Config struct {
	TickInterval time.Duration // Defaults to one second
}

// Driver owns an engine and ticks it while it runs. Every engine call made
// through the driver is serialized, so engine handlers run one at a time.
type Driver struct {
	mu       sync.Mutex
	engine   Engine
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New creates a driver for engine.
func New(engine Engine, config Config) *Driver {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	return &Driver{
		engine:   engine,
		interval: config.TickInterval,
	}
}

// Start starts the engine and the tick loop. The loop stops on its own
// once the engine is no longer running, or when ctx is cancelled.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.engine.Start(); err != nil {
		return err
	}
	if d.engine.IsRunning() {
		d.startLoopLocked(ctx)
	}
	return nil
}

// Pause pauses the engine and stops the tick loop.
func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.engine.Pause()
	d.stopLoopLocked()
}

// Do runs fn against the engine under the driver lock, e.g. a reset.
// The loop is stopped if the engine is not running afterwards.
func (d *Driver) Do(fn func() error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := fn()
	if !d.engine.IsRunning() {
		d.stopLoopLocked()
	}
	return err
}

// Ticking reports whether the tick loop is active.
func (d *Driver) Ticking() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopCh != nil
}

// Close stops the tick loop and waits for it to exit.
func (d *Driver) Close() {
	d.mu.Lock()
	d.stopLoopLocked()
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Driver) startLoopLocked(ctx context.Context) {
	if d.stopCh != nil {
		return
	}
	stop := make(chan struct{})
	d.stopCh = stop
	d.wg.Add(1)
	go d.run(ctx, stop)
}

func (d *Driver) stopLoopLocked() {
	if d.stopCh == nil {
		return
	}
	close(d.stopCh)
	d.stopCh = nil
}

func (d *Driver) run(ctx context.Context, stop chan struct{}) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			d.mu.Lock()
			if d.stopCh == stop {
				d.engine.Pause()
				d.stopLoopLocked()
			}
			d.mu.Unlock()
			zlog.Debug().Msg("tick loop cancelled")
			return
		case <-ticker.C:
			if !d.tick(stop) {
				return
			}
		}
	}
}

// tick advances the engine by one second. It returns false once the loop should exit.
func (d *Driver) tick(stop chan struct{}) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	select {
	case <-stop:
		return false
	default:
	}

	d.engine.Tick()
	if !d.engine.IsRunning() {
		d.stopLoopLocked()
		return false
	}
	return true
}
