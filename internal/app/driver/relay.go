package driver

import "sync"

// Relay forwards engine events to a buffered channel. Sends never block;
// events are dropped when the buffer is full.
type Relay[E any] struct {
	mu     sync.Mutex
	ch     chan E
	closed bool
}

// NewRelay creates a relay with the given buffer size (at least 1).
func NewRelay[E any](buffer int) *Relay[E] {
	if buffer <= 0 {
		buffer = 1
	}
	return &Relay[E]{ch: make(chan E, buffer)}
}

// Send forwards e. It reports whether the event was queued.
func (r *Relay[E]) Send(e E) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	select {
	case r.ch <- e:
		return true
	default:
		return false
	}
}

// Events returns the receive side.
func (r *Relay[E]) Events() <-chan E {
	return r.ch
}

// Close closes the channel. Later sends are dropped.
func (r *Relay[E]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.ch)
}
