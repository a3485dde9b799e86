// Package notification fans engine events out to subscribers.
package notification

import (
	"sync"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// Handler receives a published event and its sequence number.
type Handler[E any] func(seq uint64, event E)

// subscription represents a subscriber's subscription.
type subscription[E any] struct {
	id      string
	handler Handler[E]
}

// Manager manages subscriptions and broadcasting of events of type E.
// Handlers run synchronously in subscription order and must not block.
type Manager[E any] struct {
	mu            sync.RWMutex
	subscriptions []*subscription[E]
	sequenceNo    uint64
	sequenceNoMu  sync.Mutex
}

// NewManager creates a new notification manager.
func NewManager[E any]() *Manager[E] {
	return &Manager[E]{}
}

// Subscribe adds a handler and returns the subscription ID.
func (m *Manager[E]) Subscribe(handler Handler[E]) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subscriptions = append(m.subscriptions, &subscription[E]{id: id, handler: handler})
	return id
}

// Unsubscribe removes a subscription.
func (m *Manager[E]) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subscriptions {
		if sub.id == subscriptionID {
			m.subscriptions = append(m.subscriptions[:i:i], m.subscriptions[i+1:]...)
			return
		}
	}
}

// Broadcast delivers event to every subscriber and returns its sequence number.
// A panicking handler is logged and does not stop delivery to the others.
func (m *Manager[E]) Broadcast(event E) uint64 {
	m.sequenceNoMu.Lock()
	m.sequenceNo++
	seq := m.sequenceNo
	m.sequenceNoMu.Unlock()

	// Copy subscriptions to avoid holding lock during delivery
	m.mu.RLock()
	subs := append([]*subscription[E](nil), m.subscriptions...)
	m.mu.RUnlock()

	for _, sub := range subs {
		deliver(sub, seq, event)
	}
	return seq
}

func deliver[E any](sub *subscription[E], seq uint64, event E) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Error().Msgf("notification handler %s panicked: %v", sub.id, r)
		}
	}()
	sub.handler(seq, event)
}

// Publish adapts Broadcast to a plain event handler such as an engine's OnEvent.
func (m *Manager[E]) Publish(event E) {
	m.Broadcast(event)
}

// SubscriberCount returns the number of active subscribers.
func (m *Manager[E]) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Close removes all subscriptions.
func (m *Manager[E]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = nil
}
