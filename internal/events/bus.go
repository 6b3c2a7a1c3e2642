package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Bus distributes observability events to subscribers.
//
// Thread safety:
//   - All methods are safe for concurrent use.
//   - Publish never blocks on slow subscribers: if a subscriber's buffer is
//     full the event is dropped for that subscriber only.
type Bus interface {
	// Publish sends an event to all matching subscribers.
	// Returns an error only if the bus is closed.
	Publish(ctx context.Context, event Event) error

	// Subscribe creates a subscription filtered to the given event types
	// (nil or empty means all events). The returned cleanup function must be
	// called to release the subscription.
	Subscribe(ctx context.Context, eventTypes []EventType, bufferSize int) (<-chan Event, func())

	// Close shuts down the bus and all subscriptions. After Close returns,
	// Publish returns an error.
	Close() error
}

const defaultBufferSize = 64

// DefaultBus implements Bus with buffered channels and non-blocking sends.
type DefaultBus struct {
	mu          sync.RWMutex
	subscribers map[uint64]*subscription
	nextID      atomic.Uint64
	closed      bool
}

type subscription struct {
	ch      chan Event
	types   map[EventType]struct{} // nil means all
	dropped atomic.Int64
}

// NewBus creates a DefaultBus ready for use.
func NewBus() *DefaultBus {
	return &DefaultBus{
		subscribers: make(map[uint64]*subscription),
	}
}

// Publish implements Bus.
func (b *DefaultBus) Publish(_ context.Context, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return fmt.Errorf("event bus is closed")
	}

	for _, sub := range b.subscribers {
		if !sub.matches(event.Type) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			sub.dropped.Add(1)
		}
	}
	return nil
}

// Subscribe implements Bus.
func (b *DefaultBus) Subscribe(_ context.Context, eventTypes []EventType, bufferSize int) (<-chan Event, func()) {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	sub := &subscription{
		ch: make(chan Event, bufferSize),
	}
	if len(eventTypes) > 0 {
		sub.types = make(map[EventType]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = struct{}{}
		}
	}

	id := b.nextID.Add(1)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	b.subscribers[id] = sub
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if _, ok := b.subscribers[id]; ok {
				delete(b.subscribers, id)
				close(sub.ch)
			}
			b.mu.Unlock()
		})
	}
	return sub.ch, cancel
}

// Close implements Bus.
func (b *DefaultBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for id, sub := range b.subscribers {
		delete(b.subscribers, id)
		close(sub.ch)
	}
	return nil
}

func (s *subscription) matches(t EventType) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[t]
	return ok
}
