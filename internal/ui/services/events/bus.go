package events

import (
	"fmt"
	"sync"
)

type listener struct {
	id      uint64
	handler func(interface{})
}

// Bus is a simple event bus for UI services. Handlers run synchronously on
// the publishing goroutine, in subscription order, so they see events in the
// same order the Bubble Tea loop produced them.
type Bus struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners map[string][]listener
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]listener),
	}
}

// Subscribe registers a listener for an event type.
// The returned function removes it again and may be called more than once.
func (b *Bus) Subscribe(eventType string, handler func(interface{})) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[eventType] = append(b.listeners[eventType], listener{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			current := b.listeners[eventType]
			for i, l := range current {
				if l.id == id {
					b.listeners[eventType] = append(current[:i:i], current[i+1:]...)
					break
				}
			}
			if len(b.listeners[eventType]) == 0 {
				delete(b.listeners, eventType)
			}
		})
	}
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	eventType := TypeOf(event)

	// Copy so handlers may unsubscribe while being called
	b.mu.RLock()
	handlers := make([]listener, len(b.listeners[eventType]))
	copy(handlers, b.listeners[eventType])
	b.mu.RUnlock()

	for _, l := range handlers {
		l.handler(event)
	}
}

// Count returns the number of listeners for an event type
func (b *Bus) Count(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[eventType])
}

// TypeOf returns the event type key used for an event value
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
