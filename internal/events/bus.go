package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryBus is a synchronous in-process Bus. Delivery order follows
// subscription order; a failing handler is logged and does not block
// the remaining handlers.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewMemoryBus creates an empty in-process bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for the given event name.
func (b *MemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish delivers the event to every handler registered for its name.
func (b *MemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.EventName()]
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h.Handle(ctx, event); err != nil {
			zap.L().Warn("events: handler failed",
				zap.String("event", event.EventName()),
				zap.Error(err),
			)
		}
	}
}

// NopBus discards all events. Useful for commands that do not need
// downstream delivery.
type NopBus struct{}

// Publish discards the event.
func (NopBus) Publish(context.Context, Event) {}

// Subscribe discards the handler.
func (NopBus) Subscribe(string, Handler) {}
