package pubsub

import (
	"context"
	"sync"

	"github.com/riskibarqy/teamtrack/internal/domain/realtime"
)

// Subscriber registers handlers for a realtime channel. The returned func
// removes the handler.
type Subscriber interface {
	Subscribe(channel realtime.Channel, handler realtime.Handler) (func(), error)
}

// Broker fans changes out to in-process subscribers. Handlers run on the
// publishing goroutine.
type Broker struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[realtime.Channel]map[uint64]realtime.Handler
}

func NewBroker() *Broker {
	return &Broker{handlers: make(map[realtime.Channel]map[uint64]realtime.Handler)}
}

func (b *Broker) Publish(ctx context.Context, change realtime.Change) error {
	b.mu.RLock()
	targets := make([]realtime.Handler, 0, len(b.handlers[change.Channel]))
	for _, handler := range b.handlers[change.Channel] {
		targets = append(targets, handler)
	}
	b.mu.RUnlock()

	for _, handler := range targets {
		handler(ctx, change)
	}
	return nil
}

func (b *Broker) Subscribe(channel realtime.Channel, handler realtime.Handler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[channel] == nil {
		b.handlers[channel] = make(map[uint64]realtime.Handler)
	}
	b.handlers[channel][id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers[channel], id)
			if len(b.handlers[channel]) == 0 {
				delete(b.handlers, channel)
			}
		})
	}, nil
}
