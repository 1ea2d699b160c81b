package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/teamtrack/internal/domain/event"
)

type EventRepository struct {
	mu    sync.RWMutex
	items map[string]event.Event
}

func NewEventRepository(items []event.Event) *EventRepository {
	index := make(map[string]event.Event, len(items))
	for _, item := range items {
		index[item.ID] = cloneEvent(item)
	}
	return &EventRepository{items: index}
}

// List returns events by event date ascending.
func (r *EventRepository) List(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(), nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return event.Event{}, false, nil
	}
	return cloneEvent(item), true, nil
}

func (r *EventRepository) NextFrom(_ context.Context, from time.Time, eventType event.Type) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.sortedLocked() {
		if item.EventDate.Before(from) {
			continue
		}
		if eventType != "" && item.Type != eventType {
			continue
		}
		return item, true, nil
	}
	return event.Event{}, false, nil
}

func (r *EventRepository) LastResultBefore(_ context.Context, before time.Time) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.sortedLocked()
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if !item.EventDate.Before(before) || !item.IsMatch() || item.Result == "" {
			continue
		}
		return item, true, nil
	}
	return event.Event{}, false, nil
}

func (r *EventRepository) Create(_ context.Context, item event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("event already exists: %s", item.ID)
	}
	r.items[item.ID] = cloneEvent(item)
	return nil
}

func (r *EventRepository) Update(_ context.Context, item event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("event not found: %s", item.ID)
	}
	r.items[item.ID] = cloneEvent(item)
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *EventRepository) sortedLocked() []event.Event {
	out := make([]event.Event, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneEvent(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].EventDate.Before(out[j].EventDate)
	})
	return out
}

func cloneEvent(item event.Event) event.Event {
	copied := item
	if item.HomeScore != nil {
		v := *item.HomeScore
		copied.HomeScore = &v
	}
	if item.AwayScore != nil {
		v := *item.AwayScore
		copied.AwayScore = &v
	}
	return copied
}
