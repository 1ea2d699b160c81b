package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/teamtrack/internal/domain/availability"
)

type AvailabilityRepository struct {
	mu      sync.RWMutex
	byEvent map[string]map[string]availability.Availability
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{byEvent: make(map[string]map[string]availability.Availability)}
}

func (r *AvailabilityRepository) ListByEvent(_ context.Context, eventID string) ([]availability.Availability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byEvent[eventID]
	out := make([]availability.Availability, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *AvailabilityRepository) Upsert(_ context.Context, item availability.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, ok := r.byEvent[item.EventID]
	if !ok {
		rows = make(map[string]availability.Availability)
		r.byEvent[item.EventID] = rows
	}
	rows[item.UserID] = item
	return nil
}

func (r *AvailabilityRepository) DeleteByEvent(_ context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byEvent, eventID)
	return nil
}
