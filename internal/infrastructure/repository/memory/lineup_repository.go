package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/teamtrack/internal/domain/lineup"
)

type LineupRepository struct {
	mu      sync.RWMutex
	byEvent map[string]lineup.MatchLineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{byEvent: make(map[string]lineup.MatchLineup)}
}

func (r *LineupRepository) GetByEvent(_ context.Context, eventID string) (lineup.MatchLineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byEvent[eventID]
	if !ok {
		return lineup.MatchLineup{}, false, nil
	}
	return cloneLineup(item), true, nil
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.MatchLineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byEvent[item.EventID] = cloneLineup(item)
	return nil
}

func (r *LineupRepository) DeleteByEvent(_ context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byEvent, eventID)
	return nil
}

func cloneLineup(item lineup.MatchLineup) lineup.MatchLineup {
	copied := item
	copied.Positions = make([]lineup.FieldPosition, 0, len(item.Positions))
	for _, pos := range item.Positions {
		if pos.JerseyNumber != nil {
			v := *pos.JerseyNumber
			pos.JerseyNumber = &v
		}
		copied.Positions = append(copied.Positions, pos)
	}
	return copied
}

type StartingPickRepository struct {
	mu      sync.RWMutex
	byEvent map[string][]lineup.StartingPick
}

func NewStartingPickRepository() *StartingPickRepository {
	return &StartingPickRepository{byEvent: make(map[string][]lineup.StartingPick)}
}

func (r *StartingPickRepository) ListByEvent(_ context.Context, eventID string) ([]lineup.StartingPick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]lineup.StartingPick{}, r.byEvent[eventID]...), nil
}

func (r *StartingPickRepository) Replace(_ context.Context, eventID string, picks []lineup.StartingPick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(picks) == 0 {
		delete(r.byEvent, eventID)
		return nil
	}
	r.byEvent[eventID] = append([]lineup.StartingPick(nil), picks...)
	return nil
}

func (r *StartingPickRepository) DeleteByEvent(_ context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byEvent, eventID)
	return nil
}
