package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/teamtrack/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	items map[string]playerstats.Stats
}

func NewPlayerStatsRepository(items []playerstats.Stats) *PlayerStatsRepository {
	index := make(map[string]playerstats.Stats, len(items))
	for _, item := range items {
		index[item.PlayerID] = item
	}
	return &PlayerStatsRepository{items: index}
}

func (r *PlayerStatsRepository) List(_ context.Context) ([]playerstats.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.Stats, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *PlayerStatsRepository) GetByPlayerID(_ context.Context, playerID string) (playerstats.Stats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[playerID]
	return item, ok, nil
}

func (r *PlayerStatsRepository) Upsert(_ context.Context, item playerstats.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.PlayerID] = item
	return nil
}

func (r *PlayerStatsRepository) ResetAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		r.items[id] = playerstats.Stats{PlayerID: id, UpdatedAt: item.UpdatedAt}
	}
	return nil
}

func (r *PlayerStatsRepository) DeleteByPlayerID(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, playerID)
	return nil
}
