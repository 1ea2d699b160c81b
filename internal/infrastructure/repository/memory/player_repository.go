package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/teamtrack/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = clonePlayer(p)
	}
	return &PlayerRepository{items: index}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, clonePlayer(p))
	}
	sort.SliceStable(out, func(i, j int) bool { return player.Less(out[i], out[j]) })
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := r.items[id]
		if !ok {
			continue
		}
		out = append(out, clonePlayer(p))
	}
	return out, nil
}

func (r *PlayerRepository) ListByParentIDs(_ context.Context, parentIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parents := make(map[string]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = struct{}{}
	}

	out := make([]player.Player, 0)
	for _, p := range r.items {
		if _, ok := parents[p.ParentID]; ok && p.ParentID != "" {
			out = append(out, clonePlayer(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return player.Less(out[i], out[j]) })
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("player already exists: %s", item.ID)
	}
	r.items[item.ID] = clonePlayer(item)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("player not found: %s", item.ID)
	}
	r.items[item.ID] = clonePlayer(item)
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func clonePlayer(p player.Player) player.Player {
	copied := p
	if p.JerseyNumber != nil {
		v := *p.JerseyNumber
		copied.JerseyNumber = &v
	}
	return copied
}
