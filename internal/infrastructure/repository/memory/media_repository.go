package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/teamtrack/internal/domain/media"
)

type MediaRepository struct {
	mu    sync.RWMutex
	items map[string]media.File
}

func NewMediaRepository() *MediaRepository {
	return &MediaRepository{items: make(map[string]media.File)}
}

// List returns files newest first.
func (r *MediaRepository) List(_ context.Context) ([]media.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]media.File, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MediaRepository) GetByID(_ context.Context, id string) (media.File, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *MediaRepository) Create(_ context.Context, item media.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *MediaRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}
