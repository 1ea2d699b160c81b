package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/teamtrack/internal/domain/chat"
)

type MessageRepository struct {
	mu    sync.RWMutex
	items []chat.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) ListRecent(_ context.Context, limit int) ([]chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := append([]chat.Message(nil), r.items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	return items, nil
}

func (r *MessageRepository) GetByID(_ context.Context, id string) (chat.Message, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return chat.Message{}, false, nil
}

func (r *MessageRepository) Create(_ context.Context, item chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	return nil
}

func (r *MessageRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type AnnouncementRepository struct {
	mu    sync.RWMutex
	items []chat.Announcement
}

func NewAnnouncementRepository() *AnnouncementRepository {
	return &AnnouncementRepository{}
}

func (r *AnnouncementRepository) List(_ context.Context, limit int) ([]chat.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := append([]chat.Announcement(nil), r.items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *AnnouncementRepository) GetByID(_ context.Context, id string) (chat.Announcement, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return chat.Announcement{}, false, nil
}

func (r *AnnouncementRepository) Create(_ context.Context, item chat.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	return nil
}

func (r *AnnouncementRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}
