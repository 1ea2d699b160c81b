package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/teamtrack/internal/domain/notification"
)

type NotificationRepository struct {
	mu     sync.RWMutex
	byUser map[string][]notification.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{byUser: make(map[string][]notification.Notification)}
}

// ListByUser returns notifications newest first.
func (r *NotificationRepository) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byUser[userID]
	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		if unreadOnly && row.IsRead {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, row := range r.byUser[userID] {
		if !row.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) Create(_ context.Context, item notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[item.UserID] = append(r.byUser[item.UserID], item)
	return nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, userID string, ids []string) (int, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.markWhere(userID, func(item notification.Notification) bool {
		_, ok := wanted[item.ID]
		return ok
	}), nil
}

func (r *NotificationRepository) MarkReadByTypes(_ context.Context, userID string, types []notification.Type) (int, error) {
	wanted := make(map[notification.Type]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}
	return r.markWhere(userID, func(item notification.Notification) bool {
		if len(wanted) == 0 {
			return true
		}
		_, ok := wanted[item.Type]
		return ok
	}), nil
}

func (r *NotificationRepository) markWhere(userID string, match func(notification.Notification) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	rows := r.byUser[userID]
	for i := range rows {
		if rows[i].IsRead || !match(rows[i]) {
			continue
		}
		rows[i].IsRead = true
		updated++
	}
	return updated
}
