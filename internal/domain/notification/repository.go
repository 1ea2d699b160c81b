package notification

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	Create(ctx context.Context, item Notification) error
	MarkRead(ctx context.Context, userID string, ids []string) (int, error)
	MarkReadByTypes(ctx context.Context, userID string, types []Type) (int, error)
}
