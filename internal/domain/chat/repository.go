package chat

import "context"

type MessageRepository interface {
	// ListRecent returns up to limit latest messages in created_at ascending order.
	ListRecent(ctx context.Context, limit int) ([]Message, error)
	GetByID(ctx context.Context, id string) (Message, bool, error)
	Create(ctx context.Context, item Message) error
	Delete(ctx context.Context, id string) error
}

type AnnouncementRepository interface {
	// List returns announcements in created_at descending order.
	List(ctx context.Context, limit int) ([]Announcement, error)
	GetByID(ctx context.Context, id string) (Announcement, bool, error)
	Create(ctx context.Context, item Announcement) error
	Delete(ctx context.Context, id string) error
}
