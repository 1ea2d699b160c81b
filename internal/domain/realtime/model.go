package realtime

import (
	"context"
	"time"
)

type Channel string

const (
	ChannelChatMessages  Channel = "chat_messages"
	ChannelAnnouncements Channel = "announcements"
)

func ParseChannel(v string) (Channel, bool) {
	switch Channel(v) {
	case ChannelChatMessages, ChannelAnnouncements:
		return Channel(v), true
	default:
		return "", false
	}
}

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeDelete ChangeType = "DELETE"
)

// Change is a row-level change pushed to subscribers of a channel.
type Change struct {
	ID         string     `json:"id"`
	Channel    Channel    `json:"channel"`
	Type       ChangeType `json:"type"`
	Record     any        `json:"record"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Publisher emits changes to the realtime feed.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
}

// Handler receives decoded changes from a subscription.
type Handler func(ctx context.Context, change Change)

// Author is the profile snippet attached to realtime records.
type Author struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type MessageRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    *Author   `json:"profiles,omitempty"`
}

type AnnouncementRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	Author    *Author   `json:"profiles,omitempty"`
}

// DeletedRecord identifies a removed row.
type DeletedRecord struct {
	ID string `json:"id"`
}
