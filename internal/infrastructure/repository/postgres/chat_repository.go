package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamtrack/internal/domain/chat"
	qb "github.com/riskibarqy/teamtrack/internal/platform/querybuilder"
)

type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// ListRecent reads the newest rows and flips them back to chronological order.
func (r *MessageRepository) ListRecent(ctx context.Context, limit int) ([]chat.Message, error) {
	query, args, err := qb.Select("*").From("chat_messages").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list chat messages query: %w", err)
	}

	var rows []chatMessageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}

	out := make([]chat.Message, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = chat.Message{
			ID:        row.ID,
			UserID:    row.UserID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
		}
	}
	return out, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id string) (chat.Message, bool, error) {
	query, args, err := qb.Select("*").From("chat_messages").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return chat.Message{}, false, fmt.Errorf("build get chat message query: %w", err)
	}

	var row chatMessageTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return chat.Message{}, false, nil
		}
		return chat.Message{}, false, fmt.Errorf("get chat message: %w", err)
	}
	return chat.Message{ID: row.ID, UserID: row.UserID, Content: row.Content, CreatedAt: row.CreatedAt}, true, nil
}

func (r *MessageRepository) Create(ctx context.Context, item chat.Message) error {
	query, args, err := qb.InsertModel("chat_messages", chatMessageTableModel{
		ID:        item.ID,
		UserID:    item.UserID,
		Content:   item.Content,
		CreatedAt: item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert chat message query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("chat_messages").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete chat message query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete chat message: %w", err)
	}
	return nil
}

type AnnouncementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) List(ctx context.Context, limit int) ([]chat.Announcement, error) {
	query, args, err := qb.Select("*").From("announcements").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list announcements query: %w", err)
	}

	var rows []announcementTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	out := make([]chat.Announcement, 0, len(rows))
	for _, row := range rows {
		out = append(out, announcementFromRow(row))
	}
	return out, nil
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id string) (chat.Announcement, bool, error) {
	query, args, err := qb.Select("*").From("announcements").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return chat.Announcement{}, false, fmt.Errorf("build get announcement query: %w", err)
	}

	var row announcementTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return chat.Announcement{}, false, nil
		}
		return chat.Announcement{}, false, fmt.Errorf("get announcement: %w", err)
	}
	return announcementFromRow(row), true, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, item chat.Announcement) error {
	query, args, err := qb.InsertModel("announcements", announcementTableModel{
		ID:        item.ID,
		UserID:    item.UserID,
		Title:     item.Title,
		Content:   item.Content,
		Priority:  string(item.Priority),
		CreatedAt: item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert announcement query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("announcements").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete announcement query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}
