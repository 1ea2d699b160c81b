package postgres

import (
	"time"

	"github.com/riskibarqy/teamtrack/internal/domain/chat"
	"github.com/riskibarqy/teamtrack/internal/domain/media"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
)

type mediaFileTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	FileURL   string    `db:"file_url"`
	FilePath  string    `db:"file_path"`
	FileName  string    `db:"file_name"`
	FileType  string    `db:"file_type"`
	FileSize  int64     `db:"file_size"`
	MimeType  string    `db:"mime_type"`
	Caption   string    `db:"caption"`
	CreatedAt time.Time `db:"created_at"`
}

func mediaFileFromRow(row mediaFileTableModel) media.File {
	return media.File{
		ID:        row.ID,
		UserID:    row.UserID,
		FileURL:   row.FileURL,
		FilePath:  row.FilePath,
		FileName:  row.FileName,
		FileType:  media.FileType(row.FileType),
		FileSize:  row.FileSize,
		MimeType:  row.MimeType,
		Caption:   row.Caption,
		CreatedAt: row.CreatedAt,
	}
}

type chatMessageTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type announcementTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Priority  string    `db:"priority"`
	CreatedAt time.Time `db:"created_at"`
}

func announcementFromRow(row announcementTableModel) chat.Announcement {
	return chat.Announcement{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Content:   row.Content,
		Priority:  chat.Priority(row.Priority),
		CreatedAt: row.CreatedAt,
	}
}

type notificationTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Type      string    `db:"type"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

func notificationFromRow(row notificationTableModel) notification.Notification {
	return notification.Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		Type:      notification.Type(row.Type),
		Title:     row.Title,
		Message:   row.Message,
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
	}
}
