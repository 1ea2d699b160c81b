package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	qb "github.com/riskibarqy/teamtrack/internal/platform/querybuilder"
)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	conditions := []qb.Condition{qb.Eq("user_id", userID)}
	if unreadOnly {
		conditions = append(conditions, qb.Eq("is_read", false))
	}

	query, args, err := qb.Select("*").From("notifications").
		Where(conditions...).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list notifications query: %w", err)
	}

	var rows []notificationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, notificationFromRow(row))
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("notifications").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("is_read", false),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count unread notifications query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) Create(ctx context.Context, item notification.Notification) error {
	query, args, err := qb.InsertModel("notifications", notificationTableModel{
		ID:        item.ID,
		UserID:    item.UserID,
		Type:      string(item.Type),
		Title:     item.Title,
		Message:   item.Message,
		IsRead:    item.IsRead,
		CreatedAt: item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert notification query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.markRead(ctx, qb.Eq("user_id", userID), qb.Eq("is_read", false), qb.InStrings("id", ids))
}

// MarkReadByTypes with no types marks every unread notification.
func (r *NotificationRepository) MarkReadByTypes(ctx context.Context, userID string, types []notification.Type) (int, error) {
	conditions := []qb.Condition{qb.Eq("user_id", userID), qb.Eq("is_read", false)}
	if len(types) > 0 {
		values := make([]string, 0, len(types))
		for _, t := range types {
			values = append(values, string(t))
		}
		conditions = append(conditions, qb.InStrings("type", values))
	}
	return r.markRead(ctx, conditions...)
}

func (r *NotificationRepository) markRead(ctx context.Context, conditions ...qb.Condition) (int, error) {
	query, args, err := qb.Update("notifications").
		Set("is_read", true).
		Where(conditions...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build mark notifications read query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected mark notifications read: %w", err)
	}
	return int(affected), nil
}
