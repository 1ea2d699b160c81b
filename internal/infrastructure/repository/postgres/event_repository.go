package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamtrack/internal/domain/event"
	qb "github.com/riskibarqy/teamtrack/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("events").
		OrderBy("event_date ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}
	return r.getOne(ctx, query, args, "get event")
}

func (r *EventRepository) NextFrom(ctx context.Context, from time.Time, eventType event.Type) (event.Event, bool, error) {
	conditions := []qb.Condition{qb.Gte("event_date", from)}
	if eventType != "" {
		conditions = append(conditions, qb.Eq("event_type", string(eventType)))
	}

	query, args, err := qb.Select("*").From("events").
		Where(conditions...).
		OrderBy("event_date ASC", "id ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build next event query: %w", err)
	}
	return r.getOne(ctx, query, args, "get next event")
}

func (r *EventRepository) LastResultBefore(ctx context.Context, before time.Time) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").
		Where(
			qb.Lt("event_date", before),
			qb.Eq("event_type", string(event.TypeMatch)),
			qb.NotNull("result"),
		).
		OrderBy("event_date DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build last result query: %w", err)
	}
	return r.getOne(ctx, query, args, "get last result")
}

func (r *EventRepository) Create(ctx context.Context, item event.Event) error {
	query, args, err := qb.InsertModel("events", eventToRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, item event.Event) error {
	row := eventToRow(item)
	query, args, err := qb.Update("events").
		Set("title", row.Title).
		Set("event_type", row.EventType).
		Set("event_date", row.EventDate).
		Set("location", row.Location).
		Set("opponent", row.Opponent).
		Set("is_home_game", row.IsHomeGame).
		Set("home_score", row.HomeScore).
		Set("away_score", row.AwayScore).
		Set("result", row.Result).
		Set("notes", row.Notes).
		Set("updated_at", row.UpdatedAt).
		Where(qb.Eq("id", row.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update event query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update event: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update event: not found")
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("events").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (r *EventRepository) getOne(ctx context.Context, query string, args []any, op string) (event.Event, bool, error) {
	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return eventFromRow(row), true, nil
}
