package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamtrack/internal/domain/availability"
	qb "github.com/riskibarqy/teamtrack/internal/platform/querybuilder"
)

type AvailabilityRepository struct {
	db *sqlx.DB
}

func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) ListByEvent(ctx context.Context, eventID string) ([]availability.Availability, error) {
	query, args, err := qb.Select("*").From("availability").
		Where(qb.Eq("event_id", eventID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list availability query: %w", err)
	}

	var rows []availabilityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	out := make([]availability.Availability, 0, len(rows))
	for _, row := range rows {
		out = append(out, availabilityFromRow(row))
	}
	return out, nil
}

func (r *AvailabilityRepository) Upsert(ctx context.Context, item availability.Availability) error {
	query, args, err := qb.UpsertModel("availability", availabilityTableModel{
		EventID:   item.EventID,
		UserID:    item.UserID,
		Status:    string(item.Status),
		Note:      item.Note,
		UpdatedAt: item.UpdatedAt,
	}, []string{"event_id", "user_id"})
	if err != nil {
		return fmt.Errorf("build upsert availability query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert availability: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) DeleteByEvent(ctx context.Context, eventID string) error {
	query, args, err := qb.DeleteFrom("availability").Where(qb.Eq("event_id", eventID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete availability query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return nil
}
