package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamtrack/internal/domain/lineup"
	qb "github.com/riskibarqy/teamtrack/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByEvent(ctx context.Context, eventID string) (lineup.MatchLineup, bool, error) {
	query, args, err := qb.Select("*").From("match_lineups").
		Where(qb.Eq("event_id", eventID)).
		ToSQL()
	if err != nil {
		return lineup.MatchLineup{}, false, fmt.Errorf("build get match lineup query: %w", err)
	}

	var row matchLineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.MatchLineup{}, false, nil
		}
		return lineup.MatchLineup{}, false, fmt.Errorf("get match lineup: %w", err)
	}
	return matchLineupFromRow(row), true, nil
}

func (r *LineupRepository) Upsert(ctx context.Context, item lineup.MatchLineup) error {
	query, args, err := qb.UpsertModel("match_lineups", matchLineupToRow(item), []string{"event_id"}, "id", "created_at")
	if err != nil {
		return fmt.Errorf("build match lineup upsert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match lineup: %w", err)
	}
	return nil
}

func (r *LineupRepository) DeleteByEvent(ctx context.Context, eventID string) error {
	query, args, err := qb.DeleteFrom("match_lineups").Where(qb.Eq("event_id", eventID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match lineup query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match lineup: %w", err)
	}
	return nil
}

type StartingPickRepository struct {
	db *sqlx.DB
}

func NewStartingPickRepository(db *sqlx.DB) *StartingPickRepository {
	return &StartingPickRepository{db: db}
}

func (r *StartingPickRepository) ListByEvent(ctx context.Context, eventID string) ([]lineup.StartingPick, error) {
	query, args, err := qb.Select("*").From("lineups").
		Where(qb.Eq("event_id", eventID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list starting picks query: %w", err)
	}

	var rows []startingPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list starting picks: %w", err)
	}

	out := make([]lineup.StartingPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineup.StartingPick{
			ID:         row.ID,
			EventID:    row.EventID,
			PlayerID:   row.PlayerID,
			Position:   row.Position,
			IsStarting: row.IsStarting,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}

// Replace deletes and re-inserts the event's picks in one transaction.
func (r *StartingPickRepository) Replace(ctx context.Context, eventID string, picks []lineup.StartingPick) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace starting picks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("lineups").Where(qb.Eq("event_id", eventID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete starting picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete starting picks: %w", err)
	}

	for _, pick := range picks {
		insertQuery, insertArgs, err := qb.InsertModel("lineups", startingPickTableModel{
			ID:         pick.ID,
			EventID:    eventID,
			PlayerID:   pick.PlayerID,
			Position:   pick.Position,
			IsStarting: pick.IsStarting,
			CreatedAt:  pick.CreatedAt,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert starting pick query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert starting pick player=%s: %w", pick.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace starting picks tx: %w", err)
	}
	return nil
}

func (r *StartingPickRepository) DeleteByEvent(ctx context.Context, eventID string) error {
	query, args, err := qb.DeleteFrom("lineups").Where(qb.Eq("event_id", eventID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete starting picks query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete starting picks: %w", err)
	}
	return nil
}
