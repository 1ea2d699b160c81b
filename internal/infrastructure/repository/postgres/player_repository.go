package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	qb "github.com/riskibarqy/teamtrack/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

// Unnumbered players sort last, matching player.Less.
var playerOrder = []string{"jersey_number ASC NULLS LAST", "lower(full_name) ASC", "id ASC"}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		OrderBy(playerOrder...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}
	return r.selectPlayers(ctx, query, args, "list players")
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []string) ([]player.Player, error) {
	if len(ids) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select("*").From("players").
		Where(qb.InStrings("id", ids)).
		OrderBy(playerOrder...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}
	return r.selectPlayers(ctx, query, args, "select players by ids")
}

func (r *PlayerRepository) ListByParentIDs(ctx context.Context, parentIDs []string) ([]player.Player, error) {
	if len(parentIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select("*").From("players").
		Where(qb.InStrings("parent_id", parentIDs)).
		OrderBy(playerOrder...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by parent query: %w", err)
	}
	return r.selectPlayers(ctx, query, args, "select players by parent")
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertModel("players", playerToRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	row := playerToRow(item)
	query, args, err := qb.Update("players").
		Set("full_name", row.FullName).
		Set("position", row.Position).
		Set("jersey_number", row.JerseyNumber).
		Set("avatar_url", row.AvatarURL).
		Set("parent_id", row.ParentID).
		Set("updated_at", row.UpdatedAt).
		Where(qb.Eq("id", row.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update player: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update player: not found")
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("players").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any, op string) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}
