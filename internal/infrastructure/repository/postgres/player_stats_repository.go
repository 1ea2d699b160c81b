package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamtrack/internal/domain/playerstats"
	qb "github.com/riskibarqy/teamtrack/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) List(ctx context.Context) ([]playerstats.Stats, error) {
	query, args, err := qb.Select("*").From("player_stats").
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player stats query: %w", err)
	}

	var rows []playerStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player stats: %w", err)
	}

	out := make([]playerstats.Stats, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerStatsFromRow(row))
	}
	return out, nil
}

func (r *PlayerStatsRepository) GetByPlayerID(ctx context.Context, playerID string) (playerstats.Stats, bool, error) {
	query, args, err := qb.Select("*").From("player_stats").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return playerstats.Stats{}, false, fmt.Errorf("build get player stats query: %w", err)
	}

	var row playerStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstats.Stats{}, false, nil
		}
		return playerstats.Stats{}, false, fmt.Errorf("get player stats: %w", err)
	}
	return playerStatsFromRow(row), true, nil
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, item playerstats.Stats) error {
	query, args, err := qb.UpsertModel("player_stats", playerStatsTableModel{
		PlayerID:      item.PlayerID,
		MatchesPlayed: item.MatchesPlayed,
		Goals:         item.Goals,
		Assists:       item.Assists,
		YellowCards:   item.YellowCards,
		RedCards:      item.RedCards,
		CleanSheets:   item.CleanSheets,
		MinutesPlayed: item.MinutesPlayed,
		UpdatedAt:     item.UpdatedAt,
	}, []string{"player_id"})
	if err != nil {
		return fmt.Errorf("build upsert player stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player stats: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) ResetAll(ctx context.Context) error {
	query, args, err := qb.Update("player_stats").
		Set("matches_played", 0).
		Set("goals", 0).
		Set("assists", 0).
		Set("yellow_cards", 0).
		Set("red_cards", 0).
		Set("clean_sheets", 0).
		Set("minutes_played", 0).
		SetExpr("updated_at", "NOW()").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset player stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset player stats: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) DeleteByPlayerID(ctx context.Context, playerID string) error {
	query, args, err := qb.DeleteFrom("player_stats").Where(qb.Eq("player_id", playerID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player stats: %w", err)
	}
	return nil
}
