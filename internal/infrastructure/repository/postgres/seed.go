package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/teamtrack/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo roster and calendar into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	players := memory.SeedPlayers(now)
	for _, p := range players {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (id, full_name, position, jersey_number, avatar_url, created_at, updated_at)
VALUES (:id, :full_name, :position, :jersey_number, '', :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":            p.ID,
			"full_name":     p.FullName,
			"position":      p.Position,
			"jersey_number": p.JerseyNumber,
			"created_at":    p.CreatedAt.UTC(),
			"updated_at":    p.UpdatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, s := range memory.SeedPlayerStats(players, now) {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO player_stats (player_id, updated_at)
VALUES ($1, $2)
ON CONFLICT (player_id) DO NOTHING`, s.PlayerID, s.UpdatedAt.UTC()); err != nil {
			return fmt.Errorf("seed player stats %s: %w", s.PlayerID, err)
		}
	}

	for _, e := range memory.SeedEvents(now) {
		row := eventToRow(e)
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO events (id, title, event_type, event_date, location, opponent, is_home_game, home_score, away_score, result, notes, created_by, created_at, updated_at)
VALUES (:id, :title, :event_type, :event_date, :location, :opponent, :is_home_game, :home_score, :away_score, :result, :notes, :created_by, :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`, row)
		if err != nil {
			return fmt.Errorf("bind seed event %s query: %w", e.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
