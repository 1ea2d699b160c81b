package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/playerstats"
)

type playerTableModel struct {
	ID           string         `db:"id"`
	FullName     string         `db:"full_name"`
	Position     string         `db:"position"`
	JerseyNumber *int           `db:"jersey_number"`
	AvatarURL    string         `db:"avatar_url"`
	ParentID     sql.NullString `db:"parent_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:           row.ID,
		FullName:     row.FullName,
		Position:     row.Position,
		JerseyNumber: row.JerseyNumber,
		AvatarURL:    row.AvatarURL,
		ParentID:     row.ParentID.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func playerToRow(item player.Player) playerTableModel {
	return playerTableModel{
		ID:           item.ID,
		FullName:     item.FullName,
		Position:     item.Position,
		JerseyNumber: item.JerseyNumber,
		AvatarURL:    item.AvatarURL,
		ParentID:     nullString(item.ParentID),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

type playerStatsTableModel struct {
	PlayerID      string    `db:"player_id"`
	MatchesPlayed int       `db:"matches_played"`
	Goals         int       `db:"goals"`
	Assists       int       `db:"assists"`
	YellowCards   int       `db:"yellow_cards"`
	RedCards      int       `db:"red_cards"`
	CleanSheets   int       `db:"clean_sheets"`
	MinutesPlayed int       `db:"minutes_played"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func playerStatsFromRow(row playerStatsTableModel) playerstats.Stats {
	return playerstats.Stats{
		PlayerID:      row.PlayerID,
		MatchesPlayed: row.MatchesPlayed,
		Goals:         row.Goals,
		Assists:       row.Assists,
		YellowCards:   row.YellowCards,
		RedCards:      row.RedCards,
		CleanSheets:   row.CleanSheets,
		MinutesPlayed: row.MinutesPlayed,
		UpdatedAt:     row.UpdatedAt,
	}
}
