package postgres

import (
	"database/sql/driver"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/teamtrack/internal/domain/lineup"
)

var jsonb = jsoniter.ConfigCompatibleWithStandardLibrary

type fieldPositionModel struct {
	PlayerID     string  `json:"player_id"`
	PositionX    float64 `json:"position_x"`
	PositionY    float64 `json:"position_y"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	IsSubstitute bool    `json:"is_substitute"`
}

// fieldPositions maps the player_positions JSONB column.
type fieldPositions []fieldPositionModel

func (p fieldPositions) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return jsonb.Marshal([]fieldPositionModel(p))
}

func (p *fieldPositions) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = fieldPositions{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan player_positions: unsupported type %T", src)
	}
	return jsonb.Unmarshal(raw, (*[]fieldPositionModel)(p))
}

type matchLineupTableModel struct {
	ID         string         `db:"id"`
	EventID    string         `db:"event_id"`
	Formation  string         `db:"formation"`
	Positions  fieldPositions `db:"player_positions"`
	CreatedBy  string         `db:"created_by"`
	IsHomeGame bool           `db:"is_home_game"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func matchLineupFromRow(row matchLineupTableModel) lineup.MatchLineup {
	positions := make([]lineup.FieldPosition, 0, len(row.Positions))
	for _, p := range row.Positions {
		positions = append(positions, lineup.FieldPosition{
			PlayerID:     p.PlayerID,
			X:            p.PositionX,
			Y:            p.PositionY,
			JerseyNumber: p.JerseyNumber,
			IsSubstitute: p.IsSubstitute,
		})
	}
	return lineup.MatchLineup{
		ID:         row.ID,
		EventID:    row.EventID,
		Formation:  row.Formation,
		Positions:  positions,
		CreatedBy:  row.CreatedBy,
		IsHomeGame: row.IsHomeGame,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func matchLineupToRow(item lineup.MatchLineup) matchLineupTableModel {
	positions := make(fieldPositions, 0, len(item.Positions))
	for _, p := range item.Positions {
		positions = append(positions, fieldPositionModel{
			PlayerID:     p.PlayerID,
			PositionX:    p.X,
			PositionY:    p.Y,
			JerseyNumber: p.JerseyNumber,
			IsSubstitute: p.IsSubstitute,
		})
	}
	return matchLineupTableModel{
		ID:         item.ID,
		EventID:    item.EventID,
		Formation:  item.Formation,
		Positions:  positions,
		CreatedBy:  item.CreatedBy,
		IsHomeGame: item.IsHomeGame,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

type startingPickTableModel struct {
	ID         string    `db:"id"`
	EventID    string    `db:"event_id"`
	PlayerID   string    `db:"player_id"`
	Position   string    `db:"position"`
	IsStarting bool      `db:"is_starting"`
	CreatedAt  time.Time `db:"created_at"`
}
