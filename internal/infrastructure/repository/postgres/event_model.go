package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/teamtrack/internal/domain/availability"
	"github.com/riskibarqy/teamtrack/internal/domain/event"
)

type eventTableModel struct {
	ID         string         `db:"id"`
	Title      string         `db:"title"`
	EventType  string         `db:"event_type"`
	EventDate  time.Time      `db:"event_date"`
	Location   string         `db:"location"`
	Opponent   string         `db:"opponent"`
	IsHomeGame bool           `db:"is_home_game"`
	HomeScore  *int           `db:"home_score"`
	AwayScore  *int           `db:"away_score"`
	Result     sql.NullString `db:"result"`
	Notes      string         `db:"notes"`
	CreatedBy  string         `db:"created_by"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:         row.ID,
		Title:      row.Title,
		Type:       event.Type(row.EventType),
		EventDate:  row.EventDate,
		Location:   row.Location,
		Opponent:   row.Opponent,
		IsHomeGame: row.IsHomeGame,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		Result:     event.Result(row.Result.String),
		Notes:      row.Notes,
		CreatedBy:  row.CreatedBy,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func eventToRow(item event.Event) eventTableModel {
	return eventTableModel{
		ID:         item.ID,
		Title:      item.Title,
		EventType:  string(item.Type),
		EventDate:  item.EventDate,
		Location:   item.Location,
		Opponent:   item.Opponent,
		IsHomeGame: item.IsHomeGame,
		HomeScore:  item.HomeScore,
		AwayScore:  item.AwayScore,
		Result:     nullString(string(item.Result)),
		Notes:      item.Notes,
		CreatedBy:  item.CreatedBy,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

type availabilityTableModel struct {
	EventID   string    `db:"event_id"`
	UserID    string    `db:"user_id"`
	Status    string    `db:"status"`
	Note      string    `db:"note"`
	UpdatedAt time.Time `db:"updated_at"`
}

func availabilityFromRow(row availabilityTableModel) availability.Availability {
	return availability.Availability{
		EventID:   row.EventID,
		UserID:    row.UserID,
		Status:    availability.Status(row.Status),
		Note:      row.Note,
		UpdatedAt: row.UpdatedAt,
	}
}
