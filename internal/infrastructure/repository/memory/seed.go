package memory

import (
	"time"

	"github.com/riskibarqy/teamtrack/internal/domain/event"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/playerstats"
)

// SeedPlayers returns the demo roster used when the service runs without a database.
func SeedPlayers(now time.Time) []player.Player {
	roster := []struct {
		id       string
		name     string
		position string
		jersey   int
	}{
		{"seed-player-01", "Sam Carter", "Goalkeeper", 1},
		{"seed-player-02", "Leo Martins", "Defender", 2},
		{"seed-player-03", "Noah Evans", "Defender", 4},
		{"seed-player-04", "Mia Rossi", "Midfielder", 6},
		{"seed-player-05", "Ava Chen", "Midfielder", 8},
		{"seed-player-06", "Jack Wilson", "Midfielder", 10},
		{"seed-player-07", "Ella Brooks", "Forward", 9},
		{"seed-player-08", "Oscar Reid", "Forward", 11},
	}

	out := make([]player.Player, 0, len(roster)+1)
	for _, p := range roster {
		jersey := p.jersey
		out = append(out, player.Player{
			ID:           p.id,
			FullName:     p.name,
			Position:     p.position,
			JerseyNumber: &jersey,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	out = append(out, player.Player{ID: "seed-player-09", FullName: "Ruby Hart", Position: "Defender", CreatedAt: now, UpdatedAt: now})
	return out
}

// SeedPlayerStats gives every seeded player an empty stats row.
func SeedPlayerStats(players []player.Player, now time.Time) []playerstats.Stats {
	out := make([]playerstats.Stats, 0, len(players))
	for _, p := range players {
		out = append(out, playerstats.Stats{PlayerID: p.ID, UpdatedAt: now})
	}
	return out
}

// SeedEvents schedules a finished match, a training and an upcoming match around now.
func SeedEvents(now time.Time) []event.Event {
	home, away := 3, 1
	day := 24 * time.Hour
	return []event.Event{
		{
			ID:         "seed-event-01",
			Title:      "League match vs Riverside",
			Type:       event.TypeMatch,
			EventDate:  now.Add(-7 * day).Truncate(time.Hour),
			Location:   "Home Ground",
			Opponent:   "Riverside FC",
			IsHomeGame: true,
			HomeScore:  &home,
			AwayScore:  &away,
			Result:     event.DeriveResult(home, away, true),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:        "seed-event-02",
			Title:     "Midweek training",
			Type:      event.TypeTraining,
			EventDate: now.Add(2 * day).Truncate(time.Hour),
			Location:  "Training Pitch 2",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:         "seed-event-03",
			Title:      "League match at Hillside",
			Type:       event.TypeMatch,
			EventDate:  now.Add(5 * day).Truncate(time.Hour),
			Location:   "Hillside Park",
			Opponent:   "Hillside Rovers",
			IsHomeGame: false,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
}
