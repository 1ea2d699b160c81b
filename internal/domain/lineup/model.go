package lineup

import "time"

// FieldPosition places one player on the pitch for a match.
type FieldPosition struct {
	PlayerID     string
	X            float64
	Y            float64
	JerseyNumber *int
	IsSubstitute bool
}

// MatchLineup is the formation lineup saved for a match event; one per event.
type MatchLineup struct {
	ID         string
	EventID    string
	Formation  string
	Positions  []FieldPosition
	CreatedBy  string
	IsHomeGame bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (l MatchLineup) Starters() []FieldPosition {
	out := make([]FieldPosition, 0, len(l.Positions))
	for _, p := range l.Positions {
		if !p.IsSubstitute {
			out = append(out, p)
		}
	}
	return out
}

func (l MatchLineup) Substitutes() []FieldPosition {
	out := make([]FieldPosition, 0)
	for _, p := range l.Positions {
		if p.IsSubstitute {
			out = append(out, p)
		}
	}
	return out
}

const DefaultPickPosition = "Forward"

// StartingPick is a row of the quick starting-eleven picker.
type StartingPick struct {
	ID         string
	EventID    string
	PlayerID   string
	Position   string
	IsStarting bool
	CreatedAt  time.Time
}
