package event

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeMatch    Type = "match"
	TypeTraining Type = "training"
	TypeOther    Type = "other"
)

func ParseType(v string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(v))) {
	case TypeMatch:
		return TypeMatch, nil
	case TypeTraining:
		return TypeTraining, nil
	case TypeOther, "":
		return TypeOther, nil
	default:
		return "", fmt.Errorf("invalid event type: %s", v)
	}
}

type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

// Event is a scheduled match, training session or other team gathering.
type Event struct {
	ID         string
	Title      string
	Type       Type
	EventDate  time.Time
	Location   string
	Opponent   string
	IsHomeGame bool
	HomeScore  *int
	AwayScore  *int
	Result     Result
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e Event) IsMatch() bool {
	return e.Type == TypeMatch
}

// DeriveResult scores a match from the team's side: home score is ours when playing at home.
func DeriveResult(homeScore, awayScore int, isHomeGame bool) Result {
	ours, theirs := homeScore, awayScore
	if !isHomeGame {
		ours, theirs = awayScore, homeScore
	}
	switch {
	case ours > theirs:
		return ResultWin
	case ours < theirs:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// Filter selects which slice of the calendar a listing covers.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterUpcoming Filter = "upcoming"
	FilterPast     Filter = "past"
)

func ParseFilter(v string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(v))) {
	case FilterAll, "":
		return FilterAll, nil
	case FilterUpcoming:
		return FilterUpcoming, nil
	case FilterPast:
		return FilterPast, nil
	default:
		return "", fmt.Errorf("invalid event filter: %s", v)
	}
}
