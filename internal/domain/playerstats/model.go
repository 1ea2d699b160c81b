package playerstats

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Stats aggregates season counters for one player.
type Stats struct {
	PlayerID      string
	MatchesPlayed int
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	CleanSheets   int
	MinutesPlayed int
	UpdatedAt     time.Time
}

func (s Stats) Validate() error {
	if strings.TrimSpace(s.PlayerID) == "" {
		return fmt.Errorf("player id is required")
	}
	for name, v := range map[string]int{
		"matches_played": s.MatchesPlayed,
		"goals":          s.Goals,
		"assists":        s.Assists,
		"yellow_cards":   s.YellowCards,
		"red_cards":      s.RedCards,
		"clean_sheets":   s.CleanSheets,
		"minutes_played": s.MinutesPlayed,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0", name)
		}
	}
	return nil
}

type SortKey string

const (
	SortGoals   SortKey = "goals"
	SortAssists SortKey = "assists"
	SortMatches SortKey = "matches"
)

func ParseSortKey(v string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(v))) {
	case SortGoals, "":
		return SortGoals, nil
	case SortAssists:
		return SortAssists, nil
	case SortMatches:
		return SortMatches, nil
	default:
		return "", fmt.Errorf("invalid sort key: %s", v)
	}
}

func (k SortKey) value(s Stats) int {
	switch k {
	case SortAssists:
		return s.Assists
	case SortMatches:
		return s.MatchesPlayed
	default:
		return s.Goals
	}
}

// Ranked pairs stats with the player name used as tiebreaker.
type Ranked struct {
	Stats
	PlayerName string
}

// Sort orders descending by key, ties by player name.
func Sort(items []Ranked, key SortKey) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key.value(items[i].Stats), key.value(items[j].Stats)
		if a != b {
			return a > b
		}
		return strings.ToLower(items[i].PlayerName) < strings.ToLower(items[j].PlayerName)
	})
}

// Totals summarises the team: goals and assists are summed, matches is the max played.
type Totals struct {
	Goals   int
	Assists int
	Matches int
}

func ComputeTotals(items []Stats) Totals {
	var out Totals
	for _, s := range items {
		out.Goals += s.Goals
		out.Assists += s.Assists
		if s.MatchesPlayed > out.Matches {
			out.Matches = s.MatchesPlayed
		}
	}
	return out
}
