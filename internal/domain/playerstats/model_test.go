package playerstats

import "testing"

func TestSort_DescendingWithNameTiebreak(t *testing.T) {
	items := []Ranked{
		{Stats: Stats{PlayerID: "p1", Goals: 2, Assists: 5}, PlayerName: "zed"},
		{Stats: Stats{PlayerID: "p2", Goals: 4, Assists: 1}, PlayerName: "Amy"},
		{Stats: Stats{PlayerID: "p3", Goals: 2, Assists: 0}, PlayerName: "bob"},
	}

	Sort(items, SortGoals)
	if items[0].PlayerID != "p2" || items[1].PlayerID != "p3" || items[2].PlayerID != "p1" {
		t.Fatalf("unexpected goal order: %s %s %s", items[0].PlayerID, items[1].PlayerID, items[2].PlayerID)
	}

	Sort(items, SortAssists)
	if items[0].PlayerID != "p1" {
		t.Fatalf("expected p1 to lead assists, got %s", items[0].PlayerID)
	}
}

func TestComputeTotals_SumsAndTakesMaxMatches(t *testing.T) {
	got := ComputeTotals([]Stats{
		{Goals: 3, Assists: 1, MatchesPlayed: 6},
		{Goals: 1, Assists: 2, MatchesPlayed: 9},
	})
	if got != (Totals{Goals: 4, Assists: 3, Matches: 9}) {
		t.Fatalf("unexpected totals %+v", got)
	}
	if ComputeTotals(nil) != (Totals{}) {
		t.Fatalf("expected zero totals for empty squad")
	}
}

func TestStats_ValidateRejectsNegativeCounters(t *testing.T) {
	if err := (Stats{PlayerID: "p1", Goals: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative goals")
	}
	if err := (Stats{Goals: 1}).Validate(); err == nil {
		t.Fatalf("expected error for missing player id")
	}
	if err := (Stats{PlayerID: "p1", MinutesPlayed: 90}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
