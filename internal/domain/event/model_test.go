package event

import "testing"

func TestDeriveResult_UsesTeamSide(t *testing.T) {
	cases := []struct {
		name       string
		home, away int
		isHome     bool
		want       Result
	}{
		{name: "home win", home: 3, away: 1, isHome: true, want: ResultWin},
		{name: "home loss", home: 0, away: 2, isHome: true, want: ResultLoss},
		{name: "away win", home: 1, away: 4, isHome: false, want: ResultWin},
		{name: "away loss", home: 2, away: 1, isHome: false, want: ResultLoss},
		{name: "draw", home: 2, away: 2, isHome: false, want: ResultDraw},
	}
	for _, tc := range cases {
		if got := DeriveResult(tc.home, tc.away, tc.isHome); got != tc.want {
			t.Fatalf("%s: got=%s want=%s", tc.name, got, tc.want)
		}
	}
}

func TestParseType(t *testing.T) {
	if got, err := ParseType(" Match "); err != nil || got != TypeMatch {
		t.Fatalf("expected match, got %s err=%v", got, err)
	}
	if got, err := ParseType(""); err != nil || got != TypeOther {
		t.Fatalf("expected default other, got %s err=%v", got, err)
	}
	if _, err := ParseType("party"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestParseFilter(t *testing.T) {
	if got, _ := ParseFilter(""); got != FilterAll {
		t.Fatalf("expected all by default, got %s", got)
	}
	if got, _ := ParseFilter("PAST"); got != FilterPast {
		t.Fatalf("expected past, got %s", got)
	}
	if _, err := ParseFilter("soon"); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
}
