package availability

import "testing"

func TestParseStatus(t *testing.T) {
	if got, err := ParseStatus(" Maybe "); err != nil || got != StatusMaybe {
		t.Fatalf("expected maybe, got %s err=%v", got, err)
	}
	if _, err := ParseStatus(""); err == nil {
		t.Fatalf("expected error for empty status")
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize([]Availability{
		{UserID: "a", Status: StatusAvailable},
		{UserID: "b", Status: StatusMaybe},
		{UserID: "c", Status: StatusAvailable},
		{UserID: "d", Status: StatusUnavailable},
	})
	if got != (Summary{Available: 2, Total: 4}) {
		t.Fatalf("unexpected summary %+v", got)
	}
}
