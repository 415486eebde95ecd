package util

import (
	"testing"
	"time"
)

func TestFormatDay(t *testing.T) {
	ts := time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC)
	if got := FormatDay(ts); got != "2024-03-07" {
		t.Errorf("FormatDay = %q, want 2024-03-07", got)
	}
}

func TestParseDayRoundTrip(t *testing.T) {
	ts, ok := ParseDay("2024-03-07")
	if !ok {
		t.Fatal("ParseDay failed on valid date")
	}
	if got := FormatDay(ts); got != "2024-03-07" {
		t.Errorf("round trip = %q", got)
	}
}

func TestParseDayInvalid(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "07/03/2024"} {
		if _, ok := ParseDay(s); ok {
			t.Errorf("ParseDay(%q) = ok, want failure", s)
		}
	}
}

func TestSplitCommaList(t *testing.T) {
	got := SplitCommaList(" AAPL, MSFT ,,GOOG ")
	want := []string{"AAPL", "MSFT", "GOOG"}
	if len(got) != len(want) {
		t.Fatalf("SplitCommaList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
	if SplitCommaList("") != nil {
		t.Error("empty input should return nil")
	}
}
