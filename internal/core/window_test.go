package core

import (
	"testing"
	"time"
)

func TestWindowForDaily(t *testing.T) {
	now := time.Date(2024, 3, 14, 15, 30, 0, 0, time.UTC) // a Thursday
	w := WindowFor(ReportDaily, now)
	if w == nil {
		t.Fatal("expected a window")
	}
	if w.Start.ISO() != "2024-03-14" || w.End.ISO() != "2024-03-14" {
		t.Fatalf("daily window = [%s, %s]", w.Start.ISO(), w.End.ISO())
	}
}

func TestWindowForWeekly(t *testing.T) {
	cases := []struct {
		now       time.Time
		wantStart string
	}{
		// Thursday: back four days to Sunday.
		{time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC), "2024-03-10"},
		// Sunday itself: the week starts today.
		{time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), "2024-03-10"},
		// Saturday: back six days.
		{time.Date(2024, 3, 16, 0, 0, 1, 0, time.UTC), "2024-03-10"},
	}
	for _, tc := range cases {
		w := WindowFor(ReportWeekly, tc.now)
		if w.Start.ISO() != tc.wantStart {
			t.Fatalf("weekly start for %s = %s, want %s", tc.now, w.Start.ISO(), tc.wantStart)
		}
		if w.End.ISO() != DateOf(tc.now).ISO() {
			t.Fatalf("weekly end should be today, got %s", w.End.ISO())
		}
	}
}

func TestWindowForMonthly(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	w := WindowFor(ReportMonthly, now)
	if w.Start.ISO() != "2024-03-01" || w.End.ISO() != "2024-03-14" {
		t.Fatalf("monthly window = [%s, %s]", w.Start.ISO(), w.End.ISO())
	}
}

func TestWindowForGeneralAndNonReports(t *testing.T) {
	now := time.Now()
	if WindowFor(ReportGeneral, now) != nil {
		t.Fatal("general report must have no window")
	}
	if WindowFor(RecordExpense, now) != nil || WindowFor(Unrecognized, now) != nil {
		t.Fatal("non-report intents must have no window")
	}
}

func TestWindowBoundaries(t *testing.T) {
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)
	w := WindowFor(ReportWeekly, now) // starts Sunday 2024-03-10

	onStart := NewDate(2024, 3, 10)
	dayBefore := NewDate(2024, 3, 9)
	onEnd := NewDate(2024, 3, 14)
	dayAfter := NewDate(2024, 3, 15)

	if !w.Contains(onStart) {
		t.Fatal("record on the start boundary must be included")
	}
	if w.Contains(dayBefore) {
		t.Fatal("record the day before the start must be excluded")
	}
	if !w.Contains(onEnd) {
		t.Fatal("record on the end boundary must be included")
	}
	if w.Contains(dayAfter) {
		t.Fatal("record after the end must be excluded")
	}
}

func TestWindowContainsIgnoresLocation(t *testing.T) {
	// A stored date read back in a different location than the window
	// still counts as the same calendar day.
	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)
	now := time.Date(2024, 3, 14, 0, 30, 0, 0, saoPaulo)

	w := WindowFor(ReportDaily, now)
	utcDate := DateOf(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC))

	if !w.Contains(utcDate) {
		t.Fatalf("2024-03-14 UTC excluded from daily window [%s, %s] in UTC-3",
			w.Start.ISO(), w.End.ISO())
	}

	// And the converse: a window built in UTC contains a UTC-3 date.
	wUTC := WindowFor(ReportDaily, time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC))
	localDate := DateOf(now)
	if !wUTC.Contains(localDate) {
		t.Fatal("2024-03-14 UTC-3 excluded from daily window built in UTC")
	}
}
