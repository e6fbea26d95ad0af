package storage

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"gastozap/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "gastos.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendReadAllRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	today := core.DateOf(time.Now())

	refs := make([]string, 0, 3)
	for _, cents := range []int64{1000, 500, 2575} {
		ref, err := s.Append(ctx, core.ExpenseRecord{
			User:     "5511999990000",
			Amount:   core.Money{Cents: cents},
			Category: "Outros",
			Date:     today,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		refs = append(refs, ref)
	}

	records, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	if records[0].Amount.Cents != 1000 || records[2].Amount.Cents != 2575 {
		t.Fatalf("insertion order lost: %+v", records)
	}
	if records[0].Date.ISO() != today.ISO() {
		t.Fatalf("date round-trip: %s != %s", records[0].Date.ISO(), today.ISO())
	}

	id, err := strconv.ParseInt(refs[1], 10, 64)
	if err != nil {
		t.Fatalf("ref not numeric: %q", refs[1])
	}
	rec, err := s.GetRecord(ctx, id)
	if err != nil {
		t.Fatalf("getRecord: %v", err)
	}
	if rec.Amount.Cents != 500 {
		t.Fatalf("getRecord amount = %d", rec.Amount.Cents)
	}
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Append(context.Background(), core.ExpenseRecord{User: "u"}); err == nil {
		t.Fatal("invalid record must be rejected before hitting the database")
	}
}

func TestStoredDateLandsInReportWindows(t *testing.T) {
	// spent_on is persisted as YYYY-MM-DD and parsed back without the
	// original location. A record appended today in a UTC-negative zone
	// must still land inside the daily, weekly and monthly windows for
	// the same clock.
	s := newTestStore(t)
	ctx := context.Background()

	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)
	now := time.Date(2024, 3, 14, 9, 0, 0, 0, saoPaulo) // a Thursday

	if _, err := s.Append(ctx, core.ExpenseRecord{
		User:     "5511999990000",
		Amount:   core.Money{Cents: 2500},
		Category: "Mercado",
		Date:     core.DateOf(now),
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}

	for _, intent := range []core.Intent{core.ReportDaily, core.ReportWeekly, core.ReportMonthly} {
		w := core.WindowFor(intent, now)
		summary := core.Summarize(records, w)
		if summary.Count != 1 {
			t.Fatalf("%s report lost today's record: count = %d, want 1 (window [%s, %s])",
				intent, summary.Count, w.Start.ISO(), w.End.ISO())
		}
	}
}

func TestBackupStateLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	today := core.DateOf(time.Now())

	ref, err := s.Append(ctx, core.ExpenseRecord{
		User: "A", Amount: core.Money{Cents: 100}, Category: "Outros", Date: today,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	id, _ := strconv.ParseInt(ref, 10, 64)

	pending, err := s.PendingBackups(ctx, 10)
	if err != nil {
		t.Fatalf("pendingBackups: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("pending = %+v", pending)
	}

	if err := s.MarkBackupError(ctx, id); err != nil {
		t.Fatalf("markBackupError: %v", err)
	}
	pending, _ = s.PendingBackups(ctx, 10)
	if len(pending) != 1 {
		t.Fatal("errored record must stay in the sweep set for retry")
	}

	if err := s.MarkBackedUp(ctx, id); err != nil {
		t.Fatalf("markBackedUp: %v", err)
	}
	pending, _ = s.PendingBackups(ctx, 10)
	if len(pending) != 0 {
		t.Fatal("backed-up record must not be pending")
	}
}
