package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"gastozap/internal/core"
)

func testRecord(user string, cents int64) core.ExpenseRecord {
	return core.ExpenseRecord{
		User:     user,
		Amount:   core.Money{Cents: cents},
		Category: "Outros",
		Date:     core.DateOf(time.Now()),
	}
}

func TestAppendAndReadAll(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 5
	for i := 1; i <= n; i++ {
		ref, err := s.Append(ctx, testRecord("A", int64(i*100)))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if ref != fmt.Sprintf("mem:%d", i) {
			t.Fatalf("ref = %q", ref)
		}
	}

	records, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("readAll: %v", err)
	}
	if len(records) != n {
		t.Fatalf("len = %d, want %d", len(records), n)
	}
	// Insertion order preserved
	for i, r := range records {
		if r.Amount.Cents != int64((i+1)*100) {
			t.Fatalf("record %d out of order: %d cents", i, r.Amount.Cents)
		}
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), core.ExpenseRecord{}); err == nil {
		t.Fatal("invalid record must be rejected")
	}
	records, _ := s.ReadAll(context.Background())
	if len(records) != 0 {
		t.Fatal("rejected record must not be stored")
	}
}

func TestReadAllReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.Append(ctx, testRecord("A", 100))

	first, _ := s.ReadAll(ctx)
	first[0].Amount.Cents = 999

	second, _ := s.ReadAll(ctx)
	if second[0].Amount.Cents != 100 {
		t.Fatal("ReadAll must not expose internal state")
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := New()
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			if _, err := s.Append(ctx, testRecord(fmt.Sprintf("user-%d", i), 100)); err != nil {
				t.Errorf("append: %v", err)
			}
		}(i)
	}
	wg.Wait()

	records, _ := s.ReadAll(ctx)
	if len(records) != writers {
		t.Fatalf("lost updates: %d records, want %d", len(records), writers)
	}
}
