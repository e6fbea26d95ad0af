package core

import (
	"fmt"
	"strings"
)

// CategoryTotal is an amount aggregated under one category label.
type CategoryTotal struct {
	Name   string
	Amount Money
}

// Summary aggregates a set of ledger records: grand total, per-category
// totals and the record count. ByCategory preserves first-seen order so
// the rendered report is deterministic for a given ledger.
type Summary struct {
	Total      Money
	ByCategory []CategoryTotal
	Count      int
}

// Summarize filters records by the window (nil means no lower bound,
// all records) and totals them in ledger order.
func Summarize(records []ExpenseRecord, w *Window) Summary {
	var s Summary
	index := make(map[string]int)
	for _, rec := range records {
		if w != nil && !w.Contains(rec.Date) {
			continue
		}
		s.Total = s.Total.Add(rec.Amount)
		s.Count++
		if i, ok := index[rec.Category]; ok {
			s.ByCategory[i].Amount = s.ByCategory[i].Amount.Add(rec.Amount)
		} else {
			index[rec.Category] = len(s.ByCategory)
			s.ByCategory = append(s.ByCategory, CategoryTotal{Name: rec.Category, Amount: rec.Amount})
		}
	}
	return s
}

// Render produces the report text: header with the report kind, the
// total, one line per category in insertion order, and the entry count.
// Callers handle the empty case themselves; Render assumes Count > 0.
func (s Summary) Render(kind string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Seu relatório %s:*\n- Total: R$ %s\n", kind, s.Total.Format())
	for _, ct := range s.ByCategory {
		fmt.Fprintf(&b, "- %s: R$ %s\n", ct.Name, ct.Amount.Format())
	}
	fmt.Fprintf(&b, "\n🧾 Lançamentos: %d", s.Count)
	return b.String()
}
