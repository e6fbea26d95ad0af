package core

import "time"

// Window is an inclusive date range used to filter a user's records
// before aggregation.
type Window struct {
	Start Date
	End   Date
}

// Contains reports whether d falls within [Start, End]. A record dated
// exactly on Start is included; one dated the day before is not.
// Comparison is by calendar day, not by instant: dates that crossed a
// storage round-trip may carry a different location than the window,
// and must still land on the same day.
func (w Window) Contains(d Date) bool {
	iso := d.ISO()
	return iso >= w.Start.ISO() && iso <= w.End.ISO()
}

// WindowFor derives the report window for an intent from an injected
// instant. All windows end at now's date. ReportGeneral has no lower
// bound and yields nil. Non-report intents also yield nil.
func WindowFor(intent Intent, now time.Time) *Window {
	today := DateOf(now)
	switch intent {
	case ReportDaily:
		return &Window{Start: today, End: today}
	case ReportWeekly:
		// Most recent Sunday; today counts when it is Sunday.
		sunday := DateOf(now.AddDate(0, 0, -int(now.Weekday())))
		return &Window{Start: sunday, End: today}
	case ReportMonthly:
		y, m, _ := now.Date()
		first := Date{Time: time.Date(y, m, 1, 0, 0, 0, 0, now.Location())}
		return &Window{Start: first, End: today}
	default:
		return nil
	}
}
