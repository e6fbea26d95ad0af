package core

import "strings"

// Intent is the classified purpose of an inbound message.
type Intent int

const (
	Unrecognized Intent = iota
	RecordExpense
	ReportDaily
	ReportWeekly
	ReportMonthly
	ReportGeneral
)

func (i Intent) String() string {
	switch i {
	case RecordExpense:
		return "record_expense"
	case ReportDaily:
		return "report_daily"
	case ReportWeekly:
		return "report_weekly"
	case ReportMonthly:
		return "report_monthly"
	case ReportGeneral:
		return "report_general"
	default:
		return "unrecognized"
	}
}

// IsReport reports whether the intent asks for a ledger summary.
func (i Intent) IsReport() bool {
	switch i {
	case ReportDaily, ReportWeekly, ReportMonthly, ReportGeneral:
		return true
	}
	return false
}

const quoteCutset = "\"'“”‘’"

// Normalize prepares a raw message for classification: trims
// whitespace, strips surrounding quote characters, lowercases.
// Idempotent, so layers that already normalized can call it again.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, quoteCutset)
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

// ClassifyIntent routes a message to an intent, first match wins.
//
// Report phrases are checked before amount extraction: a report
// command may incidentally contain digits ("relatório semanal 2") and
// must not be mistaken for an expense. Pure function of the text.
func ClassifyIntent(text string) Intent {
	msg := Normalize(text)
	switch {
	case strings.Contains(msg, "relatório diário"):
		return ReportDaily
	case strings.Contains(msg, "relatório semanal"):
		return ReportWeekly
	case strings.Contains(msg, "relatório mensal"):
		return ReportMonthly
	case strings.Contains(msg, "meu relatório"):
		return ReportGeneral
	}
	if _, ok := ExtractAmount(msg); ok {
		return RecordExpense
	}
	return Unrecognized
}
