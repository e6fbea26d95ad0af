package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date carries calendar-date semantics: always midnight, no
	// time-of-day. Records and report windows compare on the same
	// truncation so day boundaries line up.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// ExpenseRecord is a single ledger entry. Immutable once created.
	ExpenseRecord struct {
		User     string
		Amount   Money
		Category string
		Date     Date
	}
)

var (
	ErrMissingUser   = errors.New("missing user")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
)

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar date, keeping the
// instant's location so "today" matches the server clock.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// ISO renders the canonical YYYY-MM-DD form.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.User) == "" {
		return ErrMissingUser
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return r.Date.Validate()
}
