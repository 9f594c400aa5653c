// Package datetime provides date handling and Indian financial-year arithmetic.
// All dates are UTC and travel as "YYYY-MM-DD" strings.
package datetime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateFormat is the standard date-only format (YYYY-MM-DD).
	DateFormat = "2006-01-02"

	// DisplayDateFormat is for human-readable dates.
	DisplayDateFormat = "2 Jan 2006"

	// FinancialYearStartMonth is the first month of a financial year.
	FinancialYearStartMonth = time.April
)

// Date represents a date-only value (no time component).
// It serializes to/from JSON as "YYYY-MM-DD" and maps to a SQL DATE column.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns today's date in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateFormat))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" || s == "null" {
		return nil
	}

	t, err := time.Parse(DateFormat, s)
	if err == nil {
		d.Time = t
		return nil
	}

	// Clients sometimes send a full timestamp
	t, err = time.Parse(time.RFC3339, s)
	if err == nil {
		d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	}

	return err
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case []byte:
		return d.parseDB(string(v))
	case string:
		return d.parseDB(v)
	default:
		return fmt.Errorf("datetime: cannot scan %T into Date", src)
	}
}

func (d *Date) parseDB(s string) error {
	if len(s) > len(DateFormat) {
		s = s[:len(DateFormat)]
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return fmt.Errorf("datetime: %w", err)
	}
	d.Time = t
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateFormat), nil
}

// String returns the date in YYYY-MM-DD format.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateFormat)
}

// FinancialYear returns the financial year a date falls in. Financial years run
// from 1 April to 31 March and are labelled by the calendar year they start in,
// so 2024-03-31 belongs to 2023 and 2024-04-01 to 2024.
func FinancialYear(t time.Time) int {
	if t.Month() >= FinancialYearStartMonth {
		return t.Year()
	}
	return t.Year() - 1
}

// CurrentFinancialYear returns the financial year of the current UTC date.
func CurrentFinancialYear() int {
	return FinancialYear(time.Now().UTC())
}

// FinancialYearRange returns the first and last instant of a financial year.
func FinancialYearRange(fy int) (start, end time.Time) {
	start = time.Date(fy, FinancialYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	return start, end
}

// FinancialYearLabel formats a financial year as "2024-25".
func FinancialYearLabel(fy int) string {
	return fmt.Sprintf("%d-%02d", fy, (fy+1)%100)
}

// FinancialMonth returns the position of t's month inside its financial year,
// 1 for April through 12 for March.
func FinancialMonth(t time.Time) int {
	return (int(t.Month())-int(FinancialYearStartMonth)+12)%12 + 1
}

// StartOfDay returns the datetime at 00:00:00 UTC.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first day of the month at 00:00:00 UTC.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month at 23:59:59.999999999 UTC.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DaysBetween returns the whole days from a to b, negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}
