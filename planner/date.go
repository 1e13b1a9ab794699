package planner

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity point in time (all scheduling math is per-day)
// =============================================================================

// Date is a calendar day in UTC. All planner computations operate on whole
// days; clock times only appear inside TimeDetails (a UI convenience).
type Date struct {
	Time time.Time
}

// NewDate constructs a Date for the given civil day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date string (YYYY-MM-DD).
// Malformed input returns ErrInvalidDate; callers that evaluate recurrence
// treat such assignments as never active rather than failing the computation.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t.UTC()}, nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.normalize().Before(other.normalize()) }
func (d Date) After(other Date) bool  { return d.normalize().After(other.normalize()) }
func (d Date) Equal(other Date) bool  { return d.normalize().Equal(other.normalize()) }
func (d Date) IsZero() bool           { return d.Time.IsZero() }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.Time.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// Today returns the current civil day in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// =============================================================================
// WEEKDAY INDEXING - Monday-start weeks
// =============================================================================

// WeekdayIndex returns 0 for Monday through 6 for Sunday. Assignment and
// contract schedules are keyed by this index.
func (d Date) WeekdayIndex() int {
	return (int(d.Weekday()) + 6) % 7
}

// StartOfWeek returns the Monday of the week containing d.
func (d Date) StartOfWeek() Date {
	return d.AddDays(-d.WeekdayIndex())
}

// =============================================================================
// CALENDAR DIFFERENCES
// =============================================================================

// DaysBetween returns the number of whole days from a to b (negative if b
// precedes a).
func DaysBetween(a, b Date) int {
	return int(b.normalize().Sub(a.normalize()).Hours() / 24)
}

// DiffCalendarWeeks counts Monday-start calendar week boundaries between from
// and to. Two dates in the same Mon-Sun week differ by zero weeks regardless
// of their weekday.
func DiffCalendarWeeks(from, to Date) int {
	return DaysBetween(from.StartOfWeek(), to.StartOfWeek()) / 7
}

// DiffCalendarMonths counts calendar month boundaries between from and to,
// ignoring the day-of-month.
func DiffCalendarMonths(from, to Date) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// =============================================================================
// WEEK-OF-MONTH
// =============================================================================

// WeekOfMonth returns the 1-based Monday-start week of the month containing d.
// The first week is the (possibly partial) week holding the 1st of the month.
func (d Date) WeekOfMonth() int {
	first := NewDate(d.Year(), d.Month(), 1)
	return (d.Day()+first.WeekdayIndex()-1)/7 + 1
}

// WeekBlockOfMonth returns ceil(day/7): the 1-based 7-day block of the month
// containing d. Used by week selectors ("1".."4"), which count plain 7-day
// blocks rather than calendar weeks.
func (d Date) WeekBlockOfMonth() int {
	return (d.Day() + 6) / 7
}

// InLastWeekBlock reports whether d falls within the final 7-day block of its
// month, i.e. the same weekday one week later lands in the next month.
func (d Date) InLastWeekBlock() bool {
	return d.AddDays(7).Month() != d.Month()
}

// =============================================================================
// MONTH HELPERS
// =============================================================================

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return NewDate(year, month+1, 1).AddDays(-1).Day()
}

// MonthKey formats a month as "YYYY-MM", the key monthly documents are stored
// under.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParseMonthKey parses a "YYYY-MM" key.
func ParseMonthKey(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t.Year(), t.Month(), nil
}

// MonthDays returns every day of the month in order.
func MonthDays(year int, month time.Month) []Date {
	n := DaysInMonth(year, month)
	days := make([]Date, n)
	for i := 0; i < n; i++ {
		days[i] = NewDate(year, month, i+1)
	}
	return days
}
