/*
Package calendar provides the date arithmetic the other calculators build on.

PURPOSE:
  Calendar-day differences, year/month/day breakdowns, and working-day
  counting under configurable weekend schemes. Every function is pure:
  inputs are never mutated and no global state is touched.

DATE-ONLY ARITHMETIC:
  Only the calendar date of a time.Time matters (year, month, day in the
  value's own location). Dates are normalised to UTC midnight before any
  counting, so a range crossing a DST change still yields whole days.

FAILURE SEMANTICS:
  Nothing here returns an error. Reversed ranges degrade to zero counts
  and empty results.

SEE ALSO:
  - diff.go:     DiffBetween and the two year figures
  - weekend.go:  Weekend schemes
  - workdays.go: Working/business day counting
*/
package calendar

import "time"

// =============================================================================
// DATE NORMALISATION
// =============================================================================

// DateOf returns the calendar date of t as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a UTC date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// dayNumber is the number of days since the Unix epoch for t's calendar date.
func dayNumber(t time.Time) int64 {
	return DateOf(t).Unix() / 86400
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return dayNumber(a) == dayNumber(b)
}

// DaysBetween returns the signed number of calendar days from one date to another.
func DaysBetween(from, to time.Time) int {
	return int(dayNumber(to) - dayNumber(from))
}

// =============================================================================
// MONTH HELPERS
// =============================================================================

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return daysIn(t.Year(), t.Month())
}

func daysIn(year int, month time.Month) int {
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return monthLengths[month-1]
}

// DayOfMonth returns t's day component.
func DayOfMonth(t time.Time) int { return t.Day() }

func StartOfMonth(year int, month time.Month) time.Time { return NewDate(year, month, 1) }

func EndOfMonth(year int, month time.Month) time.Time {
	return NewDate(year, month, daysIn(year, month))
}

// addMonths adds n months to a date, clamping the day to the target month's
// last day instead of overflowing (Jan 31 + 1 month = Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	d := DateOf(t)
	total := int(d.Month()) - 1 + n
	year := d.Year() + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)
	day := d.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

func addYears(t time.Time, n int) time.Time { return addMonths(t, 12*n) }

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// =============================================================================
// PERIOD
// =============================================================================

// Period is an inclusive date range [Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod normalises both bounds to calendar dates.
func NewPeriod(start, end time.Time) Period {
	return Period{Start: DateOf(start), End: DateOf(end)}
}

// MonthPeriod covers a whole calendar month.
func MonthPeriod(year int, month time.Month) Period {
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}
}

// YearPeriod covers Jan 1 - Dec 31.
func YearPeriod(year int) Period {
	return Period{Start: NewDate(year, time.January, 1), End: NewDate(year, time.December, 31)}
}

// Reversed reports whether End falls before Start.
func (p Period) Reversed() bool { return DaysBetween(p.Start, p.End) < 0 }

// Len is the number of days in the period, 0 when reversed.
func (p Period) Len() int {
	if p.Reversed() {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// Contains returns true if t's date is within [Start, End].
func (p Period) Contains(t time.Time) bool {
	n := dayNumber(t)
	return n >= dayNumber(p.Start) && n <= dayNumber(p.End)
}

// Days returns every date in the period.
func (p Period) Days() []time.Time {
	n := p.Len()
	days := make([]time.Time, 0, n)
	current := DateOf(p.Start)
	for i := 0; i < n; i++ {
		days = append(days, current)
		current = current.AddDate(0, 0, 1)
	}
	return days
}

func (p Period) String() string {
	return "[" + p.Start.Format("2006-01-02") + ", " + p.End.Format("2006-01-02") + "]"
}
