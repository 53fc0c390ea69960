package calendar

import (
	"math"
	"time"
)

// =============================================================================
// DATE DIFFERENCE
// =============================================================================

// Breakdown is a calendar-aware years/months/days decomposition.
type Breakdown struct {
	Years  int
	Months int
	Days   int
}

// DateDiffResult is the gap between two instants.
//
// There are two year figures and they need not agree:
//   - Years is floor(Days / 365.25), used for simple age-style reporting.
//   - Breakdown.Years comes from greedy whole-year/month subtraction.
//
// Both are reported; callers pick the one their rule refers to.
type DateDiffResult struct {
	Milliseconds int64
	Seconds      int64
	Minutes      int64
	Hours        int64
	Days         int // exact calendar-day count, end - start
	Weeks        int
	Years        int
	Breakdown    Breakdown

	// Counted over the inclusive range [start, end]:
	// WorkingDays + WeekendDays == Days + 1.
	WorkingDays  int
	WeekendDays  int
	BusinessDays int // fixed Saudi weekend
}

type diffOptions struct {
	weekend WeekendConfig
}

// DiffOption customises DiffBetween.
type DiffOption func(*diffOptions)

// WithWeekend selects the weekend scheme used for WorkingDays/WeekendDays.
func WithWeekend(c WeekendConfig) DiffOption {
	return func(o *diffOptions) { o.weekend = c }
}

// DiffBetween computes the gap from start to end. When end is before start
// every field is zero; callers wanting a negative delta swap the arguments.
func DiffBetween(start, end time.Time, opts ...DiffOption) DateDiffResult {
	o := diffOptions{weekend: SaudiWeekend}
	for _, opt := range opts {
		opt(&o)
	}

	days := DaysBetween(start, end)
	if days < 0 || end.Before(start) {
		return DateDiffResult{}
	}

	elapsed := end.Sub(start)
	p := NewPeriod(start, end)
	counts := countDays(p, o.weekend.mask(), nil)

	return DateDiffResult{
		Milliseconds: elapsed.Milliseconds(),
		Seconds:      int64(elapsed / time.Second),
		Minutes:      int64(elapsed / time.Minute),
		Hours:        int64(elapsed / time.Hour),
		Days:         days,
		Weeks:        days / 7,
		Years:        int(math.Floor(float64(days) / 365.25)),
		Breakdown:    breakdown(p.Start, p.End),
		WorkingDays:  counts.WorkingDays,
		WeekendDays:  counts.WeekendDays,
		BusinessDays: countDays(p, SaudiWeekend.mask(), nil).WorkingDays,
	}
}

// breakdown subtracts whole years, then whole months, then counts the
// remaining days. Both dates must be normalised and start <= end.
func breakdown(start, end time.Time) Breakdown {
	var b Breakdown

	b.Years = end.Year() - start.Year()
	if b.Years > 0 && addYears(start, b.Years).After(end) {
		b.Years--
	}
	anchor := addYears(start, b.Years)

	b.Months = (end.Year()-anchor.Year())*12 + int(end.Month()) - int(anchor.Month())
	if b.Months > 0 && addMonths(anchor, b.Months).After(end) {
		b.Months--
	}
	anchor = addMonths(anchor, b.Months)

	b.Days = DaysBetween(anchor, end)
	return b
}

// ServicePeriod is the breakdown of a service interval in which the end date
// itself is a worked day, i.e. the breakdown of [start, end+1).
func ServicePeriod(start, end time.Time) Breakdown {
	s, e := DateOf(start), DateOf(end)
	if e.Before(s) {
		return Breakdown{}
	}
	return breakdown(s, e.AddDate(0, 0, 1))
}
