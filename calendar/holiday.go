package calendar

import (
	"sort"
	"time"
)

// =============================================================================
// HOLIDAY CALENDAR - Company-specific holidays
// =============================================================================

// Holiday is a company or national non-working date.
type Holiday struct {
	ID        string
	CompanyID string    // Empty string = global/default holidays
	Date      time.Time // The holiday date
	Name      string    // e.g., "Founding Day", "National Day"
	Recurring bool      // true = same month/day every year
}

// OccursIn returns the holiday's date in the given year. Recurring Feb 29
// holidays do not occur in common years.
func (h Holiday) OccursIn(year int) (time.Time, bool) {
	if !h.Recurring {
		d := DateOf(h.Date)
		return d, d.Year() == year
	}
	if h.Date.Month() == time.February && h.Date.Day() == 29 && !IsLeapYear(year) {
		return time.Time{}, false
	}
	return NewDate(year, h.Date.Month(), h.Date.Day()), true
}

// ExpandHolidays resolves holidays into the concrete dates falling inside p,
// in ascending order. Duplicates are kept; the counting functions ignore them.
func ExpandHolidays(holidays []Holiday, p Period) []time.Time {
	if p.Reversed() {
		return nil
	}
	var dates []time.Time
	for year := p.Start.Year(); year <= p.End.Year(); year++ {
		for _, h := range holidays {
			if d, ok := h.OccursIn(year); ok && p.Contains(d) {
				dates = append(dates, d)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// holidaySet indexes holidays by calendar date.
type holidaySet map[int64]struct{}

func newHolidaySet(holidays []time.Time) holidaySet {
	if len(holidays) == 0 {
		return nil
	}
	set := make(holidaySet, len(holidays))
	for _, h := range holidays {
		set[dayNumber(h)] = struct{}{}
	}
	return set
}

func (s holidaySet) contains(t time.Time) bool {
	if s == nil {
		return false
	}
	_, ok := s[dayNumber(t)]
	return ok
}
