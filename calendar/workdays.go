package calendar

import "time"

// WorkingDaysResult splits an inclusive range into working and weekend days.
// Holidays are removed from WorkingDays only.
type WorkingDaysResult struct {
	WorkingDays int
	WeekendDays int
}

// IsWorkingDay is !IsWeekend and not one of the holidays.
func IsWorkingDay(t time.Time, c WeekendConfig, holidays ...time.Time) bool {
	if IsWeekend(t, c) {
		return false
	}
	return !newHolidaySet(holidays).contains(t)
}

// CalculateBusinessDays counts non-weekend days in [start, end] under the
// fixed Saudi weekend. Use CalculateWorkingDays for other schemes.
func CalculateBusinessDays(start, end time.Time) int {
	return CalculateWorkingDays(start, end, SaudiWeekend).WorkingDays
}

// CalculateWorkingDays counts working and weekend days in [start, end].
// A holiday is subtracted from WorkingDays only when it falls on a working
// day, so a holiday on a weekend is never counted twice.
func CalculateWorkingDays(start, end time.Time, c WeekendConfig, holidays ...time.Time) WorkingDaysResult {
	return countDays(NewPeriod(start, end), c.mask(), newHolidaySet(holidays))
}

func countDays(p Period, mask uint8, holidays holidaySet) WorkingDaysResult {
	var res WorkingDaysResult
	n := p.Len()
	if n == 0 {
		return res
	}

	// Whole weeks contribute a fixed number of weekend days.
	weekendPerWeek := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if mask&(1<<d) != 0 {
			weekendPerWeek++
		}
	}
	weeks, rest := n/7, n%7
	res.WeekendDays = weeks * weekendPerWeek
	wd := p.Start.Weekday()
	for i := 0; i < rest; i++ {
		if mask&(1<<((int(wd)+i)%7)) != 0 {
			res.WeekendDays++
		}
	}
	res.WorkingDays = n - res.WeekendDays

	for day := range holidays {
		t := time.Unix(day*86400, 0).UTC()
		if p.Contains(t) && mask&(1<<t.Weekday()) == 0 {
			res.WorkingDays--
		}
	}
	return res
}

// =============================================================================
// WORKING-DAY NAVIGATION
// =============================================================================

// AddWorkingDays walks one calendar day at a time from t (forward when n > 0,
// backward when n < 0) and returns the date of the nth working day. The start
// date itself is never counted. n == 0 returns t's date.
func AddWorkingDays(t time.Time, n int, c WeekendConfig, holidays ...time.Time) time.Time {
	current := DateOf(t)
	if n == 0 {
		return current
	}
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	mask := c.mask()
	if mask == 0x7f {
		// Every weekday is a weekend day; no working day exists.
		return current
	}
	set := newHolidaySet(holidays)
	for n > 0 {
		current = current.AddDate(0, 0, step)
		if mask&(1<<current.Weekday()) == 0 && !set.contains(current) {
			n--
		}
	}
	return current
}

// NextWorkingDay is AddWorkingDays(t, 1, ...).
func NextWorkingDay(t time.Time, c WeekendConfig, holidays ...time.Time) time.Time {
	return AddWorkingDays(t, 1, c, holidays...)
}

// PreviousWorkingDay is AddWorkingDays(t, -1, ...).
func PreviousWorkingDay(t time.Time, c WeekendConfig, holidays ...time.Time) time.Time {
	return AddWorkingDays(t, -1, c, holidays...)
}

// WorkingDaysInMonth counts working days in a single calendar month.
func WorkingDaysInMonth(year int, month time.Month, c WeekendConfig, holidays ...time.Time) int {
	return countDays(MonthPeriod(year, month), c.mask(), newHolidaySet(holidays)).WorkingDays
}
