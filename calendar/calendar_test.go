package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/labor-engine/calendar"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(y int, m time.Month, d int) time.Time {
	return calendar.NewDate(y, m, d)
}

// =============================================================================
// MONTH HELPERS
// =============================================================================

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want int
	}{
		{"january", date(2025, time.January, 10), 31},
		{"april", date(2025, time.April, 1), 30},
		{"february common year", date(2025, time.February, 1), 28},
		{"february leap year", date(2024, time.February, 15), 29},
		{"february century not leap", date(1900, time.February, 1), 28},
		{"february 400-year leap", date(2000, time.February, 1), 29},
		{"december", date(2025, time.December, 31), 31},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, calendar.DaysInMonth(tc.date))
		})
	}
}

func TestDaysInMonth_AlwaysInRange(t *testing.T) {
	for year := 1896; year <= 2104; year++ {
		for m := time.January; m <= time.December; m++ {
			n := calendar.DaysInMonth(date(year, m, 1))
			assert.True(t, n >= 28 && n <= 31, "%d-%02d has %d days", year, m, n)
			if m == time.February {
				assert.Equal(t, calendar.IsLeapYear(year), n == 29, "year %d", year)
			}
		}
	}
}

func TestDayOfMonth(t *testing.T) {
	assert.Equal(t, 17, calendar.DayOfMonth(date(2025, time.March, 17)))
}

// =============================================================================
// DIFF BETWEEN
// =============================================================================

func TestDiffBetween_GreedyBreakdown(t *testing.T) {
	// GIVEN: 2020-03-15 to 2024-08-20
	// THEN: 4 years, 5 months, 5 days (not totalDays / 365.25 arithmetic)
	res := calendar.DiffBetween(date(2020, time.March, 15), date(2024, time.August, 20))

	assert.Equal(t, calendar.Breakdown{Years: 4, Months: 5, Days: 5}, res.Breakdown)
	assert.Equal(t, 1619, res.Days)
	assert.Equal(t, 4, res.Years)
	assert.Equal(t, 231, res.Weeks)
	assert.Equal(t, int64(1619*24), res.Hours)
	assert.Equal(t, int64(1619*24*3600*1000), res.Milliseconds)
}

func TestDiffBetween_YearFiguresMayDisagree(t *testing.T) {
	// GIVEN: exactly one calendar year that contains no Feb 29
	// THEN: the breakdown says 1 year but 365 / 365.25 floors to 0
	res := calendar.DiffBetween(date(2021, time.January, 1), date(2022, time.January, 1))

	assert.Equal(t, 365, res.Days)
	assert.Equal(t, 1, res.Breakdown.Years)
	assert.Equal(t, 0, res.Years)
}

func TestDiffBetween_MonthEndClamping(t *testing.T) {
	// Jan 31 + 1 month clamps to Feb 29 in 2020, leaving one day to Mar 1
	res := calendar.DiffBetween(date(2020, time.January, 31), date(2020, time.March, 1))
	assert.Equal(t, calendar.Breakdown{Years: 0, Months: 1, Days: 1}, res.Breakdown)
}

func TestDiffBetween_ReversedIsZero(t *testing.T) {
	res := calendar.DiffBetween(date(2025, time.May, 1), date(2025, time.April, 1))
	assert.Equal(t, calendar.DateDiffResult{}, res)
}

func TestDiffBetween_Identity(t *testing.T) {
	d := date(2025, time.June, 6) // Friday
	res := calendar.DiffBetween(d, d)

	assert.Equal(t, 0, res.Days)
	assert.Equal(t, calendar.Breakdown{}, res.Breakdown)
	assert.Equal(t, 1, res.WorkingDays+res.WeekendDays)
	assert.Equal(t, 1, res.WeekendDays)
}

func TestDiffBetween_NoDSTDrift(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// Crosses the March 2025 DST change; only 167 wall-clock hours elapse.
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, loc)
	end := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)

	res := calendar.DiffBetween(start, end)
	assert.Equal(t, 7, res.Days)
	assert.Equal(t, int64(167), res.Hours)
}

func TestDiffBetween_DayCountInvariant(t *testing.T) {
	configs := []calendar.WeekendConfig{
		calendar.SaudiWeekend,
		calendar.WesternWeekend,
		calendar.CustomWeekend(time.Friday),
		calendar.CustomWeekend(),
	}
	start := date(2024, time.December, 20)
	for _, cfg := range configs {
		for span := 0; span < 60; span += 7 {
			end := start.AddDate(0, 0, span+span%5)
			res := calendar.DiffBetween(start, end, calendar.WithWeekend(cfg))
			assert.Equal(t, res.Days+1, res.WorkingDays+res.WeekendDays, "cfg %v span %d", cfg, span)
		}
	}
}

func TestDiffBetween_BusinessDaysUseSaudiWeekend(t *testing.T) {
	// Sun 2025-06-01 .. Sat 2025-06-07
	res := calendar.DiffBetween(date(2025, time.June, 1), date(2025, time.June, 7),
		calendar.WithWeekend(calendar.WesternWeekend))

	assert.Equal(t, 5, res.WorkingDays)
	assert.Equal(t, 5, res.BusinessDays)

	// Mon .. Sun shifts the western count but not the Saudi one
	res = calendar.DiffBetween(date(2025, time.June, 2), date(2025, time.June, 8),
		calendar.WithWeekend(calendar.WesternWeekend))
	assert.Equal(t, 5, res.WorkingDays)
	assert.Equal(t, 5, res.BusinessDays)
}

func TestServicePeriod_CountsEndDate(t *testing.T) {
	b := calendar.ServicePeriod(date(2022, time.November, 2), date(2025, time.April, 10))
	assert.Equal(t, calendar.Breakdown{Years: 2, Months: 5, Days: 9}, b)

	b = calendar.ServicePeriod(date(2020, time.January, 1), date(2024, time.December, 31))
	assert.Equal(t, calendar.Breakdown{Years: 5}, b)

	assert.Equal(t, calendar.Breakdown{}, calendar.ServicePeriod(date(2025, 1, 2), date(2025, 1, 1)))
}

// =============================================================================
// WEEKENDS
// =============================================================================

func TestWeekendDays(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Friday, time.Saturday}, calendar.WeekendDays(calendar.SaudiWeekend))
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, calendar.WeekendDays(calendar.WesternWeekend))
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday},
		calendar.WeekendDays(calendar.CustomWeekend(time.Friday, time.Monday, time.Friday)))
	assert.Empty(t, calendar.WeekendDays(calendar.CustomWeekend()))
}

func TestIsWeekend_Saudi(t *testing.T) {
	start := date(2025, time.January, 1)
	for i := 0; i < 14; i++ {
		d := start.AddDate(0, 0, i)
		want := d.Weekday() == time.Friday || d.Weekday() == time.Saturday
		assert.Equal(t, want, calendar.IsWeekend(d, calendar.SaudiWeekend), d.Format("2006-01-02"))
	}
}

func TestIsWorkingDay_Holiday(t *testing.T) {
	nationalDay := date(2025, time.September, 23) // Tuesday
	assert.False(t, calendar.IsWorkingDay(nationalDay, calendar.SaudiWeekend, nationalDay))
	assert.True(t, calendar.IsWorkingDay(nationalDay, calendar.SaudiWeekend))
	assert.False(t, calendar.IsWorkingDay(date(2025, time.September, 26), calendar.SaudiWeekend))
}

// =============================================================================
// WORKING DAYS
// =============================================================================

func TestCalculateBusinessDays(t *testing.T) {
	// June 2025: 30 days, Fridays/Saturdays = 6,7,13,14,20,21,27,28
	assert.Equal(t, 22, calendar.CalculateBusinessDays(date(2025, time.June, 1), date(2025, time.June, 30)))
	assert.Equal(t, 0, calendar.CalculateBusinessDays(date(2025, time.June, 30), date(2025, time.June, 1)))
}

func TestCalculateWorkingDays_Holidays(t *testing.T) {
	start, end := date(2025, time.June, 1), date(2025, time.June, 30)
	holidays := []time.Time{
		date(2025, time.June, 2),  // Monday: subtracted
		date(2025, time.June, 6),  // Friday: already weekend
		date(2025, time.June, 2),  // duplicate: counted once
		date(2025, time.July, 1),  // outside range
		time.Date(2025, time.June, 3, 15, 30, 0, 0, time.UTC), // compared by date
	}

	res := calendar.CalculateWorkingDays(start, end, calendar.SaudiWeekend, holidays...)
	assert.Equal(t, 20, res.WorkingDays)
	assert.Equal(t, 8, res.WeekendDays)
}

func TestCalculateWorkingDays_Western(t *testing.T) {
	res := calendar.CalculateWorkingDays(date(2025, time.June, 1), date(2025, time.June, 30), calendar.WesternWeekend)
	assert.Equal(t, calendar.WorkingDaysResult{WorkingDays: 21, WeekendDays: 9}, res)
}

func TestWorkingDaysInMonth(t *testing.T) {
	assert.Equal(t, 22, calendar.WorkingDaysInMonth(2025, time.June, calendar.SaudiWeekend))
	assert.Equal(t, 20, calendar.WorkingDaysInMonth(2025, time.February, calendar.SaudiWeekend))
	assert.Equal(t, 19, calendar.WorkingDaysInMonth(2025, time.February, calendar.SaudiWeekend, date(2025, time.February, 23)))
}

func TestAddWorkingDays(t *testing.T) {
	thu := date(2025, time.June, 5)

	// The start is never counted; Fri/Sat are skipped
	assert.Equal(t, date(2025, time.June, 8), calendar.AddWorkingDays(thu, 1, calendar.SaudiWeekend))
	assert.Equal(t, date(2025, time.June, 12), calendar.AddWorkingDays(thu, 5, calendar.SaudiWeekend))
	assert.Equal(t, date(2025, time.June, 4), calendar.AddWorkingDays(thu, -1, calendar.SaudiWeekend))
	assert.Equal(t, thu, calendar.AddWorkingDays(thu, 0, calendar.SaudiWeekend))

	// Holiday on Sunday pushes the next working day to Monday
	assert.Equal(t, date(2025, time.June, 9),
		calendar.NextWorkingDay(thu, calendar.SaudiWeekend, date(2025, time.June, 8)))

	sun := date(2025, time.June, 8)
	assert.Equal(t, thu, calendar.PreviousWorkingDay(sun, calendar.SaudiWeekend))
}

func TestAddWorkingDays_AllWeekendTerminates(t *testing.T) {
	all := calendar.CustomWeekend(0, 1, 2, 3, 4, 5, 6)
	d := date(2025, time.June, 5)
	assert.Equal(t, d, calendar.AddWorkingDays(d, 3, all))
}

func TestAddWorkingDays_RoundTrip(t *testing.T) {
	cfg := calendar.SaudiWeekend
	start := date(2025, time.January, 1)
	for i := 0; i < 21; i++ {
		d := start.AddDate(0, 0, i)
		for _, n := range []int{1, 3, 10} {
			there := calendar.AddWorkingDays(d, n, cfg)
			back := calendar.AddWorkingDays(there, -n, cfg)

			require.True(t, calendar.IsWorkingDay(back, cfg))
			assert.False(t, back.After(d), "start %s n %d back %s", d.Format("2006-01-02"), n, back.Format("2006-01-02"))
		}
	}
}

// =============================================================================
// HOLIDAYS AND PERIODS
// =============================================================================

func TestExpandHolidays(t *testing.T) {
	holidays := []calendar.Holiday{
		{Name: "Founding Day", Date: date(2022, time.February, 22), Recurring: true},
		{Name: "National Day", Date: date(2022, time.September, 23), Recurring: true},
		{Name: "Leap", Date: date(2024, time.February, 29), Recurring: true},
		{Name: "One-off", Date: date(2025, time.April, 1)},
	}

	got := calendar.ExpandHolidays(holidays, calendar.NewPeriod(date(2024, time.June, 1), date(2025, time.June, 1)))
	assert.Equal(t, []time.Time{
		date(2024, time.September, 23),
		date(2025, time.February, 22),
		date(2025, time.April, 1),
	}, got)

	got = calendar.ExpandHolidays(holidays, calendar.YearPeriod(2024))
	assert.Len(t, got, 3)
	assert.Nil(t, calendar.ExpandHolidays(holidays, calendar.NewPeriod(date(2025, 2, 1), date(2024, 2, 1))))
}

func TestPeriod(t *testing.T) {
	p := calendar.MonthPeriod(2024, time.February)
	assert.Equal(t, 29, p.Len())
	assert.Len(t, p.Days(), 29)
	assert.True(t, p.Contains(date(2024, time.February, 29)))
	assert.False(t, p.Contains(date(2024, time.March, 1)))
	assert.Equal(t, "[2024-02-01, 2024-02-29]", p.String())
	assert.Equal(t, 0, calendar.NewPeriod(date(2024, 3, 1), date(2024, 2, 1)).Len())
}
