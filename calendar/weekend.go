package calendar

import "time"

// =============================================================================
// WEEKEND SCHEMES
// =============================================================================

type WeekendScheme string

const (
	WeekendSaudi   WeekendScheme = "saudi"   // Friday + Saturday
	WeekendWestern WeekendScheme = "western" // Saturday + Sunday
	WeekendCustom  WeekendScheme = "custom"  // Days listed explicitly
)

// WeekendConfig selects which weekdays are non-working.
// Days is only consulted for WeekendCustom.
type WeekendConfig struct {
	Scheme WeekendScheme
	Days   []time.Weekday
}

var (
	SaudiWeekend   = WeekendConfig{Scheme: WeekendSaudi}
	WesternWeekend = WeekendConfig{Scheme: WeekendWestern}
)

// CustomWeekend builds a custom scheme from explicit weekdays.
func CustomWeekend(days ...time.Weekday) WeekendConfig {
	return WeekendConfig{Scheme: WeekendCustom, Days: append([]time.Weekday(nil), days...)}
}

// mask returns a bitset with bit i set when weekday i is a weekend day.
func (c WeekendConfig) mask() uint8 {
	switch c.Scheme {
	case WeekendSaudi:
		return 1<<time.Friday | 1<<time.Saturday
	case WeekendWestern:
		return 1<<time.Sunday | 1<<time.Saturday
	case WeekendCustom:
		var m uint8
		for _, d := range c.Days {
			if d >= time.Sunday && d <= time.Saturday {
				m |= 1 << d
			}
		}
		return m
	default:
		return 1<<time.Friday | 1<<time.Saturday
	}
}

// WeekendDays returns the resolved weekday set in ascending order.
// An unknown scheme resolves to the Saudi weekend.
func WeekendDays(c WeekendConfig) []time.Weekday {
	m := c.mask()
	days := make([]time.Weekday, 0, 2)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if m&(1<<d) != 0 {
			days = append(days, d)
		}
	}
	return days
}

// IsWeekend reports whether t's weekday is a weekend day under c.
func IsWeekend(t time.Time, c WeekendConfig) bool {
	return c.mask()&(1<<DateOf(t).Weekday()) != 0
}

// ParseWeekendScheme maps a tag to a scheme; unknown tags report false.
func ParseWeekendScheme(s string) (WeekendScheme, bool) {
	switch WeekendScheme(s) {
	case WeekendSaudi, WeekendWestern, WeekendCustom:
		return WeekendScheme(s), true
	}
	return "", false
}
