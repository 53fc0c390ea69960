/*
Package store defines persistence for company calendars: holidays and the
weekend scheme each company works under.

PURPOSE:
  The calculators are pure and take holidays as plain dates. The dashboard
  keeps company holiday lists and weekend settings; this package is the
  interface between that data and the calendar engine.

IMPLEMENTATIONS:
  - store/memory: in-memory, for tests and dev
  - store/sqlite: SQLite

GLOBAL HOLIDAYS:
  A holiday with an empty CompanyID applies to every company. Listing a
  company's holidays always includes the global ones.

SEE ALSO:
  - calendar/holiday.go: Holiday type and recurring expansion
*/
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/warp/labor-engine/calendar"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrHolidayNotFound is returned when deleting or reading a missing holiday.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrCalendarNotFound is returned when a company has no saved weekend scheme.
	ErrCalendarNotFound = errors.New("calendar not found")
)

// =============================================================================
// INTERFACES
// =============================================================================

// HolidayStore persists holidays.
type HolidayStore interface {
	// SaveHoliday inserts or updates a holiday by ID.
	SaveHoliday(ctx context.Context, h calendar.Holiday) error

	// DeleteHoliday removes a holiday. Returns ErrHolidayNotFound if absent.
	DeleteHoliday(ctx context.Context, id string) error

	// ListHolidays returns company-specific and global holidays, by date.
	ListHolidays(ctx context.Context, companyID string) ([]calendar.Holiday, error)
}

// CalendarStore persists the per-company weekend scheme.
type CalendarStore interface {
	SaveCalendar(ctx context.Context, companyID string, cfg calendar.WeekendConfig) error

	// GetCalendar returns ErrCalendarNotFound when nothing was saved.
	GetCalendar(ctx context.Context, companyID string) (calendar.WeekendConfig, error)
}

// Store is everything the API needs.
type Store interface {
	HolidayStore
	CalendarStore
}

// =============================================================================
// HELPERS
// =============================================================================

// HolidaysIn resolves a company's holidays into the dates inside p.
func HolidaysIn(ctx context.Context, s HolidayStore, companyID string, p calendar.Period) ([]time.Time, error) {
	holidays, err := s.ListHolidays(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list holidays for %q: %w", companyID, err)
	}
	return calendar.ExpandHolidays(holidays, p), nil
}

// WeekendFor returns the company's weekend scheme, or fallback when none is saved.
func WeekendFor(ctx context.Context, s CalendarStore, companyID string, fallback calendar.WeekendConfig) (calendar.WeekendConfig, error) {
	cfg, err := s.GetCalendar(ctx, companyID)
	if errors.Is(err, ErrCalendarNotFound) {
		return fallback, nil
	}
	if err != nil {
		return calendar.WeekendConfig{}, fmt.Errorf("get calendar for %q: %w", companyID, err)
	}
	return cfg, nil
}

// =============================================================================
// DEFAULT HOLIDAYS
// =============================================================================

// SaudiNationalHolidays are the fixed-date Gregorian public holidays.
// Eid holidays follow the Hijri calendar and must be entered per year.
func SaudiNationalHolidays(companyID string) []calendar.Holiday {
	return []calendar.Holiday{
		{CompanyID: companyID, Name: "Founding Day", Date: calendar.NewDate(2022, time.February, 22), Recurring: true},
		{CompanyID: companyID, Name: "National Day", Date: calendar.NewDate(2022, time.September, 23), Recurring: true},
	}
}
