package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/labor-engine/calendar"
	"github.com/warp/labor-engine/store"
	"github.com/warp/labor-engine/store/memory"
	"github.com/warp/labor-engine/store/sqlite"
)

// Both implementations must behave the same.
func implementations(t *testing.T) map[string]store.Store {
	sq, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]store.Store{
		"sqlite": sq,
		"memory": memory.New(),
	}
}

func TestHolidays_SaveListDelete(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, st.SaveHoliday(ctx, calendar.Holiday{
				ID: "h-global", Name: "National Day", Date: calendar.NewDate(2022, time.September, 23), Recurring: true,
			}))
			require.NoError(t, st.SaveHoliday(ctx, calendar.Holiday{
				ID: "h-acme", CompanyID: "acme", Name: "Offsite", Date: calendar.NewDate(2025, time.March, 4),
			}))
			require.NoError(t, st.SaveHoliday(ctx, calendar.Holiday{
				ID: "h-other", CompanyID: "other", Name: "Other", Date: calendar.NewDate(2025, time.March, 5),
			}))

			got, err := st.ListHolidays(ctx, "acme")
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "h-global", got[0].ID)
			assert.True(t, got[0].Recurring)
			assert.Equal(t, "h-acme", got[1].ID)
			assert.Equal(t, calendar.NewDate(2025, time.March, 4), got[1].Date)

			// Upsert by ID
			require.NoError(t, st.SaveHoliday(ctx, calendar.Holiday{
				ID: "h-acme", CompanyID: "acme", Name: "Offsite (moved)", Date: calendar.NewDate(2025, time.March, 6),
			}))
			got, err = st.ListHolidays(ctx, "acme")
			require.NoError(t, err)
			assert.Equal(t, "Offsite (moved)", got[1].Name)

			require.NoError(t, st.DeleteHoliday(ctx, "h-acme"))
			assert.ErrorIs(t, st.DeleteHoliday(ctx, "h-acme"), store.ErrHolidayNotFound)

			got, err = st.ListHolidays(ctx, "acme")
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestCalendars(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := st.GetCalendar(ctx, "acme")
			assert.ErrorIs(t, err, store.ErrCalendarNotFound)

			cfg, err := store.WeekendFor(ctx, st, "acme", calendar.SaudiWeekend)
			require.NoError(t, err)
			assert.Equal(t, calendar.SaudiWeekend, cfg)

			custom := calendar.CustomWeekend(time.Friday)
			require.NoError(t, st.SaveCalendar(ctx, "acme", custom))

			cfg, err = store.WeekendFor(ctx, st, "acme", calendar.SaudiWeekend)
			require.NoError(t, err)
			assert.Equal(t, calendar.WeekendCustom, cfg.Scheme)
			assert.Equal(t, []time.Weekday{time.Friday}, cfg.Days)

			require.NoError(t, st.SaveCalendar(ctx, "acme", calendar.WesternWeekend))
			cfg, err = st.GetCalendar(ctx, "acme")
			require.NoError(t, err)
			assert.Equal(t, calendar.WeekendWestern, cfg.Scheme)
			assert.Empty(t, cfg.Days)
		})
	}
}

func TestHolidaysIn_FeedsWorkingDays(t *testing.T) {
	ctx := context.Background()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer st.Close()

	for i, h := range store.SaudiNationalHolidays("") {
		h.ID = []string{"founding", "national"}[i]
		require.NoError(t, st.SaveHoliday(ctx, h))
	}

	// September 2025: National Day on Tuesday the 23rd
	p := calendar.MonthPeriod(2025, time.September)
	dates, err := store.HolidaysIn(ctx, st, "acme", p)
	require.NoError(t, err)
	require.Equal(t, []time.Time{calendar.NewDate(2025, time.September, 23)}, dates)

	assert.Equal(t, 21, calendar.WorkingDaysInMonth(2025, time.September, calendar.SaudiWeekend, dates...))
}
