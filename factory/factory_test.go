package factory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/labor-engine/calendar"
	"github.com/warp/labor-engine/eos"
	"github.com/warp/labor-engine/factory"
	"github.com/warp/labor-engine/payroll"
)

func newFactory() *factory.Factory {
	return factory.NewFactory(factory.DefaultSettings())
}

func issueFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *factory.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	var fields []string
	for _, i := range verr.Issues {
		fields = append(fields, i.Field)
	}
	return fields
}

func TestParsePayroll_MoneyAsStringOrNumber(t *testing.T) {
	f := newFactory()

	// GIVEN: basic as a string, transport as a number
	body := `{
		"gosi_profile": "saudi-standard",
		"basic": "10000.50",
		"housing_percent": 25,
		"transport": 500,
		"overtime": {"enabled": true, "hours": 10}
	}`

	// WHEN
	in, err := f.ParsePayroll([]byte(body))

	// THEN
	require.NoError(t, err)
	assert.Equal(t, payroll.ModeGrossToNet, in.Mode)
	assert.Equal(t, payroll.ProfileSaudiStandard, in.GosiProfile)
	assert.InDelta(t, 10000.50, in.Basic, 1e-9)
	assert.InDelta(t, 500, in.Transport, 1e-9)
	assert.Equal(t, 30.0, in.MonthDivisor)
	assert.Equal(t, 8.0, in.HoursPerDay)
	assert.True(t, in.Overtime.Enabled)
	assert.Equal(t, factory.DefaultOvertimeMultiplier, in.Overtime.Multiplier)
}

func TestParsePayroll_Invalid(t *testing.T) {
	f := newFactory()

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown mode", `{"mode": "sideways"}`, "mode"},
		{"unknown profile", `{"gosi_profile": "gold"}`, "gosi_profile"},
		{"percent over 100", `{"employee_pct": 120}`, "employee_pct"},
		{"negative basic", `{"basic": -1}`, "basic"},
		{"negative housing percent", `{"housing_percent": -5}`, "housing_percent"},
		{"negative overtime hours", `{"overtime": {"enabled": true, "hours": -2}}`, "overtime.hours"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ParsePayroll([]byte(tc.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, factory.ErrInvalidInput)
			assert.Contains(t, issueFields(t, err), tc.field)
		})
	}
}

func TestParsePayroll_MalformedJSON(t *testing.T) {
	_, err := newFactory().ParsePayroll([]byte(`{"basic": `))
	assert.ErrorIs(t, err, factory.ErrInvalidInput)
}

func TestParseEOS(t *testing.T) {
	f := newFactory()

	in, err := f.ParseEOS([]byte(`{
		"start": "2020-01-01", "end": "2025-06-30",
		"basic": 10000, "housing_percent": 25, "base_type": "basic_plus_housing",
		"cause": "resignation", "leave_days": 12
	}`))
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2020, time.January, 1), in.Start)
	assert.Equal(t, calendar.NewDate(2025, time.June, 30), in.End)
	assert.Equal(t, eos.CauseResignation, in.Cause)
	assert.Equal(t, eos.BaseBasicPlusHousing, in.BaseType)
	assert.Equal(t, 30.0, in.MonthDivisor)
}

func TestParseEOS_Invalid(t *testing.T) {
	f := newFactory()

	_, err := f.ParseEOS([]byte(`{"start": "2020-13-01", "end": "2025-06-30", "cause": "quit"}`))
	fields := issueFields(t, err)
	assert.Contains(t, fields, "start")
	assert.Contains(t, fields, "cause")

	_, err = f.ParseEOS([]byte(`{"start": "2025-01-01", "end": "2024-01-01", "cause": "termination"}`))
	assert.Equal(t, []string{"end"}, issueFields(t, err))
}

func TestParseShift_BadStartPassesThrough(t *testing.T) {
	// The calculator renders an unparseable start as "--:--".
	in, err := newFactory().ParseShift([]byte(`{"start": " nope ", "hours": 8}`))
	require.NoError(t, err)
	assert.Equal(t, "nope", in.Start)

	_, err = newFactory().ParseShift([]byte(`{"start": "08:00", "hours": -1}`))
	assert.ErrorIs(t, err, factory.ErrInvalidInput)
}

func TestParseRange(t *testing.T) {
	f := newFactory()

	r, err := f.ParseRange([]byte(`{
		"start": "2025-06-01", "end": "2025-06-30T12:00:00Z",
		"weekend": {"scheme": "custom", "days": [5]},
		"holidays": ["2025-06-10"]
	}`))
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2025, time.June, 1), r.Start)
	assert.Equal(t, 12, r.End.Hour())
	require.NotNil(t, r.Weekend)
	assert.Equal(t, []time.Weekday{time.Friday}, calendar.WeekendDays(*r.Weekend))
	assert.Equal(t, []time.Time{calendar.NewDate(2025, time.June, 10)}, r.Holidays)
	assert.Equal(t, 30, r.Period().Len())

	// No weekend given: left for the caller to resolve
	r, err = f.ParseRange([]byte(`{"start": "2025-06-01", "end": "2025-06-30"}`))
	require.NoError(t, err)
	assert.Nil(t, r.Weekend)

	_, err = f.ParseRange([]byte(`{"start": "yesterday", "end": "2025-06-30", "holidays": ["x"]}`))
	fields := issueFields(t, err)
	assert.Contains(t, fields, "holidays[0]")
}

func TestParseWeekend(t *testing.T) {
	f := factory.NewFactory(factory.Settings{Weekend: calendar.WesternWeekend})

	cfg, err := f.ParseWeekend(factory.WeekendJSON{})
	require.NoError(t, err)
	assert.Equal(t, calendar.WesternWeekend, cfg)

	cfg, err = f.ParseWeekend(factory.WeekendJSON{Scheme: "saudi"})
	require.NoError(t, err)
	assert.Equal(t, calendar.SaudiWeekend, cfg)

	_, err = f.ParseWeekend(factory.WeekendJSON{Scheme: "custom", Days: []int{7}})
	assert.ErrorIs(t, err, factory.ErrInvalidInput)
}

func TestParseHoliday_AssignsID(t *testing.T) {
	h, err := newFactory().ParseHoliday([]byte(`{"date": "2025-09-23", "name": " National Day ", "recurring": true}`))
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, "National Day", h.Name)
	assert.True(t, h.Recurring)

	_, err = newFactory().ParseHoliday([]byte(`{"date": "2025-09-23"}`))
	assert.Contains(t, issueFields(t, err), "name")
}

func TestParseCalendar(t *testing.T) {
	company, cfg, err := newFactory().ParseCalendar([]byte(`{"company_id": "acme", "weekend": {"scheme": "western"}}`))
	require.NoError(t, err)
	assert.Equal(t, "acme", company)
	assert.Equal(t, calendar.WesternWeekend, cfg)

	_, _, err = newFactory().ParseCalendar([]byte(`{"company_id": "acme", "weekend": {}}`))
	assert.Equal(t, []string{"weekend.scheme"}, issueFields(t, err))
}
