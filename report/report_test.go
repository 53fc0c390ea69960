package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/labor-engine/calendar"
	"github.com/warp/labor-engine/eos"
	"github.com/warp/labor-engine/payroll"
	"github.com/warp/labor-engine/report"
	"github.com/warp/labor-engine/store"
	"github.com/xuri/excelize/v2"
)

var header = report.Header{Company: "Acme", Employee: "Sara", Issued: calendar.NewDate(2025, time.July, 1)}

func TestWritePayslip(t *testing.T) {
	res := payroll.CalcPayroll(payroll.Input{
		GosiProfile:    payroll.ProfileSaudiStandard,
		Basic:          10000,
		HousingPercent: 25,
		Overtime:       payroll.Overtime{Enabled: true, Hours: 10, Multiplier: 1.5},
	})

	var buf bytes.Buffer
	require.NoError(t, report.WritePayslip(&buf, header, res))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteEOSStatement(t *testing.T) {
	in := eos.Input{
		Start:          calendar.NewDate(2020, time.January, 1),
		End:            calendar.NewDate(2025, time.June, 30),
		Basic:          10000,
		HousingPercent: 25,
		BaseType:       eos.BaseBasicPlusHousing,
		Cause:          eos.CauseTermination,
		LeaveDays:      10,
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteEOSStatement(&buf, report.Header{}, in, eos.Calculate(in)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestSummarizeYear(t *testing.T) {
	// GIVEN: the recurring national holidays
	holidays := store.SaudiNationalHolidays("")

	// WHEN
	rows := report.SummarizeYear(2025, calendar.SaudiWeekend, holidays)

	// THEN: Founding Day 2025 is a Saturday, National Day a Tuesday
	require.Len(t, rows, 12)
	assert.Equal(t, report.MonthSummary{Month: time.February, Days: 28, WorkingDays: 20, WeekendDays: 8, Holidays: 0}, rows[1])
	assert.Equal(t, report.MonthSummary{Month: time.September, Days: 30, WorkingDays: 21, WeekendDays: 8, Holidays: 1}, rows[8])

	for _, r := range rows {
		assert.Equal(t, r.Days, r.WorkingDays+r.WeekendDays+r.Holidays, r.Month)
	}
}

func TestWriteWorkingDaysWorkbook(t *testing.T) {
	holidays := append(store.SaudiNationalHolidays(""), calendar.Holiday{
		Name: "Offsite", Date: calendar.NewDate(2025, time.March, 4),
	})

	var buf bytes.Buffer
	require.NoError(t, report.WriteWorkingDaysWorkbook(&buf, 2025, calendar.SaudiWeekend, holidays))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Working Days", "Holidays"}, f.GetSheetList())

	v, err := f.GetCellValue("Working Days", "A2")
	require.NoError(t, err)
	assert.Equal(t, "January", v)

	// 365 days, 104 Fridays/Saturdays, National Day and the offsite on weekdays
	total, err := f.GetCellValue("Working Days", "C14")
	require.NoError(t, err)
	assert.Equal(t, "259", total)

	first, err := f.GetCellValue("Holidays", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Founding Day", first)
	weekday, err := f.GetCellValue("Holidays", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Saturday", weekday)
}
