package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/warp/labor-engine/calendar"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Working Days"
	holidaysSheet = "Holidays"
)

// MonthSummary is one row of the working-days workbook.
type MonthSummary struct {
	Month       time.Month
	Days        int
	WorkingDays int
	WeekendDays int
	Holidays    int // holidays falling on working weekdays
}

// SummarizeYear counts working days per month of year.
func SummarizeYear(year int, cfg calendar.WeekendConfig, holidays []calendar.Holiday) []MonthSummary {
	out := make([]MonthSummary, 0, 12)
	for m := time.January; m <= time.December; m++ {
		p := calendar.MonthPeriod(year, m)
		dates := calendar.ExpandHolidays(holidays, p)
		res := calendar.CalculateWorkingDays(p.Start, p.End, cfg, dates...)
		out = append(out, MonthSummary{
			Month:       m,
			Days:        p.Len(),
			WorkingDays: res.WorkingDays,
			WeekendDays: res.WeekendDays,
			Holidays:    p.Len() - res.WorkingDays - res.WeekendDays,
		})
	}
	return out
}

// NewWorkingDaysWorkbook builds the yearly workbook: a per-month summary
// sheet and a sheet listing the holidays observed that year.
func NewWorkingDaysWorkbook(year int, cfg calendar.WeekendConfig, holidays []calendar.Holiday) (*excelize.File, error) {
	f := excelize.NewFile()
	index := f.NewSheet(summarySheet)
	f.NewSheet(holidaysSheet)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// Summary
	_ = f.SetColWidth(summarySheet, "A", "A", 14)
	_ = f.SetColWidth(summarySheet, "B", "E", 16)
	header := []interface{}{"Month", "Calendar days", "Working days", "Weekend days", "Holidays"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(summarySheet, "A1", "E1", bold)

	var total MonthSummary
	rows := SummarizeYear(year, cfg, holidays)
	for i, s := range rows {
		row := []interface{}{s.Month.String(), s.Days, s.WorkingDays, s.WeekendDays, s.Holidays}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
		total.Days += s.Days
		total.WorkingDays += s.WorkingDays
		total.WeekendDays += s.WeekendDays
		total.Holidays += s.Holidays
	}
	totalRow := len(rows) + 2
	footer := []interface{}{fmt.Sprintf("Total %d", year), total.Days, total.WorkingDays, total.WeekendDays, total.Holidays}
	if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", totalRow), &footer); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("E%d", totalRow), bold)

	// Holidays
	_ = f.SetColWidth(holidaysSheet, "A", "A", 14)
	_ = f.SetColWidth(holidaysSheet, "B", "B", 30)
	_ = f.SetColWidth(holidaysSheet, "C", "D", 12)
	hHeader := []interface{}{"Date", "Name", "Weekday", "Recurring"}
	if err := f.SetSheetRow(holidaysSheet, "A1", &hHeader); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(holidaysSheet, "A1", "D1", bold)

	r := 2
	for _, h := range holidaysOfYear(year, holidays) {
		recurring := "no"
		if h.Recurring {
			recurring = "yes"
		}
		row := []interface{}{h.Date.Format("2006-01-02"), h.Name, h.Date.Weekday().String(), recurring}
		if err := f.SetSheetRow(holidaysSheet, fmt.Sprintf("A%d", r), &row); err != nil {
			return nil, err
		}
		r++
	}

	return f, nil
}

// WriteWorkingDaysWorkbook builds the workbook and writes it as XLSX.
func WriteWorkingDaysWorkbook(w io.Writer, year int, cfg calendar.WeekendConfig, holidays []calendar.Holiday) error {
	f, err := NewWorkingDaysWorkbook(year, cfg, holidays)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// holidaysOfYear returns the holidays observed in year, dated in that year.
func holidaysOfYear(year int, holidays []calendar.Holiday) []calendar.Holiday {
	var out []calendar.Holiday
	for _, h := range holidays {
		d, ok := h.OccursIn(year)
		if !ok {
			continue
		}
		h.Date = d
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
