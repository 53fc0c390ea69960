/*
dto.go - Response types for the calculator API

PURPOSE:
  Defines the JSON returned to the dashboard. Request bodies are the
  factory's *JSON types (factory/requests.go) so validation lives in one
  place.

MONEY:
  Every SAR amount is a decimal.Decimal rounded half away from zero to two
  places. Engine values stay float64; rounding happens only here, so the
  yearly figure is 12 x the unrounded monthly figure, then rounded.

DATES:
  YYYY-MM-DD strings.

SEE ALSO:
  - handlers.go: Builds these from calculator results
  - factory/requests.go: Request types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/labor-engine/calendar"
	"github.com/warp/labor-engine/eos"
	"github.com/warp/labor-engine/factory"
	"github.com/warp/labor-engine/payroll"
	"github.com/warp/labor-engine/workhours"
)

const dateLayout = "2006-01-02"

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func ratio(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(4)
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CALENDAR
// =============================================================================

type BreakdownDTO struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

func toBreakdownDTO(b calendar.Breakdown) BreakdownDTO {
	return BreakdownDTO{Years: b.Years, Months: b.Months, Days: b.Days}
}

type WeekendDTO struct {
	CompanyID string   `json:"company_id,omitempty"`
	Scheme    string   `json:"scheme"`
	Days      []int    `json:"days"`
	DayNames  []string `json:"day_names"`
}

func toWeekendDTO(companyID string, cfg calendar.WeekendConfig) WeekendDTO {
	dto := WeekendDTO{CompanyID: companyID, Scheme: string(cfg.Scheme), Days: []int{}, DayNames: []string{}}
	if dto.Scheme == "" {
		dto.Scheme = string(calendar.WeekendSaudi)
	}
	for _, d := range calendar.WeekendDays(cfg) {
		dto.Days = append(dto.Days, int(d))
		dto.DayNames = append(dto.DayNames, d.String())
	}
	return dto
}

type DiffResponse struct {
	Start        string       `json:"start"`
	End          string       `json:"end"`
	Milliseconds int64        `json:"milliseconds"`
	Seconds      int64        `json:"seconds"`
	Minutes      int64        `json:"minutes"`
	Hours        int64        `json:"hours"`
	Days         int          `json:"days"`
	Weeks        int          `json:"weeks"`
	Years        int          `json:"years"`
	Breakdown    BreakdownDTO `json:"breakdown"`
	WorkingDays  int          `json:"working_days"`
	WeekendDays  int          `json:"weekend_days"`
	BusinessDays int          `json:"business_days"`
	Weekend      WeekendDTO   `json:"weekend"`
}

func toDiffResponse(r factory.Range, cfg calendar.WeekendConfig, d calendar.DateDiffResult) DiffResponse {
	return DiffResponse{
		Start:        r.Start.Format(time.RFC3339),
		End:          r.End.Format(time.RFC3339),
		Milliseconds: d.Milliseconds,
		Seconds:      d.Seconds,
		Minutes:      d.Minutes,
		Hours:        d.Hours,
		Days:         d.Days,
		Weeks:        d.Weeks,
		Years:        d.Years,
		Breakdown:    toBreakdownDTO(d.Breakdown),
		WorkingDays:  d.WorkingDays,
		WeekendDays:  d.WeekendDays,
		BusinessDays: d.BusinessDays,
		Weekend:      toWeekendDTO(r.CompanyID, cfg),
	}
}

type WorkingDaysResponse struct {
	Start       string     `json:"start"`
	End         string     `json:"end"`
	Days        int        `json:"days"`
	WorkingDays int        `json:"working_days"`
	WeekendDays int        `json:"weekend_days"`
	Holidays    []string   `json:"holidays"` // holidays inside the range
	Weekend     WeekendDTO `json:"weekend"`
}

type AddWorkingDaysResponse struct {
	Start   string     `json:"start"`
	Days    int        `json:"days"`
	Result  string     `json:"result"`
	Weekday string     `json:"weekday"`
	Weekend WeekendDTO `json:"weekend"`
}

type DayDTO struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Weekend bool   `json:"weekend"`
	Holiday string `json:"holiday,omitempty"`
	Working bool   `json:"working"`
}

type MonthResponse struct {
	Year        int        `json:"year"`
	Month       int        `json:"month"`
	DaysInMonth int        `json:"days_in_month"`
	WorkingDays int        `json:"working_days"`
	WeekendDays int        `json:"weekend_days"`
	Days        []DayDTO   `json:"days"`
	Weekend     WeekendDTO `json:"weekend"`
}

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

func toHolidayDTO(h calendar.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:        h.ID,
		CompanyID: h.CompanyID,
		Date:      h.Date.Format(dateLayout),
		Name:      h.Name,
		Recurring: h.Recurring,
	}
}

// =============================================================================
// PAYROLL
// =============================================================================

type FiguresDTO struct {
	Gross             decimal.Decimal `json:"gross"`
	Net               decimal.Decimal `json:"net"`
	InsuranceEmployee decimal.Decimal `json:"insurance_employee"`
	InsuranceEmployer decimal.Decimal `json:"insurance_employer"`
	OtherDeduction    decimal.Decimal `json:"other_deduction"`
	FlatDeduction     decimal.Decimal `json:"flat_deduction"`
	Overtime          decimal.Decimal `json:"overtime"`
	GrossWithOvertime decimal.Decimal `json:"gross_with_overtime"`
	NetWithOvertime   decimal.Decimal `json:"net_with_overtime"`
	EmployerCost      decimal.Decimal `json:"employer_cost"`
}

func toFiguresDTO(f payroll.Figures) FiguresDTO {
	return FiguresDTO{
		Gross:             money(f.Gross),
		Net:               money(f.Net),
		InsuranceEmployee: money(f.InsuranceEmployee),
		InsuranceEmployer: money(f.InsuranceEmployer),
		OtherDeduction:    money(f.OtherDeduction),
		FlatDeduction:     money(f.FlatDeduction),
		Overtime:          money(f.Overtime),
		GrossWithOvertime: money(f.GrossWithOvertime),
		NetWithOvertime:   money(f.NetWithOvertime),
		EmployerCost:      money(f.EmployerCost),
	}
}

type RatesDTO struct {
	EmployeePct float64 `json:"employee_pct"`
	EmployerPct float64 `json:"employer_pct"`
}

type PayrollResponse struct {
	Mode             string          `json:"mode"`
	Basic            decimal.Decimal `json:"basic"`
	Housing          decimal.Decimal `json:"housing"`
	Transport        decimal.Decimal `json:"transport"`
	OtherAllowance   decimal.Decimal `json:"other_allowance"`
	ContributoryWage decimal.Decimal `json:"contributory_wage"`
	Rates            RatesDTO        `json:"rates"`
	MonthDivisor     float64         `json:"month_divisor"`
	HoursPerDay      float64         `json:"hours_per_day"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	OvertimeRate     decimal.Decimal `json:"overtime_rate"`

	Monthly FiguresDTO `json:"monthly"`
	Yearly  FiguresDTO `json:"yearly"`
	Daily   FiguresDTO `json:"daily"`
	Hourly  FiguresDTO `json:"hourly"`

	TargetNet  *decimal.Decimal `json:"target_net,omitempty"`
	Iterations int              `json:"iterations,omitempty"`
}

func toPayrollResponse(r payroll.Result) PayrollResponse {
	resp := PayrollResponse{
		Mode:             string(r.Mode),
		Basic:            money(r.Basic),
		Housing:          money(r.Housing),
		Transport:        money(r.Transport),
		OtherAllowance:   money(r.OtherAllowance),
		ContributoryWage: money(r.ContributoryWage),
		Rates:            RatesDTO{EmployeePct: r.Rates.EmployeePct, EmployerPct: r.Rates.EmployerPct},
		MonthDivisor:     r.MonthDivisor,
		HoursPerDay:      r.HoursPerDay,
		HourlyRate:       money(r.HourlyRate),
		OvertimeRate:     money(r.OvertimeRate),
		Monthly:          toFiguresDTO(r.Monthly),
		Yearly:           toFiguresDTO(r.Yearly),
		Daily:            toFiguresDTO(r.Daily),
		Hourly:           toFiguresDTO(r.Hourly),
	}
	if r.Mode == payroll.ModeNetToGross {
		target := money(r.TargetNet)
		resp.TargetNet = &target
		resp.Iterations = r.Iterations
	}
	return resp
}

// ProfileDTO lists a GOSI rate profile for the dashboard's dropdown.
type ProfileDTO struct {
	Key         string  `json:"key"`
	EmployeePct float64 `json:"employee_pct"`
	EmployerPct float64 `json:"employer_pct"`
}

// =============================================================================
// END OF SERVICE
// =============================================================================

type TranchesDTO struct {
	First5YearsMonths decimal.Decimal `json:"first5_years_months"`
	First5YearsAmount decimal.Decimal `json:"first5_years_amount"`
	After5YearsMonths decimal.Decimal `json:"after5_years_months"`
	After5YearsAmount decimal.Decimal `json:"after5_years_amount"`
}

type EOSResponse struct {
	Article     int             `json:"article"`
	Cause       string          `json:"cause"`
	Service     BreakdownDTO    `json:"service"`
	TenureYears decimal.Decimal `json:"tenure_years"`
	Housing     decimal.Decimal `json:"housing"`
	EOSBase     decimal.Decimal `json:"eos_base"`
	RawMonths   decimal.Decimal `json:"raw_months"`
	Factor      decimal.Decimal `json:"factor"`
	FinalEOS    decimal.Decimal `json:"final_eos"`
	LeaveEncash decimal.Decimal `json:"leave_encash"`
	Extras      decimal.Decimal `json:"extras"`
	Deductions  decimal.Decimal `json:"deductions"`
	Total       decimal.Decimal `json:"total"`
	Breakdown   TranchesDTO     `json:"breakdown"`
}

func toEOSResponse(in eos.Input, r eos.Result) EOSResponse {
	return EOSResponse{
		Article:     int(r.Article),
		Cause:       string(in.Cause),
		Service:     toBreakdownDTO(r.Service),
		TenureYears: ratio(r.TenureYears),
		Housing:     money(r.Housing),
		EOSBase:     money(r.EOSBase),
		RawMonths:   ratio(r.RawMonths),
		Factor:      ratio(r.Factor),
		FinalEOS:    money(r.FinalEOS),
		LeaveEncash: money(r.LeaveEncash),
		Extras:      money(r.Extras),
		Deductions:  money(r.Deductions),
		Total:       money(r.Total),
		Breakdown: TranchesDTO{
			First5YearsMonths: ratio(r.Breakdown.First5YearsMonths),
			First5YearsAmount: money(r.Breakdown.First5YearsAmount),
			After5YearsMonths: ratio(r.Breakdown.After5YearsMonths),
			After5YearsAmount: money(r.Breakdown.After5YearsAmount),
		},
	}
}

// =============================================================================
// WORK HOURS
// =============================================================================

type ShiftResponse struct {
	Start           string `json:"start"`
	EndTime         string `json:"end_time"`
	TotalMinutes    int    `json:"total_minutes"`
	CrossesMidnight bool   `json:"crosses_midnight"`
	Valid           bool   `json:"valid"`
}

func toShiftResponse(in workhours.ShiftInput, r workhours.ShiftResult) ShiftResponse {
	return ShiftResponse{
		Start:           in.Start,
		EndTime:         r.EndTime,
		TotalMinutes:    r.TotalMinutes,
		CrossesMidnight: r.CrossesMidnight,
		Valid:           r.Valid,
	}
}
