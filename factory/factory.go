/*
Package factory converts JSON request bodies into calculator inputs.

PURPOSE:
  The calculators (calendar, payroll, eos, workhours) take plain Go values
  and never fail. Everything that can be wrong with a request (bad dates,
  unknown enums, negative money, out-of-range percentages) is caught here
  and reported as a *ValidationError, so the API layer only maps one error
  type to 400.

JSON SCHEMA (payroll example):
  {
    "mode": "gross2net",
    "gosi_profile": "saudi-standard",
    "basic": "10000",
    "housing_mode": "percent",
    "housing_percent": 25,
    "transport": 500,
    "overtime": {"enabled": true, "hours": 10}
  }

KEY FEATURES:
  - Struct-tag validation (go-playground/validator), issues keyed by JSON name
  - Money as decimal.Decimal: numbers or strings accepted
  - Calculator defaults (month divisor, hours per day, weekend) from Settings
  - Holiday IDs generated with uuid when the client omits one

USAGE:
  f := factory.NewFactory(factory.DefaultSettings())

  in, err := f.ParsePayroll(body)
  if errors.Is(err, factory.ErrInvalidInput) {
      // 400
  }
  res := payroll.CalcPayroll(in)

SEE ALSO:
  - factory/requests.go: JSON types and their validation tags
  - factory/errors.go: ValidationError
*/
package factory

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/labor-engine/calendar"
	"github.com/warp/labor-engine/eos"
	"github.com/warp/labor-engine/payroll"
	"github.com/warp/labor-engine/workhours"
)

const (
	dateLayout = "2006-01-02"

	// DefaultOvertimeMultiplier is the Article 107 uplift (hourly wage + 50%).
	DefaultOvertimeMultiplier = 1.5
)

// =============================================================================
// PARSED TYPES
// =============================================================================

// Range is a parsed RangeJSON. Weekend is nil when the request did not name
// one, so the caller can fall back to the company calendar.
type Range struct {
	Start     time.Time
	End       time.Time
	CompanyID string
	Weekend   *calendar.WeekendConfig
	Holidays  []time.Time
}

// Period returns the range as a calendar period of whole dates.
func (r Range) Period() calendar.Period {
	return calendar.NewPeriod(r.Start, r.End)
}

// AddWorkingDays is a parsed AddWorkingDaysJSON.
type AddWorkingDays struct {
	Start     time.Time
	Days      int
	CompanyID string
	Weekend   *calendar.WeekendConfig
	Holidays  []time.Time
}

// =============================================================================
// FACTORY
// =============================================================================

// Settings are the calculator defaults applied when a request omits a value.
type Settings struct {
	MonthDivisor       float64
	HoursPerDay        float64
	OvertimeMultiplier float64
	Weekend            calendar.WeekendConfig
}

// DefaultSettings matches the calculators' own defaults.
func DefaultSettings() Settings {
	return Settings{
		MonthDivisor:       payroll.DefaultMonthDivisor,
		HoursPerDay:        payroll.DefaultHoursPerDay,
		OvertimeMultiplier: DefaultOvertimeMultiplier,
		Weekend:            calendar.SaudiWeekend,
	}
}

// Factory validates requests and builds calculator inputs.
type Factory struct {
	validate *validator.Validate
	settings Settings
}

// NewFactory creates a factory. Zero settings fall back to DefaultSettings.
func NewFactory(s Settings) *Factory {
	d := DefaultSettings()
	if s.MonthDivisor <= 0 {
		s.MonthDivisor = d.MonthDivisor
	}
	if s.HoursPerDay <= 0 {
		s.HoursPerDay = d.HoursPerDay
	}
	if s.OvertimeMultiplier <= 0 {
		s.OvertimeMultiplier = d.OvertimeMultiplier
	}
	if s.Weekend.Scheme == "" {
		s.Weekend = d.Weekend
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Factory{validate: v, settings: s}
}

// Settings returns the effective defaults.
func (f *Factory) Settings() Settings {
	return f.settings
}

// =============================================================================
// PAYROLL
// =============================================================================

// ParsePayroll parses and validates a payroll request body.
func (f *Factory) ParsePayroll(data []byte) (payroll.Input, error) {
	var pj PayrollJSON
	if err := decode(data, &pj); err != nil {
		return payroll.Input{}, err
	}
	return f.FromPayrollJSON(pj)
}

// FromPayrollJSON validates pj and converts it to payroll.Input.
func (f *Factory) FromPayrollJSON(pj PayrollJSON) (payroll.Input, error) {
	if err := f.validate.Struct(pj); err != nil {
		return payroll.Input{}, fromValidator(err)
	}

	verr := &ValidationError{}
	checkMoney(verr, "basic", pj.Basic)
	checkMoney(verr, "target_net", pj.TargetNet)
	checkMoney(verr, "housing_fixed", pj.HousingFixed)
	checkMoney(verr, "transport", pj.Transport)
	checkMoney(verr, "other_allowance", pj.OtherAllowance)
	checkMoney(verr, "flat_deduction", pj.FlatDeduction)
	if err := verr.errOrNil(); err != nil {
		return payroll.Input{}, err
	}

	in := payroll.Input{
		Mode:              payroll.Mode(pj.Mode),
		Resident:          payroll.Residency(pj.Resident),
		GosiProfile:       payroll.ProfileKey(pj.GosiProfile),
		EmployeePct:       pj.EmployeePct,
		EmployerPct:       pj.EmployerPct,
		Basic:             pj.Basic.InexactFloat64(),
		TargetNet:         pj.TargetNet.InexactFloat64(),
		HousingMode:       payroll.HousingMode(pj.HousingMode),
		HousingPercent:    pj.HousingPercent,
		HousingFixed:      pj.HousingFixed.InexactFloat64(),
		Transport:         pj.Transport.InexactFloat64(),
		OtherAllowance:    pj.OtherAllowance.InexactFloat64(),
		OtherDeductionPct: pj.OtherDeductionPct,
		FlatDeduction:     pj.FlatDeduction.InexactFloat64(),
		MonthDivisor:      orDefault(pj.MonthDivisor, f.settings.MonthDivisor),
		HoursPerDay:       orDefault(pj.HoursPerDay, f.settings.HoursPerDay),
	}
	if in.Mode == "" {
		in.Mode = payroll.ModeGrossToNet
	}
	if pj.Overtime != nil {
		in.Overtime = payroll.Overtime{
			Enabled:    pj.Overtime.Enabled,
			Hours:      pj.Overtime.Hours,
			Multiplier: orDefault(pj.Overtime.Multiplier, f.settings.OvertimeMultiplier),
		}
	}
	return in, nil
}

// =============================================================================
// END OF SERVICE
// =============================================================================

// ParseEOS parses and validates an end-of-service request body.
func (f *Factory) ParseEOS(data []byte) (eos.Input, error) {
	var ej EOSJSON
	if err := decode(data, &ej); err != nil {
		return eos.Input{}, err
	}
	return f.FromEOSJSON(ej)
}

// FromEOSJSON validates ej and converts it to eos.Input.
func (f *Factory) FromEOSJSON(ej EOSJSON) (eos.Input, error) {
	if err := f.validate.Struct(ej); err != nil {
		return eos.Input{}, fromValidator(err)
	}

	verr := &ValidationError{}
	start := parseDate(verr, "start", ej.Start)
	end := parseDate(verr, "end", ej.End)
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		verr.add("end", "gtefield", "start")
	}
	checkMoney(verr, "basic", ej.Basic)
	checkMoney(verr, "housing_fixed", ej.HousingFixed)
	checkMoney(verr, "extras", ej.Extras)
	checkMoney(verr, "deductions", ej.Deductions)
	if err := verr.errOrNil(); err != nil {
		return eos.Input{}, err
	}

	return eos.Input{
		Start:          start,
		End:            end,
		Basic:          ej.Basic.InexactFloat64(),
		HousingMode:    eos.HousingMode(ej.HousingMode),
		HousingPercent: ej.HousingPercent,
		HousingFixed:   ej.HousingFixed.InexactFloat64(),
		BaseType:       eos.BaseType(ej.BaseType),
		Cause:          eos.Cause(ej.Cause),
		LeaveDays:      ej.LeaveDays,
		MonthDivisor:   orDefault(ej.MonthDivisor, f.settings.MonthDivisor),
		Extras:         ej.Extras.InexactFloat64(),
		Deductions:     ej.Deductions.InexactFloat64(),
	}, nil
}

// =============================================================================
// WORK HOURS
// =============================================================================

// ParseShift parses and validates a shift request body.
func (f *Factory) ParseShift(data []byte) (workhours.ShiftInput, error) {
	var sj ShiftJSON
	if err := decode(data, &sj); err != nil {
		return workhours.ShiftInput{}, err
	}
	return f.FromShiftJSON(sj)
}

func (f *Factory) FromShiftJSON(sj ShiftJSON) (workhours.ShiftInput, error) {
	if err := f.validate.Struct(sj); err != nil {
		return workhours.ShiftInput{}, fromValidator(err)
	}
	return workhours.ShiftInput{
		Start:        strings.TrimSpace(sj.Start),
		Hours:        sj.Hours,
		BreakMinutes: sj.BreakMinutes,
		BreakIsPaid:  sj.BreakIsPaid,
	}, nil
}

// =============================================================================
// CALENDAR
// =============================================================================

// ParseRange parses and validates a date-range request body.
func (f *Factory) ParseRange(data []byte) (Range, error) {
	var rj RangeJSON
	if err := decode(data, &rj); err != nil {
		return Range{}, err
	}
	return f.FromRangeJSON(rj)
}

// FromRangeJSON validates rj. Start and End may be dates or RFC3339 instants.
func (f *Factory) FromRangeJSON(rj RangeJSON) (Range, error) {
	if err := f.validate.Struct(rj); err != nil {
		return Range{}, fromValidator(err)
	}

	verr := &ValidationError{}
	r := Range{
		Start:     parseInstant(verr, "start", rj.Start),
		End:       parseInstant(verr, "end", rj.End),
		CompanyID: rj.CompanyID,
		Holidays:  parseDates(verr, "holidays", rj.Holidays),
	}
	if rj.Weekend != nil {
		w := f.weekendOf(*rj.Weekend)
		r.Weekend = &w
	}
	return r, verr.errOrNil()
}

// ParseAddWorkingDays parses and validates an add-working-days request body.
func (f *Factory) ParseAddWorkingDays(data []byte) (AddWorkingDays, error) {
	var aj AddWorkingDaysJSON
	if err := decode(data, &aj); err != nil {
		return AddWorkingDays{}, err
	}
	if err := f.validate.Struct(aj); err != nil {
		return AddWorkingDays{}, fromValidator(err)
	}

	verr := &ValidationError{}
	a := AddWorkingDays{
		Start:     parseDate(verr, "start", aj.Start),
		Days:      aj.Days,
		CompanyID: aj.CompanyID,
		Holidays:  parseDates(verr, "holidays", aj.Holidays),
	}
	if aj.Weekend != nil {
		w := f.weekendOf(*aj.Weekend)
		a.Weekend = &w
	}
	return a, verr.errOrNil()
}

// ParseWeekend validates a weekend selection. An empty scheme yields the
// configured default weekend.
func (f *Factory) ParseWeekend(wj WeekendJSON) (calendar.WeekendConfig, error) {
	if err := f.validate.Struct(wj); err != nil {
		return calendar.WeekendConfig{}, fromValidator(err)
	}
	return f.weekendOf(wj), nil
}

// ParseCalendar parses a company weekend update.
func (f *Factory) ParseCalendar(data []byte) (string, calendar.WeekendConfig, error) {
	var cj CalendarJSON
	if err := decode(data, &cj); err != nil {
		return "", calendar.WeekendConfig{}, err
	}
	if err := f.validate.Struct(cj); err != nil {
		return "", calendar.WeekendConfig{}, fromValidator(err)
	}
	if cj.Weekend.Scheme == "" {
		return "", calendar.WeekendConfig{}, &ValidationError{
			Issues: []FieldIssue{{Field: "weekend.scheme", Rule: "required"}},
		}
	}
	return cj.CompanyID, f.weekendOf(cj.Weekend), nil
}

// ParseHoliday parses a holiday, assigning a fresh ID when none is given.
func (f *Factory) ParseHoliday(data []byte) (calendar.Holiday, error) {
	var hj HolidayJSON
	if err := decode(data, &hj); err != nil {
		return calendar.Holiday{}, err
	}
	if err := f.validate.Struct(hj); err != nil {
		return calendar.Holiday{}, fromValidator(err)
	}

	verr := &ValidationError{}
	h := calendar.Holiday{
		ID:        hj.ID,
		CompanyID: hj.CompanyID,
		Date:      parseDate(verr, "date", hj.Date),
		Name:      strings.TrimSpace(hj.Name),
		Recurring: hj.Recurring,
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return h, verr.errOrNil()
}

func (f *Factory) weekendOf(wj WeekendJSON) calendar.WeekendConfig {
	switch calendar.WeekendScheme(wj.Scheme) {
	case calendar.WeekendSaudi:
		return calendar.SaudiWeekend
	case calendar.WeekendWestern:
		return calendar.WesternWeekend
	case calendar.WeekendCustom:
		days := make([]time.Weekday, 0, len(wj.Days))
		for _, d := range wj.Days {
			days = append(days, time.Weekday(d))
		}
		return calendar.CustomWeekend(days...)
	default:
		return f.settings.Weekend
	}
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", ErrInvalidInput, err)
	}
	return nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func checkMoney(verr *ValidationError, field string, d decimal.Decimal) {
	if d.IsNegative() {
		verr.add(field, "gte", "0")
	}
}

func parseDate(verr *ValidationError, field, s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		verr.add(field, "datetime", dateLayout)
		return time.Time{}
	}
	return t
}

// parseInstant accepts YYYY-MM-DD (UTC midnight) or RFC3339.
func parseInstant(verr *ValidationError, field, s string) time.Time {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		verr.add(field, "datetime", dateLayout+"|RFC3339")
		return time.Time{}
	}
	return t
}

func parseDates(verr *ValidationError, field string, ss []string) []time.Time {
	if len(ss) == 0 {
		return nil
	}
	out := make([]time.Time, 0, len(ss))
	for i, s := range ss {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			verr.add(fmt.Sprintf("%s[%d]", field, i), "datetime", dateLayout)
			continue
		}
		out = append(out, t)
	}
	return out
}
