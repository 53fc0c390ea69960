package factory

import "github.com/shopspring/decimal"

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// Money fields are decimal.Decimal so clients may send either 12000.5 or
// "12000.50". Dates are YYYY-MM-DD.

// WeekendJSON selects a weekend scheme. Days (0=Sunday..6=Saturday) are only
// read for the custom scheme.
type WeekendJSON struct {
	Scheme string `json:"scheme" validate:"omitempty,oneof=saudi western custom"`
	Days   []int  `json:"days,omitempty" validate:"omitempty,max=7,dive,min=0,max=6"`
}

// RangeJSON is an inclusive date range with optional working-day context.
// Start and End also accept RFC3339 timestamps for the diff endpoint.
type RangeJSON struct {
	Start     string       `json:"start" validate:"required"`
	End       string       `json:"end" validate:"required"`
	CompanyID string       `json:"company_id,omitempty" validate:"max=64"`
	Weekend   *WeekendJSON `json:"weekend,omitempty"`
	Holidays  []string     `json:"holidays,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`
}

// AddWorkingDaysJSON moves a date by N working days (negative goes back).
type AddWorkingDaysJSON struct {
	Start     string       `json:"start" validate:"required,datetime=2006-01-02"`
	Days      int          `json:"days" validate:"min=-3660,max=3660"`
	CompanyID string       `json:"company_id,omitempty" validate:"max=64"`
	Weekend   *WeekendJSON `json:"weekend,omitempty"`
	Holidays  []string     `json:"holidays,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`
}

// OvertimeJSON prices extra hours.
type OvertimeJSON struct {
	Enabled    bool    `json:"enabled"`
	Hours      float64 `json:"hours" validate:"gte=0"`
	Multiplier float64 `json:"multiplier,omitempty" validate:"gte=0"` // default 1.5
}

// PayrollJSON is the payroll calculator request.
type PayrollJSON struct {
	Mode        string   `json:"mode,omitempty" validate:"omitempty,oneof=gross2net net2gross"`
	Resident    string   `json:"resident,omitempty" validate:"omitempty,oneof=saudi expat"`
	GosiProfile string   `json:"gosi_profile,omitempty" validate:"omitempty,oneof=saudi-standard saudi-legacy non-saudi custom"`
	EmployeePct *float64 `json:"employee_pct,omitempty" validate:"omitempty,gte=0,lte=100"`
	EmployerPct *float64 `json:"employer_pct,omitempty" validate:"omitempty,gte=0,lte=100"`

	Basic          decimal.Decimal `json:"basic"`
	TargetNet      decimal.Decimal `json:"target_net"`
	HousingMode    string          `json:"housing_mode,omitempty" validate:"omitempty,oneof=percent fixed"`
	HousingPercent float64         `json:"housing_percent" validate:"gte=0,lte=100"`
	HousingFixed   decimal.Decimal `json:"housing_fixed"`
	Transport      decimal.Decimal `json:"transport"`
	OtherAllowance decimal.Decimal `json:"other_allowance"`

	OtherDeductionPct float64         `json:"other_deduction_pct" validate:"gte=0,lte=100"`
	FlatDeduction     decimal.Decimal `json:"flat_deduction"`

	MonthDivisor float64 `json:"month_divisor,omitempty" validate:"omitempty,gte=1,lte=31"`
	HoursPerDay  float64 `json:"hours_per_day,omitempty" validate:"omitempty,gt=0,lte=24"`

	Overtime *OvertimeJSON `json:"overtime,omitempty"`
}

// EOSJSON is the end-of-service calculator request.
type EOSJSON struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`

	Basic          decimal.Decimal `json:"basic"`
	HousingMode    string          `json:"housing_mode,omitempty" validate:"omitempty,oneof=percent fixed"`
	HousingPercent float64         `json:"housing_percent" validate:"gte=0,lte=100"`
	HousingFixed   decimal.Decimal `json:"housing_fixed"`
	BaseType       string          `json:"base_type,omitempty" validate:"omitempty,oneof=basic basic_plus_housing"`

	Cause        string          `json:"cause" validate:"required,oneof=termination death disability retirement contract_end force_majeure resignation"`
	LeaveDays    float64         `json:"leave_days" validate:"gte=0"`
	MonthDivisor float64         `json:"month_divisor,omitempty" validate:"omitempty,gte=1,lte=31"`
	Extras       decimal.Decimal `json:"extras"`
	Deductions   decimal.Decimal `json:"deductions"`
}

// ShiftJSON is the shift end-time request. Start is not validated here; an
// unparseable start yields "--:--" from the calculator.
type ShiftJSON struct {
	Start        string  `json:"start"`
	Hours        float64 `json:"hours" validate:"gte=0,lte=48"`
	BreakMinutes float64 `json:"break_minutes" validate:"gte=0,lte=1440"`
	BreakIsPaid  bool    `json:"break_is_paid"`
}

// HolidayJSON creates or updates a company holiday.
type HolidayJSON struct {
	ID        string `json:"id,omitempty" validate:"omitempty,max=64"`
	CompanyID string `json:"company_id,omitempty" validate:"max=64"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Name      string `json:"name" validate:"required,max=128"`
	Recurring bool   `json:"recurring"`
}

// CalendarJSON stores a company's weekend scheme.
type CalendarJSON struct {
	CompanyID string      `json:"company_id" validate:"required,max=64"`
	Weekend   WeekendJSON `json:"weekend"`
}
