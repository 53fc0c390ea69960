/*
Package payroll converts between gross and net monthly compensation under
Saudi GOSI (social insurance) rules.

FORMULAS (monthly):
  housing          = basic * housingPercent / 100   (percent mode)
                   = housingFixed                   (fixed mode)
  gross            = basic + housing + transport + otherAllowance
  contributoryWage = min(basic + housing, GosiCap)
  insuranceEmp     = contributoryWage * employeePct / 100
  insuranceEr      = contributoryWage * employerPct / 100
  otherDeduction   = gross * otherDeductionPct / 100
  net              = gross - insuranceEmp - otherDeduction - flatDeduction

OVERTIME:
  Overtime is a parallel figure. It is priced from the base gross and
  reported as Overtime / GrossWithOvertime / NetWithOvertime; Net itself is
  never changed by it.

NET TO GROSS:
  The inverse is solved numerically. Net is monotone in the basic salary,
  so the solver brackets the target and bisects until the net lands within
  NetTolerance of it. Result.Iterations counts the payroll evaluations.

Nothing in this package validates plausibility (negative salaries are
computed as given).
*/
package payroll

import "math"

type Mode string

const (
	ModeGrossToNet Mode = "gross2net"
	ModeNetToGross Mode = "net2gross"
)

type Residency string

const (
	ResidentSaudi Residency = "saudi"
	ResidentExpat Residency = "expat"
)

type HousingMode string

const (
	HousingPercent HousingMode = "percent"
	HousingFixed   HousingMode = "fixed"
)

const (
	DefaultMonthDivisor = 30.0
	DefaultHoursPerDay  = 8.0

	// NetTolerance is the acceptable |net - target| for net2gross, in SAR.
	NetTolerance  = 0.01
	maxIterations = 200
)

// Overtime describes extra hours priced at hourlyRate * Multiplier.
type Overtime struct {
	Enabled    bool
	Hours      float64
	Multiplier float64
}

// Input is a payroll calculation request.
type Input struct {
	Mode Mode

	// Rate resolution: GosiProfile wins, then explicit EmployeePct/EmployerPct
	// (both set), then Resident. For ProfileCustom the explicit percentages
	// are the rates.
	Resident    Residency
	GosiProfile ProfileKey
	EmployeePct *float64
	EmployerPct *float64

	Basic          float64 // ignored in net2gross mode
	TargetNet      float64 // net2gross only
	HousingMode    HousingMode
	HousingPercent float64
	HousingFixed   float64
	Transport      float64
	OtherAllowance float64

	OtherDeductionPct float64
	FlatDeduction     float64

	MonthDivisor float64 // days per month, default 30
	HoursPerDay  float64 // default 8

	Overtime Overtime
}

// Figures is one time-scale view of a payroll result.
type Figures struct {
	Gross             float64
	Net               float64
	InsuranceEmployee float64
	InsuranceEmployer float64
	OtherDeduction    float64
	FlatDeduction     float64
	Overtime          float64
	GrossWithOvertime float64
	NetWithOvertime   float64
	EmployerCost      float64 // gross + employer insurance
}

func (f Figures) scale(k float64) Figures {
	return Figures{
		Gross:             f.Gross * k,
		Net:               f.Net * k,
		InsuranceEmployee: f.InsuranceEmployee * k,
		InsuranceEmployer: f.InsuranceEmployer * k,
		OtherDeduction:    f.OtherDeduction * k,
		FlatDeduction:     f.FlatDeduction * k,
		Overtime:          f.Overtime * k,
		GrossWithOvertime: f.GrossWithOvertime * k,
		NetWithOvertime:   f.NetWithOvertime * k,
		EmployerCost:      f.EmployerCost * k,
	}
}

// Result is a payroll calculation. Monthly is the primary figure set;
// Yearly is x12, Daily is /MonthDivisor, Hourly is /MonthDivisor/HoursPerDay.
type Result struct {
	Mode             Mode
	Basic            float64
	Housing          float64
	Transport        float64
	OtherAllowance   float64
	ContributoryWage float64
	Rates            Rates
	MonthDivisor     float64
	HoursPerDay      float64

	HourlyRate   float64 // base gross per hour
	OvertimeRate float64

	Monthly Figures
	Yearly  Figures
	Daily   Figures
	Hourly  Figures

	// net2gross only
	TargetNet  float64
	Iterations int
}

// =============================================================================
// CALCULATION
// =============================================================================

// CalcPayroll runs the gross2net formulas, or solves for the basic salary
// first when in net2gross mode.
func CalcPayroll(in Input) Result {
	in = withDefaults(in)
	if in.Mode == ModeNetToGross {
		return solveNetToGross(in)
	}
	res := grossToNet(in)
	res.Mode = ModeGrossToNet
	return res
}

func withDefaults(in Input) Input {
	if in.MonthDivisor == 0 {
		in.MonthDivisor = DefaultMonthDivisor
	}
	if in.HoursPerDay == 0 {
		in.HoursPerDay = DefaultHoursPerDay
	}
	if in.HousingMode == "" {
		in.HousingMode = HousingPercent
	}
	return in
}

// ResolveRates applies the profile > explicit > residency precedence.
func ResolveRates(in Input) Rates {
	if in.GosiProfile != "" {
		return GetGosiRates(in.GosiProfile, in.EmployeePct, in.EmployerPct)
	}
	if in.EmployeePct != nil && in.EmployerPct != nil {
		return GetGosiRates(ProfileCustom, in.EmployeePct, in.EmployerPct)
	}
	switch in.Resident {
	case ResidentSaudi:
		return profiles[ProfileSaudiLegacy]
	case ResidentExpat:
		return profiles[ProfileNonSaudi]
	}
	return Rates{}
}

func housingFor(in Input) float64 {
	if in.HousingMode == HousingFixed {
		return in.HousingFixed
	}
	return in.Basic * in.HousingPercent / 100
}

func grossToNet(in Input) Result {
	housing := housingFor(in)
	gross := in.Basic + housing + in.Transport + in.OtherAllowance
	rates := ResolveRates(in)
	wage := CalcContributoryWage(in.Basic, housing)

	m := Figures{
		Gross:             gross,
		InsuranceEmployee: wage * rates.EmployeePct / 100,
		InsuranceEmployer: wage * rates.EmployerPct / 100,
		OtherDeduction:    gross * in.OtherDeductionPct / 100,
		FlatDeduction:     in.FlatDeduction,
	}
	m.Net = gross - m.InsuranceEmployee - m.OtherDeduction - m.FlatDeduction
	m.EmployerCost = gross + m.InsuranceEmployer

	hourly := CalculateHourlyRate(gross, in.MonthDivisor, in.HoursPerDay)
	var otRate float64
	if in.Overtime.Enabled {
		ot := CalculateOvertime(hourly, in.Overtime.Hours, in.Overtime.Multiplier)
		otRate = ot.Rate
		m.Overtime = ot.Amount
	}
	m.GrossWithOvertime = m.Gross + m.Overtime
	m.NetWithOvertime = m.Net + m.Overtime

	return Result{
		Basic:            in.Basic,
		Housing:          housing,
		Transport:        in.Transport,
		OtherAllowance:   in.OtherAllowance,
		ContributoryWage: wage,
		Rates:            rates,
		MonthDivisor:     in.MonthDivisor,
		HoursPerDay:      in.HoursPerDay,
		HourlyRate:       hourly,
		OvertimeRate:     otRate,
		Monthly:          m,
		Yearly:           m.scale(12),
		Daily:            m.scale(1 / in.MonthDivisor),
		Hourly:           m.scale(1 / in.MonthDivisor / in.HoursPerDay),
	}
}

// solveNetToGross finds the basic salary whose net matches TargetNet.
// Net rises monotonically with basic (piecewise linear, with a kink at the
// GOSI cap), so the root is bracketed in [lo, hi] by doubling hi and then
// bisected until the net is within NetTolerance. Allowances and fixed
// housing stay as given. When even a zero basic nets more than the target
// the result is the zero-basic payroll.
func solveNetToGross(in Input) Result {
	target := in.TargetNet
	iterations := 0
	netAt := func(basic float64) Result {
		iterations++
		in.Basic = basic
		return grossToNet(in)
	}

	lo := 0.0
	res := netAt(lo)
	if res.Monthly.Net < target-NetTolerance {
		hi := math.Max(target, 1)
		res = netAt(hi)
		for res.Monthly.Net < target && iterations < maxIterations {
			lo, hi = hi, hi*2
			res = netAt(hi)
		}
		for math.Abs(res.Monthly.Net-target) > NetTolerance && iterations < maxIterations {
			mid := lo + (hi-lo)/2
			res = netAt(mid)
			if res.Monthly.Net < target {
				lo = mid
			} else {
				hi = mid
			}
		}
	}

	res.Mode = ModeNetToGross
	res.TargetNet = target
	res.Iterations = iterations
	return res
}
