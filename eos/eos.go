/*
Package eos computes end-of-service awards under Saudi Labor Law
Articles 84 and 85.

ALGORITHM:
  1. Tenure: calendar.ServicePeriod (end date counted as worked) turned into
     years + months/12 + days/360.
  2. Base: basic salary, plus housing when BaseType is basic_plus_housing.
  3. Raw months: 0.5 per year for the first five years, 1 per year after.
  4. FinalEOS = RawMonths * Base * Factor.
  5. LeaveEncash = LeaveDays * Base / MonthDivisor.
  6. Total = FinalEOS + LeaveEncash + Extras - Deductions.

TRANCHES:
  Tranches report the two accrual bands at full value. The Article 85 factor
  is applied to the combined figure only, so
  First5YearsAmount + After5YearsAmount == FinalEOS only when Factor == 1.

EXAMPLE:
  res := eos.Calculate(eos.Input{
      Start:     time.Date(2022, 11, 2, 0, 0, 0, 0, time.UTC),
      End:       time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
      Basic:     10000,
      Cause:     eos.CauseTermination,
      LeaveDays: 13,
  })
  // res.FinalEOS ~ 12208.33, res.LeaveEncash ~ 4333.33
*/
package eos

import (
	"math"
	"time"

	"github.com/warp/labor-engine/calendar"
)

type BaseType string

const (
	BaseBasic            BaseType = "basic"
	BaseBasicPlusHousing BaseType = "basic_plus_housing"
)

type HousingMode string

const (
	HousingPercent HousingMode = "percent"
	HousingFixed   HousingMode = "fixed"
)

const (
	DefaultMonthDivisor = 30.0

	firstTrancheYears  = 5.0
	firstTrancheRate   = 0.5 // months per year
	laterTrancheRate   = 1.0
	daysPerServiceYear = 360.0
)

type Input struct {
	Start time.Time
	End   time.Time

	Basic          float64
	HousingMode    HousingMode // empty means percent
	HousingPercent float64
	HousingFixed   float64
	BaseType       BaseType // empty means basic

	Cause        Cause
	LeaveDays    float64
	MonthDivisor float64 // default 30
	Extras       float64
	Deductions   float64
}

// Tranches splits the raw award into the two accrual bands. Amounts are
// NOT multiplied by the factor.
type Tranches struct {
	First5YearsMonths float64
	First5YearsAmount float64
	After5YearsMonths float64
	After5YearsAmount float64
}

type Result struct {
	Article     Article
	Service     calendar.Breakdown
	TenureYears float64
	Housing     float64
	EOSBase     float64
	RawMonths   float64
	Factor      float64
	FinalEOS    float64
	LeaveEncash float64
	Extras      float64
	Deductions  float64
	Total       float64
	Breakdown   Tranches
}

// TenureYears converts a service breakdown into fractional years.
func TenureYears(b calendar.Breakdown) float64 {
	return float64(b.Years) + float64(b.Months)/12 + float64(b.Days)/daysPerServiceYear
}

// RawMonths is the unfactored award in months of base wage.
func RawMonths(tenureYears float64) float64 {
	if tenureYears <= 0 {
		return 0
	}
	first := math.Min(tenureYears, firstTrancheYears)
	after := math.Max(tenureYears-firstTrancheYears, 0)
	return first*firstTrancheRate + after*laterTrancheRate
}

// Calculate computes the award for one separation.
func Calculate(in Input) Result {
	divisor := in.MonthDivisor
	if divisor == 0 {
		divisor = DefaultMonthDivisor
	}

	service := calendar.ServicePeriod(in.Start, in.End)
	tenure := TenureYears(service)
	article := ArticleFor(in.Cause)
	factor := FactorFor(article, tenure)

	housing := in.HousingFixed
	if in.HousingMode != HousingFixed {
		housing = in.Basic * in.HousingPercent / 100
	}
	base := in.Basic
	if in.BaseType == BaseBasicPlusHousing {
		base += housing
	}

	firstMonths := math.Min(tenure, firstTrancheYears) * firstTrancheRate
	afterMonths := math.Max(tenure-firstTrancheYears, 0) * laterTrancheRate
	raw := RawMonths(tenure)

	res := Result{
		Article:     article,
		Service:     service,
		TenureYears: tenure,
		Housing:     housing,
		EOSBase:     base,
		RawMonths:   raw,
		Factor:      factor,
		FinalEOS:    raw * base * factor,
		LeaveEncash: in.LeaveDays * (base / divisor),
		Extras:      in.Extras,
		Deductions:  in.Deductions,
		Breakdown: Tranches{
			First5YearsMonths: firstMonths,
			First5YearsAmount: firstMonths * base,
			After5YearsMonths: afterMonths,
			After5YearsAmount: afterMonths * base,
		},
	}
	res.Total = res.FinalEOS + res.LeaveEncash + res.Extras - res.Deductions
	return res
}
