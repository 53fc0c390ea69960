package payroll

// OvertimePay is the uplifted hourly rate and the resulting amount.
type OvertimePay struct {
	Rate   float64
	Amount float64
}

// CalculateHourlyRate is monthlyGross / monthDivisor / hoursPerDay.
// Zero divisors yield zero rather than Inf.
func CalculateHourlyRate(monthlyGross, monthDivisor, hoursPerDay float64) float64 {
	if monthDivisor == 0 || hoursPerDay == 0 {
		return 0
	}
	return monthlyGross / monthDivisor / hoursPerDay
}

// CalculateOvertime applies the multiplier (1.5 under Article 107) to the
// hourly rate and multiplies by the hours worked.
func CalculateOvertime(hourlyRate, hours, multiplier float64) OvertimePay {
	rate := hourlyRate * multiplier
	return OvertimePay{Rate: rate, Amount: rate * hours}
}
