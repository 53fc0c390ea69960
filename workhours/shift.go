// Package workhours does shift end-time arithmetic on HH:mm wall-clock times.
package workhours

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// InvalidTime is returned in place of an end time when the start time
// cannot be parsed.
const InvalidTime = "--:--"

const minutesPerDay = 24 * 60

// ShiftInput describes one shift.
type ShiftInput struct {
	Start        string  // HH:mm
	Hours        float64 // fractional hours allowed
	BreakMinutes float64
	BreakIsPaid  bool
}

// ShiftResult is the computed end of a shift.
type ShiftResult struct {
	EndTime         string // HH:mm, or InvalidTime
	TotalMinutes    int    // minutes added to the start time
	CrossesMidnight bool
	Valid           bool
}

// ParseHHmm parses "H:mm" or "HH:mm" into minutes after midnight.
func ParseHHmm(s string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 || !digits(h) || !digits(m) {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// digits reports whether s is made of ASCII digits only; Atoi alone
// would accept a sign.
func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatHHmm formats minutes after midnight, wrapping into [00:00, 23:59].
func FormatHHmm(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Calculate adds the shift length to the start time. Only a paid break
// moves the end time: total = hours*60 + (paid ? break : 0).
func Calculate(in ShiftInput) ShiftResult {
	start, ok := ParseHHmm(in.Start)
	if !ok {
		return ShiftResult{EndTime: InvalidTime}
	}
	total := int(math.Round(in.Hours * 60))
	if in.BreakIsPaid {
		total += int(math.Round(in.BreakMinutes))
	}
	return ShiftResult{
		EndTime:         FormatHHmm(start + total),
		TotalMinutes:    total,
		CrossesMidnight: start+total >= minutesPerDay,
		Valid:           true,
	}
}

// CalcEndTimeLocal returns the HH:mm end of a shift, wrapping past midnight,
// or InvalidTime when start is empty or malformed.
func CalcEndTimeLocal(start string, hours, breakMinutes float64, breakIsPaid bool) string {
	return Calculate(ShiftInput{
		Start:        start,
		Hours:        hours,
		BreakMinutes: breakMinutes,
		BreakIsPaid:  breakIsPaid,
	}).EndTime
}

// NowHHmm is the current local wall-clock time.
func NowHHmm() string {
	return time.Now().Format("15:04")
}
