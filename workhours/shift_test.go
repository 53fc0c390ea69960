package workhours_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/labor-engine/workhours"
)

func TestCalcEndTimeLocal(t *testing.T) {
	cases := []struct {
		name   string
		start  string
		hours  float64
		brk    float64
		paid   bool
		expect string
	}{
		{"day shift", "08:00", 8, 0, false, "16:00"},
		{"wraps past midnight", "22:00", 8, 0, false, "06:00"},
		{"24h returns to start", "07:15", 24, 0, false, "07:15"},
		{"fractional hours", "09:00", 7.5, 0, false, "16:30"},
		{"paid break extends", "08:00", 8, 30, true, "16:30"},
		{"unpaid break ignored", "08:00", 8, 30, false, "16:00"},
		{"single digit hour", "7:05", 1, 0, false, "08:05"},
		{"ends exactly at midnight", "16:00", 8, 0, false, "00:00"},
		{"empty start", "", 8, 0, false, workhours.InvalidTime},
		{"garbage", "abc", 8, 0, false, workhours.InvalidTime},
		{"hour out of range", "24:00", 1, 0, false, workhours.InvalidTime},
		{"minute out of range", "10:60", 1, 0, false, workhours.InvalidTime},
		{"missing minutes", "10:", 1, 0, false, workhours.InvalidTime},
		{"signed hour", "+8:00", 1, 0, false, workhours.InvalidTime},
		{"negative hour", "-0:30", 1, 0, false, workhours.InvalidTime},
		{"signed minute", "08:+5", 1, 0, false, workhours.InvalidTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, workhours.CalcEndTimeLocal(tc.start, tc.hours, tc.brk, tc.paid))
		})
	}
}

func TestCalculate(t *testing.T) {
	res := workhours.Calculate(workhours.ShiftInput{Start: "20:30", Hours: 9, BreakMinutes: 45, BreakIsPaid: true})
	assert.Equal(t, workhours.ShiftResult{EndTime: "06:15", TotalMinutes: 585, CrossesMidnight: true, Valid: true}, res)

	res = workhours.Calculate(workhours.ShiftInput{Start: "nope", Hours: 9})
	assert.False(t, res.Valid)
	assert.Equal(t, workhours.InvalidTime, res.EndTime)
}

func TestFormatHHmm_NegativeWraps(t *testing.T) {
	assert.Equal(t, "23:30", workhours.FormatHHmm(-30))
	assert.Equal(t, "00:05", workhours.FormatHHmm(1445))
}

func TestNowHHmm(t *testing.T) {
	now := workhours.NowHHmm()
	minutes, ok := workhours.ParseHHmm(now)
	assert.True(t, ok, now)
	assert.Len(t, now, 5)
	assert.True(t, minutes >= 0 && minutes < 24*60)
}
