package recurring

import "time"

type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	return f == FrequencyWeekly || f == FrequencyMonthly
}

// NextDate advances a schedule one step past the given date. Weekly moves
// seven days forward. Monthly moves to targetDay of the following month,
// clamped to that month's length (day 31 in a 30-day month becomes day 30);
// because the clamp is recomputed from targetDay each step, a schedule
// that clamps in February returns to day 31 in March.
func NextDate(after time.Time, freq Frequency, targetDay int) time.Time {
	if freq == FrequencyWeekly {
		return after.AddDate(0, 0, 7)
	}

	year, month, _ := after.Date()
	next := month + 1
	day := targetDay
	if last := daysInMonth(year, next); day > last {
		day = last
	}
	return time.Date(year, next, day, 0, 0, 0, 0, after.Location())
}

// daysInMonth handles month overflow through time.Date normalization: the
// zeroth day of the following month is the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOnly truncates a time to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
