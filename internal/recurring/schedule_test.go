package recurring

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDate(t *testing.T) {
	cases := []struct {
		name      string
		after     time.Time
		freq      Frequency
		targetDay int
		want      time.Time
	}{
		{"weekly", date(2024, time.January, 5), FrequencyWeekly, 5, date(2024, time.January, 12)},
		{"weekly crosses month", date(2024, time.January, 29), FrequencyWeekly, 29, date(2024, time.February, 5)},
		{"monthly plain", date(2024, time.January, 5), FrequencyMonthly, 5, date(2024, time.February, 5)},
		{"monthly clamps to leap february", date(2024, time.January, 31), FrequencyMonthly, 31, date(2024, time.February, 29)},
		{"monthly clamps to short february", date(2023, time.January, 31), FrequencyMonthly, 31, date(2023, time.February, 28)},
		{"monthly clamps thirty day month", date(2024, time.March, 31), FrequencyMonthly, 31, date(2024, time.April, 30)},
		{"monthly recovers after clamp", date(2024, time.February, 29), FrequencyMonthly, 31, date(2024, time.March, 31)},
		{"monthly december rollover", date(2023, time.December, 15), FrequencyMonthly, 15, date(2024, time.January, 15)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDate(tc.after, tc.freq, tc.targetDay)
			if !got.Equal(tc.want) {
				t.Errorf("expected %s, got %s", tc.want.Format("2006-01-02"), got.Format("2006-01-02"))
			}
		})
	}
}

func TestFrequencyIsValid(t *testing.T) {
	if !FrequencyWeekly.IsValid() || !FrequencyMonthly.IsValid() {
		t.Error("weekly and monthly must be valid")
	}
	for _, bad := range []Frequency{"", "daily", "yearly", "Weekly"} {
		if bad.IsValid() {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.March, 5, 17, 45, 12, 999, time.FixedZone("X", 3*3600))
	got := DateOnly(in)
	if !got.Equal(date(2024, time.March, 5)) {
		t.Errorf("expected 2024-03-05 UTC midnight, got %s", got)
	}
}
