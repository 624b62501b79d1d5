package billing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseCycleMonth(t *testing.T) {
	m, err := ParseCycleMonth("2024-03")
	if err != nil {
		t.Fatalf("parse cycle month: %v", err)
	}
	if m.Year != 2024 || m.Month != time.March {
		t.Fatalf("expected 2024-03, got %+v", m)
	}
	if m.String() != "2024-03" {
		t.Fatalf("expected string 2024-03, got %s", m.String())
	}

	for _, bad := range []string{"", "2024", "2024-13", "march", "2024-3"} {
		if _, err := ParseCycleMonth(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestComputeCycle(t *testing.T) {
	cases := []struct {
		name       string
		closingDay int
		dueDay     int
		month      CycleMonth
		wantStart  time.Time
		wantEnd    time.Time
		wantDue    time.Time
	}{
		{
			name:       "mid-year cycle",
			closingDay: 10, dueDay: 20,
			month:     CycleMonth{2024, time.March},
			wantStart: date(2024, time.February, 11),
			wantEnd:   date(2024, time.March, 10),
			wantDue:   date(2024, time.April, 20),
		},
		{
			name:       "january rolls start into previous year",
			closingDay: 10, dueDay: 15,
			month:     CycleMonth{2024, time.January},
			wantStart: date(2023, time.December, 11),
			wantEnd:   date(2024, time.January, 10),
			wantDue:   date(2024, time.February, 15),
		},
		{
			name:       "december rolls due into next year",
			closingDay: 25, dueDay: 5,
			month:     CycleMonth{2023, time.December},
			wantStart: date(2023, time.November, 26),
			wantEnd:   date(2023, time.December, 25),
			wantDue:   date(2024, time.January, 5),
		},
		{
			name:       "closing on last day of month",
			closingDay: 31, dueDay: 10,
			month:     CycleMonth{2024, time.January},
			wantStart: date(2024, time.January, 1), // Dec 32 normalizes to Jan 1
			wantEnd:   date(2024, time.January, 31),
			wantDue:   date(2024, time.February, 10),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeCycle(tc.closingDay, tc.dueDay, tc.month)
			if !got.Start.Equal(tc.wantStart) {
				t.Errorf("start: expected %s, got %s", tc.wantStart, got.Start)
			}
			if !got.End.Equal(tc.wantEnd) {
				t.Errorf("end: expected %s, got %s", tc.wantEnd, got.End)
			}
			if !got.DueDate.Equal(tc.wantDue) {
				t.Errorf("due: expected %s, got %s", tc.wantDue, got.DueDate)
			}
		})
	}
}

func TestComputeCycleOrderingProperty(t *testing.T) {
	// For every sane day pair the cycle must be strictly ordered and end
	// inside the requested month.
	for _, month := range []CycleMonth{
		{2023, time.December},
		{2024, time.January},
		{2024, time.February},
		{2024, time.June},
	} {
		for closingDay := 1; closingDay <= 28; closingDay++ {
			for dueDay := 1; dueDay <= 28; dueDay++ {
				c := ComputeCycle(closingDay, dueDay, month)
				if !c.Start.Before(c.End) {
					t.Fatalf("closing=%d due=%d month=%s: start %s not before end %s",
						closingDay, dueDay, month, c.Start, c.End)
				}
				if !c.End.Before(c.DueDate) {
					t.Fatalf("closing=%d due=%d month=%s: end %s not before due %s",
						closingDay, dueDay, month, c.End, c.DueDate)
				}
				if c.End.Year() != month.Year || c.End.Month() != month.Month {
					t.Fatalf("closing=%d due=%d: end %s outside cycle month %s",
						closingDay, dueDay, c.End, month)
				}
			}
		}
	}
}
