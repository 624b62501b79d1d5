package billing

import (
	"fmt"
	"time"
)

// CycleMonth is a calendar month in "YYYY-MM" form.
type CycleMonth struct {
	Year  int
	Month time.Month
}

func ParseCycleMonth(s string) (CycleMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return CycleMonth{}, fmt.Errorf("invalid cycle month %q: %w", s, err)
	}
	return CycleMonth{Year: t.Year(), Month: t.Month()}, nil
}

func (m CycleMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Cycle is one billing window of a credit card. Start and End are
// inclusive calendar dates; DueDate falls in the month after End.
type Cycle struct {
	Start   time.Time
	End     time.Time
	DueDate time.Time
}

// ComputeCycle derives the billing window for a card in the given month:
// the cycle ends on the closing day of the month, starts the day after
// the previous month's closing day, and is due on the due day of the
// following month. time.Date normalizes month arithmetic, so year
// rollover (January cycles starting in December) falls out of the
// normalization. Closing and due day are taken as-is; the 1-31 range is
// validated at entry and months shorter than the requested day keep the
// native overflow behavior.
func ComputeCycle(closingDay, dueDay int, month CycleMonth) Cycle {
	return Cycle{
		Start:   time.Date(month.Year, month.Month-1, closingDay+1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(month.Year, month.Month, closingDay, 0, 0, 0, 0, time.UTC),
		DueDate: time.Date(month.Year, month.Month+1, dueDay, 0, 0, 0, 0, time.UTC),
	}
}
