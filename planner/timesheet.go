package planner

import (
	"fmt"
	"time"
)

// =============================================================================
// TIME DETAILS - Derive an hour value from clock times
// =============================================================================

// HoursFromTimeDetails derives a worked-hour value from clock-in/out and an
// optional break window. This is the convenience calculator behind the
// fine-grained time entry form; the resulting value is what aggregation sees,
// the clock times themselves are carried along for display only.
func HoursFromTimeDetails(td TimeDetails) (float64, error) {
	worked, err := clockSpan(td.Start, td.End)
	if err != nil {
		return 0, err
	}

	if td.BreakStart != "" || td.BreakEnd != "" {
		pause, err := clockSpan(td.BreakStart, td.BreakEnd)
		if err != nil {
			return 0, err
		}
		worked -= pause
	}

	if worked < 0 {
		return 0, fmt.Errorf("%w: negative duration", ErrInvalidTimeDetails)
	}
	return Round2(worked.Hours()), nil
}

func clockSpan(start, end string) (time.Duration, error) {
	from, err := time.Parse("15:04", start)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeDetails, start)
	}
	to, err := time.Parse("15:04", end)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeDetails, end)
	}
	span := to.Sub(from)
	if span < 0 {
		// Over-midnight shifts wrap to the next day.
		span += 24 * time.Hour
	}
	return span, nil
}
