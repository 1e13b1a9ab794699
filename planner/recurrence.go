/*
recurrence.go - Assignment activation rules

PURPOSE:
  Decides whether a recurring assignment is active on a target day. This is
  the heart of the scheduling engine: weekly and monthly intervals, optional
  week-of-month selectors, and date-range bounding all combine here.

EVALUATION ORDER (short-circuit on the first failing condition):
  1. Target before the start date          -> inactive
  2. Target after the end date (if set)    -> inactive
  3. Week selector present and unmatched   -> inactive
  4. Interval test:
     WEEKLY:  Monday-start calendar-week difference from the start date must
              be a non-negative multiple of the interval.
     MONTHLY: calendar-month difference must be a non-negative multiple of
              the interval; with no selector the target must also fall in the
              same Monday-start week-of-month as the start date (a monthly
              recurrence anchors to its start week unless a selector says
              otherwise).

WEEK SELECTORS:
  "1".."4" match the Nth 7-day block of the month (ceil(day/7), plain blocks,
  not calendar weeks). "LAST" matches the final 7-day block: the same weekday
  one week later lands in the next month. LAST and the monthly week-of-month
  anchor are alternative filters, never combined arithmetically.

DEFENSIVE DEFAULTS:
  Unparseable start or end dates make the assignment never active. Intervals
  below 1 read as 1. Archived assignments are filtered by callers before
  evaluation; IsActive itself also refuses them so a stray archived record
  can never contribute hours.
*/
package planner

import "strconv"

// IsActive reports whether the assignment is active on the target day.
func IsActive(a Assignment, target Date) bool {
	if a.Archived {
		return false
	}

	start, err := ParseDate(a.StartDate)
	if err != nil {
		return false
	}
	if target.Before(start) {
		return false
	}
	if a.EndDate != "" {
		end, err := ParseDate(a.EndDate)
		if err != nil {
			return false
		}
		if target.After(end) {
			return false
		}
	}

	if len(a.WeekSelector) > 0 && !matchesWeekSelector(a.WeekSelector, target) {
		return false
	}

	interval := a.EffectiveInterval()

	switch a.EffectiveRecurrence() {
	case RecurrenceMonthly:
		diffMonths := DiffCalendarMonths(start, target)
		if diffMonths < 0 || diffMonths%interval != 0 {
			return false
		}
		if len(a.WeekSelector) == 0 {
			// Anchor to the same week-of-month as the start date.
			return start.WeekOfMonth() == target.WeekOfMonth()
		}
		return true

	default: // WEEKLY
		diffWeeks := DiffCalendarWeeks(start, target)
		return diffWeeks >= 0 && diffWeeks%interval == 0
	}
}

func matchesWeekSelector(selector []string, target Date) bool {
	block := strconv.Itoa(target.WeekBlockOfMonth())
	for _, tag := range selector {
		if tag == block {
			return true
		}
		if tag == WeekLast && target.InLastWeekBlock() {
			return true
		}
	}
	return false
}
