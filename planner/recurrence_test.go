package planner_test

import (
	"testing"
	"time"

	"github.com/warp/workforce-engine/planner"
)

func weeklyAssignment(start string) planner.Assignment {
	return planner.Assignment{
		SiteID:    "site-1",
		StartDate: start,
		Schedule:  planner.WeekSchedule{4, 0, 0, 0, 0, 0, 0},
	}
}

func TestIsActive_DateBounds(t *testing.T) {
	// GIVEN: a weekly assignment bounded to January 2024
	// WHEN: checking days before the start and after the end
	// THEN: only days inside the bounds can be active

	a := weeklyAssignment("2024-01-08")
	a.EndDate = "2024-01-21"

	if planner.IsActive(a, planner.NewDate(2024, time.January, 7)) {
		t.Error("day before start should be inactive")
	}
	if !planner.IsActive(a, planner.NewDate(2024, time.January, 8)) {
		t.Error("start date itself should be active")
	}
	if !planner.IsActive(a, planner.NewDate(2024, time.January, 21)) {
		t.Error("end date itself should be active")
	}
	if planner.IsActive(a, planner.NewDate(2024, time.January, 22)) {
		t.Error("day after end should be inactive")
	}
}

func TestIsActive_WeeklyInterval(t *testing.T) {
	// GIVEN: a biweekly assignment starting Monday 2024-01-01
	// WHEN: checking subsequent Mondays
	// THEN: every other calendar week is active

	a := weeklyAssignment("2024-01-01")
	a.Interval = 2

	active := []int{1, 15, 29}
	inactive := []int{8, 22}

	for _, day := range active {
		if !planner.IsActive(a, planner.NewDate(2024, time.January, day)) {
			t.Errorf("2024-01-%02d should be active", day)
		}
	}
	for _, day := range inactive {
		if planner.IsActive(a, planner.NewDate(2024, time.January, day)) {
			t.Errorf("2024-01-%02d should be inactive", day)
		}
	}
}

func TestIsActive_WeeklyInterval_MidWeekStart(t *testing.T) {
	// GIVEN: a biweekly assignment starting on a Wednesday
	// WHEN: checking other days of the same calendar week
	// THEN: the whole Monday-start week of the start date counts as week zero

	a := weeklyAssignment("2024-01-03") // Wednesday
	a.Interval = 2

	// Friday of the same week: diffWeeks = 0.
	if !planner.IsActive(a, planner.NewDate(2024, time.January, 5)) {
		t.Error("same calendar week should be active")
	}
	// Monday of the same week precedes the start date.
	if planner.IsActive(a, planner.NewDate(2024, time.January, 1)) {
		t.Error("days before the start date are inactive even in week zero")
	}
	// The following week is an odd offset.
	if planner.IsActive(a, planner.NewDate(2024, time.January, 10)) {
		t.Error("next calendar week should be inactive for interval 2")
	}
}

func TestIsActive_MonthlyAnchorsToStartWeek(t *testing.T) {
	// GIVEN: a monthly assignment starting 2024-01-08 (week 2 of January)
	//        with no week selector
	// WHEN: checking later months
	// THEN: only days in the same Monday-start week-of-month are active

	a := weeklyAssignment("2024-01-08")
	a.Recurrence = planner.RecurrenceMonthly

	// April 2024 starts on a Monday like January: the second Monday is Apr 8.
	if !planner.IsActive(a, planner.NewDate(2024, time.April, 8)) {
		t.Error("2024-04-08 (week 2) should be active")
	}
	for _, day := range []int{1, 15, 22, 29} {
		if planner.IsActive(a, planner.NewDate(2024, time.April, day)) {
			t.Errorf("2024-04-%02d should be inactive", day)
		}
	}

	// February 2024 starts on a Thursday: its week 2 runs Feb 5-11, so the
	// anchor lands on the FIRST Monday, not the second.
	if !planner.IsActive(a, planner.NewDate(2024, time.February, 5)) {
		t.Error("2024-02-05 (week 2 of February) should be active")
	}
	if planner.IsActive(a, planner.NewDate(2024, time.February, 12)) {
		t.Error("2024-02-12 (week 3 of February) should be inactive")
	}
}

func TestIsActive_MonthlyInterval(t *testing.T) {
	// GIVEN: a quarterly assignment (monthly recurrence, interval 3)
	// WHEN: checking months at various offsets
	// THEN: only multiples of three months from the start qualify

	a := weeklyAssignment("2024-01-08")
	a.Recurrence = planner.RecurrenceMonthly
	a.Interval = 3

	if !planner.IsActive(a, planner.NewDate(2024, time.April, 8)) {
		t.Error("+3 months should be active")
	}
	if planner.IsActive(a, planner.NewDate(2024, time.February, 5)) {
		t.Error("+1 month should be inactive for interval 3")
	}
	if planner.IsActive(a, planner.NewDate(2024, time.March, 4)) {
		t.Error("+2 months should be inactive for interval 3")
	}
}

func TestIsActive_WeekSelector_Blocks(t *testing.T) {
	// GIVEN: a weekly assignment restricted to the 1st and 3rd 7-day blocks
	// WHEN: checking days across a month
	// THEN: only days 1-7 and 15-21 can be active

	a := weeklyAssignment("2024-01-01")
	a.WeekSelector = []string{"1", "3"}

	if !planner.IsActive(a, planner.NewDate(2024, time.January, 1)) {
		t.Error("block 1 should be active")
	}
	if planner.IsActive(a, planner.NewDate(2024, time.January, 8)) {
		t.Error("block 2 should be inactive")
	}
	if !planner.IsActive(a, planner.NewDate(2024, time.January, 15)) {
		t.Error("block 3 should be active")
	}
	if planner.IsActive(a, planner.NewDate(2024, time.January, 22)) {
		t.Error("block 4 should be inactive")
	}
}

func TestIsActive_WeekSelector_Last(t *testing.T) {
	// GIVEN: a weekly assignment restricted to the LAST block of the month
	// WHEN: checking late-January days (31-day month: last block is 25-31)
	// THEN: only the final 7-day block matches

	a := weeklyAssignment("2024-01-01")
	a.WeekSelector = []string{planner.WeekLast}

	if planner.IsActive(a, planner.NewDate(2024, time.January, 24)) {
		t.Error("January 24 is outside the last block")
	}
	if !planner.IsActive(a, planner.NewDate(2024, time.January, 29)) {
		t.Error("January 29 (Monday, last block) should be active")
	}
}

func TestIsActive_MonthlyWithSelector_SkipsAnchor(t *testing.T) {
	// GIVEN: a monthly assignment with an explicit week selector
	// WHEN: checking a day matching the selector but not the start's week
	// THEN: the selector replaces the week-of-month anchor

	a := weeklyAssignment("2024-01-08")
	a.Recurrence = planner.RecurrenceMonthly
	a.WeekSelector = []string{"1"}

	// Start is in week 2, but the selector says block 1.
	if !planner.IsActive(a, planner.NewDate(2024, time.February, 5)) {
		t.Error("block 1 of February should be active via the selector")
	}
	if planner.IsActive(a, planner.NewDate(2024, time.February, 12)) {
		t.Error("block 2 of February should be inactive")
	}
}

func TestIsActive_DefensiveDefaults(t *testing.T) {
	// Malformed dates: never active rather than an error.
	a := weeklyAssignment("not-a-date")
	if planner.IsActive(a, planner.NewDate(2024, time.January, 1)) {
		t.Error("unparseable start date must yield inactive")
	}

	b := weeklyAssignment("2024-01-01")
	b.EndDate = "garbage"
	if planner.IsActive(b, planner.NewDate(2024, time.January, 1)) {
		t.Error("unparseable end date must yield inactive")
	}

	// Non-positive intervals read as 1.
	c := weeklyAssignment("2024-01-01")
	c.Interval = -5
	if !planner.IsActive(c, planner.NewDate(2024, time.January, 8)) {
		t.Error("negative interval should behave as weekly interval 1")
	}

	// Archived assignments never activate.
	d := weeklyAssignment("2024-01-01")
	d.Archived = true
	if planner.IsActive(d, planner.NewDate(2024, time.January, 1)) {
		t.Error("archived assignment must be inactive")
	}
}

func TestIsActive_Idempotent(t *testing.T) {
	// Two identical calls must agree: no hidden state.
	a := weeklyAssignment("2024-01-01")
	a.Interval = 2
	day := planner.NewDate(2024, time.January, 15)

	first := planner.IsActive(a, day)
	second := planner.IsActive(a, day)
	if first != second {
		t.Error("IsActive is not idempotent")
	}
}
