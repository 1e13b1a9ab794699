package planner_test

import (
	"testing"
	"time"

	"github.com/warp/workforce-engine/planner"
)

func TestEasterSunday_KnownYears(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2000, time.April, 23},
		{2016, time.March, 27},
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2030, time.April, 21},
		{2038, time.April, 25}, // latest possible Easter
	}

	for _, c := range cases {
		got := planner.EasterSunday(c.year)
		want := planner.NewDate(c.year, c.month, c.day)
		if !got.Equal(want) {
			t.Errorf("EasterSunday(%d) = %s, want %s", c.year, got, want)
		}
	}
}

func TestHolidaysForYear_ContainsEasterAndMonday(t *testing.T) {
	holidays := planner.HolidaysForYear(2025)

	byName := map[string]planner.Date{}
	for _, h := range holidays {
		byName[h.Name] = h.Date
	}

	if got := byName["Pasqua"]; !got.Equal(planner.NewDate(2025, time.April, 20)) {
		t.Errorf("Pasqua 2025 = %s, want 2025-04-20", got)
	}
	if got := byName["Pasquetta"]; !got.Equal(planner.NewDate(2025, time.April, 21)) {
		t.Errorf("Pasquetta 2025 = %s, want 2025-04-21", got)
	}
	if len(holidays) != 12 {
		t.Errorf("expected 12 holidays, got %d", len(holidays))
	}
}

func TestIsHoliday(t *testing.T) {
	cases := []struct {
		date    planner.Date
		holiday bool
		name    string
	}{
		{planner.NewDate(2025, time.December, 25), true, "Natale"},
		{planner.NewDate(2025, time.December, 26), true, "S. Stefano"},
		{planner.NewDate(2025, time.January, 1), true, "Capodanno"},
		{planner.NewDate(2025, time.August, 15), true, "Ferragosto"},
		{planner.NewDate(2024, time.April, 1), true, "Pasquetta"},
		{planner.NewDate(2025, time.December, 24), false, ""},
		{planner.NewDate(2025, time.March, 17), false, ""},
	}

	for _, c := range cases {
		holiday, name := planner.IsHoliday(c.date)
		if holiday != c.holiday || name != c.name {
			t.Errorf("IsHoliday(%s) = (%v, %q), want (%v, %q)", c.date, holiday, name, c.holiday, c.name)
		}
	}
}
