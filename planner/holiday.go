package planner

import "time"

// =============================================================================
// HOLIDAY RESOLVER - Italian public holidays
// =============================================================================

// Holiday is a public holiday with its display name.
type Holiday struct {
	Date Date
	Name string
}

var fixedHolidays = []struct {
	Month time.Month
	Day   int
	Name  string
}{
	{time.January, 1, "Capodanno"},
	{time.January, 6, "Epifania"},
	{time.April, 25, "Liberazione"},
	{time.May, 1, "Festa Lavoro"},
	{time.June, 2, "Repubblica"},
	{time.August, 15, "Ferragosto"},
	{time.November, 1, "Ognissanti"},
	{time.December, 8, "Immacolata"},
	{time.December, 25, "Natale"},
	{time.December, 26, "S. Stefano"},
}

// EasterSunday computes the Gregorian Easter date for any year using the
// Gauss algorithm.
func EasterSunday(year int) Date {
	g := year % 19
	c := year / 100
	h := (c - c/4 - (8*c+13)/25 + 19*g + 15) % 30
	i := h - (h/28)*(1-(29/(h+1))*((21-g)/11))
	j := (year + year/4 + i + 2 - c + c/4) % 7
	l := i - j
	month := 3 + (l+40)/44
	day := l + 28 - 31*(month/4)
	return NewDate(year, time.Month(month), day)
}

// HolidaysForYear returns all public holidays of the year: the ten fixed
// national dates plus Easter Sunday and Easter Monday. Pure function of year.
func HolidaysForYear(year int) []Holiday {
	holidays := make([]Holiday, 0, len(fixedHolidays)+2)
	for _, f := range fixedHolidays {
		holidays = append(holidays, Holiday{Date: NewDate(year, f.Month, f.Day), Name: f.Name})
	}
	easter := EasterSunday(year)
	holidays = append(holidays,
		Holiday{Date: easter, Name: "Pasqua"},
		Holiday{Date: easter.AddDays(1), Name: "Pasquetta"},
	)
	return holidays
}

// IsHoliday reports whether the date is a public holiday, and its name.
func IsHoliday(d Date) (bool, string) {
	for _, h := range HolidaysForYear(d.Year()) {
		if h.Date.Equal(d) {
			return true, h.Name
		}
	}
	return false, ""
}
