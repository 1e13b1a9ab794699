/*
Package planner implements the scheduling and payroll-adjacent core of a
cleaning-services workforce manager.

PURPOSE:
  Given employees, their recurring site assignments, and a month of
  attendance overrides, the planner answers three questions:
  - Which assignments are active on a given day, and for how many hours?
  - How do vacation/sickness/permit/overtime overrides reshape that day?
  - What are the monthly worked/contract totals, the pay differential,
    and the travel/fuel/expenses reimbursement split?

KEY CONCEPTS IN THIS FILE (types.go):
  - Site: A client location ("cantiere") referenced by assignments
  - Employee: Owns its assignments, a weekly contract template, and rates
  - Assignment: A recurring weekly/monthly schedule bound to one site
  - AttendanceRecord: A per-day override typed FERIE/MALATTIA/PERMESSO/...
  - MonthlyData: The per-month document of overrides, splits, extra jobs
  - SplitConfig: How a monetary total is apportioned across three buckets

DESIGN PRINCIPLES:
  1. Purity: every computation is a function of its explicit inputs
  2. Precision: money uses decimal.Decimal; hours round only at totals
  3. Defensiveness: malformed schedule data degrades, never panics

SEE ALSO:
  - recurrence.go: Assignment activation rules
  - hours.go: Daily standard hours and override merging
  - month.go: Monthly aggregation and differential value
  - split.go: Reimbursement apportionment
*/
package planner

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SITE - Client location
// =============================================================================

// SiteCategory tags a site for dashboard grouping.
type SiteCategory string

const (
	CategoryCondominio SiteCategory = "Condominio"
	CategoryAzienda    SiteCategory = "Azienda"
	CategoryRistorante SiteCategory = "Ristorante"
	CategoryScuola     SiteCategory = "Scuola"
	CategoryFarmacia   SiteCategory = "Farmacia"
	CategoryPrivato    SiteCategory = "Privato"
)

// Site is a client location. Identity is immutable; attributes are not.
// Deleting a site cascades removal of every assignment referencing it.
type Site struct {
	ID                string
	Name              string
	Address           string
	City              string
	NetMonthlyRevenue decimal.Decimal
	Category          SiteCategory
}

// =============================================================================
// SCHEDULES - Hours per weekday, Monday through Sunday
// =============================================================================

// WeekSchedule holds hours per weekday, indexed by Date.WeekdayIndex
// (0=Monday .. 6=Sunday).
type WeekSchedule [7]float64

// Total returns the weekly hour sum.
func (s WeekSchedule) Total() float64 {
	var total float64
	for _, h := range s {
		total += h
	}
	return total
}

// IsZero reports whether no weekday carries hours.
func (s WeekSchedule) IsZero() bool { return s.Total() == 0 }

// =============================================================================
// ASSIGNMENT - Recurring work at one site
// =============================================================================

type AssignmentType string

const (
	// AssignmentHourly contributes schedule hours priced at the employee rate.
	AssignmentHourly AssignmentType = "HOURLY"
	// AssignmentForfait contributes a fixed monthly amount and is excluded
	// from every hour sum.
	AssignmentForfait AssignmentType = "FORFAIT"
)

type RecurrenceType string

const (
	RecurrenceWeekly  RecurrenceType = "WEEKLY"
	RecurrenceMonthly RecurrenceType = "MONTHLY"
)

// WeekLast is the week-selector tag matching the final 7-day block of a month.
const WeekLast = "LAST"

// Assignment binds an employee to a site on a recurring schedule. The site
// reference is weak: a dangling SiteID is rendered as "unknown site" by
// consumers and never dereferenced by the core.
type Assignment struct {
	SiteID string

	// StartDate is the inclusive ISO lower bound (required). EndDate is the
	// inclusive upper bound; empty means open-ended. Unparseable values make
	// the assignment never active.
	StartDate string
	EndDate   string

	Schedule WeekSchedule

	Type          AssignmentType  // empty defaults to HOURLY
	ForfaitAmount decimal.Decimal // meaningful only for FORFAIT

	Recurrence   RecurrenceType // empty defaults to WEEKLY
	Interval     int            // every N weeks/months; values < 1 read as 1
	WeekSelector []string       // "1".."4" and/or WeekLast; empty = every week

	Note string

	// Archived assignments are hidden from active-schedule views and skipped
	// by all computations, but retained for history.
	Archived bool
}

// EffectiveType normalizes the empty default.
func (a Assignment) EffectiveType() AssignmentType {
	if a.Type == "" {
		return AssignmentHourly
	}
	return a.Type
}

// EffectiveRecurrence normalizes the empty default.
func (a Assignment) EffectiveRecurrence() RecurrenceType {
	if a.Recurrence == "" {
		return RecurrenceWeekly
	}
	return a.Recurrence
}

// EffectiveInterval clamps non-positive intervals to 1.
func (a Assignment) EffectiveInterval() int {
	if a.Interval < 1 {
		return 1
	}
	return a.Interval
}

// DateRangeActive is the simple bounds check used for forfait amounts and
// dashboard contract counts: start/end window only, no recurrence walk.
// Unparseable dates make the assignment inactive.
func (a Assignment) DateRangeActive(on Date) bool {
	start, err := ParseDate(a.StartDate)
	if err != nil {
		return false
	}
	if on.Before(start) {
		return false
	}
	if a.EndDate != "" {
		end, err := ParseDate(a.EndDate)
		if err != nil {
			return false
		}
		if on.After(end) {
			return false
		}
	}
	return true
}

// =============================================================================
// EMPLOYEE
// =============================================================================

type TargetMode string

const (
	TargetNet   TargetMode = "NET"
	TargetGross TargetMode = "GROSS"
)

// Employee owns its assignments exclusively; assignments are never shared.
type Employee struct {
	ID        string
	FirstName string
	LastName  string

	// ContractHours is the flat weekly template used as the contract baseline
	// and as the daily fallback when the employee has no assignments at all.
	ContractHours WeekSchedule

	HourlyRate   decimal.Decimal
	TargetSalary decimal.Decimal
	TargetMode   TargetMode // empty defaults to NET

	// ShowInAllowances toggles visibility on the allowance sheet. The zero
	// value of the pointer-free flag must default to visible, so the field
	// stores the negation.
	HiddenFromAllowances bool

	Assignments []Assignment

	Split *SplitConfig
}

// FullName renders "First Last".
func (e Employee) FullName() string { return e.FirstName + " " + e.LastName }

// EffectiveTargetMode normalizes the empty default.
func (e Employee) EffectiveTargetMode() TargetMode {
	if e.TargetMode == "" {
		return TargetNet
	}
	return e.TargetMode
}

// ActiveAssignments returns the non-archived assignments.
func (e Employee) ActiveAssignments() []Assignment {
	var out []Assignment
	for _, a := range e.Assignments {
		if !a.Archived {
			out = append(out, a)
		}
	}
	return out
}

// =============================================================================
// SPLIT CONFIG - Reimbursement apportionment rules
// =============================================================================

type SplitMode string

const (
	SplitNone      SplitMode = "NONE"
	SplitFixed     SplitMode = "FIXED"
	SplitPercent   SplitMode = "PERCENT"
	SplitRemainder SplitMode = "REMAINDER"
)

// SplitRule is one (mode, value) pair. Value is an amount for FIXED and a
// percentage of the gross total for PERCENT; it is ignored for NONE and
// REMAINDER.
type SplitRule struct {
	Mode  SplitMode
	Value decimal.Decimal
}

// SplitConfig configures the three reimbursement categories. Categories are
// always evaluated in travel, fuel, expenses order.
type SplitConfig struct {
	Travel   SplitRule
	Fuel     SplitRule
	Expenses SplitRule
}

// MonthlySplit is the apportionment result.
type MonthlySplit struct {
	Travel   decimal.Decimal
	Fuel     decimal.Decimal
	Expenses decimal.Decimal
}

// Total returns travel+fuel+expenses.
func (s MonthlySplit) Total() decimal.Decimal {
	return s.Travel.Add(s.Fuel).Add(s.Expenses)
}

// =============================================================================
// ATTENDANCE - Per-day overrides
// =============================================================================

type AttendanceType string

const (
	AttendanceWork          AttendanceType = "WORK"
	AttendanceFerie         AttendanceType = "FERIE"         // vacation
	AttendanceMalattia      AttendanceType = "MALATTIA"      // sickness
	AttendancePermesso      AttendanceType = "PERMESSO"      // permit hours
	AttendanceStraordinario AttendanceType = "STRAORDINARIO" // overtime hours
	AttendanceAssenza       AttendanceType = "ASSENZA"       // unjustified absence
)

// TimeDetails are optional clock times a user can enter instead of a raw hour
// value. They only exist to derive AttendanceRecord.Value (see timesheet.go)
// and play no part in aggregation.
type TimeDetails struct {
	Start      string // "HH:MM"
	End        string
	BreakStart string
	BreakEnd   string
}

// AttendanceRecord overrides one (employee, day) cell of the monthly sheet.
// An absent record means the day uses the computed standard hours as WORK.
type AttendanceRecord struct {
	Type        AttendanceType
	Value       float64
	TimeDetails *TimeDetails
}

// =============================================================================
// EXTRA JOBS - Ad-hoc monetary line items
// =============================================================================

// ExtraJob is a one-off or recurring monetary line item. The per-day hour map
// is informational: it is shown on the sheet but never feeds the hour
// differential.
type ExtraJob struct {
	ID          string
	Description string
	Value       decimal.Decimal
	Hours       map[int]float64 // day of month (1-31) -> hours

	// Locked jobs recur automatically in every month from StartMonth
	// ("YYYY-MM") onward until unlocked.
	Locked     bool
	StartMonth string
}

// HourTotal sums the informational hour map.
func (j ExtraJob) HourTotal() float64 {
	var total float64
	for _, h := range j.Hours {
		total += h
	}
	return total
}

// VisibleIn reports whether a locked recurring job applies to the given
// "YYYY-MM" month key.
func (j ExtraJob) VisibleIn(monthKey string) bool {
	return j.StartMonth == "" || j.StartMonth <= monthKey
}

// =============================================================================
// MONTHLY DATA - The per-month override document
// =============================================================================

// OverrideKey builds the "{employeeID}-{day}" key overrides are stored under.
func OverrideKey(employeeID string, day int) string {
	return fmt.Sprintf("%s-%d", employeeID, day)
}

// MonthlyData is the document persisted per "YYYY-MM". Every map is keyed by
// employee ID except Overrides and Notes, which use OverrideKey. Per-month
// salary targets and modes override the employee defaults for that month only.
type MonthlyData struct {
	Overrides    map[string]AttendanceRecord
	Notes        map[string]string
	Splits       map[string]MonthlySplit
	ExtraJobs    map[string][]ExtraJob
	SalaryTarget map[string]decimal.Decimal
	SalaryMode   map[string]TargetMode
}

// NewMonthlyData returns an empty document with all maps allocated.
func NewMonthlyData() *MonthlyData {
	return &MonthlyData{
		Overrides:    map[string]AttendanceRecord{},
		Notes:        map[string]string{},
		Splits:       map[string]MonthlySplit{},
		ExtraJobs:    map[string][]ExtraJob{},
		SalaryTarget: map[string]decimal.Decimal{},
		SalaryMode:   map[string]TargetMode{},
	}
}

// Override returns the record for (employeeID, day), if any.
func (m *MonthlyData) Override(employeeID string, day int) (AttendanceRecord, bool) {
	if m == nil || m.Overrides == nil {
		return AttendanceRecord{}, false
	}
	rec, ok := m.Overrides[OverrideKey(employeeID, day)]
	return rec, ok
}
