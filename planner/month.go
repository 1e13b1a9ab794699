/*
month.go - Monthly aggregation and differential value

PURPOSE:
  Walks every day of a target month for an employee, merges attendance
  overrides onto computed standard hours, and produces the monthly totals
  the sheets render: worked/permit/overtime hours, the contract baseline,
  the hour differential, its monetary value, and the reimbursement split.

TWO SHEET KINDS:
  SheetAttendance  the main monthly sheet: standard hours come from active
                   assignments (recurrence-resolved), extra jobs contribute
                   their monetary value.
  SheetAllowance   the payslip-support sheet: standard hours come strictly
                   from the flat contract template and extra jobs are
                   excluded entirely.

ROUNDING:
  Hour totals accumulate unrounded and are rounded to 2 decimals only after
  full summation. Monetary values use decimal arithmetic and round at the
  final diffValue/split boundary.

FORFAIT:
  Forfait assignments never contribute hours. An employee whose non-archived
  assignments are all forfait has the hour differential forced to zero; the
  forfait amounts themselves enter diffValue directly. Forfait amounts apply
  whenever the assignment is non-archived and its date range covers the
  month's last day - the simple bounds check, not the day-by-day recurrence
  walk.
*/
package planner

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// SheetKind selects which standard-hours source and extra-job policy a
// monthly computation uses.
type SheetKind string

const (
	SheetAttendance SheetKind = "attendance"
	SheetAllowance  SheetKind = "allowance"
)

// MonthInput bundles the shared inputs of a monthly computation. Data may be
// nil when no overrides were recorded for the month. Recurring holds the
// locked extra jobs by employee ID; only those visible in the target month
// are consulted.
type MonthInput struct {
	Year      int
	Month     time.Month
	Data      *MonthlyData
	Recurring map[string][]ExtraJob
}

// MonthKey returns the "YYYY-MM" key of the target month.
func (in MonthInput) MonthKey() string { return MonthKey(in.Year, in.Month) }

// MonthlyTotals is the computed summary row for one employee.
type MonthlyTotals struct {
	EmployeeID string

	Days []DayRecord // index 0 = day 1

	TotalWork     float64
	TotalPermit   float64
	TotalOvertime float64
	TotalContract float64

	// ExtraJobHours is informational only; it never feeds DiffHours.
	ExtraJobHours float64

	IsAllForfait bool
	DiffHours    float64

	TotalForfait   decimal.Decimal
	ExtraJobsValue decimal.Decimal
	DiffValue      decimal.Decimal

	TargetSalary decimal.Decimal
	TargetMode   TargetMode

	Split MonthlySplit
}

// Round2 rounds a float to 2 decimal places, half away from zero. Applied
// only at aggregation boundaries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeMonth produces the monthly totals for a single employee.
func ComputeMonth(emp Employee, in MonthInput, kind SheetKind) MonthlyTotals {
	totals := MonthlyTotals{
		EmployeeID:   emp.ID,
		TargetMode:   emp.EffectiveTargetMode(),
		TargetSalary: emp.TargetSalary,
	}

	days := MonthDays(in.Year, in.Month)
	totals.Days = make([]DayRecord, len(days))

	var work, permit, overtime, contract float64
	for i, day := range days {
		standard := StandardHours(emp, day)
		if kind == SheetAllowance {
			standard = ContractStandardHours(emp, day)
		}

		var override AttendanceRecord
		var hasOverride bool
		if in.Data != nil {
			override, hasOverride = in.Data.Override(emp.ID, day.Day())
		}

		rec := EffectiveDay(standard, override, hasOverride)
		totals.Days[i] = rec
		work += rec.Work
		permit += rec.Permit
		overtime += rec.Overtime

		if holiday, _ := IsHoliday(day); !holiday {
			contract += emp.ContractHours[day.WeekdayIndex()]
		}
	}

	jobs := totals.collectExtraJobs(emp.ID, in, kind)
	for _, job := range jobs {
		totals.ExtraJobHours += job.HourTotal()
		totals.ExtraJobsValue = totals.ExtraJobsValue.Add(job.Value)
	}

	totals.TotalWork = Round2(work)
	totals.TotalPermit = Round2(permit)
	totals.TotalOvertime = Round2(overtime)
	totals.TotalContract = Round2(contract)
	totals.ExtraJobHours = Round2(totals.ExtraJobHours)

	active := emp.ActiveAssignments()
	totals.IsAllForfait = len(active) > 0
	lastDay := days[len(days)-1]
	for _, a := range active {
		if a.EffectiveType() != AssignmentForfait {
			totals.IsAllForfait = false
			continue
		}
		if a.DateRangeActive(lastDay) {
			totals.TotalForfait = totals.TotalForfait.Add(a.ForfaitAmount)
		}
	}

	diff := totals.TotalWork + totals.TotalPermit - totals.TotalContract
	if totals.IsAllForfait {
		diff = 0
	}
	totals.DiffHours = Round2(diff)

	rate := emp.HourlyRate
	totals.DiffValue = decimal.NewFromFloat(totals.DiffHours).Mul(rate).
		Add(decimal.NewFromFloat(totals.TotalOvertime).Mul(rate)).
		Add(totals.TotalForfait).
		Add(totals.ExtraJobsValue).
		Round(2)

	totals.resolveTarget(emp, in)
	totals.Split = totals.resolveSplit(emp, in)

	return totals
}

// ComputeSheet computes totals for every employee of the month. The allowance
// sheet skips employees hidden from allowance reporting.
func ComputeSheet(employees []Employee, in MonthInput, kind SheetKind) []MonthlyTotals {
	var rows []MonthlyTotals
	for _, emp := range employees {
		if kind == SheetAllowance && emp.HiddenFromAllowances {
			continue
		}
		rows = append(rows, ComputeMonth(emp, in, kind))
	}
	return rows
}

// collectExtraJobs merges the month's own extra jobs with the locked
// recurring ones visible in this month. The allowance sheet ignores extra
// jobs entirely.
func (t *MonthlyTotals) collectExtraJobs(employeeID string, in MonthInput, kind SheetKind) []ExtraJob {
	if kind == SheetAllowance {
		return nil
	}
	var jobs []ExtraJob
	if in.Data != nil {
		jobs = append(jobs, in.Data.ExtraJobs[employeeID]...)
	}
	monthKey := in.MonthKey()
	for _, job := range in.Recurring[employeeID] {
		if job.VisibleIn(monthKey) {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// resolveTarget applies the per-month salary target and mode overrides, which
// win over the employee defaults without mutating the employee record.
func (t *MonthlyTotals) resolveTarget(emp Employee, in MonthInput) {
	if in.Data == nil {
		return
	}
	if target, ok := in.Data.SalaryTarget[emp.ID]; ok {
		t.TargetSalary = target
	}
	if mode, ok := in.Data.SalaryMode[emp.ID]; ok && mode != "" {
		t.TargetMode = mode
	}
}

// resolveSplit prefers a manually stored monthly split over the automatic
// apportionment of the differential value.
func (t *MonthlyTotals) resolveSplit(emp Employee, in MonthInput) MonthlySplit {
	if in.Data != nil {
		if stored, ok := in.Data.Splits[emp.ID]; ok {
			return stored
		}
	}
	return Split(t.DiffValue, emp.Split)
}
