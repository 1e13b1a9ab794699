package planner_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-engine/planner"
)

// March 2024 is a convenient test month: 21 weekdays and no holiday falling
// on a working day (Easter 2024 is Sunday March 31).
func march2024(data *planner.MonthlyData) planner.MonthInput {
	return planner.MonthInput{Year: 2024, Month: time.March, Data: data}
}

func marchEmployee() planner.Employee {
	return planner.Employee{
		ID:            "emp-1",
		FirstName:     "Mario",
		LastName:      "Rossi",
		HourlyRate:    dec(10),
		ContractHours: fullWeek(8),
		Assignments: []planner.Assignment{
			{SiteID: "site-1", StartDate: "2024-01-01", Schedule: fullWeek(6)},
		},
	}
}

func TestComputeMonth_BaseTotals(t *testing.T) {
	// GIVEN: 6h/weekday assignment against an 8h/weekday contract
	// WHEN: aggregating March 2024 (21 weekdays) with no overrides
	// THEN: worked 126, contract 168, differential -42 valued at the rate

	totals := planner.ComputeMonth(marchEmployee(), march2024(nil), planner.SheetAttendance)

	assert.Equal(t, 126.0, totals.TotalWork)
	assert.Equal(t, 168.0, totals.TotalContract)
	assert.Zero(t, totals.TotalPermit)
	assert.Zero(t, totals.TotalOvertime)
	assert.Equal(t, -42.0, totals.DiffHours)
	assert.True(t, totals.DiffValue.Equal(dec(-420)), "diffValue = %s", totals.DiffValue)
	assert.Len(t, totals.Days, 31)
}

func TestComputeMonth_OverridesReshapeTotals(t *testing.T) {
	// GIVEN: vacation on Mar 4, a 2h permit on Mar 5, 3h overtime on Mar 6
	// THEN: worked 118 (6 lost to vacation, 2 to the permit), permit 2,
	//       overtime 3, differential -48, value -480 + 30 overtime pay

	data := planner.NewMonthlyData()
	data.Overrides[planner.OverrideKey("emp-1", 4)] = planner.AttendanceRecord{Type: planner.AttendanceFerie}
	data.Overrides[planner.OverrideKey("emp-1", 5)] = planner.AttendanceRecord{Type: planner.AttendancePermesso, Value: 2}
	data.Overrides[planner.OverrideKey("emp-1", 6)] = planner.AttendanceRecord{Type: planner.AttendanceStraordinario, Value: 3}

	totals := planner.ComputeMonth(marchEmployee(), march2024(data), planner.SheetAttendance)

	assert.Equal(t, 118.0, totals.TotalWork)
	assert.Equal(t, 2.0, totals.TotalPermit)
	assert.Equal(t, 3.0, totals.TotalOvertime)
	assert.Equal(t, -48.0, totals.DiffHours)
	assert.True(t, totals.DiffValue.Equal(dec(-450)), "diffValue = %s", totals.DiffValue)
}

func TestComputeMonth_WorkOverridePruned(t *testing.T) {
	// A stored {WORK, 0} override must not zero the day: it reads as absent.
	data := planner.NewMonthlyData()
	data.Overrides[planner.OverrideKey("emp-1", 4)] = planner.AttendanceRecord{Type: planner.AttendanceWork, Value: 0}

	with := planner.ComputeMonth(marchEmployee(), march2024(data), planner.SheetAttendance)
	without := planner.ComputeMonth(marchEmployee(), march2024(nil), planner.SheetAttendance)

	assert.Equal(t, without.TotalWork, with.TotalWork)
	assert.Equal(t, without.DiffHours, with.DiffHours)
}

func TestComputeMonth_AllForfait(t *testing.T) {
	// GIVEN: an employee whose only assignments are forfait
	// THEN: standard hours are zero everywhere, the differential is forced
	//       to zero, and the forfait amount still enters the value

	emp := marchEmployee()
	emp.Assignments = []planner.Assignment{
		{SiteID: "site-1", StartDate: "2024-01-01", Type: planner.AssignmentForfait, ForfaitAmount: dec(800)},
	}

	totals := planner.ComputeMonth(emp, march2024(nil), planner.SheetAttendance)

	assert.True(t, totals.IsAllForfait)
	assert.Zero(t, totals.TotalWork)
	assert.Zero(t, totals.DiffHours, "forfait employees have no hourly differential")
	assert.True(t, totals.TotalForfait.Equal(dec(800)))
	assert.True(t, totals.DiffValue.Equal(dec(800)), "diffValue = %s", totals.DiffValue)
}

func TestComputeMonth_MixedForfaitNotForced(t *testing.T) {
	emp := marchEmployee()
	emp.Assignments = append(emp.Assignments, planner.Assignment{
		SiteID: "site-2", StartDate: "2024-01-01", Type: planner.AssignmentForfait, ForfaitAmount: dec(200),
	})

	totals := planner.ComputeMonth(emp, march2024(nil), planner.SheetAttendance)

	assert.False(t, totals.IsAllForfait)
	assert.Equal(t, -42.0, totals.DiffHours)
	// -420 differential + 200 forfait.
	assert.True(t, totals.DiffValue.Equal(dec(-220)), "diffValue = %s", totals.DiffValue)
}

func TestComputeMonth_ForfaitRangeBound(t *testing.T) {
	// A forfait assignment whose window ended before the month contributes
	// nothing; archived forfaits neither.
	emp := marchEmployee()
	emp.Assignments = []planner.Assignment{
		{SiteID: "s1", StartDate: "2023-01-01", EndDate: "2024-02-29", Type: planner.AssignmentForfait, ForfaitAmount: dec(500)},
		{SiteID: "s2", StartDate: "2024-01-01", Type: planner.AssignmentForfait, ForfaitAmount: dec(300), Archived: true},
		{SiteID: "s3", StartDate: "2024-01-01", Type: planner.AssignmentForfait, ForfaitAmount: dec(100)},
	}

	totals := planner.ComputeMonth(emp, march2024(nil), planner.SheetAttendance)
	assert.True(t, totals.TotalForfait.Equal(dec(100)), "totalForfait = %s", totals.TotalForfait)
}

func TestComputeMonth_ExtraJobs(t *testing.T) {
	// Extra job values enter diffValue; their hour maps are informational
	// and never feed the differential.
	data := planner.NewMonthlyData()
	data.ExtraJobs["emp-1"] = []planner.ExtraJob{
		{ID: "job-1", Description: "Sgombero cantina", Value: dec(150), Hours: map[int]float64{10: 5}},
	}

	totals := planner.ComputeMonth(marchEmployee(), march2024(data), planner.SheetAttendance)

	assert.Equal(t, 5.0, totals.ExtraJobHours)
	assert.Equal(t, 126.0, totals.TotalWork, "job hours must not feed worked totals")
	assert.Equal(t, -42.0, totals.DiffHours)
	assert.True(t, totals.ExtraJobsValue.Equal(dec(150)))
	assert.True(t, totals.DiffValue.Equal(dec(-270)), "diffValue = %s", totals.DiffValue)
}

func TestComputeMonth_RecurringJobsVisibility(t *testing.T) {
	// A locked job recurs from its start month onward.
	recurring := map[string][]planner.ExtraJob{
		"emp-1": {{ID: "job-r", Value: dec(100), Locked: true, StartMonth: "2024-03"}},
	}

	in := march2024(nil)
	in.Recurring = recurring
	totals := planner.ComputeMonth(marchEmployee(), in, planner.SheetAttendance)
	assert.True(t, totals.ExtraJobsValue.Equal(dec(100)), "visible in its start month")

	before := planner.MonthInput{Year: 2024, Month: time.February, Recurring: recurring}
	totals = planner.ComputeMonth(marchEmployee(), before, planner.SheetAttendance)
	assert.True(t, totals.ExtraJobsValue.IsZero(), "not visible before its start month")

	after := planner.MonthInput{Year: 2024, Month: time.June, Recurring: recurring}
	totals = planner.ComputeMonth(marchEmployee(), after, planner.SheetAttendance)
	assert.True(t, totals.ExtraJobsValue.Equal(dec(100)), "visible in later months")
}

func TestComputeMonth_SalaryTargetOverride(t *testing.T) {
	emp := marchEmployee()
	emp.TargetSalary = dec(1500)
	emp.TargetMode = planner.TargetNet

	// Without a monthly override, the employee defaults apply.
	totals := planner.ComputeMonth(emp, march2024(nil), planner.SheetAttendance)
	assert.True(t, totals.TargetSalary.Equal(dec(1500)))
	assert.Equal(t, planner.TargetNet, totals.TargetMode)

	// The monthly override wins without touching the employee record.
	data := planner.NewMonthlyData()
	data.SalaryTarget["emp-1"] = dec(1750)
	data.SalaryMode["emp-1"] = planner.TargetGross

	totals = planner.ComputeMonth(emp, march2024(data), planner.SheetAttendance)
	assert.True(t, totals.TargetSalary.Equal(dec(1750)))
	assert.Equal(t, planner.TargetGross, totals.TargetMode)
	assert.True(t, emp.TargetSalary.Equal(dec(1500)), "employee default untouched")
}

func TestComputeMonth_StoredSplitWins(t *testing.T) {
	emp := marchEmployee()
	emp.Assignments = []planner.Assignment{
		{SiteID: "site-1", StartDate: "2024-01-01", Type: planner.AssignmentForfait, ForfaitAmount: dec(1000)},
	}
	emp.Split = &planner.SplitConfig{
		Travel: planner.SplitRule{Mode: planner.SplitRemainder},
	}

	// Auto split sends everything to travel.
	totals := planner.ComputeMonth(emp, march2024(nil), planner.SheetAttendance)
	assert.True(t, totals.Split.Travel.Equal(dec(1000)))

	// A manually stored monthly split takes precedence.
	data := planner.NewMonthlyData()
	data.Splits["emp-1"] = planner.MonthlySplit{Travel: dec(300), Fuel: dec(200), Expenses: dec(500)}

	totals = planner.ComputeMonth(emp, march2024(data), planner.SheetAttendance)
	assert.True(t, totals.Split.Travel.Equal(dec(300)))
	assert.True(t, totals.Split.Fuel.Equal(dec(200)))
	assert.True(t, totals.Split.Expenses.Equal(dec(500)))
}

func TestComputeMonth_RoundingAfterSummation(t *testing.T) {
	// Fractional schedules accumulate unrounded and round once at the end.
	emp := marchEmployee()
	emp.Assignments = []planner.Assignment{
		{SiteID: "site-1", StartDate: "2024-01-01", Schedule: planner.WeekSchedule{0.1, 0.1, 0.1, 0.1, 0.1, 0, 0}},
	}

	totals := planner.ComputeMonth(emp, march2024(nil), planner.SheetAttendance)
	assert.Equal(t, 2.1, totals.TotalWork, "21 weekdays x 0.1h, rounded once")
}

func TestComputeMonth_AllowanceSheetUsesContractOnly(t *testing.T) {
	// GIVEN: assignments of 6h against a contract of 8h, plus an extra job
	// WHEN: computing the allowance sheet
	// THEN: worked hours follow the contract and extra jobs are excluded

	data := planner.NewMonthlyData()
	data.ExtraJobs["emp-1"] = []planner.ExtraJob{{ID: "j", Value: dec(500)}}

	totals := planner.ComputeMonth(marchEmployee(), march2024(data), planner.SheetAllowance)

	assert.Equal(t, 168.0, totals.TotalWork)
	assert.Zero(t, totals.DiffHours)
	assert.True(t, totals.ExtraJobsValue.IsZero(), "allowance sheet ignores extra jobs")
}

func TestComputeSheet_AllowanceSkipsHiddenEmployees(t *testing.T) {
	visible := marchEmployee()
	hidden := marchEmployee()
	hidden.ID = "emp-2"
	hidden.HiddenFromAllowances = true

	rows := planner.ComputeSheet([]planner.Employee{visible, hidden}, march2024(nil), planner.SheetAllowance)
	require.Len(t, rows, 1)
	assert.Equal(t, "emp-1", rows[0].EmployeeID)

	rows = planner.ComputeSheet([]planner.Employee{visible, hidden}, march2024(nil), planner.SheetAttendance)
	assert.Len(t, rows, 2, "attendance sheet shows everyone")
}

func TestComputeMonth_HolidayExcludedFromContract(t *testing.T) {
	// December 2024: Natale (Wed 25) and S. Stefano (Thu 26) and Immacolata
	// (Sunday Dec 8) fall in the month. Contract counts only non-holiday
	// days; the two weekday holidays drop 16 contract hours.
	emp := marchEmployee()
	emp.Assignments = nil // contract fallback everywhere

	totals := planner.ComputeMonth(emp, planner.MonthInput{Year: 2024, Month: time.December}, planner.SheetAttendance)

	// December 2024 has 22 weekdays; minus Dec 25 and Dec 26.
	assert.Equal(t, 160.0, totals.TotalContract)
	// Standard hours are also zeroed on those days, so work == contract.
	assert.Equal(t, totals.TotalContract, totals.TotalWork)
	assert.Zero(t, totals.DiffHours)
}

func TestComputeMonth_Idempotent(t *testing.T) {
	data := planner.NewMonthlyData()
	data.Overrides[planner.OverrideKey("emp-1", 5)] = planner.AttendanceRecord{Type: planner.AttendancePermesso, Value: 2}

	first := planner.ComputeMonth(marchEmployee(), march2024(data), planner.SheetAttendance)
	second := planner.ComputeMonth(marchEmployee(), march2024(data), planner.SheetAttendance)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical totals")
	}
}
