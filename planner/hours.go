/*
hours.go - Daily standard hours and attendance override merging

PURPOSE:
  Two stages turn raw scheduling data into one day of effective hours:

  1. StandardHours: what the employee is contractually scheduled to work on
     a day - the sum of active hourly assignments, or the flat contract
     template when the employee has no assignments at all. Holidays always
     zero the day.

  2. EffectiveDay: how a per-day attendance override (vacation, sickness,
     permit, overtime, absence) reshapes the standard value into worked,
     permit, and overtime hour components.

OVERRIDE SEMANTICS:
  none / WORK    work = standard. An explicit WORK override is treated as
                 absent: a stored {WORK, 0} is indistinguishable from no
                 override and never zeroes a day (see DESIGN.md).
  FERIE          day fully zeroed
  MALATTIA       day fully zeroed
  ASSENZA        day fully zeroed
  PERMESSO       permit = value; the remainder of the standard day still
                 counts as worked: work = max(0, standard - value)
  STRAORDINARIO  overtime = value on top of the full standard day:
                 work = standard
*/
package planner

// =============================================================================
// DAILY HOURS RESOLVER
// =============================================================================

// StandardHours computes the contractually-scheduled hours for the day.
// Holidays zero the day regardless of assignments or contract hours. With at
// least one non-archived assignment, hours are the sum of schedule values of
// active non-forfait assignments; with none at all, the flat weekly contract
// template applies.
func StandardHours(emp Employee, day Date) float64 {
	if holiday, _ := IsHoliday(day); holiday {
		return 0
	}

	active := emp.ActiveAssignments()
	if len(active) == 0 {
		return emp.ContractHours[day.WeekdayIndex()]
	}

	var total float64
	for _, a := range active {
		if a.EffectiveType() == AssignmentForfait {
			continue
		}
		if !IsActive(a, day) {
			continue
		}
		total += a.Schedule[day.WeekdayIndex()]
	}
	return total
}

// ContractStandardHours is the allowance-sheet variant: strictly the flat
// contract template, ignoring assignments. Holidays still zero the day.
func ContractStandardHours(emp Employee, day Date) float64 {
	if holiday, _ := IsHoliday(day); holiday {
		return 0
	}
	return emp.ContractHours[day.WeekdayIndex()]
}

// =============================================================================
// ATTENDANCE OVERRIDE LAYER
// =============================================================================

// DayRecord is one day of effective hours after override merging.
type DayRecord struct {
	Type     AttendanceType
	Standard float64 // the resolver's computed value, before overrides
	Work     float64
	Permit   float64
	Overtime float64
}

// EffectiveDay merges an optional override onto the computed standard hours.
// hasOverride=false (or a WORK-typed override) yields a plain worked day.
func EffectiveDay(standard float64, override AttendanceRecord, hasOverride bool) DayRecord {
	rec := DayRecord{Type: AttendanceWork, Standard: standard}

	if !hasOverride || override.Type == AttendanceWork || override.Type == "" {
		rec.Work = standard
		return rec
	}

	rec.Type = override.Type
	switch override.Type {
	case AttendanceFerie, AttendanceMalattia, AttendanceAssenza:
		// Fully zeroed day.
	case AttendancePermesso:
		rec.Permit = override.Value
		if remainder := standard - override.Value; remainder > 0 {
			rec.Work = remainder
		}
	case AttendanceStraordinario:
		rec.Overtime = override.Value
		rec.Work = standard
	default:
		// Unknown override types degrade to a plain worked day.
		rec.Type = AttendanceWork
		rec.Work = standard
	}
	return rec
}
