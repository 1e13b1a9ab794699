/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Sites:      SiteDTO, SiteRequest
  Employees:  EmployeeDTO, EmployeeRequest, AssignmentDTO, SplitConfigDTO
  Months:     MonthDTO, OverrideDTO, ExtraJobDTO, SplitDTO
  Sheets:     SheetRowDTO, DayDTO
  Dashboard:  DashboardDTO, holiday and stats payloads

CONVENTIONS:
  Weekly schedules travel as {"mon":..,"sun":..} objects. Monetary values
  are JSON numbers; the handlers convert to/from decimal at the boundary.
  Dates are "YYYY-MM-DD" strings, month keys "YYYY-MM".

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - planner/types.go: The domain model these mirror
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/workforce-engine/planner"
)

// =============================================================================
// SCHEDULES
// =============================================================================

// ScheduleDTO is a weekly hour template keyed by weekday.
type ScheduleDTO struct {
	Mon float64 `json:"mon"`
	Tue float64 `json:"tue"`
	Wed float64 `json:"wed"`
	Thu float64 `json:"thu"`
	Fri float64 `json:"fri"`
	Sat float64 `json:"sat"`
	Sun float64 `json:"sun"`
}

func toScheduleDTO(s planner.WeekSchedule) ScheduleDTO {
	return ScheduleDTO{s[0], s[1], s[2], s[3], s[4], s[5], s[6]}
}

func (s ScheduleDTO) toSchedule() planner.WeekSchedule {
	return planner.WeekSchedule{s.Mon, s.Tue, s.Wed, s.Thu, s.Fri, s.Sat, s.Sun}
}

// =============================================================================
// SITES
// =============================================================================

type SiteDTO struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Address           string  `json:"address,omitempty"`
	City              string  `json:"city,omitempty"`
	NetMonthlyRevenue float64 `json:"net_monthly_revenue"`
	Category          string  `json:"category,omitempty"`
}

// SiteRequest creates or updates a site. The ID is server-generated on create.
type SiteRequest struct {
	Name              string  `json:"name"`
	Address           string  `json:"address"`
	City              string  `json:"city"`
	NetMonthlyRevenue float64 `json:"net_monthly_revenue"`
	Category          string  `json:"category"`
}

func toSiteDTO(s planner.Site) SiteDTO {
	revenue, _ := s.NetMonthlyRevenue.Float64()
	return SiteDTO{
		ID:                s.ID,
		Name:              s.Name,
		Address:           s.Address,
		City:              s.City,
		NetMonthlyRevenue: revenue,
		Category:          string(s.Category),
	}
}

func (r SiteRequest) toSite(id string) planner.Site {
	return planner.Site{
		ID:                id,
		Name:              r.Name,
		Address:           r.Address,
		City:              r.City,
		NetMonthlyRevenue: decimal.NewFromFloat(r.NetMonthlyRevenue),
		Category:          planner.SiteCategory(r.Category),
	}
}

// =============================================================================
// EMPLOYEES AND ASSIGNMENTS
// =============================================================================

type AssignmentDTO struct {
	SiteID        string      `json:"site_id"`
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date,omitempty"`
	Schedule      ScheduleDTO `json:"schedule"`
	Type          string      `json:"type,omitempty"`
	ForfaitAmount float64     `json:"forfait_amount,omitempty"`
	Recurrence    string      `json:"recurrence,omitempty"`
	Interval      int         `json:"interval,omitempty"`
	WeekSelector  []string    `json:"week_selector,omitempty"`
	Note          string      `json:"note,omitempty"`
	Archived      bool        `json:"archived,omitempty"`
}

func toAssignmentDTO(a planner.Assignment) AssignmentDTO {
	forfait, _ := a.ForfaitAmount.Float64()
	return AssignmentDTO{
		SiteID:        a.SiteID,
		StartDate:     a.StartDate,
		EndDate:       a.EndDate,
		Schedule:      toScheduleDTO(a.Schedule),
		Type:          string(a.Type),
		ForfaitAmount: forfait,
		Recurrence:    string(a.Recurrence),
		Interval:      a.Interval,
		WeekSelector:  a.WeekSelector,
		Note:          a.Note,
		Archived:      a.Archived,
	}
}

func (d AssignmentDTO) toAssignment() planner.Assignment {
	return planner.Assignment{
		SiteID:        d.SiteID,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		Schedule:      d.Schedule.toSchedule(),
		Type:          planner.AssignmentType(d.Type),
		ForfaitAmount: decimal.NewFromFloat(d.ForfaitAmount),
		Recurrence:    planner.RecurrenceType(d.Recurrence),
		Interval:      d.Interval,
		WeekSelector:  d.WeekSelector,
		Note:          d.Note,
		Archived:      d.Archived,
	}
}

type SplitRuleDTO struct {
	Mode  string  `json:"mode"`
	Value float64 `json:"value,omitempty"`
}

type SplitConfigDTO struct {
	Travel   SplitRuleDTO `json:"travel"`
	Fuel     SplitRuleDTO `json:"fuel"`
	Expenses SplitRuleDTO `json:"expenses"`
}

func toSplitConfigDTO(c *planner.SplitConfig) *SplitConfigDTO {
	if c == nil {
		return nil
	}
	rule := func(r planner.SplitRule) SplitRuleDTO {
		v, _ := r.Value.Float64()
		return SplitRuleDTO{Mode: string(r.Mode), Value: v}
	}
	return &SplitConfigDTO{
		Travel:   rule(c.Travel),
		Fuel:     rule(c.Fuel),
		Expenses: rule(c.Expenses),
	}
}

func (d *SplitConfigDTO) toSplitConfig() *planner.SplitConfig {
	if d == nil {
		return nil
	}
	rule := func(r SplitRuleDTO) planner.SplitRule {
		return planner.SplitRule{Mode: planner.SplitMode(r.Mode), Value: decimal.NewFromFloat(r.Value)}
	}
	return &planner.SplitConfig{
		Travel:   rule(d.Travel),
		Fuel:     rule(d.Fuel),
		Expenses: rule(d.Expenses),
	}
}

type EmployeeDTO struct {
	ID               string          `json:"id"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	ContractHours    ScheduleDTO     `json:"contract_hours"`
	HourlyRate       float64         `json:"hourly_rate"`
	TargetSalary     float64         `json:"target_salary,omitempty"`
	TargetMode       string          `json:"target_mode,omitempty"`
	ShowInAllowances bool            `json:"show_in_allowances"`
	Assignments      []AssignmentDTO `json:"assignments"`
	Split            *SplitConfigDTO `json:"split,omitempty"`
}

// EmployeeRequest creates or updates an employee. Assignments are managed
// through their own endpoints, not through this payload.
type EmployeeRequest struct {
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	ContractHours    ScheduleDTO     `json:"contract_hours"`
	HourlyRate       float64         `json:"hourly_rate"`
	TargetSalary     float64         `json:"target_salary"`
	TargetMode       string          `json:"target_mode"`
	ShowInAllowances *bool           `json:"show_in_allowances"` // nil defaults to true
	Split            *SplitConfigDTO `json:"split"`
}

func toEmployeeDTO(e planner.Employee) EmployeeDTO {
	rate, _ := e.HourlyRate.Float64()
	target, _ := e.TargetSalary.Float64()
	assignments := make([]AssignmentDTO, len(e.Assignments))
	for i, a := range e.Assignments {
		assignments[i] = toAssignmentDTO(a)
	}
	return EmployeeDTO{
		ID:               e.ID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		ContractHours:    toScheduleDTO(e.ContractHours),
		HourlyRate:       rate,
		TargetSalary:     target,
		TargetMode:       string(e.TargetMode),
		ShowInAllowances: !e.HiddenFromAllowances,
		Assignments:      assignments,
		Split:            toSplitConfigDTO(e.Split),
	}
}

func (r EmployeeRequest) apply(emp *planner.Employee) {
	emp.FirstName = r.FirstName
	emp.LastName = r.LastName
	emp.ContractHours = r.ContractHours.toSchedule()
	emp.HourlyRate = decimal.NewFromFloat(r.HourlyRate)
	emp.TargetSalary = decimal.NewFromFloat(r.TargetSalary)
	emp.TargetMode = planner.TargetMode(r.TargetMode)
	emp.HiddenFromAllowances = r.ShowInAllowances != nil && !*r.ShowInAllowances
	emp.Split = r.Split.toSplitConfig()
}

// =============================================================================
// MONTHLY DOCUMENT
// =============================================================================

type TimeDetailsDTO struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	BreakStart string `json:"break_start,omitempty"`
	BreakEnd   string `json:"break_end,omitempty"`
}

// OverrideDTO is one attendance override. An empty type clears the override.
type OverrideDTO struct {
	Type        string          `json:"type"`
	Value       float64         `json:"value,omitempty"`
	TimeDetails *TimeDetailsDTO `json:"time_details,omitempty"`
}

func toOverrideDTO(rec planner.AttendanceRecord) OverrideDTO {
	dto := OverrideDTO{Type: string(rec.Type), Value: rec.Value}
	if rec.TimeDetails != nil {
		dto.TimeDetails = &TimeDetailsDTO{
			Start:      rec.TimeDetails.Start,
			End:        rec.TimeDetails.End,
			BreakStart: rec.TimeDetails.BreakStart,
			BreakEnd:   rec.TimeDetails.BreakEnd,
		}
	}
	return dto
}

func (d OverrideDTO) toRecord() planner.AttendanceRecord {
	rec := planner.AttendanceRecord{Type: planner.AttendanceType(d.Type), Value: d.Value}
	if d.TimeDetails != nil {
		rec.TimeDetails = &planner.TimeDetails{
			Start:      d.TimeDetails.Start,
			End:        d.TimeDetails.End,
			BreakStart: d.TimeDetails.BreakStart,
			BreakEnd:   d.TimeDetails.BreakEnd,
		}
	}
	return rec
}

type ExtraJobDTO struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Value       float64         `json:"value"`
	Hours       map[int]float64 `json:"hours,omitempty"`
	Locked      bool            `json:"locked"`
	StartMonth  string          `json:"start_month,omitempty"`
}

func toExtraJobDTO(j planner.ExtraJob) ExtraJobDTO {
	value, _ := j.Value.Float64()
	return ExtraJobDTO{
		ID:          j.ID,
		Description: j.Description,
		Value:       value,
		Hours:       j.Hours,
		Locked:      j.Locked,
		StartMonth:  j.StartMonth,
	}
}

func (d ExtraJobDTO) toExtraJob() planner.ExtraJob {
	return planner.ExtraJob{
		ID:          d.ID,
		Description: d.Description,
		Value:       decimal.NewFromFloat(d.Value),
		Hours:       d.Hours,
		Locked:      d.Locked,
		StartMonth:  d.StartMonth,
	}
}

type SplitDTO struct {
	Travel   float64 `json:"travel"`
	Fuel     float64 `json:"fuel"`
	Expenses float64 `json:"expenses"`
	Total    float64 `json:"total"`
}

func toSplitDTO(s planner.MonthlySplit) SplitDTO {
	travel, _ := s.Travel.Float64()
	fuel, _ := s.Fuel.Float64()
	expenses, _ := s.Expenses.Float64()
	total, _ := s.Total().Float64()
	return SplitDTO{Travel: travel, Fuel: fuel, Expenses: expenses, Total: total}
}

// MonthDTO is the full per-month document.
type MonthDTO struct {
	Month        string                   `json:"month"`
	Overrides    map[string]OverrideDTO   `json:"overrides"`
	Notes        map[string]string        `json:"notes"`
	Splits       map[string]SplitDTO      `json:"splits"`
	ExtraJobs    map[string][]ExtraJobDTO `json:"extra_jobs"`
	SalaryTarget map[string]float64       `json:"salary_target"`
	SalaryMode   map[string]string        `json:"salary_mode"`
}

func toMonthDTO(monthKey string, data *planner.MonthlyData) MonthDTO {
	dto := MonthDTO{
		Month:        monthKey,
		Overrides:    map[string]OverrideDTO{},
		Notes:        map[string]string{},
		Splits:       map[string]SplitDTO{},
		ExtraJobs:    map[string][]ExtraJobDTO{},
		SalaryTarget: map[string]float64{},
		SalaryMode:   map[string]string{},
	}
	for k, rec := range data.Overrides {
		dto.Overrides[k] = toOverrideDTO(rec)
	}
	for k, v := range data.Notes {
		dto.Notes[k] = v
	}
	for k, s := range data.Splits {
		dto.Splits[k] = toSplitDTO(s)
	}
	for k, jobs := range data.ExtraJobs {
		out := make([]ExtraJobDTO, len(jobs))
		for i, j := range jobs {
			out[i] = toExtraJobDTO(j)
		}
		dto.ExtraJobs[k] = out
	}
	for k, v := range data.SalaryTarget {
		f, _ := v.Float64()
		dto.SalaryTarget[k] = f
	}
	for k, v := range data.SalaryMode {
		dto.SalaryMode[k] = string(v)
	}
	return dto
}

func (d MonthDTO) toMonthlyData() *planner.MonthlyData {
	data := planner.NewMonthlyData()
	for k, rec := range d.Overrides {
		data.Overrides[k] = rec.toRecord()
	}
	for k, v := range d.Notes {
		data.Notes[k] = v
	}
	for k, s := range d.Splits {
		data.Splits[k] = planner.MonthlySplit{
			Travel:   decimal.NewFromFloat(s.Travel),
			Fuel:     decimal.NewFromFloat(s.Fuel),
			Expenses: decimal.NewFromFloat(s.Expenses),
		}
	}
	for k, jobs := range d.ExtraJobs {
		out := make([]planner.ExtraJob, len(jobs))
		for i, j := range jobs {
			out[i] = j.toExtraJob()
		}
		data.ExtraJobs[k] = out
	}
	for k, v := range d.SalaryTarget {
		data.SalaryTarget[k] = decimal.NewFromFloat(v)
	}
	for k, v := range d.SalaryMode {
		data.SalaryMode[k] = planner.TargetMode(v)
	}
	return data
}

// =============================================================================
// COMPUTED SHEETS
// =============================================================================

type DayDTO struct {
	Type     string  `json:"type"`
	Standard float64 `json:"standard"`
	Work     float64 `json:"work"`
	Permit   float64 `json:"permit,omitempty"`
	Overtime float64 `json:"overtime,omitempty"`
}

// SheetRowDTO is the computed monthly row for one employee.
type SheetRowDTO struct {
	EmployeeID string   `json:"employee_id"`
	Name       string   `json:"name"`
	Days       []DayDTO `json:"days"`

	TotalWork     float64 `json:"total_work"`
	TotalPermit   float64 `json:"total_permit"`
	TotalOvertime float64 `json:"total_overtime"`
	TotalContract float64 `json:"total_contract"`
	ExtraJobHours float64 `json:"extra_job_hours"`

	IsAllForfait   bool    `json:"is_all_forfait"`
	DiffHours      float64 `json:"diff_hours"`
	TotalForfait   float64 `json:"total_forfait"`
	ExtraJobsValue float64 `json:"extra_jobs_value"`
	DiffValue      float64 `json:"diff_value"`

	TargetSalary float64  `json:"target_salary,omitempty"`
	TargetMode   string   `json:"target_mode,omitempty"`
	Split        SplitDTO `json:"split"`
}

func toSheetRowDTO(name string, t planner.MonthlyTotals) SheetRowDTO {
	days := make([]DayDTO, len(t.Days))
	for i, d := range t.Days {
		days[i] = DayDTO{
			Type:     string(d.Type),
			Standard: d.Standard,
			Work:     d.Work,
			Permit:   d.Permit,
			Overtime: d.Overtime,
		}
	}
	forfait, _ := t.TotalForfait.Float64()
	extraValue, _ := t.ExtraJobsValue.Float64()
	diffValue, _ := t.DiffValue.Float64()
	target, _ := t.TargetSalary.Float64()
	return SheetRowDTO{
		EmployeeID:     t.EmployeeID,
		Name:           name,
		Days:           days,
		TotalWork:      t.TotalWork,
		TotalPermit:    t.TotalPermit,
		TotalOvertime:  t.TotalOvertime,
		TotalContract:  t.TotalContract,
		ExtraJobHours:  t.ExtraJobHours,
		IsAllForfait:   t.IsAllForfait,
		DiffHours:      t.DiffHours,
		TotalForfait:   forfait,
		ExtraJobsValue: extraValue,
		DiffValue:      diffValue,
		TargetSalary:   target,
		TargetMode:     string(t.TargetMode),
		Split:          toSplitDTO(t.Split),
	}
}

// =============================================================================
// HOLIDAYS AND DASHBOARD
// =============================================================================

type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type MetricsDTO struct {
	WeeklyHours     float64 `json:"weekly_hours"`
	ActiveContracts int     `json:"active_contracts"`
	MonthlyCost     float64 `json:"monthly_cost"`
}

type SiteLoadDTO struct {
	SiteID      string  `json:"site_id"`
	Name        string  `json:"name"`
	WeeklyHours float64 `json:"weekly_hours"`
}

type DashboardDTO struct {
	Current   MetricsDTO `json:"current"`
	Previous  MetricsDTO `json:"previous"`
	Variation struct {
		Hours     float64 `json:"hours"`
		Contracts float64 `json:"contracts"`
		Cost      float64 `json:"cost"`
	} `json:"variation"`
	SitesByCity map[string]int `json:"sites_by_city"`
	SiteLoad    []SiteLoadDTO  `json:"site_load"`
}

func toMetricsDTO(m planner.SnapshotMetrics) MetricsDTO {
	cost, _ := m.MonthlyCost.Float64()
	return MetricsDTO{
		WeeklyHours:     m.WeeklyHours,
		ActiveContracts: m.ActiveContracts,
		MonthlyCost:     cost,
	}
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
