/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates sites, employees,
	assignments, and monthly records that demonstrate specific features.

AVAILABLE SCENARIOS:

	small-team:        Two sites, two hourly employees on weekly schedules
	forfait-contracts: Fixed-fee contracts plus reimbursement splits
	month-in-progress: Attendance overrides, extra jobs, a recurring job

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create sites
 3. Create employees with assignments
 4. Optionally seed the current month with overrides and extra jobs

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "small-team"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: writeJSON, writeError helpers
  - planner/types.go: Site, Employee, Assignment, MonthlyData
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/workforce-engine/planner"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "small-team",
		Name:        "Small Team",
		Description: "Two sites, two hourly employees on weekly schedules",
		Category:    "planning",
	},
	{
		ID:          "forfait-contracts",
		Name:        "Forfait Contracts",
		Description: "Fixed-fee contracts plus reimbursement split configuration",
		Category:    "payroll",
	},
	{
		ID:          "month-in-progress",
		Name:        "Month In Progress",
		Description: "Current month with overrides, extra jobs and a recurring job",
		Category:    "attendance",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "small-team":
		err = h.loadSmallTeamScenario(ctx)
	case "forfait-contracts":
		err = h.loadForfaitContractsScenario(ctx)
	case "month-in-progress":
		err = h.loadMonthInProgressScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadSmallTeamScenario seeds the minimal realistic setup: two client sites
// and two hourly employees, each assigned on a weekly schedule.
func (h *Handler) loadSmallTeamScenario(ctx context.Context) error {
	condo := planner.Site{
		ID:                uuid.NewString(),
		Name:              "Condominio Via Roma 12",
		Address:           "Via Roma 12",
		City:              "Milano",
		NetMonthlyRevenue: decimal.NewFromInt(950),
		Category:          planner.CategoryCondominio,
	}
	office := planner.Site{
		ID:                uuid.NewString(),
		Name:              "Uffici Brianza SRL",
		Address:           "Via Monza 4",
		City:              "Monza",
		NetMonthlyRevenue: decimal.NewFromInt(1400),
		Category:          planner.CategoryAzienda,
	}
	for _, site := range []planner.Site{condo, office} {
		if err := h.Store.SaveSite(ctx, site); err != nil {
			return fmt.Errorf("save site %s: %w", site.Name, err)
		}
	}

	maria := planner.Employee{
		ID:            uuid.NewString(),
		FirstName:     "Maria",
		LastName:      "Bianchi",
		ContractHours: planner.WeekSchedule{4, 4, 4, 4, 4, 0, 0},
		HourlyRate:    decimal.NewFromFloat(9.5),
		Assignments: []planner.Assignment{
			{
				SiteID:    condo.ID,
				StartDate: "2024-01-08",
				Schedule:  planner.WeekSchedule{2, 0, 2, 0, 2, 0, 0},
			},
			{
				SiteID:    office.ID,
				StartDate: "2024-01-08",
				Schedule:  planner.WeekSchedule{2, 2, 0, 2, 0, 0, 0},
			},
		},
	}
	luca := planner.Employee{
		ID:            uuid.NewString(),
		FirstName:     "Luca",
		LastName:      "Ferrari",
		ContractHours: planner.WeekSchedule{8, 8, 8, 8, 8, 0, 0},
		HourlyRate:    decimal.NewFromInt(11),
		Assignments: []planner.Assignment{
			{
				SiteID:    office.ID,
				StartDate: "2024-02-01",
				Schedule:  planner.WeekSchedule{8, 8, 8, 8, 8, 0, 0},
			},
		},
	}
	for _, emp := range []planner.Employee{maria, luca} {
		if err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return fmt.Errorf("save employee %s: %w", emp.FullName(), err)
		}
	}
	return nil
}

// loadForfaitContractsScenario seeds fixed-fee work: an employee paid per
// contract rather than per hour, with a reimbursement split configuration,
// plus a monthly-recurrence assignment limited to the first and last week.
func (h *Handler) loadForfaitContractsScenario(ctx context.Context) error {
	villa := planner.Site{
		ID:                uuid.NewString(),
		Name:              "Villa Serena",
		Address:           "Via dei Pini 3",
		City:              "Como",
		NetMonthlyRevenue: decimal.NewFromInt(800),
		Category:          planner.CategoryPrivato,
	}
	school := planner.Site{
		ID:                uuid.NewString(),
		Name:              "Scuola Primaria Manzoni",
		Address:           "Piazza Manzoni 1",
		City:              "Como",
		NetMonthlyRevenue: decimal.NewFromInt(2100),
		Category:          planner.CategoryScuola,
	}
	for _, site := range []planner.Site{villa, school} {
		if err := h.Store.SaveSite(ctx, site); err != nil {
			return fmt.Errorf("save site %s: %w", site.Name, err)
		}
	}

	anna := planner.Employee{
		ID:            uuid.NewString(),
		FirstName:     "Anna",
		LastName:      "Colombo",
		ContractHours: planner.WeekSchedule{6, 6, 6, 6, 6, 0, 0},
		HourlyRate:    decimal.NewFromInt(10),
		TargetSalary:  decimal.NewFromInt(1450),
		TargetMode:    planner.TargetNet,
		Split: &planner.SplitConfig{
			Travel:   planner.SplitRule{Mode: planner.SplitFixed, Value: decimal.NewFromInt(120)},
			Fuel:     planner.SplitRule{Mode: planner.SplitPercent, Value: decimal.NewFromInt(10)},
			Expenses: planner.SplitRule{Mode: planner.SplitRemainder},
		},
		Assignments: []planner.Assignment{
			{
				SiteID:        villa.ID,
				StartDate:     "2024-01-01",
				Type:          planner.AssignmentForfait,
				ForfaitAmount: decimal.NewFromInt(350),
				Schedule:      planner.WeekSchedule{0, 3, 0, 3, 0, 0, 0},
			},
			{
				SiteID:       school.ID,
				StartDate:    "2024-01-01",
				Schedule:     planner.WeekSchedule{4, 0, 0, 0, 4, 0, 0},
				Recurrence:   planner.RecurrenceMonthly,
				WeekSelector: []string{"1", planner.WeekLast},
				Note:         "Deep clean, first and last week only",
			},
		},
	}
	if err := h.Store.SaveEmployee(ctx, anna); err != nil {
		return fmt.Errorf("save employee %s: %w", anna.FullName(), err)
	}
	return nil
}

// loadMonthInProgressScenario seeds the small-team setup and then fills the
// current month with attendance overrides, a one-off extra job and a locked
// recurring job, so the sheet and allowance views have data immediately.
func (h *Handler) loadMonthInProgressScenario(ctx context.Context) error {
	if err := h.loadSmallTeamScenario(ctx); err != nil {
		return err
	}

	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}
	if len(employees) < 2 {
		return fmt.Errorf("expected seeded employees, found %d", len(employees))
	}
	first, second := employees[0], employees[1]

	today := planner.Today()
	monthKey := planner.MonthKey(today.Time.Year(), today.Time.Month())

	data := planner.NewMonthlyData()
	data.Overrides[planner.OverrideKey(first.ID, 2)] = planner.AttendanceRecord{
		Type: planner.AttendanceFerie,
	}
	data.Overrides[planner.OverrideKey(first.ID, 5)] = planner.AttendanceRecord{
		Type:  planner.AttendancePermesso,
		Value: 2,
	}
	data.Overrides[planner.OverrideKey(second.ID, 3)] = planner.AttendanceRecord{
		Type:  planner.AttendanceStraordinario,
		Value: 1.5,
	}
	data.Notes[planner.OverrideKey(first.ID, 5)] = "Visita medica"
	data.ExtraJobs[second.ID] = []planner.ExtraJob{
		{
			ID:          uuid.NewString(),
			Description: "Sgombero cantina",
			Value:       decimal.NewFromInt(80),
			Hours:       map[int]float64{12: 3},
		},
	}
	if err := h.Store.SaveMonth(ctx, monthKey, data); err != nil {
		return fmt.Errorf("save month %s: %w", monthKey, err)
	}

	recurring := []planner.ExtraJob{
		{
			ID:          uuid.NewString(),
			Description: "Gestione chiavi condominio",
			Value:       decimal.NewFromInt(50),
			Locked:      true,
			StartMonth:  monthKey,
		},
	}
	if err := h.Store.SaveRecurringJobs(ctx, first.ID, recurring); err != nil {
		return fmt.Errorf("save recurring jobs: %w", err)
	}
	return nil
}
