/*
handlers.go - HTTP API handlers for the workforce management system

PURPOSE:
  Exposes the planner core via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Sites:
    GET    /api/sites                  List all sites
    POST   /api/sites                  Create site
    GET    /api/sites/{id}             Get site details
    PUT    /api/sites/{id}             Update site
    DELETE /api/sites/{id}             Delete site (cascades assignments)

  Employees:
    GET    /api/employees              List all employees
    POST   /api/employees              Create employee
    GET    /api/employees/{id}         Get employee details
    PUT    /api/employees/{id}         Update employee
    DELETE /api/employees/{id}         Delete employee
    POST   /api/employees/{id}/assignments        Add assignment
    PUT    /api/employees/{id}/assignments/{ix}   Replace assignment
    DELETE /api/employees/{id}/assignments/{ix}   Remove assignment

  Months:
    GET    /api/months/{month}                    Monthly document
    PUT    /api/months/{month}                    Replace monthly document
    PUT    /api/months/{month}/overrides/{empID}/{day}  Set/clear one override
    POST   /api/months/{month}/extrajobs/{empID}        Add extra job
    POST   /api/months/{month}/extrajobs/{empID}/{jobID}/lock    Make recurring
    POST   /api/months/{month}/extrajobs/{empID}/{jobID}/unlock  Stop recurring
    GET    /api/months/{month}/sheet              Computed attendance sheet
    GET    /api/months/{month}/allowances         Computed allowance sheet

  Calendar and stats:
    GET    /api/holidays/{year}        Holidays of a year
    GET    /api/stats/dashboard        Dashboard statistics

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (planner computations, store)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (duplicate site name)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - planner: The computation core these handlers delegate to
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/workforce-engine/planner"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store planner.Store

	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store planner.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// SITE HANDLERS
// =============================================================================

// ListSites returns all sites.
func (h *Handler) ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.Store.ListSites(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sites", err)
		return
	}

	dtos := make([]SiteDTO, len(sites))
	for i, s := range sites {
		dtos[i] = toSiteDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSite returns a single site.
func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	site, err := h.Store.GetSite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, "Failed to get site", err)
		return
	}
	writeJSON(w, http.StatusOK, toSiteDTO(site))
}

// CreateSite creates a new site with a server-generated ID.
func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req SiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Site name is required", nil)
		return
	}

	site := req.toSite(uuid.NewString())
	if err := h.Store.SaveSite(r.Context(), site); err != nil {
		writeStoreError(w, "Failed to create site", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSiteDTO(site))
}

// UpdateSite replaces a site's attributes.
func (h *Handler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Store.GetSite(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to get site", err)
		return
	}

	var req SiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	site := req.toSite(id)
	if err := h.Store.SaveSite(r.Context(), site); err != nil {
		writeStoreError(w, "Failed to update site", err)
		return
	}
	writeJSON(w, http.StatusOK, toSiteDTO(site))
}

// DeleteSite removes a site and all assignments referencing it.
func (h *Handler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteSite(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, "Failed to delete site", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees with their assignments.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// CreateEmployee creates a new employee with a server-generated ID.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.FirstName == "" && req.LastName == "" {
		writeError(w, http.StatusBadRequest, "Employee name is required", nil)
		return
	}

	emp := planner.Employee{ID: uuid.NewString()}
	req.apply(&emp)

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeStoreError(w, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// UpdateEmployee replaces an employee's attributes, keeping its assignments.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, "Failed to get employee", err)
		return
	}

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req.apply(&emp)
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeStoreError(w, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ASSIGNMENT HANDLERS
// =============================================================================

// AddAssignment appends an assignment to an employee.
func (h *Handler) AddAssignment(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, "Failed to get employee", err)
		return
	}

	var req AssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if _, err := planner.ParseDate(req.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	if req.SiteID != "" {
		if _, err := h.Store.GetSite(r.Context(), req.SiteID); err != nil {
			writeStoreError(w, "Failed to resolve site", err)
			return
		}
	}

	emp.Assignments = append(emp.Assignments, req.toAssignment())
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeStoreError(w, "Failed to save assignment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// UpdateAssignment replaces one assignment by its position.
func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	emp, ix, ok := h.assignmentAt(w, r)
	if !ok {
		return
	}

	var req AssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if _, err := planner.ParseDate(req.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}

	emp.Assignments[ix] = req.toAssignment()
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeStoreError(w, "Failed to save assignment", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// RemoveAssignment deletes one assignment by its position.
func (h *Handler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	emp, ix, ok := h.assignmentAt(w, r)
	if !ok {
		return
	}

	emp.Assignments = append(emp.Assignments[:ix], emp.Assignments[ix+1:]...)
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeStoreError(w, "Failed to remove assignment", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

func (h *Handler) assignmentAt(w http.ResponseWriter, r *http.Request) (planner.Employee, int, bool) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, "Failed to get employee", err)
		return emp, 0, false
	}

	ix, err := strconv.Atoi(chi.URLParam(r, "ix"))
	if err != nil || ix < 0 || ix >= len(emp.Assignments) {
		writeError(w, http.StatusNotFound, "Assignment not found", planner.ErrAssignmentNotFound)
		return emp, 0, false
	}
	return emp, ix, true
}

// =============================================================================
// MONTHLY DOCUMENT HANDLERS
// =============================================================================

// GetMonth returns the stored document for a month, empty if never saved.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := h.monthKey(w, r)
	if !ok {
		return
	}

	data, err := h.Store.GetMonth(r.Context(), monthKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get month", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthDTO(monthKey, data))
}

// PutMonth replaces the whole monthly document. Last write wins.
func (h *Handler) PutMonth(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := h.monthKey(w, r)
	if !ok {
		return
	}

	var req MonthDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	data := req.toMonthlyData()
	if err := h.Store.SaveMonth(r.Context(), monthKey, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save month", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthDTO(monthKey, data))
}

// PutOverride sets or clears one attendance override. An empty type in the
// body clears the cell back to its computed standard hours.
func (h *Handler) PutOverride(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := h.monthKey(w, r)
	if !ok {
		return
	}
	empID := chi.URLParam(r, "empID")
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 1 || day > 31 {
		writeError(w, http.StatusBadRequest, "Invalid day of month", err)
		return
	}

	var req OverrideDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// Clock times, when present, derive the override value.
	if req.TimeDetails != nil {
		rec := req.toRecord()
		hours, err := planner.HoursFromTimeDetails(*rec.TimeDetails)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid time details", err)
			return
		}
		req.Value = hours
	}

	ctx := r.Context()
	data, err := h.Store.GetMonth(ctx, monthKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get month", err)
		return
	}

	key := planner.OverrideKey(empID, day)
	if req.Type == "" {
		delete(data.Overrides, key)
	} else {
		data.Overrides[key] = req.toRecord()
	}

	if err := h.Store.SaveMonth(ctx, monthKey, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save month", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthDTO(monthKey, data))
}

// =============================================================================
// EXTRA JOB HANDLERS
// =============================================================================

// AddExtraJob appends an extra job line item to an employee's month.
func (h *Handler) AddExtraJob(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := h.monthKey(w, r)
	if !ok {
		return
	}
	empID := chi.URLParam(r, "empID")

	var req ExtraJobDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.ID = uuid.NewString()
	req.Locked = false
	req.StartMonth = ""

	ctx := r.Context()
	data, err := h.Store.GetMonth(ctx, monthKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get month", err)
		return
	}

	data.ExtraJobs[empID] = append(data.ExtraJobs[empID], req.toExtraJob())
	if err := h.Store.SaveMonth(ctx, monthKey, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save month", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMonthDTO(monthKey, data))
}

// LockExtraJob turns a one-off job into a recurring one from this month
// onward: it moves from the monthly document into the recurring collection.
func (h *Handler) LockExtraJob(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := h.monthKey(w, r)
	if !ok {
		return
	}
	empID := chi.URLParam(r, "empID")
	jobID := chi.URLParam(r, "jobID")

	ctx := r.Context()
	data, err := h.Store.GetMonth(ctx, monthKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get month", err)
		return
	}

	jobs := data.ExtraJobs[empID]
	ix := -1
	for i, j := range jobs {
		if j.ID == jobID {
			ix = i
			break
		}
	}
	if ix < 0 {
		writeError(w, http.StatusNotFound, "Extra job not found", planner.ErrExtraJobNotFound)
		return
	}

	job := jobs[ix]
	job.Locked = true
	job.StartMonth = monthKey

	recurring, err := h.Store.RecurringJobs(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get recurring jobs", err)
		return
	}
	if err := h.Store.SaveRecurringJobs(ctx, empID, append(recurring[empID], job)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save recurring jobs", err)
		return
	}

	data.ExtraJobs[empID] = append(jobs[:ix], jobs[ix+1:]...)
	if len(data.ExtraJobs[empID]) == 0 {
		delete(data.ExtraJobs, empID)
	}
	if err := h.Store.SaveMonth(ctx, monthKey, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save month", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthDTO(monthKey, data))
}

// UnlockExtraJob stops a recurring job and returns it to the current month's
// document as a one-off.
func (h *Handler) UnlockExtraJob(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := h.monthKey(w, r)
	if !ok {
		return
	}
	empID := chi.URLParam(r, "empID")
	jobID := chi.URLParam(r, "jobID")

	ctx := r.Context()
	recurring, err := h.Store.RecurringJobs(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get recurring jobs", err)
		return
	}

	jobs := recurring[empID]
	ix := -1
	for i, j := range jobs {
		if j.ID == jobID {
			ix = i
			break
		}
	}
	if ix < 0 {
		writeError(w, http.StatusNotFound, "Extra job not found", planner.ErrExtraJobNotFound)
		return
	}

	job := jobs[ix]
	job.Locked = false
	job.StartMonth = ""

	if err := h.Store.SaveRecurringJobs(ctx, empID, append(jobs[:ix], jobs[ix+1:]...)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save recurring jobs", err)
		return
	}

	data, err := h.Store.GetMonth(ctx, monthKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get month", err)
		return
	}
	data.ExtraJobs[empID] = append(data.ExtraJobs[empID], job)
	if err := h.Store.SaveMonth(ctx, monthKey, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save month", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthDTO(monthKey, data))
}

// =============================================================================
// COMPUTED SHEET HANDLERS
// =============================================================================

// GetSheet returns the computed attendance sheet for a month.
func (h *Handler) GetSheet(w http.ResponseWriter, r *http.Request) {
	h.computedSheet(w, r, planner.SheetAttendance)
}

// GetAllowances returns the computed allowance sheet for a month.
func (h *Handler) GetAllowances(w http.ResponseWriter, r *http.Request) {
	h.computedSheet(w, r, planner.SheetAllowance)
}

func (h *Handler) computedSheet(w http.ResponseWriter, r *http.Request, kind planner.SheetKind) {
	monthKey, ok := h.monthKey(w, r)
	if !ok {
		return
	}
	year, month, _ := planner.ParseMonthKey(monthKey)

	ctx := r.Context()
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	data, err := h.Store.GetMonth(ctx, monthKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get month", err)
		return
	}
	recurring, err := h.Store.RecurringJobs(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get recurring jobs", err)
		return
	}

	in := planner.MonthInput{Year: year, Month: month, Data: data, Recurring: recurring}
	rows := planner.ComputeSheet(employees, in, kind)

	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName()
	}

	dtos := make([]SheetRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toSheetRowDTO(names[row.EmployeeID], row)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HOLIDAY AND STATS HANDLERS
// =============================================================================

// GetHolidays returns the holidays of a year.
func (h *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1900 || year > 2200 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	holidays := planner.HolidaysForYear(year)
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{Date: hol.Date.String(), Name: hol.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetDashboard returns the dashboard statistics, optionally as of ?at=.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	at := planner.Today()
	if s := r.URL.Query().Get("at"); s != "" {
		parsed, err := planner.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid at date (use YYYY-MM-DD)", err)
			return
		}
		at = parsed
	}

	ctx := r.Context()
	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	sites, err := h.Store.ListSites(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sites", err)
		return
	}

	stats := planner.ComputeDashboard(employees, sites, at)

	dto := DashboardDTO{
		Current:     toMetricsDTO(stats.Current),
		Previous:    toMetricsDTO(stats.Previous),
		SitesByCity: stats.SitesByCity,
	}
	dto.Variation.Hours = stats.Variation.Hours
	dto.Variation.Contracts = stats.Variation.Contracts
	dto.Variation.Cost = stats.Variation.Cost
	dto.SiteLoad = make([]SiteLoadDTO, len(stats.SiteLoad))
	for i, l := range stats.SiteLoad {
		dto.SiteLoad[i] = SiteLoadDTO{SiteID: l.SiteID, Name: l.Name, WeeklyHours: l.WeeklyHours}
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) monthKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := chi.URLParam(r, "month")
	year, month, err := planner.ParseMonthKey(key)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month key (use YYYY-MM)", err)
		return "", false
	}
	return planner.MonthKey(year, month), true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps stored-domain errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case planner.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, planner.ErrDuplicateSiteName):
		writeError(w, http.StatusConflict, message, err)
	case planner.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
