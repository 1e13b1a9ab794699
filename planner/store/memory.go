// Package store provides planner.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/workforce-engine/planner"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	sites     map[string]planner.Site
	employees map[string]planner.Employee
	months    map[string]*planner.MonthlyData
	recurring map[string][]planner.ExtraJob
}

func NewMemory() *Memory {
	return &Memory{
		sites:     make(map[string]planner.Site),
		employees: make(map[string]planner.Employee),
		months:    make(map[string]*planner.MonthlyData),
		recurring: make(map[string][]planner.ExtraJob),
	}
}

var _ planner.Store = (*Memory)(nil)

// =============================================================================
// SITES
// =============================================================================

func (m *Memory) ListSites(_ context.Context) ([]planner.Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sites := make([]planner.Site, 0, len(m.sites))
	for _, s := range m.sites {
		sites = append(sites, s)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })
	return sites, nil
}

func (m *Memory) GetSite(_ context.Context, id string) (planner.Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	site, ok := m.sites[id]
	if !ok {
		return planner.Site{}, &planner.NotFoundError{Kind: "site", ID: id}
	}
	return site, nil
}

func (m *Memory) SaveSite(_ context.Context, site planner.Site) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.sites {
		if id != site.ID && existing.Name == site.Name {
			return planner.ErrDuplicateSiteName
		}
	}
	m.sites[site.ID] = site
	return nil
}

// DeleteSite removes the site and every assignment referencing it.
func (m *Memory) DeleteSite(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sites[id]; !ok {
		return &planner.NotFoundError{Kind: "site", ID: id}
	}
	delete(m.sites, id)

	for empID, emp := range m.employees {
		var kept []planner.Assignment
		for _, a := range emp.Assignments {
			if a.SiteID != id {
				kept = append(kept, a)
			}
		}
		emp.Assignments = kept
		m.employees[empID] = emp
	}
	return nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (m *Memory) ListEmployees(_ context.Context) ([]planner.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	employees := make([]planner.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].LastName != employees[j].LastName {
			return employees[i].LastName < employees[j].LastName
		}
		return employees[i].FirstName < employees[j].FirstName
	})
	return employees, nil
}

func (m *Memory) GetEmployee(_ context.Context, id string) (planner.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emp, ok := m.employees[id]
	if !ok {
		return planner.Employee{}, &planner.NotFoundError{Kind: "employee", ID: id}
	}
	return emp, nil
}

func (m *Memory) SaveEmployee(_ context.Context, emp planner.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.employees[emp.ID] = emp
	return nil
}

func (m *Memory) DeleteEmployee(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.employees[id]; !ok {
		return &planner.NotFoundError{Kind: "employee", ID: id}
	}
	delete(m.employees, id)
	delete(m.recurring, id)
	return nil
}

// =============================================================================
// MONTHLY DATA
// =============================================================================

func (m *Memory) GetMonth(_ context.Context, monthKey string) (*planner.MonthlyData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if data, ok := m.months[monthKey]; ok {
		return cloneMonthly(data), nil
	}
	return planner.NewMonthlyData(), nil
}

func (m *Memory) SaveMonth(_ context.Context, monthKey string, data *planner.MonthlyData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.months[monthKey] = cloneMonthly(data)
	return nil
}

func (m *Memory) RecurringJobs(_ context.Context) (map[string][]planner.ExtraJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]planner.ExtraJob, len(m.recurring))
	for id, jobs := range m.recurring {
		out[id] = append([]planner.ExtraJob(nil), jobs...)
	}
	return out, nil
}

func (m *Memory) SaveRecurringJobs(_ context.Context, employeeID string, jobs []planner.ExtraJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(jobs) == 0 {
		delete(m.recurring, employeeID)
		return nil
	}
	m.recurring[employeeID] = append([]planner.ExtraJob(nil), jobs...)
	return nil
}

// Reset wipes all stored data.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sites = make(map[string]planner.Site)
	m.employees = make(map[string]planner.Employee)
	m.months = make(map[string]*planner.MonthlyData)
	m.recurring = make(map[string][]planner.ExtraJob)
	return nil
}

// cloneMonthly deep-copies a monthly document so callers cannot mutate the
// stored state behind the lock.
func cloneMonthly(data *planner.MonthlyData) *planner.MonthlyData {
	if data == nil {
		return planner.NewMonthlyData()
	}
	out := planner.NewMonthlyData()
	for k, v := range data.Overrides {
		out.Overrides[k] = v
	}
	for k, v := range data.Notes {
		out.Notes[k] = v
	}
	for k, v := range data.Splits {
		out.Splits[k] = v
	}
	for k, jobs := range data.ExtraJobs {
		out.ExtraJobs[k] = append([]planner.ExtraJob(nil), jobs...)
	}
	for k, v := range data.SalaryTarget {
		out.SalaryTarget[k] = v
	}
	for k, v := range data.SalaryMode {
		out.SalaryMode[k] = v
	}
	return out
}
