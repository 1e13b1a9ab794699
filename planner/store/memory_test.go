package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce-engine/planner"
	"github.com/warp/workforce-engine/planner/store"
)

func TestMemory_Sites(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveSite(ctx, planner.Site{ID: "s2", Name: "Condominio Navigli"}))
	require.NoError(t, m.SaveSite(ctx, planner.Site{ID: "s1", Name: "Uffici Brera"}))

	sites, err := m.ListSites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "Condominio Navigli", sites[0].Name, "listing is name-sorted")

	got, err := m.GetSite(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Uffici Brera", got.Name)

	_, err = m.GetSite(ctx, "missing")
	assert.True(t, planner.IsNotFound(err))
}

func TestMemory_DuplicateSiteName(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveSite(ctx, planner.Site{ID: "s1", Name: "Uffici Brera"}))

	err := m.SaveSite(ctx, planner.Site{ID: "s2", Name: "Uffici Brera"})
	assert.True(t, errors.Is(err, planner.ErrDuplicateSiteName))

	// Re-saving the same site under its own name is an update, not a clash.
	assert.NoError(t, m.SaveSite(ctx, planner.Site{ID: "s1", Name: "Uffici Brera", City: "Milano"}))
}

func TestMemory_DeleteSiteCascades(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveSite(ctx, planner.Site{ID: "s1", Name: "Uffici Brera"}))
	require.NoError(t, m.SaveEmployee(ctx, planner.Employee{
		ID: "e1", LastName: "Rossi",
		Assignments: []planner.Assignment{
			{SiteID: "s1", StartDate: "2024-01-01"},
			{SiteID: "s2", StartDate: "2024-01-01"},
		},
	}))

	require.NoError(t, m.DeleteSite(ctx, "s1"))

	emp, err := m.GetEmployee(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, emp.Assignments, 1, "assignments on the deleted site are removed")
	assert.Equal(t, "s2", emp.Assignments[0].SiteID)

	assert.True(t, planner.IsNotFound(m.DeleteSite(ctx, "s1")))
}

func TestMemory_Employees(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveEmployee(ctx, planner.Employee{ID: "e1", FirstName: "Mario", LastName: "Rossi"}))
	require.NoError(t, m.SaveEmployee(ctx, planner.Employee{ID: "e2", FirstName: "Anna", LastName: "Bianchi"}))
	require.NoError(t, m.SaveRecurringJobs(ctx, "e1", []planner.ExtraJob{{ID: "j1", Locked: true}}))

	emps, err := m.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, emps, 2)
	assert.Equal(t, "Bianchi", emps[0].LastName, "listing is last-name-sorted")

	require.NoError(t, m.DeleteEmployee(ctx, "e1"))
	_, err = m.GetEmployee(ctx, "e1")
	assert.True(t, planner.IsNotFound(err))

	jobs, err := m.RecurringJobs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, jobs, "e1", "recurring jobs go with the employee")
}

func TestMemory_MonthRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	// An unsaved month reads back as an empty document, never an error.
	data, err := m.GetMonth(ctx, "2024-03")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Empty(t, data.Overrides)

	data.Overrides[planner.OverrideKey("e1", 4)] = planner.AttendanceRecord{Type: planner.AttendanceFerie}
	data.Notes["e1-4"] = "ponte"
	require.NoError(t, m.SaveMonth(ctx, "2024-03", data))

	got, err := m.GetMonth(ctx, "2024-03")
	require.NoError(t, err)
	assert.Equal(t, planner.AttendanceFerie, got.Overrides[planner.OverrideKey("e1", 4)].Type)
	assert.Equal(t, "ponte", got.Notes["e1-4"])
}

func TestMemory_MonthCloneIsolation(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	data := planner.NewMonthlyData()
	data.Notes["e1-1"] = "original"
	require.NoError(t, m.SaveMonth(ctx, "2024-03", data))

	// Mutating either the saved-in document or a read-back copy must not
	// leak into the stored state.
	data.Notes["e1-1"] = "mutated after save"
	first, err := m.GetMonth(ctx, "2024-03")
	require.NoError(t, err)
	assert.Equal(t, "original", first.Notes["e1-1"])

	first.Notes["e1-1"] = "mutated after read"
	second, err := m.GetMonth(ctx, "2024-03")
	require.NoError(t, err)
	assert.Equal(t, "original", second.Notes["e1-1"])
}

func TestMemory_RecurringJobsRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	jobs := []planner.ExtraJob{{ID: "j1", Description: "Vetri", Locked: true, StartMonth: "2024-02"}}
	require.NoError(t, m.SaveRecurringJobs(ctx, "e1", jobs))

	got, err := m.RecurringJobs(ctx)
	require.NoError(t, err)
	require.Len(t, got["e1"], 1)
	assert.Equal(t, "Vetri", got["e1"][0].Description)

	// Saving an empty list clears the entry.
	require.NoError(t, m.SaveRecurringJobs(ctx, "e1", nil))
	got, err = m.RecurringJobs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, got, "e1")
}
