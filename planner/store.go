/*
store.go - Persistence interfaces for the planner

PURPOSE:
  Defines the boundary between the pure computation core and persistence.
  The core itself never performs I/O; stores supply plain records that the
  computation functions consume synchronously. Reads and writes are the only async
  boundary in the system, and last-write-wins is acceptable on monthly
  documents (single-tenant, no concurrent mutation of one record within a
  process).

IMPLEMENTATIONS:
  - planner/store/memory.go: in-memory, for tests and dev mode
  - store/sqlite/sqlite.go:  production SQLite

CASCADE CONTRACT:
  DeleteSite removes the site AND every assignment referencing it, across
  all employees. Implementations must make this atomic.
*/
package planner

import "context"

// =============================================================================
// SITE STORE
// =============================================================================

type SiteStore interface {
	ListSites(ctx context.Context) ([]Site, error)
	GetSite(ctx context.Context, id string) (Site, error)

	// SaveSite inserts or updates. Names are unique; a conflicting insert
	// returns ErrDuplicateSiteName.
	SaveSite(ctx context.Context, site Site) error

	// DeleteSite removes the site and cascades removal of all assignments
	// referencing it.
	DeleteSite(ctx context.Context, id string) error
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)

	// SaveEmployee inserts or updates the employee together with its owned
	// assignments (full replacement of the assignment list).
	SaveEmployee(ctx context.Context, emp Employee) error

	DeleteEmployee(ctx context.Context, id string) error
}

// =============================================================================
// MONTHLY STORE
// =============================================================================

// MonthlyStore persists one MonthlyData document per "YYYY-MM" key, plus the
// global collection of locked recurring extra jobs.
type MonthlyStore interface {
	// GetMonth returns the document for the month key, or an empty document
	// when none was saved yet.
	GetMonth(ctx context.Context, monthKey string) (*MonthlyData, error)

	// SaveMonth replaces the document for the month key. Last write wins.
	SaveMonth(ctx context.Context, monthKey string, data *MonthlyData) error

	// RecurringJobs returns the locked extra jobs by employee ID.
	RecurringJobs(ctx context.Context) (map[string][]ExtraJob, error)

	// SaveRecurringJobs replaces the locked jobs of one employee.
	SaveRecurringJobs(ctx context.Context, employeeID string, jobs []ExtraJob) error
}

// Store is the full persistence surface the HTTP layer depends on.
type Store interface {
	SiteStore
	EmployeeStore
	MonthlyStore

	// Reset wipes all data. Used by demo scenario loading and tests.
	Reset(ctx context.Context) error
}
