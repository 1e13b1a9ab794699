/*
Package sqlite provides a SQLite-backed implementation of planner.Store.

PURPOSE:
  Persists the three aggregates the planner works on:
  - Sites and employees (with their owned assignments) relationally
  - The per-month override document as a single JSON blob per month
  - Recurring extra jobs as a JSON blob per employee

KEY TABLES:
  sites:           Client locations, name uniqueness enforced here
  employees:       Employee records; schedules and split config as JSON
  assignments:     Owned child rows of employees, ordered by position
  monthly_data:    One JSON document per "YYYY-MM" key
  recurring_jobs:  Locked extra jobs per employee, as JSON

CASCADES:
  Assignments and recurring jobs cascade with their employee via
  ON DELETE CASCADE; foreign keys are switched on in the connection
  string, without them the cascades silently do nothing. The site
  reference stays weak (no foreign key), matching the planner's
  dangling-reference semantics, so site deletion removes the
  referencing assignment rows explicitly in one transaction.

DOCUMENT COLUMNS:
  MonthlyData and the assignment schedule/selector fields are stored as
  JSON rather than normalized tables: they are always read and written
  whole, exactly as the planner consumes them, and never queried by
  their inner keys.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of WAL mode. In production
  with PostgreSQL, database-level concurrency control handles this
  instead.

USAGE:
  store, err := sqlite.New("./data/workforce.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - planner/store.go: Interface definitions
  - planner/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/workforce-engine/planner"
)

// Store implements planner.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ planner.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Sites (client locations)
	CREATE TABLE IF NOT EXISTS sites (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		net_monthly_revenue TEXT NOT NULL DEFAULT '0',
		category TEXT NOT NULL DEFAULT ''
	);

	-- Site names identify sites to the office staff; duplicates are refused
	CREATE UNIQUE INDEX IF NOT EXISTS idx_sites_name ON sites(name);

	-- Employees
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		contract_hours_json TEXT NOT NULL DEFAULT '[0,0,0,0,0,0,0]',
		hourly_rate TEXT NOT NULL DEFAULT '0',
		target_salary TEXT NOT NULL DEFAULT '0',
		target_mode TEXT NOT NULL DEFAULT '',
		hidden_from_allowances BOOLEAN NOT NULL DEFAULT FALSE,
		split_json TEXT
	);

	-- Assignments (owned by employees, positional order preserved)
	CREATE TABLE IF NOT EXISTS assignments (
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		site_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL DEFAULT '',
		schedule_json TEXT NOT NULL DEFAULT '[0,0,0,0,0,0,0]',
		type TEXT NOT NULL DEFAULT '',
		forfait_amount TEXT NOT NULL DEFAULT '0',
		recurrence TEXT NOT NULL DEFAULT '',
		interval INTEGER NOT NULL DEFAULT 0,
		week_selector_json TEXT,
		note TEXT NOT NULL DEFAULT '',
		archived BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (employee_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_site ON assignments(site_id);

	-- Monthly override documents, one per "YYYY-MM"
	CREATE TABLE IF NOT EXISTS monthly_data (
		month_key TEXT PRIMARY KEY,
		doc_json TEXT NOT NULL
	);

	-- Recurring (locked) extra jobs per employee
	CREATE TABLE IF NOT EXISTS recurring_jobs (
		employee_id TEXT PRIMARY KEY REFERENCES employees(id) ON DELETE CASCADE,
		jobs_json TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SITES (planner.SiteStore interface)
// =============================================================================

func (s *Store) ListSites(ctx context.Context) ([]planner.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, address, city, net_monthly_revenue, category FROM sites ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	defer rows.Close()

	var sites []planner.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

func (s *Store) GetSite(ctx context.Context, id string) (planner.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, address, city, net_monthly_revenue, category FROM sites WHERE id = ?", id,
	)
	site, err := scanSite(row)
	if err == sql.ErrNoRows {
		return planner.Site{}, &planner.NotFoundError{Kind: "site", ID: id}
	}
	return site, err
}

func (s *Store) SaveSite(ctx context.Context, site planner.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO sites (id, name, address, city, net_monthly_revenue, category)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			address = excluded.address,
			city = excluded.city,
			net_monthly_revenue = excluded.net_monthly_revenue,
			category = excluded.category
	`

	_, err := s.db.ExecContext(ctx, query,
		site.ID, site.Name, site.Address, site.City,
		site.NetMonthlyRevenue.String(), string(site.Category),
	)
	if err != nil {
		if isUniqueConstraintError(err, "sites.name") {
			return planner.ErrDuplicateSiteName
		}
		return fmt.Errorf("failed to save site: %w", err)
	}
	return nil
}

// DeleteSite removes the site and every assignment referencing it.
func (s *Store) DeleteSite(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &planner.NotFoundError{Kind: "site", ID: id}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments WHERE site_id = ?", id); err != nil {
		return fmt.Errorf("failed to cascade assignments: %w", err)
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSite(row rowScanner) (planner.Site, error) {
	var site planner.Site
	var revenue, category string

	if err := row.Scan(&site.ID, &site.Name, &site.Address, &site.City, &revenue, &category); err != nil {
		return site, err
	}
	site.NetMonthlyRevenue = parseDecimal(revenue)
	site.Category = planner.SiteCategory(category)
	return site, nil
}

// =============================================================================
// EMPLOYEES (planner.EmployeeStore interface)
// =============================================================================

func (s *Store) ListEmployees(ctx context.Context) ([]planner.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, contract_hours_json, hourly_rate,
		       target_salary, target_mode, hidden_from_allowances, split_json
		FROM employees
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []planner.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range employees {
		assignments, err := s.loadAssignments(ctx, employees[i].ID)
		if err != nil {
			return nil, err
		}
		employees[i].Assignments = assignments
	}
	return employees, nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (planner.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, contract_hours_json, hourly_rate,
		       target_salary, target_mode, hidden_from_allowances, split_json
		FROM employees WHERE id = ?
	`, id)

	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return planner.Employee{}, &planner.NotFoundError{Kind: "employee", ID: id}
	}
	if err != nil {
		return planner.Employee{}, err
	}

	emp.Assignments, err = s.loadAssignments(ctx, id)
	return emp, err
}

// SaveEmployee replaces the whole employee record including its assignment
// list, atomically.
func (s *Store) SaveEmployee(ctx context.Context, emp planner.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	contractJSON, _ := json.Marshal(emp.ContractHours)
	var splitJSON any
	if emp.Split != nil {
		b, _ := json.Marshal(emp.Split)
		splitJSON = string(b)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO employees (id, first_name, last_name, contract_hours_json,
			hourly_rate, target_salary, target_mode, hidden_from_allowances, split_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			contract_hours_json = excluded.contract_hours_json,
			hourly_rate = excluded.hourly_rate,
			target_salary = excluded.target_salary,
			target_mode = excluded.target_mode,
			hidden_from_allowances = excluded.hidden_from_allowances,
			split_json = excluded.split_json
	`,
		emp.ID, emp.FirstName, emp.LastName, string(contractJSON),
		emp.HourlyRate.String(), emp.TargetSalary.String(), string(emp.TargetMode),
		emp.HiddenFromAllowances, splitJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments WHERE employee_id = ?", emp.ID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	for i, a := range emp.Assignments {
		scheduleJSON, _ := json.Marshal(a.Schedule)
		var selectorJSON any
		if len(a.WeekSelector) > 0 {
			b, _ := json.Marshal(a.WeekSelector)
			selectorJSON = string(b)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO assignments (employee_id, position, site_id, start_date, end_date,
				schedule_json, type, forfait_amount, recurrence, interval,
				week_selector_json, note, archived)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			emp.ID, i, a.SiteID, a.StartDate, a.EndDate,
			string(scheduleJSON), string(a.Type), a.ForfaitAmount.String(),
			string(a.Recurrence), a.Interval, selectorJSON, a.Note, a.Archived,
		)
		if err != nil {
			return fmt.Errorf("failed to save assignment: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &planner.NotFoundError{Kind: "employee", ID: id}
	}
	return nil
}

func scanEmployee(row rowScanner) (planner.Employee, error) {
	var emp planner.Employee
	var contractJSON, rate, target, mode string
	var splitJSON sql.NullString

	err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &contractJSON,
		&rate, &target, &mode, &emp.HiddenFromAllowances, &splitJSON)
	if err != nil {
		return emp, err
	}

	json.Unmarshal([]byte(contractJSON), &emp.ContractHours)
	emp.HourlyRate = parseDecimal(rate)
	emp.TargetSalary = parseDecimal(target)
	emp.TargetMode = planner.TargetMode(mode)
	if splitJSON.Valid && splitJSON.String != "" {
		var split planner.SplitConfig
		if json.Unmarshal([]byte(splitJSON.String), &split) == nil {
			emp.Split = &split
		}
	}
	return emp, nil
}

func (s *Store) loadAssignments(ctx context.Context, employeeID string) ([]planner.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT site_id, start_date, end_date, schedule_json, type, forfait_amount,
		       recurrence, interval, week_selector_json, note, archived
		FROM assignments
		WHERE employee_id = ?
		ORDER BY position
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []planner.Assignment
	for rows.Next() {
		var a planner.Assignment
		var scheduleJSON, typ, forfait, recurrence string
		var selectorJSON sql.NullString

		err := rows.Scan(&a.SiteID, &a.StartDate, &a.EndDate, &scheduleJSON,
			&typ, &forfait, &recurrence, &a.Interval, &selectorJSON, &a.Note, &a.Archived)
		if err != nil {
			return nil, err
		}

		json.Unmarshal([]byte(scheduleJSON), &a.Schedule)
		a.Type = planner.AssignmentType(typ)
		a.ForfaitAmount = parseDecimal(forfait)
		a.Recurrence = planner.RecurrenceType(recurrence)
		if selectorJSON.Valid && selectorJSON.String != "" {
			json.Unmarshal([]byte(selectorJSON.String), &a.WeekSelector)
		}

		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// =============================================================================
// MONTHLY DATA (planner.MonthlyStore interface)
// =============================================================================

func (s *Store) GetMonth(ctx context.Context, monthKey string) (*planner.MonthlyData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT doc_json FROM monthly_data WHERE month_key = ?", monthKey,
	).Scan(&docJSON)

	// An unsaved month reads back as an empty document.
	if err == sql.ErrNoRows {
		return planner.NewMonthlyData(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query month %s: %w", monthKey, err)
	}

	data := planner.NewMonthlyData()
	if err := json.Unmarshal([]byte(docJSON), data); err != nil {
		return nil, fmt.Errorf("failed to decode month %s: %w", monthKey, err)
	}
	return data, nil
}

func (s *Store) SaveMonth(ctx context.Context, monthKey string, data *planner.MonthlyData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data == nil {
		data = planner.NewMonthlyData()
	}
	docJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode month %s: %w", monthKey, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO monthly_data (month_key, doc_json) VALUES (?, ?)
		ON CONFLICT(month_key) DO UPDATE SET doc_json = excluded.doc_json
	`, monthKey, string(docJSON))
	if err != nil {
		return fmt.Errorf("failed to save month %s: %w", monthKey, err)
	}
	return nil
}

func (s *Store) RecurringJobs(ctx context.Context) (map[string][]planner.ExtraJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT employee_id, jobs_json FROM recurring_jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring jobs: %w", err)
	}
	defer rows.Close()

	out := map[string][]planner.ExtraJob{}
	for rows.Next() {
		var employeeID, jobsJSON string
		if err := rows.Scan(&employeeID, &jobsJSON); err != nil {
			return nil, err
		}
		var jobs []planner.ExtraJob
		if err := json.Unmarshal([]byte(jobsJSON), &jobs); err != nil {
			return nil, fmt.Errorf("failed to decode recurring jobs for %s: %w", employeeID, err)
		}
		out[employeeID] = jobs
	}
	return out, rows.Err()
}

func (s *Store) SaveRecurringJobs(ctx context.Context, employeeID string, jobs []planner.ExtraJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(jobs) == 0 {
		_, err := s.db.ExecContext(ctx, "DELETE FROM recurring_jobs WHERE employee_id = ?", employeeID)
		return err
	}

	jobsJSON, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("failed to encode recurring jobs: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recurring_jobs (employee_id, jobs_json) VALUES (?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET jobs_json = excluded.jobs_json
	`, employeeID, string(jobsJSON))
	if err != nil {
		return fmt.Errorf("failed to save recurring jobs: %w", err)
	}
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"assignments", "recurring_jobs", "monthly_data", "employees", "sites"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func parseDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isUniqueConstraintError(err error, index string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), index)
}
