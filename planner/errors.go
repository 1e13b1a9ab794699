/*
errors.go - Centralized error types for the planner core

PURPOSE:
  All error types in one place for consistency and discoverability.
  The HTTP layer maps these onto status codes; the core itself never
  raises user-facing errors from pure computations: malformed scheduling
  data degrades to "never active" instead of failing the whole sheet.

ERROR CATEGORIES:
  1. Lookup errors  - Missing employees, sites, months
  2. Input errors   - Malformed dates, month keys, duplicate names
  3. Store errors   - Persistence-level failures wrap these

USAGE:
  if errors.Is(err, planner.ErrSiteNotFound) { ... 404 ... }
*/
package planner

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrSiteNotFound is returned when a referenced site doesn't exist.
	ErrSiteNotFound = errors.New("site not found")

	// ErrAssignmentNotFound is returned for an out-of-range assignment index.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrExtraJobNotFound is returned when a referenced extra job doesn't exist.
	ErrExtraJobNotFound = errors.New("extra job not found")

	// ErrInvalidDate is returned for strings that are not ISO dates.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidMonth is returned for strings that are not "YYYY-MM" keys.
	ErrInvalidMonth = errors.New("invalid month key")

	// ErrDuplicateSiteName is returned when creating a site whose name is
	// already taken. Site names double as labels on printed sheets, so the
	// store keeps them unique.
	ErrDuplicateSiteName = errors.New("duplicate site name")

	// ErrInvalidTimeDetails is returned when clock-in/out/break times cannot
	// produce a non-negative worked duration.
	ErrInvalidTimeDetails = errors.New("invalid time details")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError reports which record a lookup missed.
type NotFoundError struct {
	Kind string // "employee", "site", "extra job"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	switch e.Kind {
	case "employee":
		return ErrEmployeeNotFound
	case "site":
		return ErrSiteNotFound
	case "extra job":
		return ErrExtraJobNotFound
	default:
		return nil
	}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrSiteNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrExtraJobNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrDuplicateSiteName) ||
		errors.Is(err, ErrInvalidTimeDetails)
}
