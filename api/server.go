/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/sites/*       Site management
  /api/employees/*   Employees, assignments
  /api/months/*      Monthly documents, overrides, extra jobs, sheets
  /api/holidays/*    Holiday calendar
  /api/stats/*       Dashboard statistics
  /api/scenarios/*   Demo scenario loading

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Site routes
		r.Route("/sites", func(r chi.Router) {
			r.Get("/", h.ListSites)
			r.Post("/", h.CreateSite)
			r.Get("/{id}", h.GetSite)
			r.Put("/{id}", h.UpdateSite)
			r.Delete("/{id}", h.DeleteSite)
		})

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
			r.Post("/{id}/assignments", h.AddAssignment)
			r.Put("/{id}/assignments/{ix}", h.UpdateAssignment)
			r.Delete("/{id}/assignments/{ix}", h.RemoveAssignment)
		})

		// Monthly document routes
		r.Route("/months/{month}", func(r chi.Router) {
			r.Get("/", h.GetMonth)
			r.Put("/", h.PutMonth)
			r.Put("/overrides/{empID}/{day}", h.PutOverride)
			r.Post("/extrajobs/{empID}", h.AddExtraJob)
			r.Post("/extrajobs/{empID}/{jobID}/lock", h.LockExtraJob)
			r.Post("/extrajobs/{empID}/{jobID}/unlock", h.UnlockExtraJob)
			r.Get("/sheet", h.GetSheet)
			r.Get("/allowances", h.GetAllowances)
		})

		// Holiday routes
		r.Get("/holidays/{year}", h.GetHolidays)

		// Stats routes
		r.Get("/stats/dashboard", h.GetDashboard)

		// Scenario routes (demo/dev data loading)
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
