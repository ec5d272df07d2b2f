// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/volunteer-hub/handlers"
	"github.com/danielhkuo/volunteer-hub/middleware"
	"github.com/danielhkuo/volunteer-hub/store"
)

func NewRouter(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	st := store.New(db)

	// Initialize handlers
	volunteerHandler := handlers.NewVolunteerHandler(st)
	filterHandler := handlers.NewFilterHandler(st)
	roleHandler := handlers.NewRoleHandler(st)
	cohortHandler := handlers.NewCohortHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Volunteers
	mux.HandleFunc("POST /volunteers", middleware.WithLogging(volunteerHandler.Create))
	mux.HandleFunc("GET /volunteers", middleware.WithLogging(volunteerHandler.List))
	mux.HandleFunc("POST /volunteers/filter", middleware.WithLogging(filterHandler.Filter))
	mux.HandleFunc("GET /volunteers/table", middleware.WithLogging(volunteerHandler.Table))
	mux.HandleFunc("GET /volunteers/{id}", middleware.WithLogging(volunteerHandler.Get))
	mux.HandleFunc("PATCH /volunteers/{id}", middleware.WithLogging(volunteerHandler.Update))
	mux.HandleFunc("DELETE /volunteers/{id}", middleware.WithLogging(volunteerHandler.Delete))

	// Membership assignment (lookup-only)
	mux.HandleFunc("POST /volunteers/{id}/roles", middleware.WithLogging(volunteerHandler.AssignRole))
	mux.HandleFunc("POST /volunteers/{id}/cohorts", middleware.WithLogging(volunteerHandler.AssignCohort))

	// Roles
	mux.HandleFunc("POST /roles", middleware.WithLogging(roleHandler.Create))
	mux.HandleFunc("GET /roles", middleware.WithLogging(roleHandler.List))
	mux.HandleFunc("DELETE /roles", middleware.WithLogging(roleHandler.Delete))

	// Cohorts
	mux.HandleFunc("POST /cohorts", middleware.WithLogging(cohortHandler.Create))
	mux.HandleFunc("GET /cohorts", middleware.WithLogging(cohortHandler.List))
	mux.HandleFunc("DELETE /cohorts", middleware.WithLogging(cohortHandler.Delete))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("volunteer-hub API v1"))
	})

	return mux
}
