// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Volunteer Hub API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db)

# Endpoints

Health:

	GET /health

Volunteers:

	POST   /volunteers        - Create (atomic, with role + cohort)
	GET    /volunteers        - List all
	POST   /volunteers/filter - Multi-criteria filter
	GET    /volunteers/table  - List joined with roles and cohorts
	GET    /volunteers/{id}   - Get one
	PATCH  /volunteers/{id}   - Partial update
	DELETE /volunteers/{id}   - Delete

Membership assignment:

	POST /volunteers/{id}/roles   - Assign existing role
	POST /volunteers/{id}/cohorts - Assign existing cohort

Roles:

	POST   /roles - Create one or many
	GET    /roles - List all
	DELETE /roles - Delete by (name, type)

Cohorts:

	POST   /cohorts - Create
	GET    /cohorts - List all
	DELETE /cohorts - Delete by (year, term)

# Handler Initialization

The router builds one store.Store over the database handle and injects it
into every handler:

	st := store.New(db)
	volunteerHandler := handlers.NewVolunteerHandler(st)
*/
package router
