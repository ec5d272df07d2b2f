// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Volunteer Hub API.

# Handler Types

Each handler is a struct with a store dependency:

  - VolunteerHandler: Volunteer CRUD, table listing, membership assignment
  - FilterHandler: Multi-criteria volunteer filtering
  - RoleHandler: Role CRUD by (name, type) natural key
  - CohortHandler: Cohort CRUD by (year, term) natural key

Handlers are created via constructor functions that accept *store.Store:

	volunteerHandler := handlers.NewVolunteerHandler(st)

# Volunteer Lifecycle

	POST   /volunteers        → Create (atomic, with role + cohort get-or-create)
	GET    /volunteers        → List
	GET    /volunteers/table  → Table (joined with roles and cohorts)
	GET    /volunteers/{id}   → Get
	PATCH  /volunteers/{id}   → Update (whitelisted partial patch)
	DELETE /volunteers/{id}   → Delete (memberships cascade)

Membership assignment is lookup-only - the role or cohort must already
exist:

	POST /volunteers/{id}/roles   → AssignRole
	POST /volunteers/{id}/cohorts → AssignCohort

# Filtering

POST /volunteers/filter takes a clause list and a global operator and
delegates to the filter engine. Validation failures are 400s before any
database access; an empty clause list returns every volunteer.

# Error Mapping

  - malformed input        → 400 {"error": "..."}
  - missing referenced row → 404
  - duplicate volunteer    → 409 (unique violation translated)
  - store failure          → 500
*/
package handlers
