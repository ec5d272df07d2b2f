// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the relation store adapter over Postgres.

All SQL lives here, built with squirrel and executed through database/sql
with lib/pq. Handlers and the filter engine never touch the database
directly.

# Construction

The caller owns the database handle and its lifecycle:

	st := store.New(dbConn)

# Query Surface

Volunteer queries used by the filter engine:

  - VolunteerIDsEquals / VolunteerIDsIn: equality and membership filters on
    a whitelisted volunteer column
  - RoleNamesByVolunteer: inner join through volunteer_roles, restricted to
    role names, returning volunteer id -> matched role names
  - CohortKeysByVolunteer: inner join through volunteer_cohorts with a
    disjunctive (term, year) pre-filter, returning volunteer id -> matched
    "Term-Year" keys
  - VolunteersByIDs: materializes full records for a final id set

CRUD:

  - ListVolunteers / GetVolunteer / UpdateVolunteer / DeleteVolunteer
  - ListVolunteersTable: volunteers joined with roles and cohorts
  - CreateRoles / ListRoles / DeleteRole
  - CreateCohort / ListCohorts / DeleteCohort

# Existence Resolution

Natural keys resolve to internal ids two ways:

  - LookupRole / LookupCohort: lookup-only, ErrNotFound when absent -
    update paths never silently create
  - CreateVolunteerWithMemberships: get-or-create inside one transaction
    for the create path

# Errors

  - ErrNotFound: referenced row does not exist
  - ErrDuplicateVolunteer: unique violation on volunteer creation
  - IsUniqueViolation: detects Postgres SQLSTATE 23505 via pq.Error

Everything else is wrapped with context and surfaces as a store failure.
*/
package store
