// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateVolunteerRequest: volunteer + role + cohort for atomic creation
  - FilterRequest: clause list and global operator for the filter endpoint
  - RoleInput / CohortInput: natural-key inputs for roles and cohorts
  - AssignRoleRequest / AssignCohortRequest: membership assignment

# Response Types

Types for JSON responses:

  - DataResponse: standard {"data": ...} success envelope
  - ErrorResponse: standard {"error": "..."} failure envelope
  - CreateVolunteerResponse: id of the created volunteer
  - DeleteVolunteerResponse: id and confirmation message

# Domain Types

Internal data structures mirroring the database schema:

  - Volunteer: core volunteer record with contact and opt-in fields
  - Role: named role with type (prior/current/future_interest)
  - Cohort: (year, term) cohort with active flag
  - VolunteerTableEntry: volunteer joined with its roles and cohorts

# Enums

Closed value sets are validated before persistence:

  - Position: member, volunteer, staff
  - Role type: prior, current, future_interest
  - Cohort term: Fall, Spring, Summer, Winter (case-insensitive on input,
    canonicalized to title case via CanonicalTerm)
*/
package models
