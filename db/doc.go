// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - volunteers: Core volunteer records
  - roles: Named roles, unique on (name, type)
  - cohorts: Term/year cohorts, unique on (year, term)
  - volunteer_roles: Many-to-many volunteer/role memberships
  - volunteer_cohorts: Many-to-many volunteer/cohort memberships

# Relationships

	volunteers *──* roles   (via volunteer_roles)
	volunteers *──* cohorts (via volunteer_cohorts)

All foreign keys use ON DELETE CASCADE, so deleting a volunteer, role, or
cohort removes its junction rows.

# Constraints

  - volunteers.position, roles.type, and cohorts.term are CHECK-constrained
    to their closed enum sets
  - (name_org, email), (name, type), and (year, term) are unique
  - junction primary keys guarantee a membership pair appears at most once
*/
package db
