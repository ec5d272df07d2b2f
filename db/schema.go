// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Volunteers
CREATE TABLE IF NOT EXISTS volunteers (
    id SERIAL PRIMARY KEY,
    name_org TEXT NOT NULL CHECK (length(trim(name_org)) > 0),
    email TEXT,
    phone TEXT,
    pronouns TEXT,
    pseudonym TEXT,
    position TEXT CHECK (position IS NULL OR position IN ('member', 'volunteer', 'staff')),
    notes TEXT,
    opt_in_communication BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (name_org, email)
);

CREATE INDEX IF NOT EXISTS idx_volunteers_email ON volunteers(email);
CREATE INDEX IF NOT EXISTS idx_volunteers_position ON volunteers(position);

-- Roles, natural key (name, type)
CREATE TABLE IF NOT EXISTS roles (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL CHECK (length(trim(name)) > 0),
    type TEXT NOT NULL CHECK (type IN ('prior', 'current', 'future_interest')),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (name, type)
);

-- Cohorts, natural key (year, term)
CREATE TABLE IF NOT EXISTS cohorts (
    id SERIAL PRIMARY KEY,
    year INTEGER NOT NULL CHECK (year BETWEEN 1900 AND 2100),
    term TEXT NOT NULL CHECK (term IN ('Fall', 'Spring', 'Summer', 'Winter')),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (year, term)
);

-- Junction tables; a (volunteer, role/cohort) pair appears at most once
CREATE TABLE IF NOT EXISTS volunteer_roles (
    volunteer_id INTEGER NOT NULL REFERENCES volunteers(id) ON DELETE CASCADE,
    role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    PRIMARY KEY (volunteer_id, role_id)
);

CREATE INDEX IF NOT EXISTS idx_volunteer_roles_role ON volunteer_roles(role_id);

CREATE TABLE IF NOT EXISTS volunteer_cohorts (
    volunteer_id INTEGER NOT NULL REFERENCES volunteers(id) ON DELETE CASCADE,
    cohort_id INTEGER NOT NULL REFERENCES cohorts(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    PRIMARY KEY (volunteer_id, cohort_id)
);

CREATE INDEX IF NOT EXISTS idx_volunteer_cohorts_cohort ON volunteer_cohorts(cohort_id);
`
