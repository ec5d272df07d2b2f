// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/volunteer-hub/models"
)

// CreateVolunteerWithMemberships creates a volunteer together with its role
// and cohort memberships in a single transaction. The role and cohort are
// resolved get-or-create by natural key; membership rows are inserted
// idempotently. Either everything is applied or nothing is - a volunteer
// row without its links never survives.
//
// Returns the new volunteer id, or ErrDuplicateVolunteer when the
// volunteer insert hits a unique constraint.
func (s *Store) CreateVolunteerWithMemberships(
	ctx context.Context,
	volunteer models.VolunteerInput,
	role models.RoleInput,
	cohort models.CohortInput,
) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	roleActive := true
	if role.IsActive != nil {
		roleActive = *role.IsActive
	}

	// Get-or-create by natural key. The no-op DO UPDATE makes RETURNING
	// yield the id on the conflict path as well.
	var roleID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO roles (name, type, is_active)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, type) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, role.Name, role.Type, roleActive).Scan(&roleID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve role: %w", err)
	}

	cohortActive := true
	if cohort.IsActive != nil {
		cohortActive = *cohort.IsActive
	}

	var cohortID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO cohorts (year, term, is_active)
		VALUES ($1, $2, $3)
		ON CONFLICT (year, term) DO UPDATE SET term = EXCLUDED.term
		RETURNING id
	`, cohort.Year, cohort.Term, cohortActive).Scan(&cohortID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve cohort: %w", err)
	}

	optIn := true
	if volunteer.OptInCommunication != nil {
		optIn = *volunteer.OptInCommunication
	}

	var volunteerID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO volunteers
			(name_org, email, phone, pronouns, pseudonym, position, notes, opt_in_communication)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		volunteer.NameOrg, volunteer.Email, volunteer.Phone, volunteer.Pronouns,
		volunteer.Pseudonym, volunteer.Position, volunteer.Notes, optIn,
	).Scan(&volunteerID)
	if err != nil {
		if IsUniqueViolation(err) {
			return 0, ErrDuplicateVolunteer
		}
		return 0, fmt.Errorf("failed to insert volunteer: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO volunteer_roles (volunteer_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (volunteer_id, role_id) DO NOTHING
	`, volunteerID, roleID)
	if err != nil {
		return 0, fmt.Errorf("failed to link role: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO volunteer_cohorts (volunteer_id, cohort_id)
		VALUES ($1, $2)
		ON CONFLICT (volunteer_id, cohort_id) DO NOTHING
	`, volunteerID, cohortID)
	if err != nil {
		return 0, fmt.Errorf("failed to link cohort: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return volunteerID, nil
}
