// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/volunteer-hub/models"
)

var volunteerColumns = []string{
	"id", "name_org", "email", "phone", "pronouns", "pseudonym",
	"position", "notes", "opt_in_communication", "created_at", "updated_at",
}

func scanVolunteer(row sq.RowScanner) (models.Volunteer, error) {
	var v models.Volunteer
	err := row.Scan(
		&v.ID, &v.NameOrg, &v.Email, &v.Phone, &v.Pronouns, &v.Pseudonym,
		&v.Position, &v.Notes, &v.OptInCommunication, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

func (s *Store) queryVolunteers(ctx context.Context, b sq.SelectBuilder) ([]models.Volunteer, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build volunteer query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteers: %w", err)
	}
	defer rows.Close()

	volunteers := []models.Volunteer{}
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
		}
		volunteers = append(volunteers, v)
	}
	return volunteers, rows.Err()
}

// ListVolunteers returns every volunteer record.
func (s *Store) ListVolunteers(ctx context.Context) ([]models.Volunteer, error) {
	return s.queryVolunteers(ctx, psql.Select(volunteerColumns...).From("volunteers"))
}

// VolunteersByIDs materializes full records for the given identifier set.
// Ordering of the result is store-defined.
func (s *Store) VolunteersByIDs(ctx context.Context, ids []int) ([]models.Volunteer, error) {
	if len(ids) == 0 {
		return []models.Volunteer{}, nil
	}
	return s.queryVolunteers(ctx, psql.Select(volunteerColumns...).
		From("volunteers").
		Where(sq.Eq{"id": ids}))
}

// GetVolunteer fetches one volunteer by id. Returns ErrNotFound when the
// row does not exist.
func (s *Store) GetVolunteer(ctx context.Context, id int) (models.Volunteer, error) {
	query, args, err := psql.Select(volunteerColumns...).
		From("volunteers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Volunteer{}, fmt.Errorf("failed to build volunteer query: %w", err)
	}

	v, err := scanVolunteer(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Volunteer{}, ErrNotFound
	}
	if err != nil {
		return models.Volunteer{}, fmt.Errorf("failed to query volunteer: %w", err)
	}
	return v, nil
}

// UpdateVolunteer applies a validated column patch to one volunteer and
// returns the updated record. Returns ErrNotFound when no row matches.
func (s *Store) UpdateVolunteer(ctx context.Context, id int, patch map[string]any) (models.Volunteer, error) {
	query, args, err := psql.Update("volunteers").
		SetMap(patch).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name_org, email, phone, pronouns, pseudonym, position, notes, opt_in_communication, created_at, updated_at").
		ToSql()
	if err != nil {
		return models.Volunteer{}, fmt.Errorf("failed to build volunteer update: %w", err)
	}

	v, err := scanVolunteer(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Volunteer{}, ErrNotFound
	}
	if err != nil {
		return models.Volunteer{}, fmt.Errorf("failed to update volunteer: %w", err)
	}
	return v, nil
}

// DeleteVolunteer removes a volunteer by id. Junction rows cascade.
// Returns ErrNotFound when the volunteer does not exist.
func (s *Store) DeleteVolunteer(ctx context.Context, id int) error {
	query, args, err := psql.Delete("volunteers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build volunteer delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete volunteer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListVolunteersTable returns every volunteer joined with its roles and
// cohorts.
func (s *Store) ListVolunteersTable(ctx context.Context) ([]models.VolunteerTableEntry, error) {
	volunteers, err := s.ListVolunteers(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]models.VolunteerTableEntry, len(volunteers))
	byID := make(map[int]*models.VolunteerTableEntry, len(volunteers))
	for i, v := range volunteers {
		entries[i] = models.VolunteerTableEntry{
			Volunteer: v,
			Roles:     []models.Role{},
			Cohorts:   []models.Cohort{},
		}
		byID[v.ID] = &entries[i]
	}

	roleQuery, roleArgs, err := psql.Select(
		"vr.volunteer_id", "r.id", "r.name", "r.type", "r.is_active", "r.created_at").
		From("volunteer_roles vr").
		Join("roles r ON r.id = vr.role_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build role join: %w", err)
	}

	roleRows, err := s.db.QueryContext(ctx, roleQuery, roleArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteer roles: %w", err)
	}
	defer roleRows.Close()

	for roleRows.Next() {
		var volunteerID int
		var r models.Role
		if err := roleRows.Scan(&volunteerID, &r.ID, &r.Name, &r.Type, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer role: %w", err)
		}
		if entry, ok := byID[volunteerID]; ok {
			entry.Roles = append(entry.Roles, r)
		}
	}
	if err := roleRows.Err(); err != nil {
		return nil, err
	}

	cohortQuery, cohortArgs, err := psql.Select(
		"vc.volunteer_id", "c.id", "c.year", "c.term", "c.is_active", "c.created_at").
		From("volunteer_cohorts vc").
		Join("cohorts c ON c.id = vc.cohort_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cohort join: %w", err)
	}

	cohortRows, err := s.db.QueryContext(ctx, cohortQuery, cohortArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteer cohorts: %w", err)
	}
	defer cohortRows.Close()

	for cohortRows.Next() {
		var volunteerID int
		var c models.Cohort
		if err := cohortRows.Scan(&volunteerID, &c.ID, &c.Year, &c.Term, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer cohort: %w", err)
		}
		if entry, ok := byID[volunteerID]; ok {
			entry.Cohorts = append(entry.Cohorts, c)
		}
	}
	return entries, cohortRows.Err()
}
