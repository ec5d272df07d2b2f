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

// ListCohorts returns every cohort.
func (s *Store) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	query, args, err := psql.Select("id", "year", "term", "is_active", "created_at").
		From("cohorts").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cohort query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohorts: %w", err)
	}
	defer rows.Close()

	cohorts := []models.Cohort{}
	for rows.Next() {
		var c models.Cohort
		if err := rows.Scan(&c.ID, &c.Year, &c.Term, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cohort: %w", err)
		}
		cohorts = append(cohorts, c)
	}
	return cohorts, rows.Err()
}

// CreateCohort inserts a cohort. Term must already be canonicalized.
func (s *Store) CreateCohort(ctx context.Context, input models.CohortInput) (models.Cohort, error) {
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	query, args, err := psql.Insert("cohorts").
		Columns("year", "term", "is_active").
		Values(input.Year, input.Term, active).
		Suffix("RETURNING id, year, term, is_active, created_at").
		ToSql()
	if err != nil {
		return models.Cohort{}, fmt.Errorf("failed to build cohort insert: %w", err)
	}

	var c models.Cohort
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.Year, &c.Term, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return models.Cohort{}, fmt.Errorf("failed to insert cohort: %w", err)
	}
	return c, nil
}

// DeleteCohort removes a cohort by its (year, term) natural key. Junction
// rows cascade. Returns ErrNotFound when no such cohort exists.
func (s *Store) DeleteCohort(ctx context.Context, year int, term string) error {
	query, args, err := psql.Delete("cohorts").
		Where(sq.Eq{"year": year, "term": term}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cohort delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete cohort: %w", err)
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

// LookupCohort resolves a cohort (year, term) natural key to its id.
// Lookup-only: returns ErrNotFound when absent, never creates.
func (s *Store) LookupCohort(ctx context.Context, year int, term string) (int, error) {
	query, args, err := psql.Select("id").
		From("cohorts").
		Where(sq.Eq{"year": year, "term": term}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build cohort lookup: %w", err)
	}

	var id int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up cohort: %w", err)
	}
	return id, nil
}

// AssignCohort links a volunteer to a cohort. Idempotent.
func (s *Store) AssignCohort(ctx context.Context, volunteerID, cohortID int) error {
	query, args, err := psql.Insert("volunteer_cohorts").
		Columns("volunteer_id", "cohort_id").
		Values(volunteerID, cohortID).
		Suffix("ON CONFLICT (volunteer_id, cohort_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cohort assignment: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to assign cohort: %w", err)
	}
	return nil
}
