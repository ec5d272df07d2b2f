// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/volunteer-hub/sets"
)

func (s *Store) queryVolunteerIDs(ctx context.Context, b sq.SelectBuilder) (sets.Set[int], error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build id query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteer ids: %w", err)
	}
	defer rows.Close()

	ids := sets.New[int]()
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan volunteer id: %w", err)
		}
		ids.Add(id)
	}
	return ids, rows.Err()
}

// VolunteerIDsEquals returns the ids of volunteers whose column equals the
// given value. The column must already be whitelisted by the caller.
func (s *Store) VolunteerIDsEquals(ctx context.Context, column, value string) (sets.Set[int], error) {
	return s.queryVolunteerIDs(ctx, psql.Select("id").
		From("volunteers").
		Where(sq.Eq{column: value}))
}

// VolunteerIDsIn returns the ids of volunteers whose column value is a
// member of values (IN semantics).
func (s *Store) VolunteerIDsIn(ctx context.Context, column string, values []string) (sets.Set[int], error) {
	return s.queryVolunteerIDs(ctx, psql.Select("id").
		From("volunteers").
		Where(sq.Eq{column: values}))
}

// RoleNamesByVolunteer joins volunteers to roles through the membership
// relation, restricted to the given role names, and returns a mapping from
// volunteer id to the set of matched role names.
func (s *Store) RoleNamesByVolunteer(ctx context.Context, names []string) (map[int]sets.Set[string], error) {
	query, args, err := psql.Select("vr.volunteer_id", "r.name").
		From("volunteer_roles vr").
		Join("roles r ON r.id = vr.role_id").
		Where(sq.Eq{"r.name": names}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build role filter query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query role memberships: %w", err)
	}
	defer rows.Close()

	matched := make(map[int]sets.Set[string])
	for rows.Next() {
		var volunteerID int
		var name string
		if err := rows.Scan(&volunteerID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan role membership: %w", err)
		}
		if matched[volunteerID] == nil {
			matched[volunteerID] = sets.New[string]()
		}
		matched[volunteerID].Add(name)
	}
	return matched, rows.Err()
}

// CohortPair identifies a cohort by its natural key.
type CohortPair struct {
	Term string
	Year int
}

// Key renders the pair as the "Term-Year" string used for superset checks.
func (p CohortPair) Key() string {
	return fmt.Sprintf("%s-%d", p.Term, p.Year)
}

// CohortKeysByVolunteer joins volunteers to cohorts through the membership
// relation, restricted to rows matching ANY of the requested (term, year)
// pairs, and returns a mapping from volunteer id to the set of matched
// "Term-Year" keys.
func (s *Store) CohortKeysByVolunteer(ctx context.Context, pairs []CohortPair) (map[int]sets.Set[string], error) {
	or := make(sq.Or, 0, len(pairs))
	for _, p := range pairs {
		or = append(or, sq.Eq{"c.term": p.Term, "c.year": p.Year})
	}

	query, args, err := psql.Select("vc.volunteer_id", "c.term", "c.year").
		From("volunteer_cohorts vc").
		Join("cohorts c ON c.id = vc.cohort_id").
		Where(or).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cohort filter query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohort memberships: %w", err)
	}
	defer rows.Close()

	matched := make(map[int]sets.Set[string])
	for rows.Next() {
		var volunteerID, year int
		var term string
		if err := rows.Scan(&volunteerID, &term, &year); err != nil {
			return nil, fmt.Errorf("failed to scan cohort membership: %w", err)
		}
		if matched[volunteerID] == nil {
			matched[volunteerID] = sets.New[string]()
		}
		matched[volunteerID].Add(CohortPair{Term: term, Year: year}.Key())
	}
	return matched, rows.Err()
}
