// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/volunteer-hub/models"
	"github.com/danielhkuo/volunteer-hub/sets"
	"github.com/danielhkuo/volunteer-hub/store"
)

// Engine resolves filter clauses against the store and combines the
// per-clause identifier sets into a final volunteer result.
type Engine struct {
	store *store.Store
}

func NewEngine(st *store.Store) *Engine {
	return &Engine{store: st}
}

// FilterVolunteers validates the clause list, evaluates each clause
// concurrently into a set of volunteer ids, folds the sets per the global
// operator, and materializes the matching records.
//
// An empty clause list is the identity filter: every volunteer is
// returned. An empty combined set is a success with an empty list. Any
// store failure during clause evaluation aborts the whole operation.
func (e *Engine) FilterVolunteers(ctx context.Context, clauses []models.FilterClause, op string) ([]models.Volunteer, error) {
	cleaned, err := Validate(clauses, op)
	if err != nil {
		return nil, err
	}

	if len(cleaned) == 0 {
		return e.store.ListVolunteers(ctx)
	}

	// Clauses are independent; evaluate them concurrently. The first
	// failure cancels the siblings and no partial result is used.
	results := make([]sets.Set[int], len(cleaned))
	g, gctx := errgroup.WithContext(ctx)
	for i, clause := range cleaned {
		g.Go(func() error {
			ids, err := e.evaluate(gctx, clause)
			if err != nil {
				return err
			}
			results[i] = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	finalIDs := Combine(results, op)
	if finalIDs.Len() == 0 {
		return []models.Volunteer{}, nil
	}
	return e.store.VolunteersByIDs(ctx, finalIDs.Values())
}

func (e *Engine) evaluate(ctx context.Context, clause Clause) (sets.Set[int], error) {
	switch clause.Field {
	case "roles":
		return e.evaluateRoles(ctx, clause)
	case "cohorts":
		return e.evaluateCohorts(ctx, clause)
	default:
		return e.evaluateGeneral(ctx, clause)
	}
}

// evaluateGeneral matches a plain volunteer column. OR means membership
// (IN). AND across multiple distinct values is contradictory for a
// single-valued column, so it yields the empty set without a store call.
func (e *Engine) evaluateGeneral(ctx context.Context, clause Clause) (sets.Set[int], error) {
	if clause.MiniOp == OpOr {
		return e.store.VolunteerIDsIn(ctx, clause.Field, clause.Strings)
	}

	unique := sets.New(clause.Strings...)
	if unique.Len() > 1 {
		return sets.New[int](), nil
	}
	return e.store.VolunteerIDsEquals(ctx, clause.Field, clause.Strings[0])
}

// evaluateRoles matches volunteers through role membership. OR qualifies
// any volunteer with at least one requested role; AND requires the
// matched-role set to contain every requested role.
func (e *Engine) evaluateRoles(ctx context.Context, clause Clause) (sets.Set[int], error) {
	matched, err := e.store.RoleNamesByVolunteer(ctx, clause.Strings)
	if err != nil {
		return nil, err
	}
	return matchingIDs(matched, clause.MiniOp, clause.Strings), nil
}

// evaluateCohorts matches volunteers through cohort membership, keyed by
// the "Term-Year" string of each requested pair.
func (e *Engine) evaluateCohorts(ctx context.Context, clause Clause) (sets.Set[int], error) {
	matched, err := e.store.CohortKeysByVolunteer(ctx, clause.Cohorts)
	if err != nil {
		return nil, err
	}

	targets := make([]string, len(clause.Cohorts))
	for i, pair := range clause.Cohorts {
		targets[i] = pair.Key()
	}
	return matchingIDs(matched, clause.MiniOp, targets), nil
}

// matchingIDs filters a volunteer id -> matched keys mapping. With OR
// every id present qualifies; with AND only ids whose matched set is a
// superset of the targets qualify.
func matchingIDs(matched map[int]sets.Set[string], miniOp string, targets []string) sets.Set[int] {
	ids := sets.New[int]()
	for id, found := range matched {
		if miniOp == OpOr || found.ContainsAll(targets) {
			ids.Add(id)
		}
	}
	return ids
}

// Combine folds the per-clause id sets into one: intersection for a global
// AND, union for a global OR.
func Combine(idSets []sets.Set[int], op string) sets.Set[int] {
	if len(idSets) == 0 {
		return sets.New[int]()
	}

	acc := idSets[0]
	for _, s := range idSets[1:] {
		if op == OpAnd {
			acc = sets.Intersect(acc, s)
		} else {
			acc = sets.Union(acc, s)
		}
	}
	return acc
}
