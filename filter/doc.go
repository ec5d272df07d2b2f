// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package filter implements the multi-criteria filter composition engine.

A filter is a list of clauses plus a global boolean operator. Each clause
names a field (a volunteer column, "roles", or "cohorts"), carries its own
AND/OR mini-operator, and a list of values.

# Pipeline

	Validate -> evaluate each clause (concurrently) -> Combine -> fetch

Validate rejects malformed input before any store access: unknown fields,
bad operators, empty or mis-shaped value lists, bad cohort tuples. It
returns normalized clauses (lower-cased fields, upper-cased operators,
title-cased cohort terms).

Each clause resolves independently to a set of volunteer ids:

  - General column, OR: ids whose column value is IN the values.
  - General column, AND: a single-valued column cannot equal two distinct
    values, so more than one distinct value yields the empty set; exactly
    one is an equality match.
  - Roles: join through the membership relation restricted to the
    requested names. OR keeps every matched volunteer; AND keeps those
    whose matched names contain every requested name.
  - Cohorts: same shape, keyed by "Term-Year" strings, with a disjunctive
    (term, year) pre-filter at the store.

Combine folds the id sets with set intersection (global AND) or union
(global OR). The zero-clause filter is the identity: all volunteers.

# Errors

Validation failures are *ValidationError and never reach the store. A
store failure in any clause aborts the whole operation; partial results
are never combined.
*/
package filter
