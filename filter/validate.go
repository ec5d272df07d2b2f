// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"strconv"
	"strings"

	"github.com/danielhkuo/volunteer-hub/models"
	"github.com/danielhkuo/volunteer-hub/store"
)

// Global and per-clause boolean operators
const (
	OpAnd = "AND"
	OpOr  = "OR"
)

// Fields a clause may filter on: the volunteer columns plus the two
// relation keywords.
var allowedFields = map[string]struct{}{
	"name_org":             {},
	"pseudonym":            {},
	"pronouns":             {},
	"email":                {},
	"phone":                {},
	"position":             {},
	"opt_in_communication": {},
	"notes":                {},
	"created_at":           {},
	"updated_at":           {},
	"id":                   {},
	"roles":                {},
	"cohorts":              {},
}

const (
	minCohortYear = 1900
	maxCohortYear = 2100
)

// ValidationError is a malformed-input error detected before any store
// access. Always recoverable by the caller correcting the input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// Clause is one validated and normalized filter criterion. Exactly one of
// Strings or Cohorts is populated, depending on Field.
type Clause struct {
	Field   string
	MiniOp  string
	Strings []string
	Cohorts []store.CohortPair
}

// Validate statically checks a raw clause list and global operator before
// any store access. Fields are lower-cased and mini-operators upper-cased
// in the returned clauses; cohort terms are canonicalized to title case.
// The first failing check wins: global operator, then per clause (in input
// order) mini-operator, field, values.
func Validate(clauses []models.FilterClause, op string) ([]Clause, error) {
	if op != OpAnd && op != OpOr {
		return nil, invalid("invalid global operation")
	}

	cleaned := make([]Clause, 0, len(clauses))
	for _, raw := range clauses {
		miniOp := strings.ToUpper(raw.MiniOp)
		if miniOp != OpAnd && miniOp != OpOr {
			return nil, invalid("invalid filter mini-operation")
		}

		field := strings.ToLower(raw.Field)
		if _, ok := allowedFields[field]; !ok {
			return nil, invalid("invalid filter field name")
		}

		if len(raw.Values) == 0 {
			return nil, invalid("invalid filter values")
		}

		clause := Clause{Field: field, MiniOp: miniOp}
		if field == "cohorts" {
			pairs, err := parseCohortValues(raw.Values)
			if err != nil {
				return nil, err
			}
			clause.Cohorts = pairs
		} else {
			strs, err := parseStringValues(raw.Values)
			if err != nil {
				return nil, err
			}
			clause.Strings = strs
		}
		cleaned = append(cleaned, clause)
	}

	return cleaned, nil
}

func parseStringValues(values []any) ([]string, error) {
	strs := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, invalid("invalid general or role filter values")
		}
		strs = append(strs, s)
	}
	return strs, nil
}

// parseCohortValues checks that every value is a [term, year] tuple with a
// valid term and an integer year in [1900, 2100]. Years arrive as JSON
// strings or numbers.
func parseCohortValues(values []any) ([]store.CohortPair, error) {
	pairs := make([]store.CohortPair, 0, len(values))
	for _, v := range values {
		tuple, ok := v.([]any)
		if !ok || len(tuple) != 2 {
			return nil, invalid("invalid cohort filter values")
		}

		rawTerm, ok := tuple[0].(string)
		if !ok {
			return nil, invalid("invalid cohort filter values")
		}
		term, ok := models.CanonicalTerm(rawTerm)
		if !ok {
			return nil, invalid("invalid cohort filter values")
		}

		year, ok := parseYear(tuple[1])
		if !ok || year < minCohortYear || year > maxCohortYear {
			return nil, invalid("invalid cohort filter values")
		}

		pairs = append(pairs, store.CohortPair{Term: term, Year: year})
	}
	return pairs, nil
}

func parseYear(v any) (int, bool) {
	switch y := v.(type) {
	case string:
		year, err := strconv.Atoi(strings.TrimSpace(y))
		return year, err == nil
	case float64:
		// JSON numbers decode as float64
		year := int(y)
		return year, float64(year) == y
	}
	return 0, false
}
