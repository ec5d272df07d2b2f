// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filter

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/volunteer-hub/models"
	"github.com/danielhkuo/volunteer-hub/sets"
	"github.com/danielhkuo/volunteer-hub/store"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		name     string
		idSets   []sets.Set[int]
		op       string
		expected []int
	}{
		{
			name:     "AND intersects",
			idSets:   []sets.Set[int]{sets.New(1, 2, 3), sets.New(2, 3, 4), sets.New(3, 4, 5)},
			op:       OpAnd,
			expected: []int{3},
		},
		{
			name:     "OR unions",
			idSets:   []sets.Set[int]{sets.New(1, 2), sets.New(2, 3), sets.New(4)},
			op:       OpOr,
			expected: []int{1, 2, 3, 4},
		},
		{
			name:     "AND with empty member is empty",
			idSets:   []sets.Set[int]{sets.New(1, 2), sets.New[int]()},
			op:       OpAnd,
			expected: []int{},
		},
		{
			name:     "single set passes through",
			idSets:   []sets.Set[int]{sets.New(7, 8)},
			op:       OpAnd,
			expected: []int{7, 8},
		},
		{
			name:     "no sets is empty",
			idSets:   nil,
			op:       OpOr,
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(tt.idSets, tt.op).Values()
			sort.Ints(got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// A general AND clause with more than one distinct value can never match a
// single-valued column, so the engine must short-circuit to an empty result
// before touching the database. A nil connection proves no query runs.
func TestFilterVolunteersContradictoryAnd(t *testing.T) {
	engine := NewEngine(store.New(nil))

	volunteers, err := engine.FilterVolunteers(context.Background(), []models.FilterClause{
		{Field: "position", MiniOp: "AND", Values: []any{"member", "staff"}},
	}, OpAnd)

	require.NoError(t, err)
	assert.Equal(t, []models.Volunteer{}, volunteers)
}

func TestFilterVolunteersValidationShortCircuit(t *testing.T) {
	engine := NewEngine(store.New(nil))

	tests := []struct {
		name    string
		clauses []models.FilterClause
		op      string
		wantErr string
	}{
		{
			name:    "bad global op",
			clauses: []models.FilterClause{{Field: "position", MiniOp: "OR", Values: []any{"member"}}},
			op:      "NAND",
			wantErr: "invalid global operation",
		},
		{
			name:    "bad field",
			clauses: []models.FilterClause{{Field: "secrets", MiniOp: "OR", Values: []any{"x"}}},
			op:      OpAnd,
			wantErr: "invalid filter field name",
		},
		{
			name:    "bad cohort tuple",
			clauses: []models.FilterClause{{Field: "cohorts", MiniOp: "OR", Values: []any{[]any{"Autumn", "2024"}}}},
			op:      OpOr,
			wantErr: "invalid cohort filter values",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.FilterVolunteers(context.Background(), tt.clauses, tt.op)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Reason)
		})
	}
}

func TestMatchingIDs(t *testing.T) {
	matched := map[int]sets.Set[string]{
		1: sets.New("Mentor", "Tutor"),
		2: sets.New("Mentor"),
		3: sets.New("Tutor"),
	}

	t.Run("OR keeps every matched volunteer", func(t *testing.T) {
		ids := matchingIDs(matched, OpOr, []string{"Mentor", "Tutor"}).Values()
		sort.Ints(ids)
		assert.Equal(t, []int{1, 2, 3}, ids)
	})

	t.Run("AND requires every target", func(t *testing.T) {
		ids := matchingIDs(matched, OpAnd, []string{"Mentor", "Tutor"}).Values()
		assert.Equal(t, []int{1}, ids)
	})

	t.Run("AND with single target", func(t *testing.T) {
		ids := matchingIDs(matched, OpAnd, []string{"Mentor"}).Values()
		sort.Ints(ids)
		assert.Equal(t, []int{1, 2}, ids)
	})
}
