// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/volunteer-hub/models"
	"github.com/danielhkuo/volunteer-hub/testutil"
)

func strPtr(s string) *string { return &s }

func testVolunteer(name string) models.VolunteerInput {
	return models.VolunteerInput{
		NameOrg: name,
		Email:   strPtr(name + "@example.org"),
	}
}

func TestCreateVolunteerWithMemberships(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := New(db)
	ctx := context.Background()

	id, err := st.CreateVolunteerWithMemberships(ctx,
		testVolunteer("Alice"),
		models.RoleInput{Name: "Mentor", Type: models.RoleTypeCurrent},
		models.CohortInput{Year: 2024, Term: models.TermFall},
	)
	require.NoError(t, err)
	require.Greater(t, id, 0)

	// The volunteer, role, cohort, and both junction rows exist
	volunteer, err := st.GetVolunteer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", volunteer.NameOrg)
	assert.True(t, volunteer.OptInCommunication)

	roleID, err := st.LookupRole(ctx, "Mentor", models.RoleTypeCurrent)
	require.NoError(t, err)
	cohortID, err := st.LookupCohort(ctx, 2024, models.TermFall)
	require.NoError(t, err)

	var linked int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM volunteer_roles WHERE volunteer_id = $1 AND role_id = $2
	`, id, roleID).Scan(&linked)
	require.NoError(t, err)
	assert.Equal(t, 1, linked)

	err = db.QueryRow(`
		SELECT COUNT(*) FROM volunteer_cohorts WHERE volunteer_id = $1 AND cohort_id = $2
	`, id, cohortID).Scan(&linked)
	require.NoError(t, err)
	assert.Equal(t, 1, linked)
}

func TestCreateVolunteerReusesExistingRoleAndCohort(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := New(db)
	ctx := context.Background()

	role := models.RoleInput{Name: "Mentor", Type: models.RoleTypeCurrent}
	cohort := models.CohortInput{Year: 2024, Term: models.TermFall}

	_, err := st.CreateVolunteerWithMemberships(ctx, testVolunteer("Alice"), role, cohort)
	require.NoError(t, err)
	_, err = st.CreateVolunteerWithMemberships(ctx, testVolunteer("Bob"), role, cohort)
	require.NoError(t, err)

	// Both volunteers share one role row and one cohort row
	var roleCount, cohortCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM roles").Scan(&roleCount))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM cohorts").Scan(&cohortCount))
	assert.Equal(t, 1, roleCount)
	assert.Equal(t, 1, cohortCount)
}

func TestCreateVolunteerDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := New(db)
	ctx := context.Background()

	role := models.RoleInput{Name: "Mentor", Type: models.RoleTypeCurrent}
	cohort := models.CohortInput{Year: 2024, Term: models.TermFall}

	_, err := st.CreateVolunteerWithMemberships(ctx, testVolunteer("Alice"), role, cohort)
	require.NoError(t, err)

	_, err = st.CreateVolunteerWithMemberships(ctx, testVolunteer("Alice"), role, cohort)
	assert.ErrorIs(t, err, ErrDuplicateVolunteer)

	// The failed attempt left nothing behind
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM volunteers").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpdateVolunteer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := New(db)
	ctx := context.Background()
	id := testutil.CreateTestVolunteer(t, db, "Alice", "alice@example.org", models.PositionMember)

	updated, err := st.UpdateVolunteer(ctx, id, map[string]any{
		"position": models.PositionStaff,
		"notes":    "promoted",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Position)
	assert.Equal(t, models.PositionStaff, *updated.Position)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "promoted", *updated.Notes)

	// Nulling a field clears it
	updated, err = st.UpdateVolunteer(ctx, id, map[string]any{"notes": nil})
	require.NoError(t, err)
	assert.Nil(t, updated.Notes)

	_, err = st.UpdateVolunteer(ctx, 99999, map[string]any{"notes": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteVolunteerCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := New(db)
	ctx := context.Background()

	id := testutil.CreateTestVolunteer(t, db, "Alice", "alice@example.org", models.PositionMember)
	roleID := testutil.CreateTestRole(t, db, "Mentor", models.RoleTypeCurrent)
	testutil.AssignTestRole(t, db, id, roleID)

	require.NoError(t, st.DeleteVolunteer(ctx, id))

	var junctions int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM volunteer_roles").Scan(&junctions))
	assert.Equal(t, 0, junctions)

	// The role itself survives
	_, err := st.LookupRole(ctx, "Mentor", models.RoleTypeCurrent)
	assert.NoError(t, err)

	assert.ErrorIs(t, st.DeleteVolunteer(ctx, id), ErrNotFound)
}

func TestAssignRoleIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := New(db)
	ctx := context.Background()

	id := testutil.CreateTestVolunteer(t, db, "Alice", "alice@example.org", models.PositionMember)
	roleID := testutil.CreateTestRole(t, db, "Mentor", models.RoleTypeCurrent)

	require.NoError(t, st.AssignRole(ctx, id, roleID))
	require.NoError(t, st.AssignRole(ctx, id, roleID))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM volunteer_roles").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestVolunteerIDFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := New(db)
	ctx := context.Background()

	alice := testutil.CreateTestVolunteer(t, db, "Alice", "alice@example.org", models.PositionMember)
	bob := testutil.CreateTestVolunteer(t, db, "Bob", "bob@example.org", models.PositionStaff)
	carol := testutil.CreateTestVolunteer(t, db, "Carol", "carol@example.org", models.PositionMember)

	ids, err := st.VolunteerIDsEquals(ctx, "position", models.PositionMember)
	require.NoError(t, err)
	got := ids.Values()
	sort.Ints(got)
	assert.Equal(t, []int{alice, carol}, got)

	ids, err = st.VolunteerIDsIn(ctx, "name_org", []string{"Alice", "Bob"})
	require.NoError(t, err)
	got = ids.Values()
	sort.Ints(got)
	assert.Equal(t, []int{alice, bob}, got)

	ids, err = st.VolunteerIDsIn(ctx, "name_org", []string{"Nobody"})
	require.NoError(t, err)
	assert.Equal(t, 0, ids.Len())
}

func TestRoleNamesByVolunteer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := New(db)
	ctx := context.Background()

	alice := testutil.CreateTestVolunteer(t, db, "Alice", "alice@example.org", models.PositionMember)
	bob := testutil.CreateTestVolunteer(t, db, "Bob", "bob@example.org", models.PositionMember)

	mentor := testutil.CreateTestRole(t, db, "Mentor", models.RoleTypeCurrent)
	tutor := testutil.CreateTestRole(t, db, "Tutor", models.RoleTypeCurrent)
	testutil.AssignTestRole(t, db, alice, mentor)
	testutil.AssignTestRole(t, db, alice, tutor)
	testutil.AssignTestRole(t, db, bob, mentor)

	matched, err := st.RoleNamesByVolunteer(ctx, []string{"Mentor", "Tutor"})
	require.NoError(t, err)
	require.Len(t, matched, 2)

	assert.True(t, matched[alice].ContainsAll([]string{"Mentor", "Tutor"}))
	assert.True(t, matched[bob].Contains("Mentor"))
	assert.False(t, matched[bob].Contains("Tutor"))
}

func TestCohortKeysByVolunteer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := New(db)
	ctx := context.Background()

	alice := testutil.CreateTestVolunteer(t, db, "Alice", "alice@example.org", models.PositionMember)
	bob := testutil.CreateTestVolunteer(t, db, "Bob", "bob@example.org", models.PositionMember)

	fall := testutil.CreateTestCohort(t, db, 2024, models.TermFall)
	spring := testutil.CreateTestCohort(t, db, 2025, models.TermSpring)
	testutil.AssignTestCohort(t, db, alice, fall)
	testutil.AssignTestCohort(t, db, alice, spring)
	testutil.AssignTestCohort(t, db, bob, spring)

	matched, err := st.CohortKeysByVolunteer(ctx, []CohortPair{
		{Term: models.TermFall, Year: 2024},
		{Term: models.TermSpring, Year: 2025},
	})
	require.NoError(t, err)
	require.Len(t, matched, 2)

	assert.True(t, matched[alice].ContainsAll([]string{"Fall-2024", "Spring-2025"}))
	assert.True(t, matched[bob].Contains("Spring-2025"))
	assert.False(t, matched[bob].Contains("Fall-2024"))
}

func TestListVolunteersTable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := New(db)
	ctx := context.Background()

	alice := testutil.CreateTestVolunteer(t, db, "Alice", "alice@example.org", models.PositionMember)
	testutil.CreateTestVolunteer(t, db, "Bob", "bob@example.org", models.PositionStaff)

	mentor := testutil.CreateTestRole(t, db, "Mentor", models.RoleTypeCurrent)
	fall := testutil.CreateTestCohort(t, db, 2024, models.TermFall)
	testutil.AssignTestRole(t, db, alice, mentor)
	testutil.AssignTestCohort(t, db, alice, fall)

	entries, err := st.ListVolunteersTable(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := make(map[string]models.VolunteerTableEntry)
	for _, e := range entries {
		byName[e.Volunteer.NameOrg] = e
	}

	require.Len(t, byName["Alice"].Roles, 1)
	assert.Equal(t, "Mentor", byName["Alice"].Roles[0].Name)
	require.Len(t, byName["Alice"].Cohorts, 1)
	assert.Equal(t, 2024, byName["Alice"].Cohorts[0].Year)

	// Volunteers without memberships still appear, with empty lists
	assert.Empty(t, byName["Bob"].Roles)
	assert.Empty(t, byName["Bob"].Cohorts)
}

func TestVolunteersByIDsEmpty(t *testing.T) {
	st := New(nil)

	// No ids means no query; a nil connection proves it
	volunteers, err := st.VolunteersByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, volunteers)
}
