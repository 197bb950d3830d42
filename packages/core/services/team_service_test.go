package services

import (
	"testing"

	"core/apperr"
	"core/models"
	"core/scoping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeamForcePinsStaff(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	beta := seedTournament(t, db, "Beta", "beta")
	svc := NewTeamService(db, scoping.NewRegistry())

	// The request carries no tournament; the pin supplies it.
	team, err := svc.CreateTeam(pinnedTo(alpha.ID), models.CreateTeamRequest{Name: "Robins"})
	require.NoError(t, err)
	assert.Equal(t, alpha.ID, team.TournamentID)

	// Even a forged tournament in the request cannot escape the pin.
	team, err = svc.CreateTeam(pinnedTo(alpha.ID), models.CreateTeamRequest{
		Name:         "Sneaky",
		TournamentID: &beta.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, alpha.ID, team.TournamentID)
}

func TestCreateTeamUnpinnedStaffRejected(t *testing.T) {
	db := setupTestDB(t)
	seedTournament(t, db, "Alpha", "alpha")
	svc := NewTeamService(db, scoping.NewRegistry())

	_, err := svc.CreateTeam(scoping.Caller{UserID: 2}, models.CreateTeamRequest{Name: "Orphans"})
	assert.ErrorIs(t, err, apperr.ErrNoTournament)
}

func TestCreateTeamSuperuserRequiresTournament(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	svc := NewTeamService(db, scoping.NewRegistry())

	_, err := svc.CreateTeam(superuser(), models.CreateTeamRequest{Name: "Nowhere"})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	team, err := svc.CreateTeam(superuser(), models.CreateTeamRequest{
		Name:         "Somewhere",
		TournamentID: &alpha.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, alpha.ID, team.TournamentID)
}

func TestCreateTeamSlugUniquePerTournament(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	beta := seedTournament(t, db, "Beta", "beta")
	svc := NewTeamService(db, scoping.NewRegistry())

	_, err := svc.CreateTeam(pinnedTo(alpha.ID), models.CreateTeamRequest{Name: "Robins", Slug: "robins"})
	require.NoError(t, err)

	_, err = svc.CreateTeam(pinnedTo(alpha.ID), models.CreateTeamRequest{Name: "Robins II", Slug: "robins"})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Map(), "slug")

	// The same slug is free in another tournament.
	_, err = svc.CreateTeam(pinnedTo(beta.ID), models.CreateTeamRequest{Name: "Robins", Slug: "robins"})
	assert.NoError(t, err)
}

func TestCreateTeamIdentityLinkedOncePerTournament(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	identity := models.TeamIdentity{Name: "Robins"}
	require.NoError(t, db.Create(&identity).Error)
	svc := NewTeamService(db, scoping.NewRegistry())

	_, err := svc.CreateTeam(pinnedTo(alpha.ID), models.CreateTeamRequest{
		Name:       "Robins 2026",
		IdentityID: &identity.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateTeam(pinnedTo(alpha.ID), models.CreateTeamRequest{
		Name:       "Robins bis",
		IdentityID: &identity.ID,
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Map(), "identity")
}

func TestGetTeamOutsidePinIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	beta := seedTournament(t, db, "Beta", "beta")
	other := seedTeam(t, db, beta.ID, "Foreign")
	svc := NewTeamService(db, scoping.NewRegistry())

	// A record of another tournament and a missing record look the same.
	_, err := svc.GetTeam(pinnedTo(alpha.ID), other.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.GetTeam(pinnedTo(alpha.ID), 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListTeamsScopedAndPaginated(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	beta := seedTournament(t, db, "Beta", "beta")
	seedTeam(t, db, alpha.ID, "A1")
	seedTeam(t, db, alpha.ID, "A2")
	seedTeam(t, db, alpha.ID, "A3")
	seedTeam(t, db, beta.ID, "B1")
	svc := NewTeamService(db, scoping.NewRegistry())

	page, err := svc.ListTeams(pinnedTo(alpha.ID), 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "A1", page.Data[0].Name)

	all, err := svc.ListTeams(superuser(), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 4, all.Total)
}

func TestUpdateTeamClearsSlug(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	svc := NewTeamService(db, scoping.NewRegistry())

	team, err := svc.CreateTeam(pinnedTo(alpha.ID), models.CreateTeamRequest{Name: "Robins", Slug: "robins"})
	require.NoError(t, err)

	empty := ""
	updated, err := svc.UpdateTeam(pinnedTo(alpha.ID), team.ID, models.UpdateTeamRequest{Slug: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Slug)
}

func TestDeleteTeamOutsidePinIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	beta := seedTournament(t, db, "Beta", "beta")
	other := seedTeam(t, db, beta.ID, "Foreign")
	svc := NewTeamService(db, scoping.NewRegistry())

	err := svc.DeleteTeam(pinnedTo(alpha.ID), other.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// The record survives.
	var count int64
	require.NoError(t, db.Model(&models.Team{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
