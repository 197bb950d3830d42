package services

import (
	"testing"
	"time"

	"core/apperr"
	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityEndpointsAreSuperuserOnly(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	svc := NewIdentityService(db)

	_, err := svc.CreateTeamIdentity(pinnedTo(alpha.ID), models.CreateIdentityRequest{Name: "Robins"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.ListPersonIdentities(pinnedTo(alpha.ID))
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	err = svc.DeleteTeamIdentity(pinnedTo(alpha.ID), 1)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestTeamIdentityLabelFollowsMostRecentTournament(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)

	identity, err := svc.CreateTeamIdentity(superuser(), models.CreateIdentityRequest{Name: "Robins"})
	require.NoError(t, err)

	closed2024 := timePtr(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	closed2025 := timePtr(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	old := models.Tournament{Name: "Edition 2024", Slug: "e2024", ClosingDate: closed2024}
	recent := models.Tournament{Name: "Edition 2025", Slug: "e2025", ClosingDate: closed2025}
	upcoming := models.Tournament{Name: "Edition 2026", Slug: "e2026"}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)
	require.NoError(t, db.Create(&upcoming).Error)

	link := func(tournamentID uint, name string) {
		team := models.Team{TournamentID: tournamentID, Name: name, IdentityID: &identity.ID}
		require.NoError(t, db.Create(&team).Error)
	}
	link(old.ID, "Robins 2024")
	link(recent.ID, "Robins 2025")
	// No closing date sorts after every dated edition.
	link(upcoming.ID, "Robins 2026")

	view, err := svc.GetTeamIdentity(superuser(), identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Robins 2025", view.Label)
	assert.Equal(t, "Robins", view.Name)
}

func TestTeamIdentityLabelFallsBackToName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)

	identity, err := svc.CreateTeamIdentity(superuser(), models.CreateIdentityRequest{Name: "Unlinked"})
	require.NoError(t, err)

	view, err := svc.GetTeamIdentity(superuser(), identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unlinked", view.Label)
}

// A failing label query must surface as an error, not as the fallback label.
func TestTeamIdentityLabelQueryErrorPropagates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)

	identity, err := svc.CreateTeamIdentity(superuser(), models.CreateIdentityRequest{Name: "Robins"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("DROP TABLE teams").Error)

	_, err = svc.GetTeamIdentity(superuser(), identity.ID)
	require.Error(t, err)

	_, err = svc.ListTeamIdentities(superuser())
	require.Error(t, err)
}

func TestTeamIdentityLabelBreaksTiesByNewestRecord(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)

	identity, err := svc.CreateTeamIdentity(superuser(), models.CreateIdentityRequest{Name: "Robins"})
	require.NoError(t, err)

	// Two editions without closing dates: the later record wins.
	a := seedTournament(t, db, "A", "a")
	b := seedTournament(t, db, "B", "b")
	first := models.Team{TournamentID: a.ID, Name: "First", IdentityID: &identity.ID}
	second := models.Team{TournamentID: b.ID, Name: "Second", IdentityID: &identity.ID}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	view, err := svc.GetTeamIdentity(superuser(), identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", view.Label)
}

func TestPersonIdentityLabelSpansRoles(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)

	identity, err := svc.CreatePersonIdentity(superuser(), models.CreateIdentityRequest{Name: "J. Doe"})
	require.NoError(t, err)

	closed2024 := timePtr(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	closed2025 := timePtr(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	old := models.Tournament{Name: "Edition 2024", Slug: "e2024", ClosingDate: closed2024}
	recent := models.Tournament{Name: "Edition 2025", Slug: "e2025", ClosingDate: closed2025}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)

	// Participant in the old edition, juror in the recent one.
	team := seedTeam(t, db, old.ID, "Robins")
	participant := models.Participant{
		TournamentID: old.ID, TeamID: team.ID,
		ShortName: "Doe (student)", IdentityID: &identity.ID,
	}
	require.NoError(t, db.Create(&participant).Error)
	juror := models.Juror{
		TournamentID: recent.ID,
		ShortName:    "Doe (juror)", IdentityID: &identity.ID,
	}
	require.NoError(t, db.Create(&juror).Error)

	view, err := svc.GetPersonIdentity(superuser(), identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doe (juror)", view.Label)
}

func TestUpdateAndDeleteIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)

	identity, err := svc.CreateTeamIdentity(superuser(), models.CreateIdentityRequest{Name: "Robins"})
	require.NoError(t, err)

	name := "Red Robins"
	updated, err := svc.UpdateTeamIdentity(superuser(), identity.ID, models.UpdateIdentityRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Red Robins", updated.Name)

	require.NoError(t, svc.DeleteTeamIdentity(superuser(), identity.ID))
	assert.ErrorIs(t, svc.DeleteTeamIdentity(superuser(), identity.ID), apperr.ErrNotFound)
}

// Deleting an identity must not delete the linked per-tournament teams.
func TestDeleteIdentityKeepsLinkedTeams(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIdentityService(db)

	identity, err := svc.CreateTeamIdentity(superuser(), models.CreateIdentityRequest{Name: "Robins"})
	require.NoError(t, err)

	alpha := seedTournament(t, db, "Alpha", "alpha")
	team := models.Team{TournamentID: alpha.ID, Name: "Robins 2026", IdentityID: &identity.ID}
	require.NoError(t, db.Create(&team).Error)

	require.NoError(t, svc.DeleteTeamIdentity(superuser(), identity.ID))

	var survivor models.Team
	require.NoError(t, db.First(&survivor, team.ID).Error)
}
