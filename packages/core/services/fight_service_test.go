package services

import (
	"testing"

	"core/apperr"
	"core/models"
	"core/scoping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFightWithJury(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	round := seedRound(t, db, alpha.ID, 1, nil)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")
	juror1 := seedJuror(t, db, alpha.ID, "Judge A")
	juror2 := seedJuror(t, db, alpha.ID, "Judge B")
	svc := NewFightService(db, scoping.NewRegistry())

	fight, err := svc.CreateFight(pinnedTo(alpha.ID), models.CreateFightRequest{
		RoundID: round.ID,
		RoomID:  room.ID,
		Team1ID: team1.ID,
		Team2ID: team2.ID,
		JuryIDs: []uint{juror1.ID, juror2.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, alpha.ID, fight.TournamentID)
	assert.Equal(t, models.FightNotStarted, fight.Status)

	loaded, err := svc.GetFight(pinnedTo(alpha.ID), fight.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Jury, 2)
}

func TestCreateFightRejectsTeamsFromAnotherTournament(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	beta := seedTournament(t, db, "Beta", "beta")
	round := seedRound(t, db, alpha.ID, 1, nil)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	foreign := seedTeam(t, db, beta.ID, "Intruders")
	svc := NewFightService(db, scoping.NewRegistry())

	_, err := svc.CreateFight(superuser(), models.CreateFightRequest{
		TournamentID: &alpha.ID,
		RoundID:      round.ID,
		RoomID:       room.ID,
		Team1ID:      team1.ID,
		Team2ID:      foreign.ID,
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Map()["record"], "span more than one tournament")
}

func TestCreateFightRejectsForeignRound(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	beta := seedTournament(t, db, "Beta", "beta")
	foreignRound := seedRound(t, db, beta.ID, 1, nil)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")
	svc := NewFightService(db, scoping.NewRegistry())

	_, err := svc.CreateFight(pinnedTo(alpha.ID), models.CreateFightRequest{
		RoundID: foreignRound.ID,
		RoomID:  room.ID,
		Team1ID: team1.ID,
		Team2ID: team2.ID,
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Map(), "round")
}

func TestCreateFightRoomBusyInRound(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	round := seedRound(t, db, alpha.ID, 1, nil)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")
	team3 := seedTeam(t, db, alpha.ID, "Crows")
	team4 := seedTeam(t, db, alpha.ID, "Owls")
	seedFight(t, db, round, room, team1, team2, models.FightNotStarted)
	svc := NewFightService(db, scoping.NewRegistry())

	_, err := svc.CreateFight(pinnedTo(alpha.ID), models.CreateFightRequest{
		RoundID: round.ID,
		RoomID:  room.ID,
		Team1ID: team3.ID,
		Team2ID: team4.ID,
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "this room already hosts a fight in the round", fieldErrs.Map()["room"])
}

func TestCreateFightRejectsForeignJuror(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	beta := seedTournament(t, db, "Beta", "beta")
	round := seedRound(t, db, alpha.ID, 1, nil)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")
	foreignJuror := seedJuror(t, db, beta.ID, "Outsider")
	svc := NewFightService(db, scoping.NewRegistry())

	_, err := svc.CreateFight(pinnedTo(alpha.ID), models.CreateFightRequest{
		RoundID: round.ID,
		RoomID:  room.ID,
		Team1ID: team1.ID,
		Team2ID: team2.ID,
		JuryIDs: []uint{foreignJuror.ID},
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Map(), "jury")
}

func TestUpdateFightClearsThirdTeam(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	round := seedRound(t, db, alpha.ID, 1, nil)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")
	team3 := seedTeam(t, db, alpha.ID, "Crows")
	svc := NewFightService(db, scoping.NewRegistry())

	fight, err := svc.CreateFight(pinnedTo(alpha.ID), models.CreateFightRequest{
		RoundID: round.ID,
		RoomID:  room.ID,
		Team1ID: team1.ID,
		Team2ID: team2.ID,
		Team3ID: &team3.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, fight.Team3ID)

	updated, err := svc.UpdateFight(pinnedTo(alpha.ID), fight.ID, models.UpdateFightRequest{ClearTeam3: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Team3ID)
}

func TestListFightsFilteredByRound(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	round1 := seedRound(t, db, alpha.ID, 1, nil)
	round2 := seedRound(t, db, alpha.ID, 2, nil)
	room1 := seedRoom(t, db, alpha.ID, "Room 101")
	room2 := seedRoom(t, db, alpha.ID, "Room 102")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")
	seedFight(t, db, round1, room1, team1, team2, models.FightNotStarted)
	seedFight(t, db, round1, room2, team1, team2, models.FightNotStarted)
	seedFight(t, db, round2, room1, team1, team2, models.FightNotStarted)
	svc := NewFightService(db, scoping.NewRegistry())

	page, err := svc.ListFights(pinnedTo(alpha.ID), 1, 10, &round1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	page, err = svc.ListFights(pinnedTo(alpha.ID), 1, 10, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
}

func TestGetFightRefsScopedByCaller(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	beta := seedTournament(t, db, "Beta", "beta")
	round := seedRound(t, db, alpha.ID, 1, nil)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")
	seedJuror(t, db, alpha.ID, "Judge A")
	seedProblem(t, db, alpha.ID, 1, "Pendulum")

	seedRound(t, db, beta.ID, 1, nil)
	seedRoom(t, db, beta.ID, "Elsewhere")
	seedTeam(t, db, beta.ID, "Intruders")
	seedJuror(t, db, beta.ID, "Outsider")
	seedProblem(t, db, beta.ID, 1, "Alien")

	fight := seedFight(t, db, round, room, team1, team2, models.FightNotStarted)
	svc := NewFightService(db, scoping.NewRegistry())

	// Staff pickers only offer records of the pinned tournament.
	refs, err := svc.GetFightRefs(pinnedTo(alpha.ID), fight.ID)
	require.NoError(t, err)
	assert.Len(t, refs.Rounds, 1)
	assert.Len(t, refs.Rooms, 1)
	assert.Len(t, refs.Teams, 2)
	assert.Len(t, refs.Jurors, 1)
	assert.Len(t, refs.Problems, 1)

	// Superusers see the unfiltered sets.
	refs, err = svc.GetFightRefs(superuser(), fight.ID)
	require.NoError(t, err)
	assert.Len(t, refs.Rounds, 2)
	assert.Len(t, refs.Rooms, 2)
	assert.Len(t, refs.Teams, 3)
	assert.Len(t, refs.Jurors, 2)
	assert.Len(t, refs.Problems, 2)
}

func TestDeleteFightRemovesJuryLinks(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	round := seedRound(t, db, alpha.ID, 1, nil)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")
	juror := seedJuror(t, db, alpha.ID, "Judge A")
	svc := NewFightService(db, scoping.NewRegistry())

	fight, err := svc.CreateFight(pinnedTo(alpha.ID), models.CreateFightRequest{
		RoundID: round.ID,
		RoomID:  room.ID,
		Team1ID: team1.ID,
		Team2ID: team2.ID,
		JuryIDs: []uint{juror.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFight(pinnedTo(alpha.ID), fight.ID))

	var links int64
	require.NoError(t, db.Table("fight_jury").Count(&links).Error)
	assert.Zero(t, links)

	// The juror itself survives.
	var jurors int64
	require.NoError(t, db.Model(&models.Juror{}).Count(&jurors).Error)
	assert.EqualValues(t, 1, jurors)
}
