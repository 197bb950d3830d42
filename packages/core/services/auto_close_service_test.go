package services

import (
	"testing"
	"time"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseOverdueFights(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")

	past := timePtr(time.Now().Add(-2 * time.Hour))
	future := timePtr(time.Now().Add(2 * time.Hour))
	overdueRound := seedRound(t, db, alpha.ID, 1, past)
	openRound := seedRound(t, db, alpha.ID, 2, future)
	endlessRound := seedRound(t, db, alpha.ID, 3, nil)

	room1 := seedRoom(t, db, alpha.ID, "Room 101")
	room2 := seedRoom(t, db, alpha.ID, "Room 102")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")

	running := seedFight(t, db, overdueRound, room1, team1, team2, models.FightInProgress)
	pending := seedFight(t, db, overdueRound, room2, team1, team2, models.FightNotStarted)
	current := seedFight(t, db, openRound, room1, team1, team2, models.FightInProgress)
	endless := seedFight(t, db, endlessRound, room1, team1, team2, models.FightInProgress)

	svc := NewAutoCloseService(db)

	count, err := svc.GetOverdueFightsCount()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.CloseOverdueFights())

	var closed models.Fight
	require.NoError(t, db.First(&closed, running.ID).Error)
	assert.Equal(t, models.FightCompleted, closed.Status)
	// The round closing time stands in for the missing stop time.
	require.NotNil(t, closed.StopTime)
	assert.WithinDuration(t, *past, *closed.StopTime, time.Second)

	// Everything else is untouched. Each lookup gets a zero struct so the
	// previous row's primary key does not leak into the query conditions.
	var skipped models.Fight
	require.NoError(t, db.First(&skipped, pending.ID).Error)
	assert.Equal(t, models.FightNotStarted, skipped.Status)

	var open models.Fight
	require.NoError(t, db.First(&open, current.ID).Error)
	assert.Equal(t, models.FightInProgress, open.Status)

	var unbounded models.Fight
	require.NoError(t, db.First(&unbounded, endless.ID).Error)
	assert.Equal(t, models.FightInProgress, unbounded.Status)

	count, err = svc.GetOverdueFightsCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCloseOverdueFightsKeepsExistingStopTime(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")

	closing := timePtr(time.Now().Add(-2 * time.Hour))
	round := seedRound(t, db, alpha.ID, 1, closing)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")

	started := time.Now().Add(-3 * time.Hour)
	stopped := time.Now().Add(-151 * time.Minute)
	fight := models.Fight{
		TournamentID: alpha.ID,
		RoundID:      round.ID,
		RoomID:       room.ID,
		Team1ID:      team1.ID,
		Team2ID:      team2.ID,
		Status:       models.FightInProgress,
		StartTime:    &started,
		StopTime:     &stopped,
	}
	require.NoError(t, db.Create(&fight).Error)

	svc := NewAutoCloseService(db)
	require.NoError(t, svc.CloseOverdueFights())

	var closed models.Fight
	require.NoError(t, db.First(&closed, fight.ID).Error)
	assert.Equal(t, models.FightCompleted, closed.Status)
	require.NotNil(t, closed.StopTime)
	assert.WithinDuration(t, stopped, *closed.StopTime, time.Second)
}

// A round that closed moments ago is still within the grace window.
func TestCloseOverdueFightsHonorsGraceWindow(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")

	justClosed := timePtr(time.Now().Add(-5 * time.Minute))
	round := seedRound(t, db, alpha.ID, 1, justClosed)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")
	fight := seedFight(t, db, round, room, team1, team2, models.FightInProgress)

	svc := NewAutoCloseService(db)
	require.NoError(t, svc.CloseOverdueFights())

	var untouched models.Fight
	require.NoError(t, db.First(&untouched, fight.ID).Error)
	assert.Equal(t, models.FightInProgress, untouched.Status)
}

func TestCloseOverdueFightsNoWork(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAutoCloseService(db)

	count, err := svc.GetOverdueFightsCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.NoError(t, svc.CloseOverdueFights())
}
