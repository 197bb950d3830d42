package scoping

import (
	"testing"

	"core/apperr"
	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Tournament{},
		&models.TournamentRound{},
		&models.Room{},
		&models.Team{},
		&models.Participant{},
		&models.Fight{},
		&models.FightStage{},
		&models.Problem{},
	))
	return db
}

// seedTwoTournaments creates two tournaments with one team each and
// returns their ids.
func seedTwoTournaments(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()
	a := models.Tournament{Name: "Alpha", Slug: "alpha"}
	b := models.Tournament{Name: "Beta", Slug: "beta"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	require.NoError(t, db.Create(&models.Team{TournamentID: a.ID, Name: "Team A"}).Error)
	require.NoError(t, db.Create(&models.Team{TournamentID: b.ID, Name: "Team B"}).Error)
	return a.ID, b.ID
}

func TestFilterPinnedStaffSeesOnlyOwnTournament(t *testing.T) {
	db := openTestDB(t)
	aID, _ := seedTwoTournaments(t, db)

	rule := NewRegistry().Rule("teams")
	caller := Caller{UserID: 1, Tournament: &aID}

	var teams []models.Team
	require.NoError(t, rule.Filter(db.Model(&models.Team{}), caller).Find(&teams).Error)
	require.Len(t, teams, 1)
	assert.Equal(t, "Team A", teams[0].Name)
}

func TestFilterUnpinnedStaffSeesNothing(t *testing.T) {
	db := openTestDB(t)
	seedTwoTournaments(t, db)

	rule := NewRegistry().Rule("teams")
	caller := Caller{UserID: 1}

	var teams []models.Team
	require.NoError(t, rule.Filter(db.Model(&models.Team{}), caller).Find(&teams).Error)
	assert.Empty(t, teams)
}

func TestFilterSuperuserSeesEverything(t *testing.T) {
	db := openTestDB(t)
	seedTwoTournaments(t, db)

	rule := NewRegistry().Rule("teams")
	caller := Caller{UserID: 1, Superuser: true}

	var teams []models.Team
	require.NoError(t, rule.Filter(db.Model(&models.Team{}), caller).Find(&teams).Error)
	assert.Len(t, teams, 2)
}

func TestFilterTournamentsScopeOnPrimaryKey(t *testing.T) {
	db := openTestDB(t)
	aID, _ := seedTwoTournaments(t, db)

	rule := NewRegistry().Rule("tournaments")
	caller := Caller{UserID: 1, Tournament: &aID}

	var tournaments []models.Tournament
	require.NoError(t, rule.Filter(db.Model(&models.Tournament{}), caller).Find(&tournaments).Error)
	require.Len(t, tournaments, 1)
	assert.Equal(t, aID, tournaments[0].ID)
}

func TestFilterAliasPathReachesOwningFight(t *testing.T) {
	db := openTestDB(t)
	aID, bID := seedTwoTournaments(t, db)

	// One fight with a stage in each tournament.
	for _, tid := range []uint{aID, bID} {
		round := models.TournamentRound{TournamentID: tid, RoundNum: 1}
		require.NoError(t, db.Create(&round).Error)
		room := models.Room{TournamentID: tid, Name: "Room"}
		require.NoError(t, db.Create(&room).Error)
		team1 := models.Team{TournamentID: tid, Name: "X"}
		team2 := models.Team{TournamentID: tid, Name: "Y"}
		require.NoError(t, db.Create(&team1).Error)
		require.NoError(t, db.Create(&team2).Error)
		problem := models.Problem{TournamentID: tid, ProblemNum: 1, Name: "P"}
		require.NoError(t, db.Create(&problem).Error)
		fight := models.Fight{
			TournamentID: tid, RoundID: round.ID, RoomID: room.ID,
			Team1ID: team1.ID, Team2ID: team2.ID, Status: models.FightNotStarted,
		}
		require.NoError(t, db.Create(&fight).Error)
		p1 := models.Participant{TournamentID: tid, TeamID: team1.ID, ShortName: "R"}
		p2 := models.Participant{TournamentID: tid, TeamID: team2.ID, ShortName: "O"}
		require.NoError(t, db.Create(&p1).Error)
		require.NoError(t, db.Create(&p2).Error)
		stage := models.FightStage{
			FightID: fight.ID, ActionNum: 1, ProblemID: problem.ID,
			ReporterID: p1.ID, OpponentID: p2.ID,
		}
		require.NoError(t, db.Create(&stage).Error)
	}

	rule := NewRegistry().Rule("fight_stages")
	caller := Caller{UserID: 1, Tournament: &aID}

	var stages []models.FightStage
	require.NoError(t, rule.Filter(db.Model(&models.FightStage{}), caller).Find(&stages).Error)
	assert.Len(t, stages, 1)
}

func TestStampForcePinsStaffWrites(t *testing.T) {
	db := openTestDB(t)
	aID, bID := seedTwoTournaments(t, db)

	// Whatever the request carried, the pinned tournament wins.
	team := models.Team{TournamentID: bID, Name: "Sneaky"}
	caller := Caller{UserID: 1, Tournament: &aID}

	require.NoError(t, Stamp(db, caller, &team))
	assert.Equal(t, aID, team.TournamentID)
}

func TestStampRejectsUnpinnedStaffWrites(t *testing.T) {
	db := openTestDB(t)
	seedTwoTournaments(t, db)

	team := models.Team{Name: "Orphan"}
	caller := Caller{UserID: 1}

	err := Stamp(db, caller, &team)
	assert.ErrorIs(t, err, apperr.ErrNoTournament)
}

func TestStampDerivesForSuperusers(t *testing.T) {
	db := openTestDB(t)
	aID, _ := seedTwoTournaments(t, db)

	var team models.Team
	require.NoError(t, db.Where("tournament_id = ?", aID).First(&team).Error)

	// Participants derive their tournament from the parent team.
	participant := models.Participant{TeamID: team.ID, ShortName: "New"}
	caller := Caller{UserID: 1, Superuser: true}

	require.NoError(t, Stamp(db, caller, &participant))
	assert.Equal(t, aID, participant.TournamentID)
}

func TestRegistryPanicsOnUnknownEntity(t *testing.T) {
	registry := NewRegistry()
	assert.Panics(t, func() { registry.Rule("unknown_things") })
}
