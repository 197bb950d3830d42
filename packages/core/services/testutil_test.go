package services

import (
	"testing"
	"time"

	"core/models"
	"core/scoping"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory database with the full schema. The users
// table is created by hand because its column defaults are postgres-specific.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Tournament{},
		&models.TournamentRound{},
		&models.UserProfile{},
		&models.TeamIdentity{},
		&models.PersonIdentity{},
		&models.Team{},
		&models.Participant{},
		&models.Leader{},
		&models.Juror{},
		&models.Room{},
		&models.Problem{},
		&models.Fight{},
		&models.FightStage{},
		&models.Refusal{},
		&models.JurorPoints{},
	))
	require.NoError(t, db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			username TEXT,
			password TEXT NOT NULL,
			enabled BOOLEAN DEFAULT true,
			roles TEXT,
			last_login DATETIME,
			confirmation_token TEXT,
			password_requested_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		)`).Error)
	return db
}

func superuser() scoping.Caller {
	return scoping.Caller{UserID: 1, Superuser: true}
}

func pinnedTo(tournamentID uint) scoping.Caller {
	return scoping.Caller{UserID: 2, Tournament: &tournamentID}
}

func seedTournament(t *testing.T, db *gorm.DB, name, slug string) models.Tournament {
	t.Helper()
	tournament := models.Tournament{Name: name, Slug: slug}
	require.NoError(t, db.Create(&tournament).Error)
	return tournament
}

func seedRound(t *testing.T, db *gorm.DB, tournamentID uint, num int, closing *time.Time) models.TournamentRound {
	t.Helper()
	round := models.TournamentRound{TournamentID: tournamentID, RoundNum: num, ClosingTime: closing}
	require.NoError(t, db.Create(&round).Error)
	return round
}

func seedRoom(t *testing.T, db *gorm.DB, tournamentID uint, name string) models.Room {
	t.Helper()
	room := models.Room{TournamentID: tournamentID, Name: name}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedTeam(t *testing.T, db *gorm.DB, tournamentID uint, name string) models.Team {
	t.Helper()
	team := models.Team{TournamentID: tournamentID, Name: name}
	require.NoError(t, db.Create(&team).Error)
	return team
}

func seedParticipant(t *testing.T, db *gorm.DB, team models.Team, shortName string) models.Participant {
	t.Helper()
	participant := models.Participant{
		TournamentID: team.TournamentID,
		TeamID:       team.ID,
		ShortName:    shortName,
	}
	require.NoError(t, db.Create(&participant).Error)
	return participant
}

func seedJuror(t *testing.T, db *gorm.DB, tournamentID uint, shortName string) models.Juror {
	t.Helper()
	juror := models.Juror{TournamentID: tournamentID, ShortName: shortName}
	require.NoError(t, db.Create(&juror).Error)
	return juror
}

func seedProblem(t *testing.T, db *gorm.DB, tournamentID uint, num int, name string) models.Problem {
	t.Helper()
	problem := models.Problem{TournamentID: tournamentID, ProblemNum: num, Name: name}
	require.NoError(t, db.Create(&problem).Error)
	return problem
}

func seedFight(t *testing.T, db *gorm.DB, round models.TournamentRound, room models.Room, team1, team2 models.Team, status string) models.Fight {
	t.Helper()
	fight := models.Fight{
		TournamentID: round.TournamentID,
		RoundID:      round.ID,
		RoomID:       room.ID,
		Team1ID:      team1.ID,
		Team2ID:      team2.ID,
		Status:       status,
	}
	require.NoError(t, db.Create(&fight).Error)
	return fight
}

func seedUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO users (email, password, roles) VALUES (?, 'x', '["staff"]')`, email,
	).Error)
	var id uint
	require.NoError(t, db.Raw(`SELECT id FROM users WHERE email = ?`, email).Scan(&id).Error)
	return id
}

func timePtr(v time.Time) *time.Time { return &v }

func intPtr(v int) *int { return &v }
