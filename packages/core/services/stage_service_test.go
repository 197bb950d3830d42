package services

import (
	"testing"

	"core/apperr"
	"core/models"
	"core/scoping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stageFixture seeds one fight with two or three teams, one participant per
// team, a jury of two and a couple of problems.
type stageFixture struct {
	tournament models.Tournament
	fight      models.Fight
	reporter   models.Participant
	opponent   models.Participant
	reviewer   *models.Participant
	jurors     []models.Juror
	problems   []models.Problem
}

func seedStageFixture(t *testing.T, db *gorm.DB, withReviewingTeam bool) stageFixture {
	t.Helper()
	alpha := seedTournament(t, db, "Alpha", "alpha")
	round := seedRound(t, db, alpha.ID, 1, nil)
	room := seedRoom(t, db, alpha.ID, "Room 101")
	team1 := seedTeam(t, db, alpha.ID, "Robins")
	team2 := seedTeam(t, db, alpha.ID, "Sparrows")
	fight := models.Fight{
		TournamentID: alpha.ID,
		RoundID:      round.ID,
		RoomID:       room.ID,
		Team1ID:      team1.ID,
		Team2ID:      team2.ID,
		Status:       models.FightInProgress,
	}
	fx := stageFixture{tournament: alpha}
	if withReviewingTeam {
		team3 := seedTeam(t, db, alpha.ID, "Crows")
		fight.Team3ID = &team3.ID
		reviewer := seedParticipant(t, db, team3, "Reviewer")
		fx.reviewer = &reviewer
	}
	juror1 := seedJuror(t, db, alpha.ID, "Judge A")
	juror2 := seedJuror(t, db, alpha.ID, "Judge B")
	fight.Jury = []models.Juror{juror1, juror2}
	require.NoError(t, db.Create(&fight).Error)

	fx.fight = fight
	fx.reporter = seedParticipant(t, db, team1, "Reporter")
	fx.opponent = seedParticipant(t, db, team2, "Opponent")
	fx.jurors = []models.Juror{juror1, juror2}
	fx.problems = []models.Problem{
		seedProblem(t, db, alpha.ID, 1, "Pendulum"),
		seedProblem(t, db, alpha.ID, 2, "Siphon"),
	}
	return fx
}

func (fx stageFixture) caller() scoping.Caller {
	return scoping.Caller{UserID: 2, Tournament: &fx.tournament.ID}
}

func TestCreateStage(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStageFixture(t, db, false)
	svc := NewStageService(db, scoping.NewRegistry())

	stage, err := svc.CreateStage(fx.caller(), models.CreateStageRequest{
		FightID:    fx.fight.ID,
		ActionNum:  1,
		ProblemID:  fx.problems[0].ID,
		ReporterID: fx.reporter.ID,
		OpponentID: fx.opponent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stage.ActionNum)
}

func TestCreateStageActionNumTakenInFight(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStageFixture(t, db, false)
	svc := NewStageService(db, scoping.NewRegistry())

	_, err := svc.CreateStage(fx.caller(), models.CreateStageRequest{
		FightID:    fx.fight.ID,
		ActionNum:  1,
		ProblemID:  fx.problems[0].ID,
		ReporterID: fx.reporter.ID,
		OpponentID: fx.opponent.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateStage(fx.caller(), models.CreateStageRequest{
		FightID:    fx.fight.ID,
		ActionNum:  1,
		ProblemID:  fx.problems[1].ID,
		ReporterID: fx.opponent.ID,
		OpponentID: fx.reporter.ID,
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Map(), "action_num")
}

func TestCreateStageRejectsForeignProblem(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStageFixture(t, db, false)
	beta := seedTournament(t, db, "Beta", "beta")
	foreign := seedProblem(t, db, beta.ID, 1, "Alien")
	svc := NewStageService(db, scoping.NewRegistry())

	_, err := svc.CreateStage(superuser(), models.CreateStageRequest{
		FightID:    fx.fight.ID,
		ActionNum:  1,
		ProblemID:  foreign.ID,
		ReporterID: fx.reporter.ID,
		OpponentID: fx.opponent.ID,
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "problem belongs to a different tournament", fieldErrs.Map()["problem"])
}

func TestCreateStageInvisibleFight(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStageFixture(t, db, false)
	beta := seedTournament(t, db, "Beta", "beta")
	svc := NewStageService(db, scoping.NewRegistry())

	// A staff account of another tournament cannot even see the fight.
	_, err := svc.CreateStage(pinnedTo(beta.ID), models.CreateStageRequest{
		FightID:    fx.fight.ID,
		ActionNum:  1,
		ProblemID:  fx.problems[0].ID,
		ReporterID: fx.reporter.ID,
		OpponentID: fx.opponent.ID,
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Map(), "fight")
}

func TestCreateRefusalDuplicateProblem(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStageFixture(t, db, false)
	svc := NewStageService(db, scoping.NewRegistry())

	stage, err := svc.CreateStage(fx.caller(), models.CreateStageRequest{
		FightID:    fx.fight.ID,
		ActionNum:  1,
		ProblemID:  fx.problems[0].ID,
		ReporterID: fx.reporter.ID,
		OpponentID: fx.opponent.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateRefusal(fx.caller(), models.CreateRefusalRequest{
		FightStageID: stage.ID,
		ProblemID:    fx.problems[1].ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateRefusal(fx.caller(), models.CreateRefusalRequest{
		FightStageID: stage.ID,
		ProblemID:    fx.problems[1].ID,
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "this problem was already refused during the stage", fieldErrs.Map()["problem"])
}

func TestCreateJurorPointsRequiresJuryMembership(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStageFixture(t, db, false)
	outsider := seedJuror(t, db, fx.tournament.ID, "Bystander")
	svc := NewStageService(db, scoping.NewRegistry())

	stage, err := svc.CreateStage(fx.caller(), models.CreateStageRequest{
		FightID:    fx.fight.ID,
		ActionNum:  1,
		ProblemID:  fx.problems[0].ID,
		ReporterID: fx.reporter.ID,
		OpponentID: fx.opponent.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateJurorPoints(fx.caller(), models.CreateJurorPointsRequest{
		FightStageID: stage.ID,
		JurorID:      outsider.ID,
		ReporterMark: 8,
		OpponentMark: 7,
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "juror is not on the jury of this fight", fieldErrs.Map()["juror"])
}

func TestJurorPointsReviewerMarkMatchesFightShape(t *testing.T) {
	t.Run("required with a reviewing team", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedStageFixture(t, db, true)
		svc := NewStageService(db, scoping.NewRegistry())

		stage, err := svc.CreateStage(fx.caller(), models.CreateStageRequest{
			FightID:    fx.fight.ID,
			ActionNum:  1,
			ProblemID:  fx.problems[0].ID,
			ReporterID: fx.reporter.ID,
			OpponentID: fx.opponent.ID,
			ReviewerID: &fx.reviewer.ID,
		})
		require.NoError(t, err)

		_, err = svc.CreateJurorPoints(fx.caller(), models.CreateJurorPointsRequest{
			FightStageID: stage.ID,
			JurorID:      fx.jurors[0].ID,
			ReporterMark: 8,
			OpponentMark: 7,
		})
		require.Error(t, err)
		var fieldErrs apperr.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Map(), "reviewer_mark")

		points, err := svc.CreateJurorPoints(fx.caller(), models.CreateJurorPointsRequest{
			FightStageID: stage.ID,
			JurorID:      fx.jurors[0].ID,
			ReporterMark: 8,
			OpponentMark: 7,
			ReviewerMark: intPtr(6),
		})
		require.NoError(t, err)
		require.NotNil(t, points.ReviewerMark)
		assert.Equal(t, 6, *points.ReviewerMark)
	})

	t.Run("forbidden without a reviewing team", func(t *testing.T) {
		db := setupTestDB(t)
		fx := seedStageFixture(t, db, false)
		svc := NewStageService(db, scoping.NewRegistry())

		stage, err := svc.CreateStage(fx.caller(), models.CreateStageRequest{
			FightID:    fx.fight.ID,
			ActionNum:  1,
			ProblemID:  fx.problems[0].ID,
			ReporterID: fx.reporter.ID,
			OpponentID: fx.opponent.ID,
		})
		require.NoError(t, err)

		_, err = svc.CreateJurorPoints(fx.caller(), models.CreateJurorPointsRequest{
			FightStageID: stage.ID,
			JurorID:      fx.jurors[0].ID,
			ReporterMark: 8,
			OpponentMark: 7,
			ReviewerMark: intPtr(6),
		})
		require.Error(t, err)
		var fieldErrs apperr.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs.Map(), "reviewer_mark")
	})
}

func TestCreateJurorPointsOncePerJuror(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStageFixture(t, db, false)
	svc := NewStageService(db, scoping.NewRegistry())

	stage, err := svc.CreateStage(fx.caller(), models.CreateStageRequest{
		FightID:    fx.fight.ID,
		ActionNum:  1,
		ProblemID:  fx.problems[0].ID,
		ReporterID: fx.reporter.ID,
		OpponentID: fx.opponent.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateJurorPoints(fx.caller(), models.CreateJurorPointsRequest{
		FightStageID: stage.ID,
		JurorID:      fx.jurors[0].ID,
		ReporterMark: 8,
		OpponentMark: 7,
	})
	require.NoError(t, err)

	_, err = svc.CreateJurorPoints(fx.caller(), models.CreateJurorPointsRequest{
		FightStageID: stage.ID,
		JurorID:      fx.jurors[0].ID,
		ReporterMark: 9,
		OpponentMark: 6,
	})
	require.Error(t, err)
	var fieldErrs apperr.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "this juror already marked the stage", fieldErrs.Map()["juror"])

	// The second juror still can.
	_, err = svc.CreateJurorPoints(fx.caller(), models.CreateJurorPointsRequest{
		FightStageID: stage.ID,
		JurorID:      fx.jurors[1].ID,
		ReporterMark: 9,
		OpponentMark: 6,
	})
	assert.NoError(t, err)
}
