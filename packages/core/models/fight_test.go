package models

import (
	"testing"
	"time"

	"core/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestFightValidate(t *testing.T) {
	base := func() Fight {
		return Fight{
			Team1ID: 1,
			Team2ID: 2,
			Status:  FightNotStarted,
		}
	}

	t.Run("two distinct teams pass", func(t *testing.T) {
		fight := base()
		require.NoError(t, fight.Validate())
	})

	t.Run("stop before start is rejected", func(t *testing.T) {
		fight := base()
		start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		stop := start.Add(-time.Hour)
		fight.StartTime = &start
		fight.StopTime = &stop

		err := fight.Validate()
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.Contains(t, err.Error(), "stop_time")
	})

	t.Run("equal start and stop is rejected", func(t *testing.T) {
		fight := base()
		at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		fight.StartTime = &at
		fight.StopTime = &at

		require.Error(t, fight.Validate())
	})

	t.Run("team4 without team3 is rejected", func(t *testing.T) {
		fight := base()
		fight.Team4ID = uintPtr(4)

		err := fight.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "team3")
	})

	t.Run("duplicate teams are rejected", func(t *testing.T) {
		fight := base()
		fight.Team3ID = uintPtr(1)

		err := fight.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not unique")
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		fight := base()
		fight.Status = "paused"

		require.Error(t, fight.Validate())
	})

	t.Run("four distinct teams pass", func(t *testing.T) {
		fight := base()
		fight.Team3ID = uintPtr(3)
		fight.Team4ID = uintPtr(4)

		require.NoError(t, fight.Validate())
	})
}

func TestFightTeamIDs(t *testing.T) {
	fight := Fight{Team1ID: 10, Team2ID: 20}
	assert.Equal(t, []uint{10, 20}, fight.TeamIDs())
	assert.False(t, fight.HasReviewingTeam())

	fight.Team3ID = uintPtr(30)
	assert.Equal(t, []uint{10, 20, 30}, fight.TeamIDs())
	assert.True(t, fight.HasReviewingTeam())

	fight.Team4ID = uintPtr(40)
	assert.Equal(t, []uint{10, 20, 30, 40}, fight.TeamIDs())
}

func TestFightStageValidate(t *testing.T) {
	t.Run("distinct roles pass", func(t *testing.T) {
		stage := FightStage{ReporterID: 1, OpponentID: 2, ReviewerID: uintPtr(3)}
		require.NoError(t, stage.Validate())
	})

	t.Run("reporter equals opponent", func(t *testing.T) {
		stage := FightStage{ReporterID: 1, OpponentID: 1}
		require.Error(t, stage.Validate())
	})

	t.Run("reviewer equals reporter", func(t *testing.T) {
		stage := FightStage{ReporterID: 1, OpponentID: 2, ReviewerID: uintPtr(1)}
		require.Error(t, stage.Validate())
	})

	t.Run("reviewer equals opponent", func(t *testing.T) {
		stage := FightStage{ReporterID: 1, OpponentID: 2, ReviewerID: uintPtr(2)}
		require.Error(t, stage.Validate())
	})

	t.Run("no reviewer passes", func(t *testing.T) {
		stage := FightStage{ReporterID: 1, OpponentID: 2}
		require.NoError(t, stage.Validate())
	})
}
