package models

import (
	"testing"

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
	require.NoError(t, db.AutoMigrate(&Tournament{}, &TeamIdentity{}, &Team{}))
	return db
}

func TestTeamSlugNormalization(t *testing.T) {
	db := openTestDB(t)

	tournament := Tournament{Name: "T", Slug: "t"}
	require.NoError(t, db.Create(&tournament).Error)

	empty := ""
	team := Team{TournamentID: tournament.ID, Name: "No Slug", Slug: &empty}
	require.NoError(t, db.Create(&team).Error)

	var reloaded Team
	require.NoError(t, db.First(&reloaded, team.ID).Error)
	require.Nil(t, reloaded.Slug, "empty slug should be stored as NULL")
}

func TestTeamSlugUniquenessToleratesMissingSlugs(t *testing.T) {
	db := openTestDB(t)

	tournament := Tournament{Name: "T", Slug: "t"}
	require.NoError(t, db.Create(&tournament).Error)

	// Several teams without a slug must coexist in one tournament.
	for _, name := range []string{"First", "Second", "Third"} {
		team := Team{TournamentID: tournament.ID, Name: name}
		require.NoError(t, db.Create(&team).Error)
	}

	var count int64
	require.NoError(t, db.Model(&Team{}).Where("tournament_id = ?", tournament.ID).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestTeamSlugRoundTrip(t *testing.T) {
	db := openTestDB(t)

	tournament := Tournament{Name: "T", Slug: "t"}
	require.NoError(t, db.Create(&tournament).Error)

	slug := "quokkas"
	team := Team{TournamentID: tournament.ID, Name: "Quokkas", Slug: &slug}
	require.NoError(t, db.Create(&team).Error)

	var reloaded Team
	require.NoError(t, db.Where("tournament_id = ? AND slug = ?", tournament.ID, "quokkas").First(&reloaded).Error)
	require.Equal(t, team.ID, reloaded.ID)
	require.NotNil(t, reloaded.Slug)
	require.Equal(t, "quokkas", *reloaded.Slug)
}
