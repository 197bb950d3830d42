package services

import (
	"testing"

	authModels "auth/models"
	"core/apperr"
	"core/models"
	"core/scoping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Loading a user must work even when the driver hands the roles column back
// as TEXT instead of raw bytes, as sqlite does.
func TestUserRolesScanFromTextColumn(t *testing.T) {
	db := setupTestDB(t)
	userID := seedUser(t, db, "staff@example.org")

	var user authModels.User
	require.NoError(t, db.First(&user, userID).Error)
	assert.Equal(t, authModels.Roles{"staff"}, user.Roles)
}

func TestAssignProfilePinsAndRepins(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	beta := seedTournament(t, db, "Beta", "beta")
	userID := seedUser(t, db, "staff@example.org")
	svc := NewProfileService(db)

	profile, err := svc.AssignProfile(superuser(), models.AssignProfileRequest{
		UserID:       userID,
		TournamentID: &alpha.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, profile.TournamentID)
	assert.Equal(t, alpha.ID, *profile.TournamentID)

	// Re-assigning updates the existing row instead of adding one.
	profile, err = svc.AssignProfile(superuser(), models.AssignProfileRequest{
		UserID:       userID,
		TournamentID: &beta.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, beta.ID, *profile.TournamentID)

	var count int64
	require.NoError(t, db.Model(&models.UserProfile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAssignProfileUnpins(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	userID := seedUser(t, db, "staff@example.org")
	svc := NewProfileService(db)

	_, err := svc.AssignProfile(superuser(), models.AssignProfileRequest{
		UserID:       userID,
		TournamentID: &alpha.ID,
	})
	require.NoError(t, err)

	profile, err := svc.AssignProfile(superuser(), models.AssignProfileRequest{UserID: userID})
	require.NoError(t, err)
	assert.Nil(t, profile.TournamentID)
}

func TestAssignProfileValidatesReferences(t *testing.T) {
	db := setupTestDB(t)
	userID := seedUser(t, db, "staff@example.org")
	svc := NewProfileService(db)

	_, err := svc.AssignProfile(superuser(), models.AssignProfileRequest{UserID: 9999})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	missing := uint(9999)
	_, err = svc.AssignProfile(superuser(), models.AssignProfileRequest{
		UserID:       userID,
		TournamentID: &missing,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestAssignProfileIsSuperuserOnly(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	userID := seedUser(t, db, "staff@example.org")
	svc := NewProfileService(db)

	_, err := svc.AssignProfile(pinnedTo(alpha.ID), models.AssignProfileRequest{
		UserID:       userID,
		TournamentID: &alpha.ID,
	})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestGetProfileSelfOrSuperuser(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	userID := seedUser(t, db, "staff@example.org")
	svc := NewProfileService(db)

	_, err := svc.AssignProfile(superuser(), models.AssignProfileRequest{
		UserID:       userID,
		TournamentID: &alpha.ID,
	})
	require.NoError(t, err)

	// The user reads their own pin.
	self := scoping.Caller{UserID: userID, Tournament: &alpha.ID}
	profile, err := svc.GetProfile(self, userID)
	require.NoError(t, err)
	require.NotNil(t, profile.Tournament)
	assert.Equal(t, "Alpha", profile.Tournament.Name)

	// Another staff account may not.
	other := scoping.Caller{UserID: userID + 1}
	_, err = svc.GetProfile(other, userID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// A superuser may.
	_, err = svc.GetProfile(superuser(), userID)
	assert.NoError(t, err)
}

func TestDeleteProfile(t *testing.T) {
	db := setupTestDB(t)
	alpha := seedTournament(t, db, "Alpha", "alpha")
	userID := seedUser(t, db, "staff@example.org")
	svc := NewProfileService(db)

	_, err := svc.AssignProfile(superuser(), models.AssignProfileRequest{
		UserID:       userID,
		TournamentID: &alpha.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProfile(superuser(), userID))
	assert.ErrorIs(t, svc.DeleteProfile(superuser(), userID), apperr.ErrNotFound)
}
