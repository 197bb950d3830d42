package services

import (
	"errors"

	"core/apperr"
	"core/models"
	"core/scoping"

	authModels "auth/models"

	"gorm.io/gorm"
)

// ProfileService manages the pinning of staff accounts to tournaments.
// Only superusers may assign or change a pin.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// AssignProfile pins (or unpins, with a nil tournament) a user to a
// tournament, creating the profile row on first assignment.
func (s *ProfileService) AssignProfile(caller scoping.Caller, req models.AssignProfileRequest) (*models.UserProfile, error) {
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}

	var user authModels.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		return nil, apperr.Field("user", "user does not exist")
	}

	if req.TournamentID != nil {
		var tournament models.Tournament
		if err := s.db.First(&tournament, *req.TournamentID).Error; err != nil {
			return nil, apperr.Field("tournament", "tournament does not exist")
		}
	}

	var profile models.UserProfile
	err := s.db.Where("user_id = ?", req.UserID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{UserID: req.UserID}
	} else if err != nil {
		return nil, err
	}

	profile.TournamentID = req.TournamentID
	profile.Tournament = nil

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) GetProfile(caller scoping.Caller, userID uint) (*models.UserProfile, error) {
	if !caller.Superuser && caller.UserID != userID {
		return nil, apperr.ErrForbidden
	}
	var profile models.UserProfile
	err := s.db.Preload("Tournament").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) ListProfiles(caller scoping.Caller) ([]models.UserProfile, error) {
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}
	var profiles []models.UserProfile
	err := s.db.Preload("Tournament").Order("user_id").Find(&profiles).Error
	return profiles, err
}

func (s *ProfileService) DeleteProfile(caller scoping.Caller, userID uint) error {
	if !caller.Superuser {
		return apperr.ErrForbidden
	}
	result := s.db.Where("user_id = ?", userID).Delete(&models.UserProfile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
