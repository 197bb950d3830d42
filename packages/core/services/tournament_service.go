package services

import (
	"errors"

	"core/apperr"
	"core/models"
	"core/scoping"

	"gorm.io/gorm"
)

type TournamentService struct {
	db   *gorm.DB
	rule scoping.Rule
}

func NewTournamentService(db *gorm.DB, registry *scoping.Registry) *TournamentService {
	return &TournamentService{
		db:   db,
		rule: registry.Rule("tournaments"),
	}
}

func (s *TournamentService) CreateTournament(caller scoping.Caller, req models.CreateTournamentRequest) (*models.Tournament, error) {
	// Only superusers create tournaments; staff accounts are born into one.
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}

	var existing models.Tournament
	if err := s.db.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		return nil, apperr.Field("slug", "a tournament with this slug already exists")
	}

	tournament := &models.Tournament{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		OpeningDate: req.OpeningDate,
		ClosingDate: req.ClosingDate,
	}

	if err := s.db.Create(tournament).Error; err != nil {
		return nil, err
	}

	return tournament, nil
}

func (s *TournamentService) GetTournament(caller scoping.Caller, id uint) (*models.Tournament, error) {
	var tournament models.Tournament
	err := s.rule.Filter(s.db, caller).First(&tournament, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &tournament, nil
}

func (s *TournamentService) ListTournaments(caller scoping.Caller) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := s.rule.Filter(s.db, caller).Order("opening_date DESC, id DESC").Find(&tournaments).Error
	return tournaments, err
}

func (s *TournamentService) UpdateTournament(caller scoping.Caller, id uint, req models.UpdateTournamentRequest) (*models.Tournament, error) {
	tournament, err := s.GetTournament(caller, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tournament.Name = *req.Name
	}
	if req.Description != nil {
		tournament.Description = *req.Description
	}
	if req.OpeningDate != nil {
		tournament.OpeningDate = req.OpeningDate
	}
	if req.ClosingDate != nil {
		tournament.ClosingDate = req.ClosingDate
	}

	if err := s.db.Save(tournament).Error; err != nil {
		return nil, err
	}

	return tournament, nil
}

func (s *TournamentService) DeleteTournament(caller scoping.Caller, id uint) error {
	if !caller.Superuser {
		return apperr.ErrForbidden
	}

	result := s.db.Delete(&models.Tournament{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Rounds

type RoundService struct {
	db   *gorm.DB
	rule scoping.Rule
}

func NewRoundService(db *gorm.DB, registry *scoping.Registry) *RoundService {
	return &RoundService{
		db:   db,
		rule: registry.Rule("rounds"),
	}
}

func (s *RoundService) CreateRound(caller scoping.Caller, req models.CreateRoundRequest) (*models.TournamentRound, error) {
	round := &models.TournamentRound{
		RoundNum:    req.RoundNum,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
	}
	if caller.Superuser {
		if req.TournamentID == nil {
			return nil, apperr.Field("tournament", "tournament is required")
		}
		round.TournamentID = *req.TournamentID
	}

	if err := scoping.Stamp(s.db, caller, round); err != nil {
		return nil, err
	}

	var existing models.TournamentRound
	if err := s.db.Where("tournament_id = ? AND round_num = ?", round.TournamentID, round.RoundNum).
		First(&existing).Error; err == nil {
		return nil, apperr.Field("round_num", "this round number is already used in the tournament")
	}

	if err := s.db.Create(round).Error; err != nil {
		return nil, err
	}
	return round, nil
}

func (s *RoundService) GetRound(caller scoping.Caller, id uint) (*models.TournamentRound, error) {
	var round models.TournamentRound
	err := s.rule.Filter(s.db, caller).First(&round, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &round, nil
}

func (s *RoundService) ListRounds(caller scoping.Caller) ([]models.TournamentRound, error) {
	var rounds []models.TournamentRound
	err := s.rule.Filter(s.db, caller).Order("round_num").Find(&rounds).Error
	return rounds, err
}

func (s *RoundService) UpdateRound(caller scoping.Caller, id uint, req models.UpdateRoundRequest) (*models.TournamentRound, error) {
	round, err := s.GetRound(caller, id)
	if err != nil {
		return nil, err
	}

	if req.RoundNum != nil && *req.RoundNum != round.RoundNum {
		var existing models.TournamentRound
		if err := s.db.Where("tournament_id = ? AND round_num = ? AND id != ?", round.TournamentID, *req.RoundNum, round.ID).
			First(&existing).Error; err == nil {
			return nil, apperr.Field("round_num", "this round number is already used in the tournament")
		}
		round.RoundNum = *req.RoundNum
	}
	if req.OpeningTime != nil {
		round.OpeningTime = req.OpeningTime
	}
	if req.ClosingTime != nil {
		round.ClosingTime = req.ClosingTime
	}

	if err := s.db.Save(round).Error; err != nil {
		return nil, err
	}
	return round, nil
}

func (s *RoundService) DeleteRound(caller scoping.Caller, id uint) error {
	if _, err := s.GetRound(caller, id); err != nil {
		return err
	}
	return s.db.Delete(&models.TournamentRound{}, id).Error
}
