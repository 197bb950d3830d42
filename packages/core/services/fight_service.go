package services

import (
	"errors"

	"core/apperr"
	"core/models"
	"core/scoping"

	"gorm.io/gorm"
)

type FightService struct {
	db   *gorm.DB
	rule scoping.Rule
}

func NewFightService(db *gorm.DB, registry *scoping.Registry) *FightService {
	return &FightService{
		db:   db,
		rule: registry.Rule("fights"),
	}
}

func (s *FightService) CreateFight(caller scoping.Caller, req models.CreateFightRequest) (*models.Fight, error) {
	fight := &models.Fight{
		RoundID:   req.RoundID,
		RoomID:    req.RoomID,
		Team1ID:   req.Team1ID,
		Team2ID:   req.Team2ID,
		Team3ID:   req.Team3ID,
		Team4ID:   req.Team4ID,
		Status:    req.Status,
		StartTime: req.StartTime,
		StopTime:  req.StopTime,
	}
	if fight.Status == "" {
		fight.Status = models.FightNotStarted
	}
	if caller.Superuser {
		if req.TournamentID == nil {
			return nil, apperr.Field("tournament", "tournament is required")
		}
		fight.TournamentID = *req.TournamentID
	}

	if err := scoping.Stamp(s.db, caller, fight); err != nil {
		return nil, err
	}

	jury, err := s.validateFight(fight, req.JuryIDs)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(fight).Error; err != nil {
			return err
		}
		if len(jury) > 0 {
			return tx.Model(fight).Association("Jury").Replace(jury)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetFight(caller, fight.ID)
}

func (s *FightService) GetFight(caller scoping.Caller, id uint) (*models.Fight, error) {
	var fight models.Fight
	err := s.rule.Filter(s.db, caller).
		Preload("Round").
		Preload("Room").
		Preload("Team1").
		Preload("Team2").
		Preload("Team3").
		Preload("Team4").
		Preload("Jury").
		First(&fight, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &fight, nil
}

func (s *FightService) ListFights(caller scoping.Caller, page, pageSize int, roundID *uint) (*models.PaginatedFightsResponse, error) {
	var fights []models.Fight
	var total int64

	query := s.rule.Filter(s.db.Model(&models.Fight{}), caller)
	if roundID != nil {
		query = query.Where("fights.round_id = ?", *roundID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	if err := query.
		Preload("Round").
		Preload("Room").
		Preload("Team1").
		Preload("Team2").
		Preload("Team3").
		Preload("Team4").
		Order("fights.round_id, fights.room_id").
		Offset(offset).
		Limit(pageSize).
		Find(&fights).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedFightsResponse{
		Data:       fights,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *FightService) UpdateFight(caller scoping.Caller, id uint, req models.UpdateFightRequest) (*models.Fight, error) {
	fight, err := s.GetFight(caller, id)
	if err != nil {
		return nil, err
	}

	if req.RoundID != nil {
		fight.RoundID = *req.RoundID
	}
	if req.RoomID != nil {
		fight.RoomID = *req.RoomID
	}
	if req.Team1ID != nil {
		fight.Team1ID = *req.Team1ID
	}
	if req.Team2ID != nil {
		fight.Team2ID = *req.Team2ID
	}
	if req.Team3ID != nil {
		fight.Team3ID = req.Team3ID
	}
	if req.ClearTeam3 {
		fight.Team3ID = nil
	}
	if req.Team4ID != nil {
		fight.Team4ID = req.Team4ID
	}
	if req.ClearTeam4 {
		fight.Team4ID = nil
	}
	if req.Status != nil {
		fight.Status = *req.Status
	}
	if req.StartTime != nil {
		fight.StartTime = req.StartTime
	}
	if req.StopTime != nil {
		fight.StopTime = req.StopTime
	}

	var juryIDs []uint
	if req.JuryIDs != nil {
		juryIDs = *req.JuryIDs
	} else {
		for _, juror := range fight.Jury {
			juryIDs = append(juryIDs, juror.ID)
		}
	}

	jury, err := s.validateFight(fight, juryIDs)
	if err != nil {
		return nil, err
	}

	// Drop preloaded associations so Save only writes the fight row.
	saved := *fight
	saved.Round = models.TournamentRound{}
	saved.Room = models.Room{}
	saved.Team1 = models.Team{}
	saved.Team2 = models.Team{}
	saved.Team3 = nil
	saved.Team4 = nil
	saved.Jury = nil
	saved.Stages = nil

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&saved).Error; err != nil {
			return err
		}
		if req.JuryIDs != nil {
			return tx.Model(&saved).Association("Jury").Replace(jury)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetFight(caller, id)
}

// GetFightRefs returns the pickable reference sets for editing a fight.
// Staff get the records of their pinned tournament; superusers get the
// unfiltered sets. Save-time validation still rejects cross-tournament refs.
func (s *FightService) GetFightRefs(caller scoping.Caller, id uint) (*models.FightRefsResponse, error) {
	if _, err := s.GetFight(caller, id); err != nil {
		return nil, err
	}

	scope := func(db *gorm.DB) *gorm.DB {
		if caller.Superuser {
			return db
		}
		if caller.Tournament == nil {
			return db.Where("1 = 0")
		}
		return db.Where("tournament_id = ?", *caller.Tournament)
	}

	refs := &models.FightRefsResponse{}

	if err := scope(s.db).Order("round_num").Find(&refs.Rounds).Error; err != nil {
		return nil, err
	}
	if err := scope(s.db).Order("name").Find(&refs.Rooms).Error; err != nil {
		return nil, err
	}
	if err := scope(s.db).Order("name").Find(&refs.Teams).Error; err != nil {
		return nil, err
	}
	if err := scope(s.db).Order("short_name").Find(&refs.Jurors).Error; err != nil {
		return nil, err
	}
	if err := scope(s.db).Order("problem_num").Find(&refs.Problems).Error; err != nil {
		return nil, err
	}

	return refs, nil
}

func (s *FightService) DeleteFight(caller scoping.Caller, id uint) error {
	if _, err := s.GetFight(caller, id); err != nil {
		return err
	}
	return s.db.Select("Jury", "Stages").Delete(&models.Fight{ID: id}).Error
}

// validateFight runs the in-memory invariants and then the cross-record
// rules: every restricted reference (round, room, teams, jury) must belong
// to the fight's tournament, and the (room, round) pair must be free.
func (s *FightService) validateFight(fight *models.Fight, juryIDs []uint) ([]models.Juror, error) {
	if err := fight.Validate(); err != nil {
		return nil, err
	}

	var round models.TournamentRound
	if err := s.db.First(&round, fight.RoundID).Error; err != nil {
		return nil, apperr.Field("round", "round does not exist")
	}
	if round.TournamentID != fight.TournamentID {
		return nil, apperr.Field("round", "round belongs to a different tournament")
	}

	var room models.Room
	if err := s.db.First(&room, fight.RoomID).Error; err != nil {
		return nil, apperr.Field("room", "room does not exist")
	}
	if room.TournamentID != fight.TournamentID {
		return nil, apperr.Field("room", "room belongs to a different tournament")
	}

	var teams []models.Team
	if err := s.db.Find(&teams, fight.TeamIDs()).Error; err != nil {
		return nil, err
	}
	if len(teams) != len(fight.TeamIDs()) {
		return nil, apperr.Record("one of the referenced teams does not exist")
	}
	for _, team := range teams {
		if team.TournamentID != fight.TournamentID {
			return nil, apperr.Record("participating teams span more than one tournament")
		}
	}

	var conflict models.Fight
	if err := s.db.Where("room_id = ? AND round_id = ? AND id != ?", fight.RoomID, fight.RoundID, fight.ID).
		First(&conflict).Error; err == nil {
		return nil, apperr.Field("room", "this room already hosts a fight in the round")
	}

	var jury []models.Juror
	if len(juryIDs) > 0 {
		if err := s.db.Find(&jury, juryIDs).Error; err != nil {
			return nil, err
		}
		if len(jury) != len(juryIDs) {
			return nil, apperr.Field("jury", "one of the referenced jurors does not exist")
		}
		for _, juror := range jury {
			if juror.TournamentID != fight.TournamentID {
				return nil, apperr.Field("jury", "juror belongs to a different tournament")
			}
		}
	}

	return jury, nil
}
