package services

import (
	"errors"

	"core/apperr"
	"core/models"
	"core/scoping"

	"gorm.io/gorm"
)

// FacilityService manages rooms and problems, the two plain per-tournament
// reference tables the schedule builds on.
type FacilityService struct {
	db          *gorm.DB
	roomRule    scoping.Rule
	problemRule scoping.Rule
}

func NewFacilityService(db *gorm.DB, registry *scoping.Registry) *FacilityService {
	return &FacilityService{
		db:          db,
		roomRule:    registry.Rule("rooms"),
		problemRule: registry.Rule("problems"),
	}
}

// Rooms

func (s *FacilityService) CreateRoom(caller scoping.Caller, req models.CreateRoomRequest) (*models.Room, error) {
	room := &models.Room{Name: req.Name}
	if caller.Superuser {
		if req.TournamentID == nil {
			return nil, apperr.Field("tournament", "tournament is required")
		}
		room.TournamentID = *req.TournamentID
	}

	if err := scoping.Stamp(s.db, caller, room); err != nil {
		return nil, err
	}

	if err := s.db.Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

func (s *FacilityService) GetRoom(caller scoping.Caller, id uint) (*models.Room, error) {
	var room models.Room
	err := s.roomRule.Filter(s.db, caller).First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *FacilityService) ListRooms(caller scoping.Caller) ([]models.Room, error) {
	var rooms []models.Room
	err := s.roomRule.Filter(s.db, caller).Order("name").Find(&rooms).Error
	return rooms, err
}

func (s *FacilityService) UpdateRoom(caller scoping.Caller, id uint, req models.UpdateRoomRequest) (*models.Room, error) {
	room, err := s.GetRoom(caller, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}

	if err := s.db.Save(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

func (s *FacilityService) DeleteRoom(caller scoping.Caller, id uint) error {
	if _, err := s.GetRoom(caller, id); err != nil {
		return err
	}
	return s.db.Delete(&models.Room{}, id).Error
}

// Problems

func (s *FacilityService) CreateProblem(caller scoping.Caller, req models.CreateProblemRequest) (*models.Problem, error) {
	problem := &models.Problem{
		ProblemNum:  req.ProblemNum,
		Name:        req.Name,
		Description: req.Description,
	}
	if caller.Superuser {
		if req.TournamentID == nil {
			return nil, apperr.Field("tournament", "tournament is required")
		}
		problem.TournamentID = *req.TournamentID
	}

	if err := scoping.Stamp(s.db, caller, problem); err != nil {
		return nil, err
	}

	var existing models.Problem
	if err := s.db.Where("tournament_id = ? AND problem_num = ?", problem.TournamentID, problem.ProblemNum).
		First(&existing).Error; err == nil {
		return nil, apperr.Field("problem_num", "this problem number is already used in the tournament")
	}

	if err := s.db.Create(problem).Error; err != nil {
		return nil, err
	}
	return problem, nil
}

func (s *FacilityService) GetProblem(caller scoping.Caller, id uint) (*models.Problem, error) {
	var problem models.Problem
	err := s.problemRule.Filter(s.db, caller).First(&problem, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &problem, nil
}

func (s *FacilityService) ListProblems(caller scoping.Caller) ([]models.Problem, error) {
	var problems []models.Problem
	err := s.problemRule.Filter(s.db, caller).Order("problem_num").Find(&problems).Error
	return problems, err
}

func (s *FacilityService) UpdateProblem(caller scoping.Caller, id uint, req models.UpdateProblemRequest) (*models.Problem, error) {
	problem, err := s.GetProblem(caller, id)
	if err != nil {
		return nil, err
	}

	if req.ProblemNum != nil && *req.ProblemNum != problem.ProblemNum {
		var existing models.Problem
		if err := s.db.Where("tournament_id = ? AND problem_num = ? AND id != ?", problem.TournamentID, *req.ProblemNum, problem.ID).
			First(&existing).Error; err == nil {
			return nil, apperr.Field("problem_num", "this problem number is already used in the tournament")
		}
		problem.ProblemNum = *req.ProblemNum
	}
	if req.Name != nil {
		problem.Name = *req.Name
	}
	if req.Description != nil {
		problem.Description = *req.Description
	}

	if err := s.db.Save(problem).Error; err != nil {
		return nil, err
	}
	return problem, nil
}

func (s *FacilityService) DeleteProblem(caller scoping.Caller, id uint) error {
	if _, err := s.GetProblem(caller, id); err != nil {
		return err
	}
	return s.db.Delete(&models.Problem{}, id).Error
}
