package services

import (
	"errors"

	"core/apperr"
	"core/models"
	"core/scoping"

	"gorm.io/gorm"
)

type TeamService struct {
	db   *gorm.DB
	rule scoping.Rule
}

func NewTeamService(db *gorm.DB, registry *scoping.Registry) *TeamService {
	return &TeamService{
		db:   db,
		rule: registry.Rule("teams"),
	}
}

func (s *TeamService) CreateTeam(caller scoping.Caller, req models.CreateTeamRequest) (*models.Team, error) {
	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		Origin:      req.Origin,
		IdentityID:  req.IdentityID,
	}
	if req.Slug != "" {
		team.Slug = &req.Slug
	}
	if caller.Superuser {
		if req.TournamentID == nil {
			return nil, apperr.Field("tournament", "tournament is required")
		}
		team.TournamentID = *req.TournamentID
	}

	if err := scoping.Stamp(s.db, caller, team); err != nil {
		return nil, err
	}

	if err := s.validateTeam(team); err != nil {
		return nil, err
	}

	if err := s.db.Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) GetTeam(caller scoping.Caller, id uint) (*models.Team, error) {
	var team models.Team
	err := s.rule.Filter(s.db, caller).
		Preload("Participants", func(db *gorm.DB) *gorm.DB { return db.Order("short_name") }).
		Preload("Leaders", func(db *gorm.DB) *gorm.DB { return db.Order("short_name") }).
		Preload("Identity").
		First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) ListTeams(caller scoping.Caller, page, pageSize int) (*models.PaginatedTeamsResponse, error) {
	var teams []models.Team
	var total int64

	query := s.rule.Filter(s.db.Model(&models.Team{}), caller)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	if err := query.
		Order("name").
		Offset(offset).
		Limit(pageSize).
		Find(&teams).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedTeamsResponse{
		Data:       teams,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *TeamService) UpdateTeam(caller scoping.Caller, id uint, req models.UpdateTeamRequest) (*models.Team, error) {
	team, err := s.GetTeam(caller, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.Origin != nil {
		team.Origin = *req.Origin
	}
	if req.Slug != nil {
		// empty string clears the slug, BeforeSave turns it into NULL
		team.Slug = req.Slug
	}
	if req.IdentityID != nil {
		team.IdentityID = req.IdentityID
	}

	if err := s.validateTeam(team); err != nil {
		return nil, err
	}

	if err := s.db.Save(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) DeleteTeam(caller scoping.Caller, id uint) error {
	if _, err := s.GetTeam(caller, id); err != nil {
		return err
	}
	return s.db.Delete(&models.Team{}, id).Error
}

func (s *TeamService) validateTeam(team *models.Team) error {
	if team.Slug != nil && *team.Slug != "" {
		var existing models.Team
		if err := s.db.Where("tournament_id = ? AND slug = ? AND id != ?", team.TournamentID, *team.Slug, team.ID).
			First(&existing).Error; err == nil {
			return apperr.Field("slug", "a team with this slug already exists in the tournament")
		}
	}

	if team.IdentityID != nil {
		var identity models.TeamIdentity
		if err := s.db.First(&identity, *team.IdentityID).Error; err != nil {
			return apperr.Field("identity", "team identity does not exist")
		}
		var existing models.Team
		if err := s.db.Where("tournament_id = ? AND identity_id = ? AND id != ?", team.TournamentID, *team.IdentityID, team.ID).
			First(&existing).Error; err == nil {
			return apperr.Field("identity", "this identity is already linked to another team of the tournament")
		}
	}

	return nil
}
