package services

import (
	"errors"

	"core/apperr"
	"core/models"
	"core/scoping"

	"gorm.io/gorm"
)

// PersonService manages the three person roles of a tournament: participants,
// leaders and jurors. Participants and leaders hang off a team and derive
// their tournament from it; jurors attach to the tournament directly.
type PersonService struct {
	db              *gorm.DB
	participantRule scoping.Rule
	leaderRule      scoping.Rule
	jurorRule       scoping.Rule
}

func NewPersonService(db *gorm.DB, registry *scoping.Registry) *PersonService {
	return &PersonService{
		db:              db,
		participantRule: registry.Rule("participants"),
		leaderRule:      registry.Rule("leaders"),
		jurorRule:       registry.Rule("jurors"),
	}
}

// teamInTournament checks the restricted "team" reference field: the team a
// participant or leader is attached to must live in the record's tournament.
func (s *PersonService) teamInTournament(teamID, tournamentID uint) error {
	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		return apperr.Field("team", "team does not exist")
	}
	if team.TournamentID != tournamentID {
		return apperr.Field("team", "team belongs to a different tournament")
	}
	return nil
}

func (s *PersonService) personIdentityExists(id uint) error {
	var identity models.PersonIdentity
	if err := s.db.First(&identity, id).Error; err != nil {
		return apperr.Field("identity", "person identity does not exist")
	}
	return nil
}

// Participants

func (s *PersonService) CreateParticipant(caller scoping.Caller, req models.CreatePersonRequest) (*models.Participant, error) {
	if req.TeamID == 0 {
		return nil, apperr.Field("team", "team is required")
	}

	participant := &models.Participant{
		TeamID:     req.TeamID,
		ShortName:  req.ShortName,
		FullName:   req.FullName,
		Origin:     req.Origin,
		Grade:      req.Grade,
		IsCaptain:  req.IsCaptain,
		IdentityID: req.IdentityID,
	}

	if err := scoping.Stamp(s.db, caller, participant); err != nil {
		return nil, err
	}

	if err := s.teamInTournament(participant.TeamID, participant.TournamentID); err != nil {
		return nil, err
	}
	if participant.IdentityID != nil {
		if err := s.personIdentityExists(*participant.IdentityID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Create(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

func (s *PersonService) GetParticipant(caller scoping.Caller, id uint) (*models.Participant, error) {
	var participant models.Participant
	err := s.participantRule.Filter(s.db, caller).Preload("Team").First(&participant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &participant, nil
}

func (s *PersonService) ListParticipants(caller scoping.Caller, page, pageSize int) (*models.PaginatedParticipantsResponse, error) {
	var participants []models.Participant
	var total int64

	query := s.participantRule.Filter(s.db.Model(&models.Participant{}), caller)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	if err := query.
		Preload("Team").
		Order("short_name").
		Offset(offset).
		Limit(pageSize).
		Find(&participants).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedParticipantsResponse{
		Data:       participants,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *PersonService) UpdateParticipant(caller scoping.Caller, id uint, req models.UpdatePersonRequest) (*models.Participant, error) {
	participant, err := s.GetParticipant(caller, id)
	if err != nil {
		return nil, err
	}

	if req.TeamID != nil {
		if err := s.teamInTournament(*req.TeamID, participant.TournamentID); err != nil {
			return nil, err
		}
		participant.TeamID = *req.TeamID
	}
	if req.ShortName != nil {
		participant.ShortName = *req.ShortName
	}
	if req.FullName != nil {
		participant.FullName = *req.FullName
	}
	if req.Origin != nil {
		participant.Origin = *req.Origin
	}
	if req.Grade != nil {
		participant.Grade = *req.Grade
	}
	if req.IsCaptain != nil {
		participant.IsCaptain = *req.IsCaptain
	}
	if req.IdentityID != nil {
		if err := s.personIdentityExists(*req.IdentityID); err != nil {
			return nil, err
		}
		participant.IdentityID = req.IdentityID
	}

	participant.Team = models.Team{}
	if err := s.db.Save(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

func (s *PersonService) DeleteParticipant(caller scoping.Caller, id uint) error {
	if _, err := s.GetParticipant(caller, id); err != nil {
		return err
	}
	return s.db.Delete(&models.Participant{}, id).Error
}

// Leaders

func (s *PersonService) CreateLeader(caller scoping.Caller, req models.CreatePersonRequest) (*models.Leader, error) {
	if req.TeamID == 0 {
		return nil, apperr.Field("team", "team is required")
	}

	leader := &models.Leader{
		TeamID:     req.TeamID,
		ShortName:  req.ShortName,
		FullName:   req.FullName,
		Origin:     req.Origin,
		IdentityID: req.IdentityID,
	}

	if err := scoping.Stamp(s.db, caller, leader); err != nil {
		return nil, err
	}

	if err := s.teamInTournament(leader.TeamID, leader.TournamentID); err != nil {
		return nil, err
	}
	if leader.IdentityID != nil {
		if err := s.personIdentityExists(*leader.IdentityID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Create(leader).Error; err != nil {
		return nil, err
	}
	return leader, nil
}

func (s *PersonService) GetLeader(caller scoping.Caller, id uint) (*models.Leader, error) {
	var leader models.Leader
	err := s.leaderRule.Filter(s.db, caller).Preload("Team").First(&leader, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &leader, nil
}

func (s *PersonService) ListLeaders(caller scoping.Caller) ([]models.Leader, error) {
	var leaders []models.Leader
	err := s.leaderRule.Filter(s.db, caller).Preload("Team").Order("short_name").Find(&leaders).Error
	return leaders, err
}

func (s *PersonService) UpdateLeader(caller scoping.Caller, id uint, req models.UpdatePersonRequest) (*models.Leader, error) {
	leader, err := s.GetLeader(caller, id)
	if err != nil {
		return nil, err
	}

	if req.TeamID != nil {
		if err := s.teamInTournament(*req.TeamID, leader.TournamentID); err != nil {
			return nil, err
		}
		leader.TeamID = *req.TeamID
	}
	if req.ShortName != nil {
		leader.ShortName = *req.ShortName
	}
	if req.FullName != nil {
		leader.FullName = *req.FullName
	}
	if req.Origin != nil {
		leader.Origin = *req.Origin
	}
	if req.IdentityID != nil {
		if err := s.personIdentityExists(*req.IdentityID); err != nil {
			return nil, err
		}
		leader.IdentityID = req.IdentityID
	}

	leader.Team = models.Team{}
	if err := s.db.Save(leader).Error; err != nil {
		return nil, err
	}
	return leader, nil
}

func (s *PersonService) DeleteLeader(caller scoping.Caller, id uint) error {
	if _, err := s.GetLeader(caller, id); err != nil {
		return err
	}
	return s.db.Delete(&models.Leader{}, id).Error
}

// Jurors

func (s *PersonService) CreateJuror(caller scoping.Caller, req models.CreatePersonRequest) (*models.Juror, error) {
	juror := &models.Juror{
		ShortName:  req.ShortName,
		FullName:   req.FullName,
		Origin:     req.Origin,
		IdentityID: req.IdentityID,
	}
	if caller.Superuser {
		if req.TournamentID == nil {
			return nil, apperr.Field("tournament", "tournament is required")
		}
		juror.TournamentID = *req.TournamentID
	}

	if err := scoping.Stamp(s.db, caller, juror); err != nil {
		return nil, err
	}

	if juror.IdentityID != nil {
		if err := s.personIdentityExists(*juror.IdentityID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Create(juror).Error; err != nil {
		return nil, err
	}
	return juror, nil
}

func (s *PersonService) GetJuror(caller scoping.Caller, id uint) (*models.Juror, error) {
	var juror models.Juror
	err := s.jurorRule.Filter(s.db, caller).First(&juror, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &juror, nil
}

func (s *PersonService) ListJurors(caller scoping.Caller) ([]models.Juror, error) {
	var jurors []models.Juror
	err := s.jurorRule.Filter(s.db, caller).Order("short_name").Find(&jurors).Error
	return jurors, err
}

func (s *PersonService) UpdateJuror(caller scoping.Caller, id uint, req models.UpdatePersonRequest) (*models.Juror, error) {
	juror, err := s.GetJuror(caller, id)
	if err != nil {
		return nil, err
	}

	if req.ShortName != nil {
		juror.ShortName = *req.ShortName
	}
	if req.FullName != nil {
		juror.FullName = *req.FullName
	}
	if req.Origin != nil {
		juror.Origin = *req.Origin
	}
	if req.IdentityID != nil {
		if err := s.personIdentityExists(*req.IdentityID); err != nil {
			return nil, err
		}
		juror.IdentityID = req.IdentityID
	}

	if err := s.db.Save(juror).Error; err != nil {
		return nil, err
	}
	return juror, nil
}

func (s *PersonService) DeleteJuror(caller scoping.Caller, id uint) error {
	if _, err := s.GetJuror(caller, id); err != nil {
		return err
	}
	return s.db.Delete(&models.Juror{}, id).Error
}
