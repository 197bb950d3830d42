package services

import (
	"errors"

	"core/apperr"
	"core/models"
	"core/scoping"

	"gorm.io/gorm"
)

// StageService manages fight stages together with their refusals and juror
// marks. All three entity kinds are scoped through their parent fight.
type StageService struct {
	db          *gorm.DB
	stageRule   scoping.Rule
	refusalRule scoping.Rule
	pointsRule  scoping.Rule
	fightRule   scoping.Rule
}

func NewStageService(db *gorm.DB, registry *scoping.Registry) *StageService {
	return &StageService{
		db:          db,
		stageRule:   registry.Rule("fight_stages"),
		refusalRule: registry.Rule("refusals"),
		pointsRule:  registry.Rule("juror_points"),
		fightRule:   registry.Rule("fights"),
	}
}

// Fight stages

func (s *StageService) CreateStage(caller scoping.Caller, req models.CreateStageRequest) (*models.FightStage, error) {
	var fight models.Fight
	err := s.fightRule.Filter(s.db, caller).Preload("Jury").First(&fight, req.FightID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Field("fight", "fight does not exist")
		}
		return nil, err
	}

	stage := &models.FightStage{
		FightID:    fight.ID,
		ActionNum:  req.ActionNum,
		ProblemID:  req.ProblemID,
		ReporterID: req.ReporterID,
		OpponentID: req.OpponentID,
		ReviewerID: req.ReviewerID,
	}

	if err := s.validateStage(stage, &fight); err != nil {
		return nil, err
	}

	if err := s.db.Create(stage).Error; err != nil {
		return nil, err
	}

	return s.GetStage(caller, stage.ID)
}

func (s *StageService) GetStage(caller scoping.Caller, id uint) (*models.FightStage, error) {
	var stage models.FightStage
	err := s.stageRule.Filter(s.db, caller).
		Preload("Problem").
		Preload("Reporter").
		Preload("Opponent").
		Preload("Reviewer").
		Preload("Refusals").
		Preload("Marks").
		First(&stage, "fight_stages.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &stage, nil
}

func (s *StageService) ListStages(caller scoping.Caller, fightID uint) ([]models.FightStage, error) {
	var stages []models.FightStage
	err := s.stageRule.Filter(s.db.Model(&models.FightStage{}), caller).
		Where("fight_stages.fight_id = ?", fightID).
		Preload("Problem").
		Preload("Reporter").
		Preload("Opponent").
		Preload("Reviewer").
		Order("fight_stages.action_num").
		Find(&stages).Error
	return stages, err
}

func (s *StageService) UpdateStage(caller scoping.Caller, id uint, req models.UpdateStageRequest) (*models.FightStage, error) {
	stage, err := s.GetStage(caller, id)
	if err != nil {
		return nil, err
	}

	if req.ActionNum != nil {
		stage.ActionNum = *req.ActionNum
	}
	if req.ProblemID != nil {
		stage.ProblemID = *req.ProblemID
	}
	if req.ReporterID != nil {
		stage.ReporterID = *req.ReporterID
	}
	if req.OpponentID != nil {
		stage.OpponentID = *req.OpponentID
	}
	if req.ReviewerID != nil {
		stage.ReviewerID = req.ReviewerID
	}
	if req.ClearReviewer {
		stage.ReviewerID = nil
	}

	var fight models.Fight
	if err := s.db.First(&fight, stage.FightID).Error; err != nil {
		return nil, err
	}

	if err := s.validateStage(stage, &fight); err != nil {
		return nil, err
	}

	saved := *stage
	saved.Fight = models.Fight{}
	saved.Problem = models.Problem{}
	saved.Reporter = models.Participant{}
	saved.Opponent = models.Participant{}
	saved.Reviewer = nil
	saved.Refusals = nil
	saved.Marks = nil

	if err := s.db.Save(&saved).Error; err != nil {
		return nil, err
	}

	return s.GetStage(caller, id)
}

func (s *StageService) DeleteStage(caller scoping.Caller, id uint) error {
	if _, err := s.GetStage(caller, id); err != nil {
		return err
	}
	return s.db.Select("Refusals", "Marks").Delete(&models.FightStage{ID: id}).Error
}

// validateStage checks role distinctness, action number uniqueness within
// the fight, and that every reference stays inside the fight's tournament.
func (s *StageService) validateStage(stage *models.FightStage, fight *models.Fight) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	var conflict models.FightStage
	err := s.db.Where("fight_id = ? AND action_num = ? AND id != ?", stage.FightID, stage.ActionNum, stage.ID).
		First(&conflict).Error
	if err == nil {
		return apperr.Field("action_num", "this action number is already taken in the fight")
	}

	var problem models.Problem
	if err := s.db.First(&problem, stage.ProblemID).Error; err != nil {
		return apperr.Field("problem", "problem does not exist")
	}
	if problem.TournamentID != fight.TournamentID {
		return apperr.Field("problem", "problem belongs to a different tournament")
	}

	roles := map[string]uint{
		"reporter": stage.ReporterID,
		"opponent": stage.OpponentID,
	}
	if stage.ReviewerID != nil {
		roles["reviewer"] = *stage.ReviewerID
	}
	for field, participantID := range roles {
		var participant models.Participant
		if err := s.db.First(&participant, participantID).Error; err != nil {
			return apperr.Field(field, "participant does not exist")
		}
		if participant.TournamentID != fight.TournamentID {
			return apperr.Field(field, "participant belongs to a different tournament")
		}
	}

	return nil
}

// Refusals

func (s *StageService) CreateRefusal(caller scoping.Caller, req models.CreateRefusalRequest) (*models.Refusal, error) {
	var stage models.FightStage
	err := s.stageRule.Filter(s.db, caller).
		Preload("Fight").
		First(&stage, "fight_stages.id = ?", req.FightStageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Field("fight_stage", "fight stage does not exist")
		}
		return nil, err
	}

	var problem models.Problem
	if err := s.db.First(&problem, req.ProblemID).Error; err != nil {
		return nil, apperr.Field("problem", "problem does not exist")
	}
	if problem.TournamentID != stage.Fight.TournamentID {
		return nil, apperr.Field("problem", "problem belongs to a different tournament")
	}

	var conflict models.Refusal
	err = s.db.Where("fight_stage_id = ? AND problem_id = ?", req.FightStageID, req.ProblemID).
		First(&conflict).Error
	if err == nil {
		return nil, apperr.Field("problem", "this problem was already refused during the stage")
	}

	refusal := &models.Refusal{
		FightStageID: req.FightStageID,
		ProblemID:    req.ProblemID,
	}
	if err := s.db.Create(refusal).Error; err != nil {
		return nil, err
	}
	return refusal, nil
}

func (s *StageService) ListRefusals(caller scoping.Caller, stageID uint) ([]models.Refusal, error) {
	var refusals []models.Refusal
	err := s.refusalRule.Filter(s.db.Model(&models.Refusal{}), caller).
		Where("refusals.fight_stage_id = ?", stageID).
		Preload("Problem").
		Find(&refusals).Error
	return refusals, err
}

func (s *StageService) DeleteRefusal(caller scoping.Caller, id uint) error {
	var refusal models.Refusal
	err := s.refusalRule.Filter(s.db, caller).First(&refusal, "refusals.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.Delete(&models.Refusal{}, refusal.ID).Error
}

// Juror points

func (s *StageService) CreateJurorPoints(caller scoping.Caller, req models.CreateJurorPointsRequest) (*models.JurorPoints, error) {
	var stage models.FightStage
	err := s.stageRule.Filter(s.db, caller).
		Preload("Fight").
		Preload("Fight.Jury").
		First(&stage, "fight_stages.id = ?", req.FightStageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Field("fight_stage", "fight stage does not exist")
		}
		return nil, err
	}

	points := &models.JurorPoints{
		FightStageID: req.FightStageID,
		JurorID:      req.JurorID,
		ReporterMark: req.ReporterMark,
		OpponentMark: req.OpponentMark,
		ReviewerMark: req.ReviewerMark,
	}

	if err := s.validateJurorPoints(points, &stage.Fight); err != nil {
		return nil, err
	}

	var conflict models.JurorPoints
	err = s.db.Where("fight_stage_id = ? AND juror_id = ?", req.FightStageID, req.JurorID).
		First(&conflict).Error
	if err == nil {
		return nil, apperr.Field("juror", "this juror already marked the stage")
	}

	if err := s.db.Create(points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (s *StageService) GetJurorPoints(caller scoping.Caller, id uint) (*models.JurorPoints, error) {
	var points models.JurorPoints
	err := s.pointsRule.Filter(s.db, caller).
		Preload("Juror").
		First(&points, "juror_points.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &points, nil
}

func (s *StageService) ListJurorPoints(caller scoping.Caller, stageID uint) ([]models.JurorPoints, error) {
	var marks []models.JurorPoints
	err := s.pointsRule.Filter(s.db.Model(&models.JurorPoints{}), caller).
		Where("juror_points.fight_stage_id = ?", stageID).
		Preload("Juror").
		Find(&marks).Error
	return marks, err
}

func (s *StageService) UpdateJurorPoints(caller scoping.Caller, id uint, req models.UpdateJurorPointsRequest) (*models.JurorPoints, error) {
	points, err := s.GetJurorPoints(caller, id)
	if err != nil {
		return nil, err
	}

	if req.ReporterMark != nil {
		points.ReporterMark = *req.ReporterMark
	}
	if req.OpponentMark != nil {
		points.OpponentMark = *req.OpponentMark
	}
	if req.ReviewerMark != nil {
		points.ReviewerMark = req.ReviewerMark
	}
	if req.ClearReviewerMark {
		points.ReviewerMark = nil
	}

	var stage models.FightStage
	if err := s.db.Preload("Fight").Preload("Fight.Jury").First(&stage, points.FightStageID).Error; err != nil {
		return nil, err
	}

	if err := s.validateJurorPoints(points, &stage.Fight); err != nil {
		return nil, err
	}

	saved := *points
	saved.FightStage = models.FightStage{}
	saved.Juror = models.Juror{}

	if err := s.db.Save(&saved).Error; err != nil {
		return nil, err
	}
	return s.GetJurorPoints(caller, id)
}

func (s *StageService) DeleteJurorPoints(caller scoping.Caller, id uint) error {
	if _, err := s.GetJurorPoints(caller, id); err != nil {
		return err
	}
	return s.db.Delete(&models.JurorPoints{}, id).Error
}

// validateJurorPoints enforces the two marking rules: the juror must sit on
// the fight's jury, and a reviewer mark is given exactly when the fight has
// a reviewing team.
func (s *StageService) validateJurorPoints(points *models.JurorPoints, fight *models.Fight) error {
	onJury := false
	for _, juror := range fight.Jury {
		if juror.ID == points.JurorID {
			onJury = true
			break
		}
	}
	if !onJury {
		return apperr.Field("juror", "juror is not on the jury of this fight")
	}

	if fight.HasReviewingTeam() && points.ReviewerMark == nil {
		return apperr.Field("reviewer_mark", "a reviewer mark is required when the fight has a reviewing team")
	}
	if !fight.HasReviewingTeam() && points.ReviewerMark != nil {
		return apperr.Field("reviewer_mark", "no reviewer mark is allowed when the fight has no reviewing team")
	}

	return nil
}
