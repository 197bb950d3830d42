package services

import (
	"errors"
	"time"

	"core/apperr"
	"core/models"
	"core/scoping"

	"gorm.io/gorm"
)

// IdentityService manages the cross-tournament identity records. Identities
// are not scoped to a tournament, so every operation is superuser-only.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// Team identities

func (s *IdentityService) CreateTeamIdentity(caller scoping.Caller, req models.CreateIdentityRequest) (*models.TeamIdentity, error) {
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}
	identity := &models.TeamIdentity{Name: req.Name}
	if err := s.db.Create(identity).Error; err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *IdentityService) GetTeamIdentity(caller scoping.Caller, id uint) (*models.IdentityView, error) {
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}
	var identity models.TeamIdentity
	if err := s.db.First(&identity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	view, err := s.teamIdentityView(identity)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *IdentityService) ListTeamIdentities(caller scoping.Caller) ([]models.IdentityView, error) {
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}
	var identities []models.TeamIdentity
	if err := s.db.Order("id").Find(&identities).Error; err != nil {
		return nil, err
	}
	views := make([]models.IdentityView, 0, len(identities))
	for _, identity := range identities {
		view, err := s.teamIdentityView(identity)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *IdentityService) UpdateTeamIdentity(caller scoping.Caller, id uint, req models.UpdateIdentityRequest) (*models.TeamIdentity, error) {
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}
	var identity models.TeamIdentity
	if err := s.db.First(&identity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		identity.Name = *req.Name
	}
	if err := s.db.Save(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *IdentityService) DeleteTeamIdentity(caller scoping.Caller, id uint) error {
	if !caller.Superuser {
		return apperr.ErrForbidden
	}
	result := s.db.Delete(&models.TeamIdentity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Person identities

func (s *IdentityService) CreatePersonIdentity(caller scoping.Caller, req models.CreateIdentityRequest) (*models.PersonIdentity, error) {
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}
	identity := &models.PersonIdentity{Name: req.Name}
	if err := s.db.Create(identity).Error; err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *IdentityService) GetPersonIdentity(caller scoping.Caller, id uint) (*models.IdentityView, error) {
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}
	var identity models.PersonIdentity
	if err := s.db.First(&identity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	view, err := s.personIdentityView(identity)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *IdentityService) ListPersonIdentities(caller scoping.Caller) ([]models.IdentityView, error) {
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}
	var identities []models.PersonIdentity
	if err := s.db.Order("id").Find(&identities).Error; err != nil {
		return nil, err
	}
	views := make([]models.IdentityView, 0, len(identities))
	for _, identity := range identities {
		view, err := s.personIdentityView(identity)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *IdentityService) UpdatePersonIdentity(caller scoping.Caller, id uint, req models.UpdateIdentityRequest) (*models.PersonIdentity, error) {
	if !caller.Superuser {
		return nil, apperr.ErrForbidden
	}
	var identity models.PersonIdentity
	if err := s.db.First(&identity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		identity.Name = *req.Name
	}
	if err := s.db.Save(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *IdentityService) DeletePersonIdentity(caller scoping.Caller, id uint) error {
	if !caller.Superuser {
		return apperr.ErrForbidden
	}
	result := s.db.Delete(&models.PersonIdentity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Labels

// labelCandidate is one linked record competing to name the identity.
type labelCandidate struct {
	label   string
	closing *time.Time
	id      uint
}

// pickLabel returns the candidate from the most recently closed tournament,
// breaking ties (and missing closing dates) by the highest record id.
func pickLabel(fallback string, candidates []labelCandidate) string {
	best := labelCandidate{}
	found := false
	for _, c := range candidates {
		if !found || moreRecent(c, best) {
			best = c
			found = true
		}
	}
	if !found {
		return fallback
	}
	return best.label
}

func moreRecent(a, b labelCandidate) bool {
	switch {
	case a.closing != nil && b.closing == nil:
		return true
	case a.closing == nil && b.closing != nil:
		return false
	case a.closing != nil && b.closing != nil && !a.closing.Equal(*b.closing):
		return a.closing.After(*b.closing)
	default:
		return a.id > b.id
	}
}

func (s *IdentityService) teamIdentityView(identity models.TeamIdentity) (models.IdentityView, error) {
	var teams []models.Team
	if err := s.db.Preload("Tournament").Where("identity_id = ?", identity.ID).Find(&teams).Error; err != nil {
		return models.IdentityView{}, err
	}

	candidates := make([]labelCandidate, 0, len(teams))
	for _, team := range teams {
		candidates = append(candidates, labelCandidate{
			label:   team.Name,
			closing: team.Tournament.ClosingDate,
			id:      team.ID,
		})
	}

	return models.IdentityView{
		ID:    identity.ID,
		Name:  identity.Name,
		Label: pickLabel(identity.Name, candidates),
	}, nil
}

func (s *IdentityService) personIdentityView(identity models.PersonIdentity) (models.IdentityView, error) {
	var candidates []labelCandidate

	var participants []models.Participant
	if err := s.db.Preload("Tournament").Where("identity_id = ?", identity.ID).Find(&participants).Error; err != nil {
		return models.IdentityView{}, err
	}
	for _, p := range participants {
		candidates = append(candidates, labelCandidate{
			label:   p.ShortName,
			closing: p.Tournament.ClosingDate,
			id:      p.ID,
		})
	}

	var leaders []models.Leader
	if err := s.db.Preload("Tournament").Where("identity_id = ?", identity.ID).Find(&leaders).Error; err != nil {
		return models.IdentityView{}, err
	}
	for _, l := range leaders {
		candidates = append(candidates, labelCandidate{
			label:   l.ShortName,
			closing: l.Tournament.ClosingDate,
			id:      l.ID,
		})
	}

	var jurors []models.Juror
	if err := s.db.Preload("Tournament").Where("identity_id = ?", identity.ID).Find(&jurors).Error; err != nil {
		return models.IdentityView{}, err
	}
	for _, j := range jurors {
		candidates = append(candidates, labelCandidate{
			label:   j.ShortName,
			closing: j.Tournament.ClosingDate,
			id:      j.ID,
		})
	}

	return models.IdentityView{
		ID:    identity.ID,
		Name:  identity.Name,
		Label: pickLabel(identity.Name, candidates),
	}, nil
}
