package models

import (
	"time"

	"core/apperr"

	"gorm.io/gorm"
)

// PersonIdentity tracks the same person across tournament editions, whether
// they appear as participant, leader or juror.
type PersonIdentity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:140;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PersonIdentity) TableName() string {
	return "person_identities"
}

type Participant struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint      `gorm:"not null;uniqueIndex:idx_participants_tournament_identity;constraint:OnDelete:CASCADE" json:"tournament_id"`
	TeamID       uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"team_id"`
	ShortName    string    `gorm:"size:140;not null" json:"short_name"`
	FullName     string    `gorm:"size:140" json:"full_name"`
	Origin       string    `gorm:"size:140" json:"origin"`
	Grade        string    `gorm:"size:20" json:"grade"`
	IsCaptain    bool      `gorm:"not null;default:false" json:"is_captain"`
	IdentityID   *uint     `gorm:"uniqueIndex:idx_participants_tournament_identity" json:"identity_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tournament Tournament      `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
	Team       Team            `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`
	Identity   *PersonIdentity `gorm:"foreignKey:IdentityID;references:ID" json:"identity,omitempty"`
}

func (Participant) TableName() string {
	return "participants"
}

func (p *Participant) GetTournamentID() uint   { return p.TournamentID }
func (p *Participant) SetTournamentID(id uint) { p.TournamentID = id }

// DeriveTournamentID resolves the participant's tournament from its team, so
// superusers never have to fill the field by hand.
func (p *Participant) DeriveTournamentID(tx *gorm.DB) (uint, error) {
	var team Team
	if err := tx.First(&team, p.TeamID).Error; err != nil {
		return 0, apperr.Field("team", "team does not exist")
	}
	return team.TournamentID, nil
}

type Leader struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint      `gorm:"not null;uniqueIndex:idx_leaders_tournament_identity;constraint:OnDelete:CASCADE" json:"tournament_id"`
	TeamID       uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"team_id"`
	ShortName    string    `gorm:"size:140;not null" json:"short_name"`
	FullName     string    `gorm:"size:140" json:"full_name"`
	Origin       string    `gorm:"size:140" json:"origin"`
	IdentityID   *uint     `gorm:"uniqueIndex:idx_leaders_tournament_identity" json:"identity_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tournament Tournament      `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
	Team       Team            `gorm:"foreignKey:TeamID;references:ID" json:"team,omitempty"`
	Identity   *PersonIdentity `gorm:"foreignKey:IdentityID;references:ID" json:"identity,omitempty"`
}

func (Leader) TableName() string {
	return "leaders"
}

func (l *Leader) GetTournamentID() uint   { return l.TournamentID }
func (l *Leader) SetTournamentID(id uint) { l.TournamentID = id }

func (l *Leader) DeriveTournamentID(tx *gorm.DB) (uint, error) {
	var team Team
	if err := tx.First(&team, l.TeamID).Error; err != nil {
		return 0, apperr.Field("team", "team does not exist")
	}
	return team.TournamentID, nil
}

type Juror struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint      `gorm:"not null;uniqueIndex:idx_jurors_tournament_identity;constraint:OnDelete:CASCADE" json:"tournament_id"`
	ShortName    string    `gorm:"size:140;not null" json:"short_name"`
	FullName     string    `gorm:"size:140" json:"full_name"`
	Origin       string    `gorm:"size:140" json:"origin"`
	IdentityID   *uint     `gorm:"uniqueIndex:idx_jurors_tournament_identity" json:"identity_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tournament Tournament      `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
	Identity   *PersonIdentity `gorm:"foreignKey:IdentityID;references:ID" json:"identity,omitempty"`
}

func (Juror) TableName() string {
	return "jurors"
}

func (j *Juror) GetTournamentID() uint   { return j.TournamentID }
func (j *Juror) SetTournamentID(id uint) { j.TournamentID = id }

// DTOs

type CreatePersonRequest struct {
	TeamID     uint   `json:"team_id,omitempty"` // participants and leaders
	ShortName  string `json:"short_name" binding:"required"`
	FullName   string `json:"full_name,omitempty"`
	Origin     string `json:"origin,omitempty"`
	Grade      string `json:"grade,omitempty"`      // participants only
	IsCaptain  bool   `json:"is_captain,omitempty"` // participants only
	IdentityID *uint  `json:"identity_id,omitempty"`

	// superuser only, used for jurors which have no parent team
	TournamentID *uint `json:"tournament_id,omitempty"`
}

type UpdatePersonRequest struct {
	TeamID     *uint   `json:"team_id,omitempty"`
	ShortName  *string `json:"short_name,omitempty"`
	FullName   *string `json:"full_name,omitempty"`
	Origin     *string `json:"origin,omitempty"`
	Grade      *string `json:"grade,omitempty"`
	IsCaptain  *bool   `json:"is_captain,omitempty"`
	IdentityID *uint   `json:"identity_id,omitempty"`
}

type PaginatedParticipantsResponse struct {
	Data       []Participant `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}
