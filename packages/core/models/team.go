package models

import (
	"time"

	"gorm.io/gorm"
)

// TeamIdentity tracks the same real-world team across tournament editions
// without merging its per-tournament records.
type TeamIdentity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:140;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Teams []Team `gorm:"foreignKey:IdentityID" json:"teams,omitempty"`
}

func (TeamIdentity) TableName() string {
	return "team_identities"
}

type Team struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint   `gorm:"not null;uniqueIndex:idx_teams_tournament_slug;uniqueIndex:idx_teams_tournament_identity;constraint:OnDelete:CASCADE" json:"tournament_id"`
	Name         string `gorm:"size:140;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	Origin       string `gorm:"size:140" json:"origin"`
	// Slug is NULL when the team has none; an empty string would collide
	// with other slug-less teams under the per-tournament unique index.
	Slug       *string   `gorm:"size:140;uniqueIndex:idx_teams_tournament_slug" json:"slug"`
	IdentityID *uint     `gorm:"uniqueIndex:idx_teams_tournament_identity" json:"identity_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Tournament   Tournament    `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
	Identity     *TeamIdentity `gorm:"foreignKey:IdentityID;references:ID" json:"identity,omitempty"`
	Participants []Participant `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	Leaders      []Leader      `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"leaders,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

func (t *Team) GetTournamentID() uint   { return t.TournamentID }
func (t *Team) SetTournamentID(id uint) { t.TournamentID = id }

// BeforeSave normalizes an empty slug to NULL so slug-less teams never
// violate the (tournament, slug) uniqueness constraint.
func (t *Team) BeforeSave(tx *gorm.DB) error {
	if t.Slug != nil && *t.Slug == "" {
		t.Slug = nil
	}
	return nil
}

// DTOs

type CreateTeamRequest struct {
	TournamentID *uint  `json:"tournament_id,omitempty"` // superuser only, ignored otherwise
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description,omitempty"`
	Origin       string `json:"origin,omitempty"`
	Slug         string `json:"slug,omitempty"`
	IdentityID   *uint  `json:"identity_id,omitempty"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Origin      *string `json:"origin,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	IdentityID  *uint   `json:"identity_id,omitempty"`
}

type PaginatedTeamsResponse struct {
	Data       []Team `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}
