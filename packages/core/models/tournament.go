package models

import (
	"time"
)

type Tournament struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"size:140;not null" json:"name"`
	Slug        string     `gorm:"size:140;unique;not null" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	OpeningDate *time.Time `json:"opening_date"`
	ClosingDate *time.Time `json:"closing_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Rounds []TournamentRound `gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE" json:"rounds,omitempty"`
	Teams  []Team            `gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE" json:"teams,omitempty"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

type TournamentRound struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint       `gorm:"not null;uniqueIndex:idx_rounds_tournament_num;constraint:OnDelete:CASCADE" json:"tournament_id"`
	RoundNum     int        `gorm:"not null;uniqueIndex:idx_rounds_tournament_num" json:"round_num"`
	OpeningTime  *time.Time `json:"opening_time"`
	ClosingTime  *time.Time `json:"closing_time"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Tournament Tournament `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
}

func (TournamentRound) TableName() string {
	return "tournament_rounds"
}

func (r *TournamentRound) GetTournamentID() uint   { return r.TournamentID }
func (r *TournamentRound) SetTournamentID(id uint) { r.TournamentID = id }

// UserProfile pins a staff account to the single tournament it administers.
// A profile without a tournament means the account sees nothing and may
// write nothing.
type UserProfile struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	TournamentID *uint     `json:"tournament_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tournament *Tournament `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// DTOs

type CreateTournamentRequest struct {
	Name        string     `json:"name" binding:"required"`
	Slug        string     `json:"slug" binding:"required"`
	Description string     `json:"description,omitempty"`
	OpeningDate *time.Time `json:"opening_date,omitempty"`
	ClosingDate *time.Time `json:"closing_date,omitempty"`
}

type UpdateTournamentRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	OpeningDate *time.Time `json:"opening_date,omitempty"`
	ClosingDate *time.Time `json:"closing_date,omitempty"`
}

type CreateRoundRequest struct {
	TournamentID *uint      `json:"tournament_id,omitempty"` // superuser only, ignored otherwise
	RoundNum     int        `json:"round_num" binding:"required"`
	OpeningTime  *time.Time `json:"opening_time,omitempty"`
	ClosingTime  *time.Time `json:"closing_time,omitempty"`
}

type UpdateRoundRequest struct {
	RoundNum    *int       `json:"round_num,omitempty"`
	OpeningTime *time.Time `json:"opening_time,omitempty"`
	ClosingTime *time.Time `json:"closing_time,omitempty"`
}

type AssignProfileRequest struct {
	UserID       uint  `json:"user_id" binding:"required"`
	TournamentID *uint `json:"tournament_id,omitempty"`
}
