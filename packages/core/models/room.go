package models

import "time"

type Room struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"tournament_id"`
	Name         string    `gorm:"size:140;not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tournament Tournament `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}

func (r *Room) GetTournamentID() uint   { return r.TournamentID }
func (r *Room) SetTournamentID(id uint) { r.TournamentID = id }

type CreateRoomRequest struct {
	TournamentID *uint  `json:"tournament_id,omitempty"` // superuser only, ignored otherwise
	Name         string `json:"name" binding:"required"`
}

type UpdateRoomRequest struct {
	Name *string `json:"name,omitempty"`
}
