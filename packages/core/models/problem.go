package models

import "time"

type Problem struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint      `gorm:"not null;uniqueIndex:idx_problems_tournament_num;constraint:OnDelete:CASCADE" json:"tournament_id"`
	ProblemNum   int       `gorm:"not null;uniqueIndex:idx_problems_tournament_num" json:"problem_num"`
	Name         string    `gorm:"size:140;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tournament Tournament `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
}

func (Problem) TableName() string {
	return "problems"
}

func (p *Problem) GetTournamentID() uint   { return p.TournamentID }
func (p *Problem) SetTournamentID(id uint) { p.TournamentID = id }

type CreateProblemRequest struct {
	TournamentID *uint  `json:"tournament_id,omitempty"` // superuser only, ignored otherwise
	ProblemNum   int    `json:"problem_num" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description,omitempty"`
}

type UpdateProblemRequest struct {
	ProblemNum  *int    `json:"problem_num,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
