package models

import (
	"time"

	"core/apperr"
)

const (
	FightNotStarted = "not_started"
	FightInProgress = "in_progress"
	FightCompleted  = "completed"
)

// Fight is a scheduled match between two to four teams in a room during a
// round. A room hosts at most one fight per round.
type Fight struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TournamentID uint       `gorm:"not null;constraint:OnDelete:CASCADE" json:"tournament_id"`
	RoundID      uint       `gorm:"not null;uniqueIndex:idx_fights_room_round;constraint:OnDelete:CASCADE" json:"round_id"`
	RoomID       uint       `gorm:"not null;uniqueIndex:idx_fights_room_round;constraint:OnDelete:CASCADE" json:"room_id"`
	Status       string     `gorm:"size:20;not null;default:not_started" json:"status"`
	StartTime    *time.Time `json:"start_time"`
	StopTime     *time.Time `json:"stop_time"`
	Team1ID      uint       `gorm:"not null;constraint:OnDelete:CASCADE" json:"team1_id"`
	Team2ID      uint       `gorm:"not null;constraint:OnDelete:CASCADE" json:"team2_id"`
	Team3ID      *uint      `json:"team3_id"`
	Team4ID      *uint      `json:"team4_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relationships
	Tournament Tournament      `gorm:"foreignKey:TournamentID;references:ID" json:"tournament,omitempty"`
	Round      TournamentRound `gorm:"foreignKey:RoundID;references:ID" json:"round,omitempty"`
	Room       Room            `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Team1      Team            `gorm:"foreignKey:Team1ID;references:ID" json:"team1,omitempty"`
	Team2      Team            `gorm:"foreignKey:Team2ID;references:ID" json:"team2,omitempty"`
	Team3      *Team           `gorm:"foreignKey:Team3ID;references:ID" json:"team3,omitempty"`
	Team4      *Team           `gorm:"foreignKey:Team4ID;references:ID" json:"team4,omitempty"`
	Jury       []Juror         `gorm:"many2many:fight_jury;constraint:OnDelete:CASCADE" json:"jury,omitempty"`
	Stages     []FightStage    `gorm:"foreignKey:FightID;constraint:OnDelete:CASCADE" json:"stages,omitempty"`
}

func (Fight) TableName() string {
	return "fights"
}

func (f *Fight) GetTournamentID() uint   { return f.TournamentID }
func (f *Fight) SetTournamentID(id uint) { f.TournamentID = id }

// TeamIDs returns the populated team slots in order.
func (f *Fight) TeamIDs() []uint {
	ids := []uint{f.Team1ID, f.Team2ID}
	if f.Team3ID != nil {
		ids = append(ids, *f.Team3ID)
	}
	if f.Team4ID != nil {
		ids = append(ids, *f.Team4ID)
	}
	return ids
}

// HasReviewingTeam reports whether a third team takes the reviewer role.
func (f *Fight) HasReviewingTeam() bool {
	return f.Team3ID != nil
}

// Validate checks the in-memory invariants of the fight: time ordering,
// contiguous team slots and team distinctness. Cross-record rules (teams
// spanning tournaments, room/round ownership) live in the service layer.
func (f *Fight) Validate() error {
	if f.StartTime != nil && f.StopTime != nil && !f.StartTime.Before(*f.StopTime) {
		return apperr.Field("stop_time", "fight is completed before being started")
	}

	if f.Team3ID == nil && f.Team4ID != nil {
		return apperr.Field("team3", "team slots must be filled without gaps")
	}

	seen := map[uint]bool{}
	for _, id := range f.TeamIDs() {
		if seen[id] {
			return apperr.Record("participating teams are not unique")
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		return apperr.Record("a fight needs at least two distinct teams")
	}

	switch f.Status {
	case FightNotStarted, FightInProgress, FightCompleted:
	default:
		return apperr.Field("status", "unknown fight status")
	}

	return nil
}

// FightStage is one scored action within a fight, assigning the reporter,
// opponent and optional reviewer roles to participants.
type FightStage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FightID    uint      `gorm:"not null;uniqueIndex:idx_stages_fight_action;constraint:OnDelete:CASCADE" json:"fight_id"`
	ActionNum  int       `gorm:"not null;uniqueIndex:idx_stages_fight_action" json:"action_num"`
	ProblemID  uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"problem_id"`
	ReporterID uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"reporter_id"`
	OpponentID uint      `gorm:"not null;constraint:OnDelete:CASCADE" json:"opponent_id"`
	ReviewerID *uint     `json:"reviewer_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Fight    Fight         `gorm:"foreignKey:FightID;references:ID" json:"fight,omitempty"`
	Problem  Problem       `gorm:"foreignKey:ProblemID;references:ID" json:"problem,omitempty"`
	Reporter Participant   `gorm:"foreignKey:ReporterID;references:ID" json:"reporter,omitempty"`
	Opponent Participant   `gorm:"foreignKey:OpponentID;references:ID" json:"opponent,omitempty"`
	Reviewer *Participant  `gorm:"foreignKey:ReviewerID;references:ID" json:"reviewer,omitempty"`
	Refusals []Refusal     `gorm:"foreignKey:FightStageID;constraint:OnDelete:CASCADE" json:"refusals,omitempty"`
	Marks    []JurorPoints `gorm:"foreignKey:FightStageID;constraint:OnDelete:CASCADE" json:"marks,omitempty"`
}

func (FightStage) TableName() string {
	return "fight_stages"
}

// Validate checks that reporter, opponent and reviewer are distinct people.
func (s *FightStage) Validate() error {
	if s.ReporterID == s.OpponentID {
		return apperr.Record("reporter and opponent must be different participants")
	}
	if s.ReviewerID != nil && (*s.ReviewerID == s.ReporterID || *s.ReviewerID == s.OpponentID) {
		return apperr.Record("reviewer must differ from reporter and opponent")
	}
	return nil
}

// Refusal records a problem the reporting team declined during a stage.
type Refusal struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FightStageID uint      `gorm:"not null;uniqueIndex:idx_refusals_stage_problem;constraint:OnDelete:CASCADE" json:"fight_stage_id"`
	ProblemID    uint      `gorm:"not null;uniqueIndex:idx_refusals_stage_problem;constraint:OnDelete:CASCADE" json:"problem_id"`
	CreatedAt    time.Time `json:"created_at"`

	FightStage FightStage `gorm:"foreignKey:FightStageID;references:ID" json:"fight_stage,omitempty"`
	Problem    Problem    `gorm:"foreignKey:ProblemID;references:ID" json:"problem,omitempty"`
}

func (Refusal) TableName() string {
	return "refusals"
}

// JurorPoints holds one juror's marks for one stage. The reviewer mark is
// present exactly when the parent fight has a reviewing team.
type JurorPoints struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FightStageID uint      `gorm:"not null;uniqueIndex:idx_points_stage_juror;constraint:OnDelete:CASCADE" json:"fight_stage_id"`
	JurorID      uint      `gorm:"not null;uniqueIndex:idx_points_stage_juror;constraint:OnDelete:CASCADE" json:"juror_id"`
	ReporterMark int       `gorm:"not null" json:"reporter_mark"`
	OpponentMark int       `gorm:"not null" json:"opponent_mark"`
	ReviewerMark *int      `json:"reviewer_mark"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	FightStage FightStage `gorm:"foreignKey:FightStageID;references:ID" json:"fight_stage,omitempty"`
	Juror      Juror      `gorm:"foreignKey:JurorID;references:ID" json:"juror,omitempty"`
}

func (JurorPoints) TableName() string {
	return "juror_points"
}

// DTOs

type CreateFightRequest struct {
	TournamentID *uint      `json:"tournament_id,omitempty"` // superuser only, ignored otherwise
	RoundID      uint       `json:"round_id" binding:"required"`
	RoomID       uint       `json:"room_id" binding:"required"`
	Team1ID      uint       `json:"team1_id" binding:"required"`
	Team2ID      uint       `json:"team2_id" binding:"required"`
	Team3ID      *uint      `json:"team3_id,omitempty"`
	Team4ID      *uint      `json:"team4_id,omitempty"`
	Status       string     `json:"status,omitempty" binding:"omitempty,oneof=not_started in_progress completed"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	StopTime     *time.Time `json:"stop_time,omitempty"`
	JuryIDs      []uint     `json:"jury_ids,omitempty"`
}

type UpdateFightRequest struct {
	RoundID    *uint      `json:"round_id,omitempty"`
	RoomID     *uint      `json:"room_id,omitempty"`
	Team1ID    *uint      `json:"team1_id,omitempty"`
	Team2ID    *uint      `json:"team2_id,omitempty"`
	Team3ID    *uint      `json:"team3_id,omitempty"`
	Team4ID    *uint      `json:"team4_id,omitempty"`
	ClearTeam3 bool       `json:"clear_team3,omitempty"`
	ClearTeam4 bool       `json:"clear_team4,omitempty"`
	Status     *string    `json:"status,omitempty" binding:"omitempty,oneof=not_started in_progress completed"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	StopTime   *time.Time `json:"stop_time,omitempty"`
	JuryIDs    *[]uint    `json:"jury_ids,omitempty"`
}

type CreateStageRequest struct {
	FightID    uint  `json:"fight_id" binding:"required"`
	ActionNum  int   `json:"action_num" binding:"required"`
	ProblemID  uint  `json:"problem_id" binding:"required"`
	ReporterID uint  `json:"reporter_id" binding:"required"`
	OpponentID uint  `json:"opponent_id" binding:"required"`
	ReviewerID *uint `json:"reviewer_id,omitempty"`
}

type UpdateStageRequest struct {
	ActionNum     *int  `json:"action_num,omitempty"`
	ProblemID     *uint `json:"problem_id,omitempty"`
	ReporterID    *uint `json:"reporter_id,omitempty"`
	OpponentID    *uint `json:"opponent_id,omitempty"`
	ReviewerID    *uint `json:"reviewer_id,omitempty"`
	ClearReviewer bool  `json:"clear_reviewer,omitempty"`
}

type CreateRefusalRequest struct {
	FightStageID uint `json:"fight_stage_id" binding:"required"`
	ProblemID    uint `json:"problem_id" binding:"required"`
}

type CreateJurorPointsRequest struct {
	FightStageID uint `json:"fight_stage_id" binding:"required"`
	JurorID      uint `json:"juror_id" binding:"required"`
	ReporterMark int  `json:"reporter_mark"`
	OpponentMark int  `json:"opponent_mark"`
	ReviewerMark *int `json:"reviewer_mark,omitempty"`
}

type UpdateJurorPointsRequest struct {
	ReporterMark      *int `json:"reporter_mark,omitempty"`
	OpponentMark      *int `json:"opponent_mark,omitempty"`
	ReviewerMark      *int `json:"reviewer_mark,omitempty"`
	ClearReviewerMark bool `json:"clear_reviewer_mark,omitempty"`
}

// FightRefsResponse carries the pickable reference sets for a fight, all
// limited to the fight's own tournament.
type FightRefsResponse struct {
	Rounds   []TournamentRound `json:"rounds"`
	Rooms    []Room            `json:"rooms"`
	Teams    []Team            `json:"teams"`
	Jurors   []Juror           `json:"jurors"`
	Problems []Problem         `json:"problems"`
}

type PaginatedFightsResponse struct {
	Data       []Fight `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
