package handlers

import (
	"errors"
	"net/http"

	"core/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PublicHandler serves the read-only tournament site. Nothing here requires
// authentication; every query is anchored on the tournament slug in the URL.
type PublicHandler struct {
	db *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

func (h *PublicHandler) tournamentBySlug(c *gin.Context) (*models.Tournament, bool) {
	var tournament models.Tournament
	err := h.db.Where("slug = ?", c.Param("tournament_slug")).First(&tournament).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return &tournament, true
}

// GetTournament returns the tournament's public card
// @Summary Public tournament info
// @Tags public
// @Produce json
// @Param tournament_slug path string true "Tournament slug"
// @Success 200 {object} models.Tournament
// @Failure 404 {object} map[string]string
// @Router /t/{tournament_slug} [get]
func (h *PublicHandler) GetTournament(c *gin.Context) {
	tournament, ok := h.tournamentBySlug(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, tournament)
}

// GetSchedule returns rounds with their fights
// @Summary Public schedule
// @Description Rounds of the tournament with the fights scheduled in each
// @Tags public
// @Produce json
// @Param tournament_slug path string true "Tournament slug"
// @Success 200 {array} models.TournamentRound
// @Failure 404 {object} map[string]string
// @Router /t/{tournament_slug}/schedule [get]
func (h *PublicHandler) GetSchedule(c *gin.Context) {
	tournament, ok := h.tournamentBySlug(c)
	if !ok {
		return
	}

	var rounds []models.TournamentRound
	if err := h.db.Where("tournament_id = ?", tournament.ID).Order("round_num").Find(&rounds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var fights []models.Fight
	err := h.db.Where("tournament_id = ?", tournament.ID).
		Preload("Room").
		Preload("Team1").
		Preload("Team2").
		Preload("Team3").
		Preload("Team4").
		Order("round_id, room_id").
		Find(&fights).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	byRound := make(map[uint][]models.Fight, len(rounds))
	for _, fight := range fights {
		byRound[fight.RoundID] = append(byRound[fight.RoundID], fight)
	}

	type scheduledRound struct {
		models.TournamentRound
		Fights []models.Fight `json:"fights"`
	}
	schedule := make([]scheduledRound, 0, len(rounds))
	for _, round := range rounds {
		schedule = append(schedule, scheduledRound{TournamentRound: round, Fights: byRound[round.ID]})
	}

	c.JSON(http.StatusOK, schedule)
}

// GetFight returns one fight with stages and marks
// @Summary Public fight detail
// @Tags public
// @Produce json
// @Param tournament_slug path string true "Tournament slug"
// @Param id path int true "Fight ID"
// @Success 200 {object} models.Fight
// @Failure 404 {object} map[string]string
// @Router /t/{tournament_slug}/fights/{id} [get]
func (h *PublicHandler) GetFight(c *gin.Context) {
	tournament, ok := h.tournamentBySlug(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var fight models.Fight
	err := h.db.Where("tournament_id = ?", tournament.ID).
		Preload("Round").
		Preload("Room").
		Preload("Team1").
		Preload("Team2").
		Preload("Team3").
		Preload("Team4").
		Preload("Jury").
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("fight_stages.action_num") }).
		Preload("Stages.Problem").
		Preload("Stages.Reporter").
		Preload("Stages.Opponent").
		Preload("Stages.Reviewer").
		Preload("Stages.Refusals").
		Preload("Stages.Marks").
		First(&fight, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fight not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, fight)
}

// ListTeams returns the tournament's teams
// @Summary Public team list
// @Tags public
// @Produce json
// @Param tournament_slug path string true "Tournament slug"
// @Success 200 {array} models.Team
// @Failure 404 {object} map[string]string
// @Router /t/{tournament_slug}/teams [get]
func (h *PublicHandler) ListTeams(c *gin.Context) {
	tournament, ok := h.tournamentBySlug(c)
	if !ok {
		return
	}

	var teams []models.Team
	if err := h.db.Where("tournament_id = ?", tournament.ID).Order("name").Find(&teams).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GetTeam returns one team with members
// @Summary Public team detail
// @Tags public
// @Produce json
// @Param tournament_slug path string true "Tournament slug"
// @Param id path int true "Team ID"
// @Success 200 {object} models.Team
// @Failure 404 {object} map[string]string
// @Router /t/{tournament_slug}/teams/{id} [get]
func (h *PublicHandler) GetTeam(c *gin.Context) {
	tournament, ok := h.tournamentBySlug(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var team models.Team
	err := h.db.Where("tournament_id = ?", tournament.ID).
		Preload("Participants").
		Preload("Leaders").
		First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, team)
}

// ListParticipants returns the tournament's participants
// @Summary Public participant list
// @Tags public
// @Produce json
// @Param tournament_slug path string true "Tournament slug"
// @Success 200 {array} models.Participant
// @Failure 404 {object} map[string]string
// @Router /t/{tournament_slug}/participants [get]
func (h *PublicHandler) ListParticipants(c *gin.Context) {
	tournament, ok := h.tournamentBySlug(c)
	if !ok {
		return
	}

	var participants []models.Participant
	err := h.db.Where("tournament_id = ?", tournament.ID).
		Preload("Team").
		Order("short_name").
		Find(&participants).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, participants)
}

// ListLeaders returns the tournament's team leaders
// @Summary Public leader list
// @Tags public
// @Produce json
// @Param tournament_slug path string true "Tournament slug"
// @Success 200 {array} models.Leader
// @Failure 404 {object} map[string]string
// @Router /t/{tournament_slug}/leaders [get]
func (h *PublicHandler) ListLeaders(c *gin.Context) {
	tournament, ok := h.tournamentBySlug(c)
	if !ok {
		return
	}

	var leaders []models.Leader
	err := h.db.Where("tournament_id = ?", tournament.ID).
		Preload("Team").
		Order("short_name").
		Find(&leaders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, leaders)
}

// ListJury returns the tournament's jurors
// @Summary Public jury list
// @Tags public
// @Produce json
// @Param tournament_slug path string true "Tournament slug"
// @Success 200 {array} models.Juror
// @Failure 404 {object} map[string]string
// @Router /t/{tournament_slug}/jury [get]
func (h *PublicHandler) ListJury(c *gin.Context) {
	tournament, ok := h.tournamentBySlug(c)
	if !ok {
		return
	}

	var jurors []models.Juror
	err := h.db.Where("tournament_id = ?", tournament.ID).Order("short_name").Find(&jurors).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, jurors)
}

// ListRooms returns the tournament's rooms
// @Summary Public room list
// @Tags public
// @Produce json
// @Param tournament_slug path string true "Tournament slug"
// @Success 200 {array} models.Room
// @Failure 404 {object} map[string]string
// @Router /t/{tournament_slug}/rooms [get]
func (h *PublicHandler) ListRooms(c *gin.Context) {
	tournament, ok := h.tournamentBySlug(c)
	if !ok {
		return
	}

	var rooms []models.Room
	err := h.db.Where("tournament_id = ?", tournament.ID).Order("name").Find(&rooms).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ListProblems returns the tournament's problems
// @Summary Public problem list
// @Tags public
// @Produce json
// @Param tournament_slug path string true "Tournament slug"
// @Success 200 {array} models.Problem
// @Failure 404 {object} map[string]string
// @Router /t/{tournament_slug}/problems [get]
func (h *PublicHandler) ListProblems(c *gin.Context) {
	tournament, ok := h.tournamentBySlug(c)
	if !ok {
		return
	}

	var problems []models.Problem
	err := h.db.Where("tournament_id = ?", tournament.ID).Order("problem_num").Find(&problems).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, problems)
}
