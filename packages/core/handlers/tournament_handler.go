package handlers

import (
	"net/http"

	"core/models"
	"core/scoping"
	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
	roundService      *services.RoundService
}

func NewTournamentHandler(db *gorm.DB, registry *scoping.Registry) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: services.NewTournamentService(db, registry),
		roundService:      services.NewRoundService(db, registry),
	}
}

// CreateTournament creates a new tournament
// @Summary Create a new tournament
// @Description Create a new tournament (superuser only)
// @Tags tournaments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tournament body models.CreateTournamentRequest true "Tournament data"
// @Success 201 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/tournaments [post]
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.tournamentService.CreateTournament(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tournament)
}

// GetTournament gets a tournament by ID
// @Summary Get tournament by ID
// @Description Get tournament information with rounds and teams
// @Tags tournaments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.Tournament
// @Failure 404 {object} map[string]string
// @Router /admin/tournaments/{id} [get]
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tournament, err := h.tournamentService.GetTournament(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// ListTournaments lists the tournaments visible to the caller
// @Summary List tournaments
// @Description Superusers see every tournament, staff only their pinned one
// @Tags tournaments
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Tournament
// @Router /admin/tournaments [get]
func (h *TournamentHandler) ListTournaments(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	tournaments, err := h.tournamentService.ListTournaments(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournaments)
}

// UpdateTournament updates a tournament
// @Summary Update tournament
// @Tags tournaments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param tournament body models.UpdateTournamentRequest true "Fields to update"
// @Success 200 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/tournaments/{id} [put]
func (h *TournamentHandler) UpdateTournament(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// DeleteTournament deletes a tournament
// @Summary Delete tournament
// @Tags tournaments
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/tournaments/{id} [delete]
func (h *TournamentHandler) DeleteTournament(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tournamentService.DeleteTournament(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateRound creates a tournament round
// @Summary Create a round
// @Tags rounds
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param round body models.CreateRoundRequest true "Round data"
// @Success 201 {object} models.TournamentRound
// @Failure 400 {object} map[string]string
// @Router /admin/rounds [post]
func (h *TournamentHandler) CreateRound(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := h.roundService.CreateRound(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, round)
}

// GetRound gets a round by ID
// @Summary Get round by ID
// @Tags rounds
// @Security BearerAuth
// @Produce json
// @Param id path int true "Round ID"
// @Success 200 {object} models.TournamentRound
// @Failure 404 {object} map[string]string
// @Router /admin/rounds/{id} [get]
func (h *TournamentHandler) GetRound(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	round, err := h.roundService.GetRound(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, round)
}

// ListRounds lists the rounds visible to the caller
// @Summary List rounds
// @Tags rounds
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.TournamentRound
// @Router /admin/rounds [get]
func (h *TournamentHandler) ListRounds(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	rounds, err := h.roundService.ListRounds(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rounds)
}

// UpdateRound updates a round
// @Summary Update round
// @Tags rounds
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Round ID"
// @Param round body models.UpdateRoundRequest true "Fields to update"
// @Success 200 {object} models.TournamentRound
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/rounds/{id} [put]
func (h *TournamentHandler) UpdateRound(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := h.roundService.UpdateRound(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, round)
}

// DeleteRound deletes a round
// @Summary Delete round
// @Tags rounds
// @Security BearerAuth
// @Param id path int true "Round ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/rounds/{id} [delete]
func (h *TournamentHandler) DeleteRound(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roundService.DeleteRound(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
