package handlers

import (
	"net/http"

	"core/models"
	"core/scoping"
	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TeamHandler struct {
	teamService   *services.TeamService
	personService *services.PersonService
}

func NewTeamHandler(db *gorm.DB, registry *scoping.Registry) *TeamHandler {
	return &TeamHandler{
		teamService:   services.NewTeamService(db, registry),
		personService: services.NewPersonService(db, registry),
	}
}

// CreateTeam creates a new team
// @Summary Create a new team
// @Description Create a team in the caller's tournament (superusers pass tournament_id)
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param team body models.CreateTeamRequest true "Team data"
// @Success 201 {object} models.Team
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// GetTeam gets a team by ID
// @Summary Get team by ID
// @Description Get team information with its participants and leaders
// @Tags teams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.Team
// @Failure 404 {object} map[string]string
// @Router /admin/teams/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// ListTeams lists the teams visible to the caller with pagination
// @Summary List teams
// @Tags teams
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Items per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedTeamsResponse
// @Router /admin/teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	page, pageSize := paginationParams(c)

	teams, err := h.teamService.ListTeams(caller, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// UpdateTeam updates a team
// @Summary Update team
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param team body models.UpdateTeamRequest true "Fields to update"
// @Success 200 {object} models.Team
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/teams/{id} [put]
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.UpdateTeam(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// DeleteTeam deletes a team
// @Summary Delete team
// @Tags teams
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddTeamParticipant creates a participant under a team
// @Summary Add participant to team
// @Description Inline creation, validated like a top-level participant write
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param participant body models.CreatePersonRequest true "Participant data"
// @Success 201 {object} models.Participant
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/teams/{id}/participants [post]
func (h *TeamHandler) AddTeamParticipant(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.teamService.GetTeam(caller, teamID); err != nil {
		respondError(c, err)
		return
	}

	var req models.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.TeamID = teamID

	participant, err := h.personService.CreateParticipant(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// AddTeamLeader creates a leader under a team
// @Summary Add leader to team
// @Description Inline creation, validated like a top-level leader write
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param leader body models.CreatePersonRequest true "Leader data"
// @Success 201 {object} models.Leader
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/teams/{id}/leaders [post]
func (h *TeamHandler) AddTeamLeader(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.teamService.GetTeam(caller, teamID); err != nil {
		respondError(c, err)
		return
	}

	var req models.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.TeamID = teamID

	leader, err := h.personService.CreateLeader(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, leader)
}
