package handlers

import (
	"net/http"

	"core/models"
	"core/scoping"
	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PersonHandler struct {
	personService *services.PersonService
}

func NewPersonHandler(db *gorm.DB, registry *scoping.Registry) *PersonHandler {
	return &PersonHandler{
		personService: services.NewPersonService(db, registry),
	}
}

// Participants

// CreateParticipant creates a new participant
// @Summary Create a new participant
// @Description The tournament is derived from the participant's team
// @Tags participants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param participant body models.CreatePersonRequest true "Participant data"
// @Success 201 {object} models.Participant
// @Failure 400 {object} map[string]string
// @Router /admin/participants [post]
func (h *PersonHandler) CreateParticipant(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.personService.CreateParticipant(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// GetParticipant gets a participant by ID
// @Summary Get participant by ID
// @Tags participants
// @Security BearerAuth
// @Produce json
// @Param id path int true "Participant ID"
// @Success 200 {object} models.Participant
// @Failure 404 {object} map[string]string
// @Router /admin/participants/{id} [get]
func (h *PersonHandler) GetParticipant(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	participant, err := h.personService.GetParticipant(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

// ListParticipants lists participants with pagination
// @Summary List participants
// @Tags participants
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Items per page (default: 10, max: 100)"
// @Success 200 {object} models.PaginatedParticipantsResponse
// @Router /admin/participants [get]
func (h *PersonHandler) ListParticipants(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	page, pageSize := paginationParams(c)

	participants, err := h.personService.ListParticipants(caller, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

// UpdateParticipant updates a participant
// @Summary Update participant
// @Tags participants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Participant ID"
// @Param participant body models.UpdatePersonRequest true "Fields to update"
// @Success 200 {object} models.Participant
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/participants/{id} [put]
func (h *PersonHandler) UpdateParticipant(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.personService.UpdateParticipant(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

// DeleteParticipant deletes a participant
// @Summary Delete participant
// @Tags participants
// @Security BearerAuth
// @Param id path int true "Participant ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/participants/{id} [delete]
func (h *PersonHandler) DeleteParticipant(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.personService.DeleteParticipant(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Leaders

// CreateLeader creates a new team leader
// @Summary Create a new leader
// @Tags leaders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param leader body models.CreatePersonRequest true "Leader data"
// @Success 201 {object} models.Leader
// @Failure 400 {object} map[string]string
// @Router /admin/leaders [post]
func (h *PersonHandler) CreateLeader(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leader, err := h.personService.CreateLeader(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, leader)
}

// GetLeader gets a leader by ID
// @Summary Get leader by ID
// @Tags leaders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Leader ID"
// @Success 200 {object} models.Leader
// @Failure 404 {object} map[string]string
// @Router /admin/leaders/{id} [get]
func (h *PersonHandler) GetLeader(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	leader, err := h.personService.GetLeader(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leader)
}

// ListLeaders lists the leaders visible to the caller
// @Summary List leaders
// @Tags leaders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Leader
// @Router /admin/leaders [get]
func (h *PersonHandler) ListLeaders(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	leaders, err := h.personService.ListLeaders(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaders)
}

// UpdateLeader updates a leader
// @Summary Update leader
// @Tags leaders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Leader ID"
// @Param leader body models.UpdatePersonRequest true "Fields to update"
// @Success 200 {object} models.Leader
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/leaders/{id} [put]
func (h *PersonHandler) UpdateLeader(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leader, err := h.personService.UpdateLeader(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leader)
}

// DeleteLeader deletes a leader
// @Summary Delete leader
// @Tags leaders
// @Security BearerAuth
// @Param id path int true "Leader ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/leaders/{id} [delete]
func (h *PersonHandler) DeleteLeader(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.personService.DeleteLeader(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Jurors

// CreateJuror creates a new juror
// @Summary Create a new juror
// @Description Jurors have no team, so superusers must pass tournament_id
// @Tags jurors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param juror body models.CreatePersonRequest true "Juror data"
// @Success 201 {object} models.Juror
// @Failure 400 {object} map[string]string
// @Router /admin/jurors [post]
func (h *PersonHandler) CreateJuror(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	juror, err := h.personService.CreateJuror(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, juror)
}

// GetJuror gets a juror by ID
// @Summary Get juror by ID
// @Tags jurors
// @Security BearerAuth
// @Produce json
// @Param id path int true "Juror ID"
// @Success 200 {object} models.Juror
// @Failure 404 {object} map[string]string
// @Router /admin/jurors/{id} [get]
func (h *PersonHandler) GetJuror(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	juror, err := h.personService.GetJuror(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, juror)
}

// ListJurors lists the jurors visible to the caller
// @Summary List jurors
// @Tags jurors
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Juror
// @Router /admin/jurors [get]
func (h *PersonHandler) ListJurors(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	jurors, err := h.personService.ListJurors(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, jurors)
}

// UpdateJuror updates a juror
// @Summary Update juror
// @Tags jurors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Juror ID"
// @Param juror body models.UpdatePersonRequest true "Fields to update"
// @Success 200 {object} models.Juror
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/jurors/{id} [put]
func (h *PersonHandler) UpdateJuror(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	juror, err := h.personService.UpdateJuror(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, juror)
}

// DeleteJuror deletes a juror
// @Summary Delete juror
// @Tags jurors
// @Security BearerAuth
// @Param id path int true "Juror ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/jurors/{id} [delete]
func (h *PersonHandler) DeleteJuror(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.personService.DeleteJuror(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
