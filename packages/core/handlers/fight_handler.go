package handlers

import (
	"net/http"

	"core/models"
	"core/scoping"
	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FightHandler struct {
	fightService *services.FightService
	stageService *services.StageService
}

func NewFightHandler(db *gorm.DB, registry *scoping.Registry) *FightHandler {
	return &FightHandler{
		fightService: services.NewFightService(db, registry),
		stageService: services.NewStageService(db, registry),
	}
}

// Fights

// CreateFight creates a new fight
// @Summary Create a new fight
// @Description Schedule a fight between two to four teams in a room during a round
// @Tags fights
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param fight body models.CreateFightRequest true "Fight data"
// @Success 201 {object} models.Fight
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/fights [post]
func (h *FightHandler) CreateFight(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateFightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fight, err := h.fightService.CreateFight(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fight)
}

// GetFight gets a fight by ID
// @Summary Get fight by ID
// @Description Get the fight with its round, room, teams and jury
// @Tags fights
// @Security BearerAuth
// @Produce json
// @Param id path int true "Fight ID"
// @Success 200 {object} models.Fight
// @Failure 404 {object} map[string]string
// @Router /admin/fights/{id} [get]
func (h *FightHandler) GetFight(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fight, err := h.fightService.GetFight(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fight)
}

// ListFights lists fights with pagination
// @Summary List fights
// @Tags fights
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Items per page (default: 10, max: 100)"
// @Param round_id query int false "Filter by round"
// @Success 200 {object} models.PaginatedFightsResponse
// @Router /admin/fights [get]
func (h *FightHandler) ListFights(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	page, pageSize := paginationParams(c)
	roundID := optionalUintQuery(c, "round_id")

	fights, err := h.fightService.ListFights(caller, page, pageSize, roundID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fights)
}

// GetFightRefs returns the pickable references for a fight
// @Summary Get picker sets for a fight
// @Description Rounds, rooms, teams, jurors and problems pickable for the fight, scoped to the caller's tournament
// @Tags fights
// @Security BearerAuth
// @Produce json
// @Param id path int true "Fight ID"
// @Success 200 {object} models.FightRefsResponse
// @Failure 404 {object} map[string]string
// @Router /admin/fights/{id}/refs [get]
func (h *FightHandler) GetFightRefs(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	refs, err := h.fightService.GetFightRefs(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, refs)
}

// UpdateFight updates a fight
// @Summary Update fight
// @Tags fights
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Fight ID"
// @Param fight body models.UpdateFightRequest true "Fields to update"
// @Success 200 {object} models.Fight
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/fights/{id} [put]
func (h *FightHandler) UpdateFight(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateFightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fight, err := h.fightService.UpdateFight(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fight)
}

// DeleteFight deletes a fight
// @Summary Delete fight
// @Tags fights
// @Security BearerAuth
// @Param id path int true "Fight ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/fights/{id} [delete]
func (h *FightHandler) DeleteFight(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fightService.DeleteFight(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Stages

// CreateStage creates a fight stage
// @Summary Create a fight stage
// @Tags stages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param stage body models.CreateStageRequest true "Stage data"
// @Success 201 {object} models.FightStage
// @Failure 400 {object} map[string]string
// @Router /admin/stages [post]
func (h *FightHandler) CreateStage(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stage, err := h.stageService.CreateStage(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stage)
}

// GetStage gets a stage by ID
// @Summary Get stage by ID
// @Tags stages
// @Security BearerAuth
// @Produce json
// @Param id path int true "Stage ID"
// @Success 200 {object} models.FightStage
// @Failure 404 {object} map[string]string
// @Router /admin/stages/{id} [get]
func (h *FightHandler) GetStage(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stage, err := h.stageService.GetStage(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stage)
}

// ListFightStages lists the stages of a fight
// @Summary List stages of a fight
// @Tags stages
// @Security BearerAuth
// @Produce json
// @Param id path int true "Fight ID"
// @Success 200 {array} models.FightStage
// @Router /admin/fights/{id}/stages [get]
func (h *FightHandler) ListFightStages(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	fightID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stages, err := h.stageService.ListStages(caller, fightID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stages)
}

// UpdateStage updates a stage
// @Summary Update stage
// @Tags stages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Stage ID"
// @Param stage body models.UpdateStageRequest true "Fields to update"
// @Success 200 {object} models.FightStage
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/stages/{id} [put]
func (h *FightHandler) UpdateStage(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stage, err := h.stageService.UpdateStage(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stage)
}

// DeleteStage deletes a stage
// @Summary Delete stage
// @Tags stages
// @Security BearerAuth
// @Param id path int true "Stage ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/stages/{id} [delete]
func (h *FightHandler) DeleteStage(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stageService.DeleteStage(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Refusals

// CreateRefusal records a refused problem for a stage
// @Summary Record a problem refusal
// @Tags stages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param refusal body models.CreateRefusalRequest true "Refusal data"
// @Success 201 {object} models.Refusal
// @Failure 400 {object} map[string]string
// @Router /admin/refusals [post]
func (h *FightHandler) CreateRefusal(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateRefusalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refusal, err := h.stageService.CreateRefusal(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, refusal)
}

// ListStageRefusals lists the refusals of a stage
// @Summary List refusals of a stage
// @Tags stages
// @Security BearerAuth
// @Produce json
// @Param id path int true "Stage ID"
// @Success 200 {array} models.Refusal
// @Router /admin/stages/{id}/refusals [get]
func (h *FightHandler) ListStageRefusals(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	stageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	refusals, err := h.stageService.ListRefusals(caller, stageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, refusals)
}

// DeleteRefusal deletes a refusal
// @Summary Delete refusal
// @Tags stages
// @Security BearerAuth
// @Param id path int true "Refusal ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/refusals/{id} [delete]
func (h *FightHandler) DeleteRefusal(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stageService.DeleteRefusal(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Juror points

// CreateJurorPoints records a juror's marks for a stage
// @Summary Record juror marks
// @Description The juror must sit on the fight's jury; a reviewer mark is required exactly when the fight has a reviewing team
// @Tags marks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param points body models.CreateJurorPointsRequest true "Marks data"
// @Success 201 {object} models.JurorPoints
// @Failure 400 {object} map[string]string
// @Router /admin/juror-points [post]
func (h *FightHandler) CreateJurorPoints(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateJurorPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.stageService.CreateJurorPoints(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, points)
}

// GetJurorPoints gets a juror's marks by ID
// @Summary Get juror marks by ID
// @Tags marks
// @Security BearerAuth
// @Produce json
// @Param id path int true "Juror points ID"
// @Success 200 {object} models.JurorPoints
// @Failure 404 {object} map[string]string
// @Router /admin/juror-points/{id} [get]
func (h *FightHandler) GetJurorPoints(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	points, err := h.stageService.GetJurorPoints(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// ListStageJurorPoints lists the marks given for a stage
// @Summary List juror marks of a stage
// @Tags marks
// @Security BearerAuth
// @Produce json
// @Param id path int true "Stage ID"
// @Success 200 {array} models.JurorPoints
// @Router /admin/stages/{id}/juror-points [get]
func (h *FightHandler) ListStageJurorPoints(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	stageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	marks, err := h.stageService.ListJurorPoints(caller, stageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, marks)
}

// UpdateJurorPoints updates a juror's marks
// @Summary Update juror marks
// @Tags marks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Juror points ID"
// @Param points body models.UpdateJurorPointsRequest true "Fields to update"
// @Success 200 {object} models.JurorPoints
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/juror-points/{id} [put]
func (h *FightHandler) UpdateJurorPoints(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateJurorPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.stageService.UpdateJurorPoints(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// DeleteJurorPoints deletes a juror's marks
// @Summary Delete juror marks
// @Tags marks
// @Security BearerAuth
// @Param id path int true "Juror points ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/juror-points/{id} [delete]
func (h *FightHandler) DeleteJurorPoints(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stageService.DeleteJurorPoints(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
