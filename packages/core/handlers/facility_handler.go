package handlers

import (
	"net/http"

	"core/models"
	"core/scoping"
	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FacilityHandler struct {
	facilityService *services.FacilityService
}

func NewFacilityHandler(db *gorm.DB, registry *scoping.Registry) *FacilityHandler {
	return &FacilityHandler{
		facilityService: services.NewFacilityService(db, registry),
	}
}

// Rooms

// CreateRoom creates a new room
// @Summary Create a new room
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param room body models.CreateRoomRequest true "Room data"
// @Success 201 {object} models.Room
// @Failure 400 {object} map[string]string
// @Router /admin/rooms [post]
func (h *FacilityHandler) CreateRoom(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.facilityService.CreateRoom(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// GetRoom gets a room by ID
// @Summary Get room by ID
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} models.Room
// @Failure 404 {object} map[string]string
// @Router /admin/rooms/{id} [get]
func (h *FacilityHandler) GetRoom(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.facilityService.GetRoom(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// ListRooms lists the rooms visible to the caller
// @Summary List rooms
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Room
// @Router /admin/rooms [get]
func (h *FacilityHandler) ListRooms(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	rooms, err := h.facilityService.ListRooms(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// UpdateRoom updates a room
// @Summary Update room
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param room body models.UpdateRoomRequest true "Fields to update"
// @Success 200 {object} models.Room
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/rooms/{id} [put]
func (h *FacilityHandler) UpdateRoom(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.facilityService.UpdateRoom(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom deletes a room
// @Summary Delete room
// @Tags rooms
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/rooms/{id} [delete]
func (h *FacilityHandler) DeleteRoom(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.facilityService.DeleteRoom(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Problems

// CreateProblem creates a new problem
// @Summary Create a new problem
// @Tags problems
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param problem body models.CreateProblemRequest true "Problem data"
// @Success 201 {object} models.Problem
// @Failure 400 {object} map[string]string
// @Router /admin/problems [post]
func (h *FacilityHandler) CreateProblem(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	problem, err := h.facilityService.CreateProblem(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, problem)
}

// GetProblem gets a problem by ID
// @Summary Get problem by ID
// @Tags problems
// @Security BearerAuth
// @Produce json
// @Param id path int true "Problem ID"
// @Success 200 {object} models.Problem
// @Failure 404 {object} map[string]string
// @Router /admin/problems/{id} [get]
func (h *FacilityHandler) GetProblem(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	problem, err := h.facilityService.GetProblem(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, problem)
}

// ListProblems lists the problems visible to the caller
// @Summary List problems
// @Tags problems
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Problem
// @Router /admin/problems [get]
func (h *FacilityHandler) ListProblems(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	problems, err := h.facilityService.ListProblems(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, problems)
}

// UpdateProblem updates a problem
// @Summary Update problem
// @Tags problems
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Problem ID"
// @Param problem body models.UpdateProblemRequest true "Fields to update"
// @Success 200 {object} models.Problem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/problems/{id} [put]
func (h *FacilityHandler) UpdateProblem(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	problem, err := h.facilityService.UpdateProblem(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, problem)
}

// DeleteProblem deletes a problem
// @Summary Delete problem
// @Tags problems
// @Security BearerAuth
// @Param id path int true "Problem ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/problems/{id} [delete]
func (h *FacilityHandler) DeleteProblem(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.facilityService.DeleteProblem(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
