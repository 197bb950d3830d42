package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IdentityHandler struct {
	identityService *services.IdentityService
}

func NewIdentityHandler(db *gorm.DB) *IdentityHandler {
	return &IdentityHandler{
		identityService: services.NewIdentityService(db),
	}
}

// CreateTeamIdentity creates a team identity
// @Summary Create a team identity
// @Description Cross-tournament team identities are managed by superusers only
// @Tags identities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param identity body models.CreateIdentityRequest true "Identity data"
// @Success 201 {object} models.TeamIdentity
// @Failure 403 {object} map[string]string
// @Router /admin/team-identities [post]
func (h *IdentityHandler) CreateTeamIdentity(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.identityService.CreateTeamIdentity(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, identity)
}

// GetTeamIdentity gets a team identity with its display label
// @Summary Get team identity by ID
// @Tags identities
// @Security BearerAuth
// @Produce json
// @Param id path int true "Identity ID"
// @Success 200 {object} models.IdentityView
// @Failure 404 {object} map[string]string
// @Router /admin/team-identities/{id} [get]
func (h *IdentityHandler) GetTeamIdentity(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.identityService.GetTeamIdentity(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListTeamIdentities lists all team identities
// @Summary List team identities
// @Tags identities
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.IdentityView
// @Router /admin/team-identities [get]
func (h *IdentityHandler) ListTeamIdentities(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	views, err := h.identityService.ListTeamIdentities(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// UpdateTeamIdentity updates a team identity
// @Summary Update team identity
// @Tags identities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Identity ID"
// @Param identity body models.UpdateIdentityRequest true "Fields to update"
// @Success 200 {object} models.TeamIdentity
// @Failure 404 {object} map[string]string
// @Router /admin/team-identities/{id} [put]
func (h *IdentityHandler) UpdateTeamIdentity(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.identityService.UpdateTeamIdentity(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, identity)
}

// DeleteTeamIdentity deletes a team identity
// @Summary Delete team identity
// @Tags identities
// @Security BearerAuth
// @Param id path int true "Identity ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/team-identities/{id} [delete]
func (h *IdentityHandler) DeleteTeamIdentity(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.identityService.DeleteTeamIdentity(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreatePersonIdentity creates a person identity
// @Summary Create a person identity
// @Tags identities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param identity body models.CreateIdentityRequest true "Identity data"
// @Success 201 {object} models.PersonIdentity
// @Failure 403 {object} map[string]string
// @Router /admin/person-identities [post]
func (h *IdentityHandler) CreatePersonIdentity(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.CreateIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.identityService.CreatePersonIdentity(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, identity)
}

// GetPersonIdentity gets a person identity with its display label
// @Summary Get person identity by ID
// @Tags identities
// @Security BearerAuth
// @Produce json
// @Param id path int true "Identity ID"
// @Success 200 {object} models.IdentityView
// @Failure 404 {object} map[string]string
// @Router /admin/person-identities/{id} [get]
func (h *IdentityHandler) GetPersonIdentity(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.identityService.GetPersonIdentity(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListPersonIdentities lists all person identities
// @Summary List person identities
// @Tags identities
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.IdentityView
// @Router /admin/person-identities [get]
func (h *IdentityHandler) ListPersonIdentities(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	views, err := h.identityService.ListPersonIdentities(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// UpdatePersonIdentity updates a person identity
// @Summary Update person identity
// @Tags identities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Identity ID"
// @Param identity body models.UpdateIdentityRequest true "Fields to update"
// @Success 200 {object} models.PersonIdentity
// @Failure 404 {object} map[string]string
// @Router /admin/person-identities/{id} [put]
func (h *IdentityHandler) UpdatePersonIdentity(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.identityService.UpdatePersonIdentity(caller, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, identity)
}

// DeletePersonIdentity deletes a person identity
// @Summary Delete person identity
// @Tags identities
// @Security BearerAuth
// @Param id path int true "Identity ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/person-identities/{id} [delete]
func (h *IdentityHandler) DeletePersonIdentity(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.identityService.DeletePersonIdentity(caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
