package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{
		profileService: services.NewProfileService(db),
	}
}

// AssignProfile pins a user to a tournament
// @Summary Assign a user profile
// @Description Pin a staff account to a tournament, or unpin it with a null tournament_id (superuser only)
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param profile body models.AssignProfileRequest true "Assignment data"
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/profiles [post]
func (h *ProfileHandler) AssignProfile(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	var req models.AssignProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.AssignProfile(caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetProfile gets a user's profile
// @Summary Get user profile
// @Description Superusers may read any profile, staff only their own
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.UserProfile
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/profiles/{user_id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(caller, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListProfiles lists all user profiles
// @Summary List user profiles
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.UserProfile
// @Failure 403 {object} map[string]string
// @Router /admin/profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}

	profiles, err := h.profileService.ListProfiles(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// DeleteProfile removes a user's profile
// @Summary Delete user profile
// @Tags profiles
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/profiles/{user_id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.profileService.DeleteProfile(caller, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
