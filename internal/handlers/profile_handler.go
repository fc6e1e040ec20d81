package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/middleware"
	"eventstaff_backend/internal/services"
	"eventstaff_backend/internal/services/dto"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{BaseHandler: base, profileService: profileService}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	profiles := r.Group("/profiles")
	profiles.Use(authMW)
	{
		profiles.PATCH("/me", middleware.RequirePermission(auth.PermEditOwnProfile), h.UpdateMine)
		profiles.GET("/:id", middleware.RequirePermission(auth.PermViewPublicProfiles), h.Get)
	}
}

// Get godoc
// @Summary Public profile
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} dto.PublicProfile
// @Failure 404 {object} appErrors.ErrorResponse
// @Router /profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMine godoc
// @Summary Update the caller's profile
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} models.Profile
// @Failure 400 {object} appErrors.ErrorResponse
// @Router /profiles/me [patch]
func (h *ProfileHandler) UpdateMine(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateMine(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
