package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/middleware"
	"eventstaff_backend/internal/services"
	"eventstaff_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, applicationService: applicationService}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	events := r.Group("/events/:id/applications")
	events.Use(authMW)
	{
		events.POST("", middleware.RequirePermission(auth.PermApply), h.Apply)
		events.GET("", middleware.RequirePermission(auth.PermManageOwnEvents), h.ListForEvent)
	}

	r.GET("/applications/mine", authMW, middleware.RequirePermission(auth.PermApply), h.ListMine)
}

// Apply godoc
// @Summary Apply for a role on an event
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.ApplyRequest true "Role"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 409 {object} appErrors.ErrorResponse "Already applied"
// @Router /events/{id}/applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.applicationService.Apply(h.GetDB(c), session, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListForEvent godoc
// @Summary Applications for one of the caller's events
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {array} dto.ApplicationResponse
// @Router /events/{id}/applications [get]
func (h *ApplicationHandler) ListForEvent(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	apps, err := h.applicationService.ListForEvent(h.GetDB(c), session, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps, "total": len(apps)})
}

// ListMine godoc
// @Summary The caller's applications, newest first
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ApplicationResponse
// @Router /applications/mine [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	apps, err := h.applicationService.ListMine(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps, "total": len(apps)})
}
