package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/middleware"
	"eventstaff_backend/internal/services"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(authMW)
	{
		dashboard.GET("/client", middleware.RequirePermission(auth.PermClientDashboard), h.Client)
		dashboard.GET("/staff", middleware.RequirePermission(auth.PermStaffDashboard), h.Staff)
	}
}

// Client godoc
// @Summary Client dashboard stats
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ClientDashboardResponse
// @Router /dashboard/client [get]
func (h *DashboardHandler) Client(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	resp, err := h.dashboardService.Client(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Staff godoc
// @Summary Staff dashboard stats and recent applications
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.StaffDashboardResponse
// @Router /dashboard/staff [get]
func (h *DashboardHandler) Staff(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	resp, err := h.dashboardService.Staff(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
