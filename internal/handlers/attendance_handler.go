package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/middleware"
	"eventstaff_backend/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler struct {
	*BaseHandler
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(base *BaseHandler, attendanceService services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{BaseHandler: base, attendanceService: attendanceService}
}

func (h *AttendanceHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	staff := r.Group("/events/:id")
	staff.Use(authMW, middleware.RequirePermission(auth.PermCheckInOut))
	{
		staff.POST("/check-in", h.CheckIn)
		staff.POST("/check-out", h.CheckOut)
		staff.GET("/attendance/me", h.Get)
	}

	owner := r.Group("/events/:id/attendance")
	owner.Use(authMW, middleware.RequirePermission(auth.PermManageOwnEvents))
	{
		owner.GET("", h.ListForEvent)
		owner.GET("/export", h.Export)
	}
}

// CheckIn godoc
// @Summary Check in to an event shift
// @Tags attendance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 201 {object} dto.AttendanceResponse
// @Failure 409 {object} appErrors.ErrorResponse "Already checked in"
// @Router /events/{id}/check-in [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	resp, err := h.attendanceService.CheckIn(h.GetDB(c), session, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CheckOut godoc
// @Summary Check out of an event shift
// @Description Records hours worked and starts the 48 hour payment window.
// @Tags attendance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 409 {object} appErrors.ErrorResponse "Not checked in or already checked out"
// @Router /events/{id}/check-out [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	resp, err := h.attendanceService.CheckOut(h.GetDB(c), session, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary The caller's attendance state for an event
// @Tags attendance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.AttendanceResponse
// @Router /events/{id}/attendance/me [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	resp, err := h.attendanceService.Get(h.GetDB(c), session, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListForEvent godoc
// @Summary Attendance for one of the caller's events
// @Tags attendance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {array} dto.EventAttendanceRow
// @Router /events/{id}/attendance [get]
func (h *AttendanceHandler) ListForEvent(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	rows, err := h.attendanceService.ListForEvent(h.GetDB(c), session, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": rows, "total": len(rows)})
}

// Export godoc
// @Summary Download the attendance sheet
// @Tags attendance
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Event ID"
// @Success 200 {file} file
// @Router /events/{id}/attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}

	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	eventID := c.Param("id")
	if err := h.attendanceService.ExportForEvent(h.GetDB(c), session, eventID, &buf); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, eventID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
