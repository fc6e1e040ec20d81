package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/middleware"
	"eventstaff_backend/internal/services"
	"eventstaff_backend/internal/services/dto"
)

type EventHandler struct {
	*BaseHandler
	eventService services.EventService
}

func NewEventHandler(base *BaseHandler, eventService services.EventService) *EventHandler {
	return &EventHandler{BaseHandler: base, eventService: eventService}
}

func (h *EventHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	events := r.Group("/events")
	events.Use(authMW)
	{
		events.POST("", middleware.RequirePermission(auth.PermPostEvents), h.PostEvent)
		events.GET("", middleware.RequirePermission(auth.PermBrowseEvents), h.Browse)
		events.GET("/mine", middleware.RequirePermission(auth.PermManageOwnEvents), h.ListMine)
		events.GET("/:id", h.Get)
	}
}

// PostEvent godoc
// @Summary Post an event
// @Description Free clients may post 2 events per calendar month. The third returns 402 with the premium offer in details.
// @Tags events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PostEventRequest true "Event"
// @Success 201 {object} dto.PostEventResponse
// @Failure 400 {object} appErrors.ErrorResponse
// @Failure 402 {object} appErrors.ErrorResponse "Upgrade required"
// @Router /events [post]
func (h *EventHandler) PostEvent(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	var req dto.PostEventRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.eventService.PostEvent(h.GetDB(c), session, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Browse godoc
// @Summary Upcoming active events
// @Tags events
// @Security BearerAuth
// @Produce json
// @Param city query string false "City substring"
// @Param urgent_only query bool false "Only urgent events"
// @Param min_pay query number false "Some role pays at least this"
// @Param role query string false "Role name"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {array} dto.EventResponse
// @Router /events [get]
func (h *EventHandler) Browse(c *gin.Context) {
	var query dto.BrowseEventsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	events, err := h.eventService.Browse(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "total": len(events)})
}

// ListMine godoc
// @Summary The caller's posted events, newest first
// @Tags events
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.EventResponse
// @Router /events/mine [get]
func (h *EventHandler) ListMine(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	events, err := h.eventService.ListMine(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "total": len(events)})
}

// Get godoc
// @Summary One event
// @Tags events
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} appErrors.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
