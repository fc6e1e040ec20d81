package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/middleware"
	"eventstaff_backend/internal/services"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{BaseHandler: base, subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	r.GET("/plans/premium", h.GetOffer)

	subscription := r.Group("/subscription")
	subscription.Use(authMW, middleware.RequirePermission(auth.PermManageSubscription))
	{
		subscription.GET("", h.Get)
		subscription.POST("/upgrade", h.Upgrade)
	}
}

// GetOffer godoc
// @Summary Premium plan pricing
// @Tags subscription
// @Produce json
// @Success 200 {object} dto.UpgradeOffer
// @Router /plans/premium [get]
func (h *SubscriptionHandler) GetOffer(c *gin.Context) {
	c.JSON(http.StatusOK, h.subscriptionService.UpgradeOffer())
}

// Get godoc
// @Summary The caller's subscription and remaining posts
// @Tags subscription
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SubscriptionResponse
// @Router /subscription [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	resp, err := h.subscriptionService.Get(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Upgrade godoc
// @Summary Activate premium for 30 days
// @Tags subscription
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SubscriptionResponse
// @Router /subscription/upgrade [post]
func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	resp, err := h.subscriptionService.Upgrade(h.GetDB(c), session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
