package handlers

import (
	"github.com/gin-gonic/gin"

	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/ws"
)

type WSHandler struct {
	*BaseHandler
	notifier *auth.Notifier
}

func NewWSHandler(base *BaseHandler, notifier *auth.Notifier) *WSHandler {
	return &WSHandler{BaseHandler: base, notifier: notifier}
}

func (h *WSHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	r.GET("/auth/stream", authMW, h.SessionStream)
}

// SessionStream godoc
// @Summary Stream the caller's sign-in and sign-out events over a websocket
// @Tags auth
// @Security BearerAuth
// @Success 101
// @Router /auth/stream [get]
func (h *WSHandler) SessionStream(c *gin.Context) {
	session, ok := h.Session(c)
	if !ok {
		return
	}
	if err := ws.ServeSessions(h.notifier, c.Writer, c.Request, session.UserID); err != nil {
		logger.CtxWithError(c.Request.Context(), "websocket upgrade failed", err)
	}
}
