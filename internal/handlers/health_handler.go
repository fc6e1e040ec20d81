package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventstaff_backend/internal/appErrors"
)

type HealthHandler struct {
	*BaseHandler
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} appErrors.ErrorResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	sqlDB, err := h.GetDB(c).DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.HandleServiceError(c, appErrors.ServiceUnavailable(err, "Database unavailable"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
