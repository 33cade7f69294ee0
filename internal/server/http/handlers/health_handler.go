package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dispatch/internal/server/http/dto"
)

// HealthHandler reports service readiness.
type HealthHandler struct {
	facade HealthFacade
}

func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.Health(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, dto.Envelope{Message: "unavailable", Error: "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "ok"})
}
