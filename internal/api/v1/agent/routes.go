package agent

import (
	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/middleware"
	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// RegisterRoutes mounts the agent-only ticket endpoints.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	agent := router.Group("/agent")
	agent.Use(middleware.RequireRole(models.RoleAgent))
	agent.POST("/tickets", h.CreateTicket)
	agent.GET("/tickets", h.ListTickets)
}
