package supervisor

import (
	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/middleware"
)

// RegisterRoutes mounts the supervisor endpoints, split by numeric level:
// level 1 validates tickets, level 2 reads aggregates and posts draw
// results.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	level1 := router.Group("/supervisor/level1")
	level1.Use(middleware.RequireSupervisorLevel(1))
	level1.GET("/pending", h.PendingTickets)
	level1.PUT("/tickets/:id/validate", h.ValidateTicket)
	level1.GET("/stats", h.Stats)

	level2 := router.Group("/supervisor/level2")
	level2.Use(middleware.RequireSupervisorLevel(2))
	level2.GET("/stats", h.Stats)
	level2.POST("/winners", h.PostWinner)
}
