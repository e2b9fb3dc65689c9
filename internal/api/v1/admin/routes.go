package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/middleware"
	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// RegisterRoutes mounts the subsystem-admin endpoints.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleSubsystemAdmin))
	admin.GET("/stats", h.Stats)
	admin.GET("/agents", h.ListAgents)
	admin.POST("/agents", h.CreateAgent)
	admin.GET("/supervisors", h.ListSupervisors)
	admin.POST("/supervisors", h.CreateSupervisor)
	admin.PUT("/users/:id/activate", h.ActivateUser)
	admin.PUT("/users/:id/deactivate", h.DeactivateUser)
}
