package master

import (
	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/middleware"
	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// RegisterRoutes mounts the master-only endpoints.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	master := router.Group("/master")
	master.Use(middleware.RequireRole(models.RoleMaster))

	master.GET("/subsystems", h.ListSubsystems)
	master.POST("/subsystems", h.CreateSubsystem)
	master.GET("/subsystems/:id", h.GetSubsystem)
	master.PUT("/subsystems/:id", h.UpdateSubsystem)
	master.PUT("/subsystems/:id/activate", h.ActivateSubsystem)
	master.PUT("/subsystems/:id/deactivate", h.DeactivateSubsystem)
	master.PUT("/subsystems/:id/renew", h.RenewSubsystem)

	master.GET("/dashboard/stats", h.DashboardStats)
	master.GET("/consolidated-report", h.ConsolidatedReport)

	master.GET("/codes", h.ListCodes)
	master.POST("/codes", h.GenerateCode)
	master.PUT("/codes/:code/deactivate", h.DeactivateCode)

	master.GET("/terminals", h.ListTerminals)
	master.POST("/winners", h.PostWinner)
}
