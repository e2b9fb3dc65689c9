package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public authentication endpoints.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	auth := router.Group("/auth")
	auth.POST("/agent/login", h.AgentLogin)
	auth.POST("/supervisor/login", h.SupervisorLogin)
	auth.POST("/subsystem-admin/login", h.SubsystemAdminLogin)
	auth.POST("/master/login", h.MasterLogin)
	auth.POST("/master/init", h.InitMaster)
	auth.POST("/terminal/login", h.TerminalLogin)
}

// RegisterProtectedRoutes mounts the endpoints that need a verified caller.
func RegisterProtectedRoutes(router *gin.RouterGroup, h *Handler) {
	auth := router.Group("/auth")
	auth.POST("/logout", h.Logout)
}
