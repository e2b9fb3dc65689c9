package user

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the role-agnostic profile endpoints.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	user := router.Group("/user")
	user.GET("/profile", h.Profile)
	user.PUT("/profile", h.UpdateProfile)
	user.POST("/change-password", h.ChangePassword)
}
