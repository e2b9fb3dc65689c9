package public

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the unauthenticated endpoints.
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	router.GET("/winners", h.LatestWinners)
}
