package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/config"
	adminRoutes "github.com/lanovatechnologie-a11y/Lotato/internal/api/v1/admin"
	agentRoutes "github.com/lanovatechnologie-a11y/Lotato/internal/api/v1/agent"
	authRoutes "github.com/lanovatechnologie-a11y/Lotato/internal/api/v1/auth"
	masterRoutes "github.com/lanovatechnologie-a11y/Lotato/internal/api/v1/master"
	publicRoutes "github.com/lanovatechnologie-a11y/Lotato/internal/api/v1/public"
	supervisorRoutes "github.com/lanovatechnologie-a11y/Lotato/internal/api/v1/supervisor"
	userRoutes "github.com/lanovatechnologie-a11y/Lotato/internal/api/v1/user"
	"github.com/lanovatechnologie-a11y/Lotato/internal/middleware"
	"github.com/lanovatechnologie-a11y/Lotato/internal/services"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

// NewRouter wires services, middleware and routes. Every dependency is
// constructed once here and injected; nothing reaches for globals.
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *gin.Engine {
	tokens := utils.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	var denylist *services.DenylistService
	if redisClient != nil {
		denylist = services.NewDenylistService(redisClient)
	}

	statsService := services.NewStatsService(db)
	authService := services.NewAuthService(db, tokens)
	accountService := services.NewAccountService(db, statsService)
	ticketService := services.NewTicketService(db, statsService)
	tenantService := services.NewTenantService(db)
	codeService := services.NewAccessCodeService(db)
	terminalService := services.NewTerminalService(db)
	winnerService := services.NewWinnerService(db)

	authMW := middleware.NewAuthMiddleware(tokens, denylist, db)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300 * time.Second,
	}))

	// Liveness probe and metrics stay outside the API group, no auth.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := authRoutes.NewHandler(authService, codeService, denylist, tokens)
	userHandler := userRoutes.NewHandler(authService)
	agentHandler := agentRoutes.NewHandler(ticketService)
	supervisorHandler := supervisorRoutes.NewHandler(ticketService, winnerService)
	adminHandler := adminRoutes.NewHandler(accountService, statsService, ticketService)
	masterHandler := masterRoutes.NewHandler(tenantService, codeService, terminalService, winnerService)
	publicHandler := publicRoutes.NewHandler(winnerService)

	v1 := router.Group("/api/v1")
	{
		authRoutes.RegisterRoutes(v1, authHandler)
		publicRoutes.RegisterRoutes(v1, publicHandler)

		authorized := v1.Group("/")
		authorized.Use(authMW.Authenticate())
		{
			authRoutes.RegisterProtectedRoutes(authorized, authHandler)
			userRoutes.RegisterRoutes(authorized, userHandler)
			agentRoutes.RegisterRoutes(authorized, agentHandler)
			supervisorRoutes.RegisterRoutes(authorized, supervisorHandler)
			adminRoutes.RegisterRoutes(authorized, adminHandler)
			masterRoutes.RegisterRoutes(authorized, masterHandler)
		}
	}

	return router
}
