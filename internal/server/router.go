package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/forgefit/forgefit-backend/internal/handlers"
	"github.com/forgefit/forgefit-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	PlanHandler     *handlers.PlanHandler
	ProfileHandler  *handlers.ProfileHandler
	ProgressHandler *handlers.ProgressHandler
	AllowOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	api.POST("/plans/generate", cfg.PlanHandler.GeneratePlan)
	api.GET("/plans", cfg.PlanHandler.ListPlans)
	api.GET("/profile", cfg.ProfileHandler.GetProfile)
	api.PUT("/profile", cfg.ProfileHandler.UpsertProfile)
	api.POST("/progress", cfg.ProgressHandler.LogProgress)
	api.GET("/progress", cfg.ProgressHandler.ListProgress)

	return router
}
