package app

import (
	"github.com/gin-gonic/gin"

	"github.com/forgefit/forgefit-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:     handlers.Auth,
		AuthMiddleware:  middleware.Auth,
		PlanHandler:     handlers.Plan,
		ProfileHandler:  handlers.Profile,
		ProgressHandler: handlers.Progress,
		AllowOrigins:    cfg.AllowOrigins,
	})
}
