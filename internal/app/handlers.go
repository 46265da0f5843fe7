package app

import (
	"github.com/forgefit/forgefit-backend/internal/handlers"
	"github.com/forgefit/forgefit-backend/internal/logger"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Plan     *handlers.PlanHandler
	Profile  *handlers.ProfileHandler
	Progress *handlers.ProgressHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(services.Auth),
		Plan:     handlers.NewPlanHandler(services.PlanGeneration),
		Profile:  handlers.NewProfileHandler(services.Profile),
		Progress: handlers.NewProgressHandler(services.Progress),
	}
}
