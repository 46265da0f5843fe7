package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/clients/openai"
	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	Profile        services.ProfileService
	Progress       services.ProgressService
	PlanGeneration services.PlanGenerationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	aiClient, err := openai.NewClient(log, cfg.OpenAI)
	if err != nil {
		return Services{}, fmt.Errorf("init model client: %w", err)
	}
	locks := services.NewUserLocker(log, cfg.RedisAddr)

	return Services{
		Auth:     services.NewAuthService(db, log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Profile:  services.NewProfileService(db, log, r.Profile),
		Progress: services.NewProgressService(db, log, r.ProgressLog),
		PlanGeneration: services.NewPlanGenerationService(
			db,
			log,
			r.User,
			r.Profile,
			r.FitnessGoal,
			r.WorkoutPlan,
			r.Workout,
			r.Exercise,
			aiClient,
			locks,
			nil,
		),
	}, nil
}
