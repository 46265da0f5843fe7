package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/types"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger, cfg Config) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, sslMode)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrate(s.db); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

// AutoMigrate migrates the schema on any gorm dialect. Tests reuse it against
// an in-memory sqlite database.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&types.User{},
		&types.Profile{},
		&types.FitnessGoal{},
		&types.WorkoutPlan{},
		&types.Workout{},
		&types.Exercise{},
		&types.ProgressLog{},
	); err != nil {
		return err
	}
	// At most one active plan per user, enforced at the store level rather
	// than by a UI-side pre-check. Partial indexes work on both postgres and
	// sqlite.
	if err := gdb.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_workout_plan_one_active
		ON workout_plan (user_id) WHERE is_active
	`).Error; err != nil {
		return fmt.Errorf("create active-plan guard index: %w", err)
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
