package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/types"
)

type FitnessGoalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, goals []*types.FitnessGoal) ([]*types.FitnessGoal, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FitnessGoal, error)
}

type fitnessGoalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFitnessGoalRepo(db *gorm.DB, baseLog *logger.Logger) FitnessGoalRepo {
	return &fitnessGoalRepo{db: db, log: baseLog.With("repo", "FitnessGoalRepo")}
}

func (fr *fitnessGoalRepo) Create(ctx context.Context, tx *gorm.DB, goals []*types.FitnessGoal) ([]*types.FitnessGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(goals) == 0 {
		return []*types.FitnessGoal{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (fr *fitnessGoalRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FitnessGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.FitnessGoal
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
