package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/types"
)

type WorkoutPlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plans []*types.WorkoutPlan) ([]*types.WorkoutPlan, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.WorkoutPlan, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WorkoutPlan, error)
	Deactivate(ctx context.Context, tx *gorm.DB, planID uuid.UUID) error
}

type workoutPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkoutPlanRepo(db *gorm.DB, baseLog *logger.Logger) WorkoutPlanRepo {
	return &workoutPlanRepo{db: db, log: baseLog.With("repo", "WorkoutPlanRepo")}
}

func (wr *workoutPlanRepo) Create(ctx context.Context, tx *gorm.DB, plans []*types.WorkoutPlan) ([]*types.WorkoutPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if len(plans) == 0 {
		return []*types.WorkoutPlan{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (wr *workoutPlanRepo) GetByIDs(ctx context.Context, tx *gorm.DB, planIDs []uuid.UUID) ([]*types.WorkoutPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.WorkoutPlan
	if len(planIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", planIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workoutPlanRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WorkoutPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.WorkoutPlan
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workoutPlanRepo) Deactivate(ctx context.Context, tx *gorm.DB, planID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.WorkoutPlan{}).
		Where("id = ?", planID).
		Update("is_active", false).Error
}
