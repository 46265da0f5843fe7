package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/types"
)

type ProgressLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, logs []*types.ProgressLog) ([]*types.ProgressLog, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ProgressLog, error)
}

type progressLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressLogRepo(db *gorm.DB, baseLog *logger.Logger) ProgressLogRepo {
	return &progressLogRepo{db: db, log: baseLog.With("repo", "ProgressLogRepo")}
}

func (pr *progressLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.ProgressLog) ([]*types.ProgressLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(logs) == 0 {
		return []*types.ProgressLog{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (pr *progressLogRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ProgressLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.ProgressLog
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("log_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
