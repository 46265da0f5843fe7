package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/apierr"
	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/repos"
	"github.com/forgefit/forgefit-backend/internal/types"
)

type ProgressEntry struct {
	WorkoutID          *uuid.UUID  `json:"workout_id,omitempty"`
	LogDate            time.Time   `json:"log_date"`
	Notes              string      `json:"notes"`
	CompletedExercises []uuid.UUID `json:"completed_exercises"`
}

type ProgressService interface {
	Log(ctx context.Context, userID uuid.UUID, entry ProgressEntry) (*types.ProgressLog, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.ProgressLog, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.ProgressLogRepo
}

func NewProgressService(db *gorm.DB, baseLog *logger.Logger, progressRepo repos.ProgressLogRepo) ProgressService {
	return &progressService{
		db:           db,
		log:          baseLog.With("service", "ProgressService"),
		progressRepo: progressRepo,
	}
}

func (ps *progressService) Log(ctx context.Context, userID uuid.UUID, entry ProgressEntry) (*types.ProgressLog, error) {
	logDate := entry.LogDate
	if logDate.IsZero() {
		logDate = time.Now()
	}

	completed, err := json.Marshal(entry.CompletedExercises)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_progress", fmt.Errorf("encode completed exercises: %w", err))
	}

	now := time.Now()
	row := &types.ProgressLog{
		ID:                 uuid.New(),
		UserID:             userID,
		WorkoutID:          entry.WorkoutID,
		LogDate:            logDate,
		Notes:              entry.Notes,
		CompletedExercises: datatypes.JSON(completed),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := ps.progressRepo.Create(ctx, nil, []*types.ProgressLog{row}); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("create progress log: %w", err))
	}
	return row, nil
}

func (ps *progressService) List(ctx context.Context, userID uuid.UUID) ([]*types.ProgressLog, error) {
	rows, err := ps.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("load progress logs: %w", err))
	}
	return rows, nil
}
