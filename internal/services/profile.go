package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/apierr"
	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/repos"
	"github.com/forgefit/forgefit-backend/internal/types"
)

type ProfileUpdate struct {
	FitnessLevel string  `json:"fitness_level"`
	HeightCM     float64 `json:"height_cm"`
	WeightKG     float64 `json:"weight_kg"`
	Notes        string  `json:"notes"`
}

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.Profile, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ProfileRepo
}

func NewProfileService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.ProfileRepo) ProfileService {
	return &profileService{
		db:          db,
		log:         baseLog.With("service", "ProfileService"),
		profileRepo: profileRepo,
	}
}

func (ps *profileService) Get(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	profile, err := ps.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("load profile: %w", err))
	}
	if profile == nil {
		return nil, apierr.New(http.StatusNotFound, "profile_not_found", fmt.Errorf("no profile for user"))
	}
	return profile, nil
}

func (ps *profileService) Upsert(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.Profile, error) {
	level := strings.ToLower(strings.TrimSpace(update.FitnessLevel))
	if level == "" {
		level = "intermediate"
	}
	if !types.IsDifficulty(level) {
		return nil, apierr.New(http.StatusBadRequest, "invalid_fitness_level",
			fmt.Errorf("fitness_level must be one of: %s", strings.Join(types.Difficulties(), ", ")))
	}

	existing, err := ps.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("load profile: %w", err))
	}

	now := time.Now()
	if existing == nil {
		profile := &types.Profile{
			ID:           uuid.New(),
			UserID:       userID,
			FitnessLevel: level,
			HeightCM:     update.HeightCM,
			WeightKG:     update.WeightKG,
			Notes:        update.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := ps.profileRepo.Create(ctx, nil, []*types.Profile{profile}); err != nil {
			return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("create profile: %w", err))
		}
		return profile, nil
	}

	fields := map[string]any{
		"fitness_level": level,
		"height_cm":     update.HeightCM,
		"weight_kg":     update.WeightKG,
		"notes":         update.Notes,
		"updated_at":    now,
	}
	if err := ps.profileRepo.UpdateFields(ctx, nil, existing.ID, fields); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("update profile: %w", err))
	}
	existing.FitnessLevel = level
	existing.HeightCM = update.HeightCM
	existing.WeightKG = update.WeightKG
	existing.Notes = update.Notes
	existing.UpdatedAt = now
	return existing, nil
}
