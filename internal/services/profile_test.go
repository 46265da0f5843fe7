package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/apierr"
	"github.com/forgefit/forgefit-backend/internal/db"
	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/repos"
)

func newProfileFixture(t *testing.T) (ProfileService, uuid.UUID) {
	t.Helper()
	log := logger.NewNop()
	gdb, err := gorm.Open(
		sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return NewProfileService(gdb, log, repos.NewProfileRepo(gdb, log)), uuid.New()
}

func TestProfileGetMissing(t *testing.T) {
	svc, userID := newProfileFixture(t)
	_, err := svc.Get(context.Background(), userID)
	var aErr *apierr.Error
	if !errors.As(err, &aErr) || aErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestProfileUpsertCreateThenUpdate(t *testing.T) {
	svc, userID := newProfileFixture(t)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, userID, ProfileUpdate{FitnessLevel: "Beginner", HeightCM: 180, WeightKG: 82})
	if err != nil {
		t.Fatalf("Upsert(create): %v", err)
	}
	if created.FitnessLevel != "beginner" {
		t.Fatalf("fitness_level = %q, want beginner", created.FitnessLevel)
	}

	updated, err := svc.Upsert(ctx, userID, ProfileUpdate{FitnessLevel: "advanced", HeightCM: 180, WeightKG: 79})
	if err != nil {
		t.Fatalf("Upsert(update): %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update created a second profile: %s vs %s", updated.ID, created.ID)
	}
	if updated.WeightKG != 79 {
		t.Fatalf("weight_kg = %v, want 79", updated.WeightKG)
	}

	got, err := svc.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FitnessLevel != "advanced" {
		t.Fatalf("persisted fitness_level = %q, want advanced", got.FitnessLevel)
	}
}

func TestProfileUpsertDefaultsLevel(t *testing.T) {
	svc, userID := newProfileFixture(t)
	created, err := svc.Upsert(context.Background(), userID, ProfileUpdate{})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created.FitnessLevel != "intermediate" {
		t.Fatalf("fitness_level = %q, want intermediate", created.FitnessLevel)
	}
}

func TestProfileUpsertRejectsUnknownLevel(t *testing.T) {
	svc, userID := newProfileFixture(t)
	_, err := svc.Upsert(context.Background(), userID, ProfileUpdate{FitnessLevel: "legendary"})
	var aErr *apierr.Error
	if !errors.As(err, &aErr) || aErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
