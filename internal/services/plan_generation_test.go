package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/apierr"
	"github.com/forgefit/forgefit-backend/internal/db"
	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/repos"
	"github.com/forgefit/forgefit-backend/internal/types"
)

type stubAI struct {
	out string
	err error
}

func (s stubAI) GenerateText(ctx context.Context, system, user string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

type generationFixture struct {
	db     *gorm.DB
	svc    PlanGenerationService
	locks  UserLocker
	userID uuid.UUID
}

func newGenerationFixture(t *testing.T, ai stubAI) *generationFixture {
	t.Helper()
	log := logger.NewNop()

	// File-backed so the concurrent insert fan-out busy-waits instead of
	// failing with "database table is locked" the way a shared-cache
	// in-memory database does.
	gdb, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")+"?_busy_timeout=5000"),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	userRepo := repos.NewUserRepo(gdb, log)
	now := time.Now()
	user := &types.User{
		ID:        uuid.New(),
		Email:     "lifter@example.com",
		Password:  "irrelevant",
		FirstName: "Test",
		LastName:  "Lifter",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := userRepo.Create(context.Background(), nil, []*types.User{user}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	locks := NewUserLocker(log, "")
	svc := NewPlanGenerationService(
		gdb,
		log,
		userRepo,
		repos.NewProfileRepo(gdb, log),
		repos.NewFitnessGoalRepo(gdb, log),
		repos.NewWorkoutPlanRepo(gdb, log),
		repos.NewWorkoutRepo(gdb, log),
		repos.NewExerciseRepo(gdb, log),
		ai,
		locks,
		func() int64 { return 42 },
	)
	return &generationFixture{db: gdb, svc: svc, locks: locks, userID: user.ID}
}

func (f *generationFixture) request() *GeneratePlanRequest {
	return &GeneratePlanRequest{
		UserID:        f.userID.String(),
		GoalType:      "build muscle",
		WorkoutType:   "strength",
		DurationWeeks: 8,
		DaysPerWeek:   3,
		FocusMuscles:  []string{"chest", "back"},
	}
}

func (f *generationFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func TestGeneratePlanSuccess(t *testing.T) {
	f := newGenerationFixture(t, stubAI{out: validPlanJSON})

	summary, err := f.svc.GeneratePlan(context.Background(), f.request())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if summary.Workouts != 2 {
		t.Fatalf("summary.Workouts = %d, want 2", summary.Workouts)
	}
	if summary.Difficulty != "intermediate" {
		t.Fatalf("summary.Difficulty = %q", summary.Difficulty)
	}

	if n := f.count(t, &types.FitnessGoal{}); n != 1 {
		t.Fatalf("fitness_goal rows = %d, want 1", n)
	}
	if n := f.count(t, &types.WorkoutPlan{}); n != 1 {
		t.Fatalf("workout_plan rows = %d, want 1", n)
	}
	if n := f.count(t, &types.Workout{}); n != 2 {
		t.Fatalf("workout rows = %d, want 2", n)
	}
	if n := f.count(t, &types.Exercise{}); n != 6 {
		t.Fatalf("exercise rows = %d, want 6", n)
	}

	var plan types.WorkoutPlan
	if err := f.db.First(&plan).Error; err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if !plan.IsActive {
		t.Fatal("new plan should be active")
	}
	if plan.UserID != f.userID {
		t.Fatalf("plan.UserID = %s, want %s", plan.UserID, f.userID)
	}

	var workouts []types.Workout
	if err := f.db.Find(&workouts).Error; err != nil {
		t.Fatalf("load workouts: %v", err)
	}
	for _, w := range workouts {
		var n int64
		if err := f.db.Model(&types.Exercise{}).Where("workout_id = ?", w.ID).Count(&n).Error; err != nil {
			t.Fatalf("count exercises for %q: %v", w.Name, err)
		}
		if n != 3 {
			t.Fatalf("workout %q has %d exercises, want 3", w.Name, n)
		}
	}
}

func TestGeneratePlanWideFanOut(t *testing.T) {
	var workouts []string
	for d := 1; d <= 5; d++ {
		var exercises []string
		for i := 0; i < 5; i++ {
			exercises = append(exercises, fmt.Sprintf(
				`{"name":"Day %d Ex %d","sets":3,"reps":10,"rest_duration":"1 minute","order_index":%d,"primary_muscles":["chest"],"secondary_muscles":[],"equipment":[],"category":"strength"}`,
				d, i, i))
		}
		workouts = append(workouts, fmt.Sprintf(
			`{"name":"Day %d","day_of_week":%d,"estimated_duration":"45 minutes","category":"strength","exercises":[%s]}`,
			d, d, strings.Join(exercises, ",")))
	}
	raw := fmt.Sprintf(
		`{"description":"wide split","difficulty":"advanced","rest_days":[6,7],"workouts":[%s]}`,
		strings.Join(workouts, ","))

	f := newGenerationFixture(t, stubAI{out: raw})
	req := f.request()
	req.DaysPerWeek = 5

	summary, err := f.svc.GeneratePlan(context.Background(), req)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if summary.Workouts != 5 {
		t.Fatalf("summary.Workouts = %d, want 5", summary.Workouts)
	}
	if n := f.count(t, &types.Workout{}); n != 5 {
		t.Fatalf("workout rows = %d, want 5", n)
	}
	if n := f.count(t, &types.Exercise{}); n != 25 {
		t.Fatalf("exercise rows = %d, want 25", n)
	}
}

func TestGeneratePlanValidationFailureSkipsModelCall(t *testing.T) {
	f := newGenerationFixture(t, stubAI{err: errors.New("model must not be called")})

	req := f.request()
	req.DaysPerWeek = 0
	req.FocusMuscles = []string{"wings"}

	_, err := f.svc.GeneratePlan(context.Background(), req)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	paths := fieldPaths(vErr.Fields)
	if !paths["daysPerWeek"] || !paths["focusMuscles[0]"] {
		t.Fatalf("unexpected violations: %v", vErr.Fields)
	}
}

func TestGeneratePlanUnknownUser(t *testing.T) {
	f := newGenerationFixture(t, stubAI{out: validPlanJSON})

	req := f.request()
	req.UserID = uuid.New().String()

	_, err := f.svc.GeneratePlan(context.Background(), req)
	var aErr *apierr.Error
	if !errors.As(err, &aErr) || aErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestGeneratePlanParseFailureWritesNothing(t *testing.T) {
	f := newGenerationFixture(t, stubAI{out: "Sorry, I can't help with workout plans."})

	_, err := f.svc.GeneratePlan(context.Background(), f.request())
	var aErr *apierr.Error
	if !errors.As(err, &aErr) || aErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
	if n := f.count(t, &types.FitnessGoal{}); n != 0 {
		t.Fatalf("fitness_goal rows = %d, want 0", n)
	}
	if n := f.count(t, &types.WorkoutPlan{}); n != 0 {
		t.Fatalf("workout_plan rows = %d, want 0", n)
	}
}

func TestGeneratePlanTimeout(t *testing.T) {
	f := newGenerationFixture(t, stubAI{err: context.DeadlineExceeded})

	_, err := f.svc.GeneratePlan(context.Background(), f.request())
	var aErr *apierr.Error
	if !errors.As(err, &aErr) || aErr.Status != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %v", err)
	}
	if n := f.count(t, &types.WorkoutPlan{}); n != 0 {
		t.Fatalf("workout_plan rows = %d, want 0", n)
	}
}

func TestGeneratePlanSecondActivePlanConflicts(t *testing.T) {
	f := newGenerationFixture(t, stubAI{out: validPlanJSON})

	if _, err := f.svc.GeneratePlan(context.Background(), f.request()); err != nil {
		t.Fatalf("first GeneratePlan: %v", err)
	}
	_, err := f.svc.GeneratePlan(context.Background(), f.request())
	var aErr *apierr.Error
	if !errors.As(err, &aErr) || aErr.Status != http.StatusConflict {
		t.Fatalf("expected 409 for second active plan, got %v", err)
	}
	if n := f.count(t, &types.WorkoutPlan{}); n != 1 {
		t.Fatalf("workout_plan rows = %d, want 1", n)
	}
}

func TestGeneratePlanLockContention(t *testing.T) {
	f := newGenerationFixture(t, stubAI{out: validPlanJSON})

	release, ok, err := f.locks.Acquire(context.Background(), f.userID)
	if err != nil || !ok {
		t.Fatalf("prime lock: ok=%v err=%v", ok, err)
	}
	defer release()

	_, err = f.svc.GeneratePlan(context.Background(), f.request())
	var aErr *apierr.Error
	if !errors.As(err, &aErr) || aErr.Status != http.StatusConflict {
		t.Fatalf("expected 409 while lock held, got %v", err)
	}
}

func TestGeneratePlanUsesProfileFitnessLevel(t *testing.T) {
	f := newGenerationFixture(t, stubAI{out: validPlanJSON})

	profileRepo := repos.NewProfileRepo(f.db, logger.NewNop())
	now := time.Now()
	profile := &types.Profile{
		ID:           uuid.New(),
		UserID:       f.userID,
		FitnessLevel: "advanced",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := profileRepo.Create(context.Background(), nil, []*types.Profile{profile}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	if _, err := f.svc.GeneratePlan(context.Background(), f.request()); err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
}

func TestListPlans(t *testing.T) {
	f := newGenerationFixture(t, stubAI{out: validPlanJSON})

	if _, err := f.svc.GeneratePlan(context.Background(), f.request()); err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	items, err := f.svc.ListPlans(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	got := items[0]
	if got.Workouts != 2 || got.Exercises != 6 {
		t.Fatalf("counts = %d workouts / %d exercises, want 2/6", got.Workouts, got.Exercises)
	}
	if !got.IsActive {
		t.Fatal("plan should be listed as active")
	}
	if len(got.RestDays) != 4 {
		t.Fatalf("rest_days = %v, want 4 entries", got.RestDays)
	}
}

func TestListPlansEmpty(t *testing.T) {
	f := newGenerationFixture(t, stubAI{out: validPlanJSON})
	items, err := f.svc.ListPlans(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no plans, got %v", items)
	}
}
