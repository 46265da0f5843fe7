package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/apierr"
	"github.com/forgefit/forgefit-backend/internal/clients/openai"
	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/repos"
	"github.com/forgefit/forgefit-backend/internal/types"
)

// PlanSummary is the success payload of one generation request.
type PlanSummary struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	Workouts    int       `json:"workouts"`
}

type PlanListItem struct {
	ID            uuid.UUID `json:"id"`
	Description   string    `json:"description"`
	Difficulty    string    `json:"difficulty"`
	DurationWeeks int       `json:"duration_weeks"`
	RestDays      []int     `json:"rest_days"`
	IsActive      bool      `json:"is_active"`
	Workouts      int       `json:"workouts"`
	Exercises     int       `json:"exercises"`
	CreatedAt     time.Time `json:"created_at"`
}

type PlanGenerationService interface {
	GeneratePlan(ctx context.Context, req *GeneratePlanRequest) (*PlanSummary, error)
	ListPlans(ctx context.Context, userID uuid.UUID) ([]PlanListItem, error)
}

type planGenerationService struct {
	db  *gorm.DB
	log *logger.Logger

	userRepo     repos.UserRepo
	profileRepo  repos.ProfileRepo
	goalRepo     repos.FitnessGoalRepo
	planRepo     repos.WorkoutPlanRepo
	workoutRepo  repos.WorkoutRepo
	exerciseRepo repos.ExerciseRepo

	ai    openai.Client
	locks UserLocker

	// seedFn feeds the rest-day draw; injectable so tests can pin it.
	seedFn func() int64
}

func NewPlanGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	profileRepo repos.ProfileRepo,
	goalRepo repos.FitnessGoalRepo,
	planRepo repos.WorkoutPlanRepo,
	workoutRepo repos.WorkoutRepo,
	exerciseRepo repos.ExerciseRepo,
	ai openai.Client,
	locks UserLocker,
	seedFn func() int64,
) PlanGenerationService {
	if seedFn == nil {
		seedFn = func() int64 { return time.Now().UnixNano() }
	}
	return &planGenerationService{
		db:           db,
		log:          baseLog.With("service", "PlanGenerationService"),
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		goalRepo:     goalRepo,
		planRepo:     planRepo,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		ai:           ai,
		locks:        locks,
		seedFn:       seedFn,
	}
}

// GeneratePlan runs the full pipeline: validate, resolve user/profile, build
// prompts, call the model, parse/repair, persist. Terminal on first failure;
// validation failures short-circuit before any external call is made.
func (ps *planGenerationService) GeneratePlan(ctx context.Context, req *GeneratePlanRequest) (*PlanSummary, error) {
	if fieldErrs := ValidateGenerationRequest(req); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}
	userID := uuid.MustParse(strings.TrimSpace(req.UserID))

	users, err := ps.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("load user: %w", err))
	}
	if len(users) == 0 || users[0] == nil {
		return nil, apierr.New(http.StatusNotFound, "user_not_found", fmt.Errorf("user not found"))
	}

	// Profile only tunes the prompt; a user who skipped onboarding still
	// gets a plan.
	fitnessLevel := "intermediate"
	profile, err := ps.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("load profile: %w", err))
	}
	if profile != nil && types.IsDifficulty(profile.FitnessLevel) {
		fitnessLevel = strings.ToLower(profile.FitnessLevel)
	}

	release, ok, err := ps.locks.Acquire(ctx, userID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "lock", fmt.Errorf("acquire generation lock: %w", err))
	}
	if !ok {
		return nil, apierr.New(http.StatusConflict, "generation_in_progress", fmt.Errorf("a plan generation is already running for this user"))
	}
	defer release()

	rng := rand.New(rand.NewSource(ps.seedFn()))
	restDays, err := SampleRestDays(rng, req.DaysPerWeek)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_request", err)
	}

	system, user := BuildPlanPrompts(req, fitnessLevel, restDays)

	started := time.Now()
	raw, err := ps.ai.GenerateText(ctx, system, user)
	if err != nil {
		if openai.IsTimeout(err) {
			ps.log.Warn("Plan generation timed out", "user_id", userID, "elapsed", time.Since(started).String())
			return nil, apierr.New(http.StatusGatewayTimeout, "generation_timeout", fmt.Errorf("plan generation timed out"))
		}
		var httpErr *openai.HTTPError
		if errors.As(err, &httpErr) {
			ps.log.Error("Generation provider error", "user_id", userID, "status", httpErr.StatusCode)
			return nil, apierr.New(http.StatusBadGateway, "generation_provider", fmt.Errorf("plan generation failed"))
		}
		ps.log.Error("Generation call failed", "user_id", userID, "error", err)
		return nil, apierr.New(http.StatusBadGateway, "generation_provider", fmt.Errorf("plan generation failed"))
	}

	plan, err := ParseGeneratedPlan(raw)
	if err != nil {
		var parseErr *PlanParseError
		if errors.As(err, &parseErr) {
			ps.log.Error("Model output unrecoverable",
				"user_id", userID,
				"raw_len", len(parseErr.Raw),
				"error", parseErr.Err,
			)
		}
		return nil, apierr.New(http.StatusInternalServerError, "plan_parse", fmt.Errorf("generated plan could not be parsed"))
	}

	summary, err := ps.persistPlan(ctx, req, userID, plan)
	if err != nil {
		return nil, err
	}

	ps.log.Info("Plan generated",
		"user_id", userID,
		"plan_id", summary.ID,
		"workouts", summary.Workouts,
		"elapsed", time.Since(started).String(),
	)
	return summary, nil
}

// persistPlan writes goal -> plan -> workouts -> exercises in dependency
// order. Workout inserts fan out concurrently, as do the exercise inserts
// under each workout; a goal or plan insert failure stops everything before
// any fan-out begins. Fan-out failures deactivate the just-created plan so a
// torn plan never counts against the one-active-plan guard; the partial rows
// themselves are left for diagnostics (no compensating delete).
func (ps *planGenerationService) persistPlan(ctx context.Context, req *GeneratePlanRequest, userID uuid.UUID, plan *GeneratedPlan) (*PlanSummary, error) {
	now := time.Now()

	params, err := json.Marshal(map[string]any{
		"workout_type":  req.WorkoutType,
		"focus_muscles": req.FocusMuscles,
		"days_per_week": req.DaysPerWeek,
	})
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("encode goal params: %w", err))
	}

	goal := &types.FitnessGoal{
		ID:         uuid.New(),
		UserID:     userID,
		Category:   req.GoalType,
		TargetDate: now.AddDate(0, 0, req.DurationWeeks*7),
		Status:     "active",
		Params:     datatypes.JSON(params),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := ps.goalRepo.Create(ctx, nil, []*types.FitnessGoal{goal}); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("insert goal: %w", err))
	}

	focusJSON, _ := json.Marshal(req.FocusMuscles)
	restJSON, _ := json.Marshal(plan.RestDays)
	planRow := &types.WorkoutPlan{
		ID:            uuid.New(),
		GoalID:        goal.ID,
		UserID:        userID,
		Description:   plan.Description,
		Difficulty:    plan.Difficulty,
		DurationWeeks: req.DurationWeeks,
		FocusMuscles:  datatypes.JSON(focusJSON),
		RestDays:      datatypes.JSON(restJSON),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := ps.planRepo.Create(ctx, nil, []*types.WorkoutPlan{planRow}); err != nil {
		if isUniqueViolation(err) {
			return nil, apierr.New(http.StatusConflict, "active_plan_exists", fmt.Errorf("user already has an active plan"))
		}
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("insert plan: %w", err))
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range plan.Workouts {
		gw := plan.Workouts[i]
		g.Go(func() error {
			workout := &types.Workout{
				ID:                uuid.New(),
				PlanID:            planRow.ID,
				Name:              gw.Name,
				Description:       gw.Description,
				DayOfWeek:         gw.DayOfWeek,
				EstimatedDuration: gw.EstimatedDuration,
				Category:          gw.Category,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if _, err := ps.workoutRepo.Create(gctx, nil, []*types.Workout{workout}); err != nil {
				return fmt.Errorf("insert workout %q: %w", gw.Name, err)
			}

			eg, egctx := errgroup.WithContext(gctx)
			for j := range gw.Exercises {
				gex := gw.Exercises[j]
				eg.Go(func() error {
					primary, _ := json.Marshal(gex.PrimaryMuscles)
					secondary, _ := json.Marshal(gex.SecondaryMuscles)
					equipment, _ := json.Marshal(gex.Equipment)
					exercise := &types.Exercise{
						ID:               uuid.New(),
						WorkoutID:        workout.ID,
						Name:             gex.Name,
						Description:      gex.Description,
						Sets:             gex.Sets,
						Reps:             gex.Reps,
						RestDuration:     gex.RestDuration,
						OrderIndex:       gex.OrderIndex,
						PrimaryMuscles:   datatypes.JSON(primary),
						SecondaryMuscles: datatypes.JSON(secondary),
						Equipment:        datatypes.JSON(equipment),
						Category:         gex.Category,
						CreatedAt:        now,
						UpdatedAt:        now,
					}
					if _, err := ps.exerciseRepo.Create(egctx, nil, []*types.Exercise{exercise}); err != nil {
						return fmt.Errorf("insert exercise %q: %w", gex.Name, err)
					}
					return nil
				})
			}
			return eg.Wait()
		})
	}
	if err := g.Wait(); err != nil {
		if dErr := ps.planRepo.Deactivate(ctx, nil, planRow.ID); dErr != nil {
			ps.log.Error("Failed to deactivate torn plan", "plan_id", planRow.ID, "error", dErr)
		}
		return nil, apierr.New(http.StatusInternalServerError, "persistence", err)
	}

	return &PlanSummary{
		ID:          planRow.ID,
		Description: planRow.Description,
		Difficulty:  planRow.Difficulty,
		Workouts:    len(plan.Workouts),
	}, nil
}

func (ps *planGenerationService) ListPlans(ctx context.Context, userID uuid.UUID) ([]PlanListItem, error) {
	plans, err := ps.planRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("load plans: %w", err))
	}
	if len(plans) == 0 {
		return []PlanListItem{}, nil
	}

	planIDs := make([]uuid.UUID, 0, len(plans))
	for _, p := range plans {
		planIDs = append(planIDs, p.ID)
	}
	workouts, err := ps.workoutRepo.GetByPlanIDs(ctx, nil, planIDs)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("load workouts: %w", err))
	}

	workoutIDs := make([]uuid.UUID, 0, len(workouts))
	workoutsPerPlan := map[uuid.UUID]int{}
	planByWorkout := map[uuid.UUID]uuid.UUID{}
	for _, w := range workouts {
		workoutIDs = append(workoutIDs, w.ID)
		workoutsPerPlan[w.PlanID]++
		planByWorkout[w.ID] = w.PlanID
	}
	exercises, err := ps.exerciseRepo.GetByWorkoutIDs(ctx, nil, workoutIDs)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "persistence", fmt.Errorf("load exercises: %w", err))
	}
	exercisesPerPlan := map[uuid.UUID]int{}
	for _, ex := range exercises {
		exercisesPerPlan[planByWorkout[ex.WorkoutID]]++
	}

	items := make([]PlanListItem, 0, len(plans))
	for _, p := range plans {
		var restDays []int
		_ = json.Unmarshal(p.RestDays, &restDays)
		items = append(items, PlanListItem{
			ID:            p.ID,
			Description:   p.Description,
			Difficulty:    p.Difficulty,
			DurationWeeks: p.DurationWeeks,
			RestDays:      restDays,
			IsActive:      p.IsActive,
			Workouts:      workoutsPerPlan[p.ID],
			Exercises:     exercisesPerPlan[p.ID],
			CreatedAt:     p.CreatedAt,
		})
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
