package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/forgefit/forgefit-backend/internal/types"
)

// GeneratePlanRequest is the decoded body of POST /api/plans/generate.
type GeneratePlanRequest struct {
	UserID          string   `json:"userId"`
	GoalType        string   `json:"goalType"`
	WorkoutType     string   `json:"workoutType"`
	DurationWeeks   int      `json:"durationWeeks"`
	DaysPerWeek     int      `json:"daysPerWeek"`
	FocusMuscles    []string `json:"focusMuscles"`
	AdditionalNotes string   `json:"additionalNotes"`
}

type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries every violated field from one validation pass.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "invalid request"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Path+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// ValidateGenerationRequest checks the inbound request shape. It is pure and
// total: it never touches I/O and reports all violations, not just the first.
func ValidateGenerationRequest(req *GeneratePlanRequest) []FieldError {
	var errs []FieldError
	if req == nil {
		return []FieldError{{Path: "body", Message: "request body is required"}}
	}

	if _, err := uuid.Parse(strings.TrimSpace(req.UserID)); err != nil {
		errs = append(errs, FieldError{Path: "userId", Message: "must be a valid UUID"})
	}
	if strings.TrimSpace(req.GoalType) == "" {
		errs = append(errs, FieldError{Path: "goalType", Message: "must be a non-empty string"})
	}
	if !types.IsWorkoutCategory(req.WorkoutType) {
		errs = append(errs, FieldError{
			Path:    "workoutType",
			Message: "must be one of: " + strings.Join(types.WorkoutCategories(), ", "),
		})
	}
	if req.DurationWeeks < 1 || req.DurationWeeks > 52 {
		errs = append(errs, FieldError{Path: "durationWeeks", Message: "must be an integer between 1 and 52"})
	}
	if req.DaysPerWeek < 1 || req.DaysPerWeek > 7 {
		errs = append(errs, FieldError{Path: "daysPerWeek", Message: "must be an integer between 1 and 7"})
	}
	if len(req.FocusMuscles) == 0 {
		errs = append(errs, FieldError{Path: "focusMuscles", Message: "must be a non-empty array"})
	}
	for i, m := range req.FocusMuscles {
		if !types.IsMuscleGroup(m) {
			errs = append(errs, FieldError{
				Path:    fmt.Sprintf("focusMuscles[%d]", i),
				Message: fmt.Sprintf("%q is not a known muscle group", m),
			})
		}
	}
	return errs
}

// validateGeneratedPlan checks the repaired model output against the
// generated-plan shape. Run after repairPlan; repair never fixes the
// violations reported here.
func validateGeneratedPlan(plan *GeneratedPlan) []FieldError {
	var errs []FieldError
	if plan == nil {
		return []FieldError{{Path: "plan", Message: "plan is required"}}
	}

	if strings.TrimSpace(plan.Description) == "" {
		errs = append(errs, FieldError{Path: "description", Message: "missing plan description"})
	}
	if !types.IsDifficulty(plan.Difficulty) {
		errs = append(errs, FieldError{
			Path:    "difficulty",
			Message: "must be one of: " + strings.Join(types.Difficulties(), ", "),
		})
	}
	if len(plan.RestDays) > 7 {
		errs = append(errs, FieldError{Path: "rest_days", Message: "must contain at most 7 entries"})
	}
	for i, d := range plan.RestDays {
		if d < 1 || d > 7 {
			errs = append(errs, FieldError{
				Path:    fmt.Sprintf("rest_days[%d]", i),
				Message: "must be an integer between 1 and 7",
			})
		}
	}
	if len(plan.Workouts) == 0 {
		errs = append(errs, FieldError{Path: "workouts", Message: "must contain at least one workout"})
	}
	for i, w := range plan.Workouts {
		prefix := fmt.Sprintf("workouts[%d]", i)
		if strings.TrimSpace(w.Name) == "" {
			errs = append(errs, FieldError{Path: prefix + ".name", Message: "missing workout name"})
		}
		if w.DayOfWeek < 1 || w.DayOfWeek > 7 {
			errs = append(errs, FieldError{Path: prefix + ".day_of_week", Message: "must be an integer between 1 and 7"})
		}
		if len(w.Exercises) == 0 {
			errs = append(errs, FieldError{Path: prefix + ".exercises", Message: "must contain at least one exercise"})
		}
		if len(w.Exercises) > 5 {
			errs = append(errs, FieldError{Path: prefix + ".exercises", Message: "must contain at most 5 exercises"})
		}
		for j, ex := range w.Exercises {
			exPrefix := fmt.Sprintf("%s.exercises[%d]", prefix, j)
			if strings.TrimSpace(ex.Name) == "" {
				errs = append(errs, FieldError{Path: exPrefix + ".name", Message: "missing exercise name"})
			}
			if ex.Sets < 1 {
				errs = append(errs, FieldError{Path: exPrefix + ".sets", Message: "must be a positive integer"})
			}
			if ex.Reps < 1 {
				errs = append(errs, FieldError{Path: exPrefix + ".reps", Message: "must be a positive integer"})
			}
			if ex.OrderIndex < 0 {
				errs = append(errs, FieldError{Path: exPrefix + ".order_index", Message: "must be a non-negative integer"})
			}
		}
	}
	return errs
}
