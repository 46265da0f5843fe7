package services

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/forgefit/forgefit-backend/internal/types"
)

// SampleRestDays picks 7-daysPerWeek distinct days from {1..7}, sorted
// ascending. The subset itself is arbitrary; the caller embeds it verbatim in
// the prompt so the model must reproduce exactly this set. r is injected so
// tests can pin the draw.
func SampleRestDays(r *rand.Rand, daysPerWeek int) ([]int, error) {
	if daysPerWeek < 1 || daysPerWeek > 7 {
		return nil, fmt.Errorf("daysPerWeek must be between 1 and 7, got %d", daysPerWeek)
	}
	restCount := 7 - daysPerWeek
	if restCount == 0 {
		return []int{}, nil
	}

	perm := r.Perm(7)
	rest := make([]int, 0, restCount)
	for _, p := range perm[:restCount] {
		rest = append(rest, p+1)
	}
	sort.Ints(rest)
	return rest, nil
}

const planSystemPrompt = `You are a certified strength and conditioning coach. You design structured weekly workout plans.

Respond with a single JSON object and nothing else: no markdown fences, no commentary.

Rules you must follow exactly:
- "difficulty" must be one of: %s.
- Every "category" value must be one of: %s.
- Every muscle group in "primary_muscles" and "secondary_muscles" must be one of: %s.
- "rest_days" must be exactly %s. Do not choose different rest days.
- Each workout has between 1 and 5 exercises.
- "sets" and "reps" are positive integers; "order_index" starts at 0 within each workout.
- Duration fields are strings like "45 minutes".

The JSON object must have exactly this shape:
{
  "description": "...",
  "difficulty": "...",
  "rest_days": [ ... ],
  "workouts": [
    {
      "name": "...",
      "description": "...",
      "day_of_week": 1,
      "estimated_duration": "45 minutes",
      "category": "...",
      "exercises": [
        {
          "name": "...",
          "description": "...",
          "sets": 3,
          "reps": 10,
          "rest_duration": "2 minutes",
          "order_index": 0,
          "primary_muscles": ["..."],
          "secondary_muscles": ["..."],
          "equipment": ["..."],
          "category": "..."
        }
      ]
    }
  ]
}`

// BuildPlanPrompts renders the system/user prompt pair. Pure: everything the
// model needs, including the pre-drawn rest-day set, is passed in.
func BuildPlanPrompts(req *GeneratePlanRequest, fitnessLevel string, restDays []int) (string, string) {
	restJSON := formatIntList(restDays)

	system := fmt.Sprintf(planSystemPrompt,
		strings.Join(types.Difficulties(), ", "),
		strings.Join(types.WorkoutCategories(), ", "),
		strings.Join(types.MuscleGroups(), ", "),
		restJSON,
	)

	var user strings.Builder
	fmt.Fprintf(&user, "Create a %d-week %s workout plan.\n", req.DurationWeeks, req.WorkoutType)
	fmt.Fprintf(&user, "Goal: %s.\n", req.GoalType)
	fmt.Fprintf(&user, "Training days per week: %d (rest days: %s).\n", req.DaysPerWeek, restJSON)
	fmt.Fprintf(&user, "Focus muscle groups: %s.\n", strings.Join(req.FocusMuscles, ", "))
	fmt.Fprintf(&user, "Fitness level: %s.\n", fitnessLevel)
	if strings.TrimSpace(req.AdditionalNotes) != "" {
		fmt.Fprintf(&user, "Additional notes: %s\n", strings.TrimSpace(req.AdditionalNotes))
	}
	return system, user.String()
}

func formatIntList(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
