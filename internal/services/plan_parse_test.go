package services

import (
	"errors"
	"fmt"
	"testing"
)

const validPlanJSON = `{
  "description": "Two-day upper/lower split",
  "difficulty": "intermediate",
  "rest_days": [3, 5, 6, 7],
  "workouts": [
    {
      "name": "Upper Body",
      "description": "Push and pull",
      "day_of_week": 1,
      "estimated_duration": "45 minutes",
      "category": "strength",
      "exercises": [
        {
          "name": "Bench Press",
          "description": "Flat barbell bench",
          "sets": 4,
          "reps": 8,
          "rest_duration": "2 minutes",
          "order_index": 0,
          "primary_muscles": ["chest"],
          "secondary_muscles": ["triceps", "shoulders"],
          "equipment": ["barbell", "bench"],
          "category": "strength"
        },
        {
          "name": "Barbell Row",
          "description": "Bent-over row",
          "sets": 4,
          "reps": 10,
          "rest_duration": "2 minutes",
          "order_index": 1,
          "primary_muscles": ["back", "lats"],
          "secondary_muscles": ["biceps"],
          "equipment": ["barbell"],
          "category": "strength"
        },
        {
          "name": "Overhead Press",
          "description": "Standing press",
          "sets": 3,
          "reps": 10,
          "rest_duration": "90 seconds",
          "order_index": 2,
          "primary_muscles": ["shoulders"],
          "secondary_muscles": ["triceps"],
          "equipment": ["barbell"],
          "category": "strength"
        }
      ]
    },
    {
      "name": "Lower Body",
      "description": "Squat focus",
      "day_of_week": 2,
      "estimated_duration": "50 minutes",
      "category": "strength",
      "exercises": [
        {
          "name": "Back Squat",
          "description": "High bar",
          "sets": 5,
          "reps": 5,
          "rest_duration": "3 minutes",
          "order_index": 0,
          "primary_muscles": ["quadriceps"],
          "secondary_muscles": ["glutes", "hamstrings"],
          "equipment": ["barbell", "rack"],
          "category": "strength"
        },
        {
          "name": "Romanian Deadlift",
          "description": "Hip hinge",
          "sets": 4,
          "reps": 8,
          "rest_duration": "2 minutes",
          "order_index": 1,
          "primary_muscles": ["hamstrings", "glutes"],
          "secondary_muscles": ["back"],
          "equipment": ["barbell"],
          "category": "strength"
        },
        {
          "name": "Standing Calf Raise",
          "description": "Full range",
          "sets": 3,
          "reps": 15,
          "rest_duration": "1 minute",
          "order_index": 2,
          "primary_muscles": ["calves"],
          "secondary_muscles": [],
          "equipment": ["machine"],
          "category": "isolation"
        }
      ]
    }
  ]
}`

func TestParseGeneratedPlanCleanJSON(t *testing.T) {
	plan, err := ParseGeneratedPlan(validPlanJSON)
	if err != nil {
		t.Fatalf("ParseGeneratedPlan: %v", err)
	}
	if plan.Difficulty != "intermediate" {
		t.Fatalf("difficulty = %q", plan.Difficulty)
	}
	if len(plan.Workouts) != 2 {
		t.Fatalf("workouts = %d, want 2", len(plan.Workouts))
	}
}

func TestParseGeneratedPlanStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validPlanJSON + "\n```"
	plan, err := ParseGeneratedPlan(fenced)
	if err != nil {
		t.Fatalf("ParseGeneratedPlan(fenced): %v", err)
	}
	if len(plan.Workouts) != 2 {
		t.Fatalf("workouts = %d, want 2", len(plan.Workouts))
	}
}

func TestParseGeneratedPlanRecoversEmbeddedObject(t *testing.T) {
	noisy := "Sure! Here is your plan:\n" + validPlanJSON + "\nLet me know if you want changes."
	plan, err := ParseGeneratedPlan(noisy)
	if err != nil {
		t.Fatalf("ParseGeneratedPlan(noisy): %v", err)
	}
	if plan.Description == "" {
		t.Fatal("recovered plan lost its description")
	}
}

func TestParseGeneratedPlanRejectsProse(t *testing.T) {
	_, err := ParseGeneratedPlan("I cannot produce a workout plan right now.")
	if err == nil {
		t.Fatal("expected parse error for prose")
	}
	var parseErr *PlanParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *PlanParseError, got %T", err)
	}
	if parseErr.Raw == "" {
		t.Fatal("parse error should keep the raw output")
	}
}

func TestParseGeneratedPlanRejectsZeroWorkouts(t *testing.T) {
	_, err := ParseGeneratedPlan(`{"description":"empty","difficulty":"beginner","rest_days":[],"workouts":[]}`)
	if err == nil {
		t.Fatal("expected error for zero workouts")
	}
}

func TestParseGeneratedPlanRejectsTooManyExercises(t *testing.T) {
	exercises := ""
	for i := 0; i < 6; i++ {
		if i > 0 {
			exercises += ","
		}
		exercises += fmt.Sprintf(`{"name":"Ex %d","sets":3,"reps":10,"rest_duration":"1 minute","order_index":%d,"primary_muscles":["chest"],"secondary_muscles":[],"equipment":[],"category":"strength"}`, i, i)
	}
	raw := fmt.Sprintf(`{"description":"too many","difficulty":"advanced","rest_days":[7],"workouts":[{"name":"Overloaded","day_of_week":1,"estimated_duration":"60 minutes","category":"strength","exercises":[%s]}]}`, exercises)
	if _, err := ParseGeneratedPlan(raw); err == nil {
		t.Fatal("expected error for 6 exercises in one workout")
	}
}

func TestRepairDropsUnknownMuscleGroups(t *testing.T) {
	raw := `{
	  "description": "filter test",
	  "difficulty": "Beginner",
	  "rest_days": [6, 7],
	  "workouts": [{
	    "name": "Day One",
	    "day_of_week": 1,
	    "estimated_duration": "40 minutes",
	    "category": "Strength",
	    "exercises": [{
	      "name": "Curl",
	      "sets": 3,
	      "reps": 12,
	      "rest_duration": "90 sec",
	      "order_index": 0,
	      "primary_muscles": ["Biceps", "wings"],
	      "secondary_muscles": ["forearms", "soul"],
	      "equipment": ["dumbbell"],
	      "category": "isolation"
	    }]
	  }]
	}`
	plan, err := ParseGeneratedPlan(raw)
	if err != nil {
		t.Fatalf("ParseGeneratedPlan: %v", err)
	}
	ex := plan.Workouts[0].Exercises[0]
	if len(ex.PrimaryMuscles) != 1 || ex.PrimaryMuscles[0] != "biceps" {
		t.Fatalf("primary_muscles = %v, want [biceps]", ex.PrimaryMuscles)
	}
	if len(ex.SecondaryMuscles) != 1 || ex.SecondaryMuscles[0] != "forearms" {
		t.Fatalf("secondary_muscles = %v, want [forearms]", ex.SecondaryMuscles)
	}
	if plan.Difficulty != "beginner" {
		t.Fatalf("difficulty = %q, want beginner", plan.Difficulty)
	}
	if plan.Workouts[0].Category != "strength" {
		t.Fatalf("category = %q, want strength", plan.Workouts[0].Category)
	}
}

func TestNormalizeDuration(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"45 minutes", "45 minutes"},
		{"about 60 min", "60 minutes"},
		{"90 sec", "90 minutes"},
		{"1 hour", "1 minutes"},
		{"lots of time", "30 minutes"},
		{"", "30 minutes"},
		{"0 minutes", "30 minutes"},
	}
	for _, c := range cases {
		if got := normalizeDuration(c.in); got != c.want {
			t.Errorf("normalizeDuration(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRepairPlanIdempotent(t *testing.T) {
	plan, err := ParseGeneratedPlan(validPlanJSON)
	if err != nil {
		t.Fatalf("ParseGeneratedPlan: %v", err)
	}
	before := fmt.Sprintf("%+v", plan)
	repairPlan(plan)
	after := fmt.Sprintf("%+v", plan)
	if before != after {
		t.Fatalf("repairPlan changed an already-repaired plan:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestExtractBalancedObjectIgnoresBracesInStrings(t *testing.T) {
	s := `prefix {"a": "close me } not really", "b": {"c": 1}} suffix`
	got := extractBalancedObject(s)
	want := `{"a": "close me } not really", "b": {"c": 1}}`
	if got != want {
		t.Fatalf("extractBalancedObject = %q, want %q", got, want)
	}
}
