package types

import "strings"

// Closed vocabularies. Anything outside these sets is filtered or rejected
// before persistence; the generation prompt pins them so the model cannot
// invent values.

var muscleGroups = []string{
	"chest", "back", "shoulders", "biceps", "triceps", "forearms", "abs",
	"obliques", "quadriceps", "hamstrings", "glutes", "calves", "traps", "lats",
}

var workoutCategories = []string{
	"powerlifting", "bodyweight", "hiit", "strength", "cardio", "crossfit",
	"endurance", "circuit", "isolation",
}

var difficulties = []string{"beginner", "intermediate", "advanced"}

var (
	muscleGroupSet     = toSet(muscleGroups)
	workoutCategorySet = toSet(workoutCategories)
	difficultySet      = toSet(difficulties)
)

func toSet(vals []string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

func MuscleGroups() []string {
	out := make([]string, len(muscleGroups))
	copy(out, muscleGroups)
	return out
}

func WorkoutCategories() []string {
	out := make([]string, len(workoutCategories))
	copy(out, workoutCategories)
	return out
}

func Difficulties() []string {
	out := make([]string, len(difficulties))
	copy(out, difficulties)
	return out
}

func IsMuscleGroup(v string) bool {
	return muscleGroupSet[strings.ToLower(strings.TrimSpace(v))]
}

func IsWorkoutCategory(v string) bool {
	return workoutCategorySet[strings.ToLower(strings.TrimSpace(v))]
}

func IsDifficulty(v string) bool {
	return difficultySet[strings.ToLower(strings.TrimSpace(v))]
}
