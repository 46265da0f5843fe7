package app

import (
	"gorm.io/gorm"

	"github.com/forgefit/forgefit-backend/internal/logger"
	"github.com/forgefit/forgefit-backend/internal/repos"
)

type Repos struct {
	User        repos.UserRepo
	Profile     repos.ProfileRepo
	FitnessGoal repos.FitnessGoalRepo
	WorkoutPlan repos.WorkoutPlanRepo
	Workout     repos.WorkoutRepo
	Exercise    repos.ExerciseRepo
	ProgressLog repos.ProgressLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Profile:     repos.NewProfileRepo(db, log),
		FitnessGoal: repos.NewFitnessGoalRepo(db, log),
		WorkoutPlan: repos.NewWorkoutPlanRepo(db, log),
		Workout:     repos.NewWorkoutRepo(db, log),
		Exercise:    repos.NewExerciseRepo(db, log),
		ProgressLog: repos.NewProgressLogRepo(db, log),
	}
}
