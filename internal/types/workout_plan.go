package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WorkoutPlan rows are created once per generation request and never updated
// by the generation pipeline; deactivation belongs to a different subsystem.
// UserID is denormalized from the goal so the one-active-plan-per-user guard
// can live on this table.
type WorkoutPlan struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GoalID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"goal_id"`
	Goal          *FitnessGoal   `gorm:"constraint:OnDelete:CASCADE;foreignKey:GoalID;references:ID" json:"goal,omitempty"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Description   string         `gorm:"column:description" json:"description"`
	Difficulty    string         `gorm:"column:difficulty;not null" json:"difficulty"`
	DurationWeeks int            `gorm:"column:duration_weeks;not null" json:"duration_weeks"`
	FocusMuscles  datatypes.JSON `gorm:"column:focus_muscles;type:jsonb" json:"focus_muscles"`
	RestDays      datatypes.JSON `gorm:"column:rest_days;type:jsonb" json:"rest_days"`
	IsActive      bool           `gorm:"column:is_active;not null;default:false" json:"is_active"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (WorkoutPlan) TableName() string { return "workout_plan" }
