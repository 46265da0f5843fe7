package types

import (
	"time"

	"github.com/google/uuid"
)

type Workout struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID            uuid.UUID    `gorm:"type:uuid;not null;index" json:"plan_id"`
	Plan              *WorkoutPlan `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlanID;references:ID" json:"plan,omitempty"`
	Name              string       `gorm:"column:name;not null" json:"name"`
	Description       string       `gorm:"column:description" json:"description"`
	DayOfWeek         int          `gorm:"column:day_of_week;not null" json:"day_of_week"`
	EstimatedDuration string       `gorm:"column:estimated_duration" json:"estimated_duration"`
	Category          string       `gorm:"column:category;not null" json:"category"`
	CreatedAt         time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time    `gorm:"not null" json:"updated_at"`
}

func (Workout) TableName() string { return "workout" }
