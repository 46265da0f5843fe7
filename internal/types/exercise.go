package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Exercise struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	WorkoutID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"workout_id"`
	Workout          *Workout       `gorm:"constraint:OnDelete:CASCADE;foreignKey:WorkoutID;references:ID" json:"workout,omitempty"`
	Name             string         `gorm:"column:name;not null" json:"name"`
	Description      string         `gorm:"column:description" json:"description"`
	Sets             int            `gorm:"column:sets;not null" json:"sets"`
	Reps             int            `gorm:"column:reps;not null" json:"reps"`
	RestDuration     string         `gorm:"column:rest_duration" json:"rest_duration"`
	OrderIndex       int            `gorm:"column:order_index;not null;default:0" json:"order_index"`
	PrimaryMuscles   datatypes.JSON `gorm:"column:primary_muscles;type:jsonb" json:"primary_muscles"`
	SecondaryMuscles datatypes.JSON `gorm:"column:secondary_muscles;type:jsonb" json:"secondary_muscles"`
	Equipment        datatypes.JSON `gorm:"column:equipment;type:jsonb" json:"equipment"`
	Category         string         `gorm:"column:category" json:"category"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (Exercise) TableName() string { return "exercise" }
