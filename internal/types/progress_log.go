package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProgressLog struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User               *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	WorkoutID          *uuid.UUID     `gorm:"type:uuid;index" json:"workout_id,omitempty"`
	LogDate            time.Time      `gorm:"column:log_date;not null" json:"log_date"`
	Notes              string         `gorm:"column:notes" json:"notes"`
	CompletedExercises datatypes.JSON `gorm:"column:completed_exercises;type:jsonb" json:"completed_exercises"`
	CreatedAt          time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null" json:"updated_at"`
}

func (ProgressLog) TableName() string { return "progress_log" }
