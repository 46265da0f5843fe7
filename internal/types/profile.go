package types

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	FitnessLevel string    `gorm:"column:fitness_level;not null;default:intermediate" json:"fitness_level"`
	HeightCM    float64    `gorm:"column:height_cm" json:"height_cm"`
	WeightKG    float64    `gorm:"column:weight_kg" json:"weight_kg"`
	Notes       string     `gorm:"column:notes" json:"notes"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string { return "profile" }
