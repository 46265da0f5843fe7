package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type FitnessGoal struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Category   string         `gorm:"column:category;not null" json:"category"`
	TargetDate time.Time      `gorm:"column:target_date;not null" json:"target_date"`
	Status     string         `gorm:"column:status;not null;default:active" json:"status"`
	Params     datatypes.JSON `gorm:"column:params;type:jsonb" json:"params"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (FitnessGoal) TableName() string { return "fitness_goal" }
