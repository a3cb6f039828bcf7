package entities

import (
	"github.com/google/uuid"
)

type FeatureFlag struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key         string    `gorm:"uniqueIndex" json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Enabled     bool      `json:"enabled"`
	Beta        bool      `json:"beta"`
	Plans       string    `json:"plans"` // comma-joined plan list, empty means all plans
	Category    string    `json:"category,omitempty"`

	Timestamp
}
