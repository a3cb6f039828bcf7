package entities

import (
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID  `gorm:"index" json:"user_id"`
	Status         string     `json:"status"` // PROCESSING, COMPLETED, FAILED
	FileName       string     `json:"file_name"`
	FileSize       int64      `json:"file_size"`
	FileURL        string     `json:"file_url,omitempty"`
	AnomaliesFound int        `json:"anomalies_found"`
	Accuracy       float64    `json:"accuracy"`
	Results        string     `gorm:"type:text" json:"results,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
