package entities

import (
	"github.com/google/uuid"
)

type UsageRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"index" json:"user_id"`
	Type     string    `json:"type"` // ANALYSIS, API_CALL, FILE_UPLOAD, REPORT_DOWNLOAD, TOKEN_TRANSACTION
	Count    int       `gorm:"default:1" json:"count"`
	Metadata string    `gorm:"type:text" json:"metadata,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
