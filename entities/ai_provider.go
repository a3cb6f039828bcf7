package entities

import (
	"github.com/google/uuid"
)

type AIProvider struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Provider  string    `gorm:"uniqueIndex" json:"provider"` // openai, anthropic, gemini
	Model     string    `json:"model"`
	BaseURL   string    `json:"base_url,omitempty"`
	APIKeyRef string    `json:"api_key_ref,omitempty"` // config key holding the secret, never the secret itself
	Enabled   bool      `json:"enabled"`

	Timestamp
}
