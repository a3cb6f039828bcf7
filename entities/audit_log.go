package entities

import (
	"github.com/google/uuid"
)

type AuditLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ActorID     *uuid.UUID `gorm:"index" json:"actor_id,omitempty"`
	ActorEmail  string     `json:"actor_email,omitempty"`
	Action      string     `gorm:"index" json:"action"`
	Resource    string     `json:"resource"`
	Status      string     `json:"status"` // SUCCESS, UNAUTHORIZED, FORBIDDEN, FAILURE
	Description string     `json:"description,omitempty"`
	Metadata    string     `gorm:"type:text" json:"metadata,omitempty"`
	Error       string     `json:"error,omitempty"`
	IPAddress   string     `json:"ip_address,omitempty"`

	Timestamp
}
