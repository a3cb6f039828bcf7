package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name              string     `json:"name"`
	Email             string     `gorm:"uniqueIndex" json:"email"`
	Password          string     `json:"-"`
	Plan              string     `gorm:"default:'FREE'" json:"plan"` // FREE, STARTER, PRO, ENTERPRISE, PAY_AS_YOU_GO
	Role              string     `gorm:"default:'USER'" json:"role"` // USER, EMPLOYEE, MANAGER, MODERATOR, ADMIN, OWNER, READ_ONLY
	TokenBalanceMicro int64      `gorm:"default:0" json:"token_balance_micro"`
	EmailVerified     *time.Time `json:"email_verified,omitempty"`
	AnalysesCount     int        `gorm:"default:0" json:"analyses_count"`
	APICallsCount     int        `gorm:"default:0" json:"api_calls_count"`

	Timestamp
}
