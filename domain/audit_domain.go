package domain

import "time"

const (
	AuditStatusSuccess      = "SUCCESS"
	AuditStatusUnauthorized = "UNAUTHORIZED"
	AuditStatusForbidden    = "FORBIDDEN"
	AuditStatusFailure      = "FAILURE"
)

type (
	// AuditEntry is the write contract of the audit emitter. Status defaults
	// to SUCCESS when empty.
	AuditEntry struct {
		ActorID     string
		ActorEmail  string
		Action      string
		Resource    string
		Status      string
		Description string
		Metadata    map[string]any
		Err         error
		IPAddress   string
	}

	AuditLogResponse struct {
		ID          string         `json:"id"`
		ActorID     string         `json:"actor_id,omitempty"`
		ActorEmail  string         `json:"actor_email,omitempty"`
		Action      string         `json:"action"`
		Resource    string         `json:"resource"`
		Status      string         `json:"status"`
		Description string         `json:"description,omitempty"`
		Metadata    map[string]any `json:"metadata,omitempty"`
		Error       string         `json:"error,omitempty"`
		CreatedAt   time.Time      `json:"created_at"`
	}
)
