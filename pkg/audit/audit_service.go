package audit

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	AuditService interface {
		// Record persists an administrative action. It never returns an
		// error: audit failures are logged and swallowed so the primary
		// response is never blocked on the trail.
		Record(ctx context.Context, entry domain.AuditEntry)
		GetAuditLogs(ctx context.Context, page, limit int) ([]*domain.AuditLogResponse, int64, error)
	}

	auditService struct {
		auditRepository AuditRepository
	}
)

func NewAuditService(auditRepository AuditRepository) AuditService {
	return &auditService{
		auditRepository: auditRepository,
	}
}

func (s *auditService) Record(ctx context.Context, entry domain.AuditEntry) {
	status := entry.Status
	if status == "" {
		status = domain.AuditStatusSuccess
	}

	row := &entities.AuditLog{
		ID:          uuid.New(),
		ActorEmail:  entry.ActorEmail,
		Action:      entry.Action,
		Resource:    entry.Resource,
		Status:      status,
		Description: entry.Description,
		IPAddress:   entry.IPAddress,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if entry.ActorID != "" {
		if actorUUID, err := uuid.Parse(entry.ActorID); err == nil {
			row.ActorID = &actorUUID
		}
	}

	if entry.Metadata != nil {
		if raw, err := json.Marshal(entry.Metadata); err == nil {
			row.Metadata = string(raw)
		}
	}

	if entry.Err != nil {
		row.Error = entry.Err.Error()
	}

	if err := s.auditRepository.CreateAuditLog(ctx, row); err != nil {
		log.Errorf("failed to write audit log for action %s: %v", entry.Action, err)
	}
}

func (s *auditService) GetAuditLogs(ctx context.Context, page, limit int) ([]*domain.AuditLogResponse, int64, error) {
	logs, count, err := s.auditRepository.GetAuditLogs(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.AuditLogResponse, 0, len(logs))
	for _, row := range logs {
		resp := &domain.AuditLogResponse{
			ID:          row.ID.String(),
			ActorEmail:  row.ActorEmail,
			Action:      row.Action,
			Resource:    row.Resource,
			Status:      row.Status,
			Description: row.Description,
			Error:       row.Error,
			CreatedAt:   row.CreatedAt,
		}
		if row.ActorID != nil {
			resp.ActorID = row.ActorID.String()
		}
		if row.Metadata != "" {
			var meta map[string]any
			if err := json.Unmarshal([]byte(row.Metadata), &meta); err == nil {
				resp.Metadata = meta
			}
		}
		result = append(result, resp)
	}

	return result, count, nil
}
