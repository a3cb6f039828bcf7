package admin

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/pkg/audit"
	"context"
)

// auditedIDLimit caps how many target ids land in the audit trail for one
// bulk operation.
const auditedIDLimit = 10

type (
	AdminService interface {
		BulkUserOperation(ctx context.Context, req domain.BulkUserOperationRequest, adminID, adminEmail, ip string) (*domain.BulkUserOperationResponse, error)
	}

	adminService struct {
		adminRepository AdminRepository
		auditService    audit.AuditService
	}
)

func NewAdminService(adminRepository AdminRepository, auditService audit.AuditService) AdminService {
	return &adminService{
		adminRepository: adminRepository,
		auditService:    auditService,
	}
}

func (s *adminService) BulkUserOperation(ctx context.Context, req domain.BulkUserOperationRequest, adminID, adminEmail, ip string) (*domain.BulkUserOperationResponse, error) {
	affected, err := s.apply(ctx, req)

	truncated := req.UserIDs
	if len(truncated) > auditedIDLimit {
		truncated = truncated[:auditedIDLimit]
	}
	entry := domain.AuditEntry{
		ActorID:    adminID,
		ActorEmail: adminEmail,
		Action:     "users.bulk." + req.Operation,
		Resource:   "user",
		IPAddress:  ip,
		Metadata: map[string]any{
			"operation":      req.Operation,
			"affected_count": affected,
			"user_ids":       truncated,
			"target_count":   len(req.UserIDs),
		},
	}
	if err != nil {
		entry.Status = domain.AuditStatusFailure
		entry.Err = err
	}
	s.auditService.Record(ctx, entry)

	if err != nil {
		return nil, err
	}
	return &domain.BulkUserOperationResponse{
		Operation:     req.Operation,
		AffectedCount: affected,
	}, nil
}

func (s *adminService) apply(ctx context.Context, req domain.BulkUserOperationRequest) (int64, error) {
	switch req.Operation {
	case domain.BulkOpUpdatePlan:
		if req.Data == nil || req.Data.Plan == "" {
			return 0, domain.ErrMissingBulkPlan
		}
		switch req.Data.Plan {
		case domain.PlanFree, domain.PlanStarter, domain.PlanPro, domain.PlanEnterprise, domain.PlanPayAsYouGo:
		default:
			return 0, domain.ErrInvalidBulkPlan
		}
		return s.adminRepository.BulkUpdatePlan(ctx, req.UserIDs, req.Data.Plan)

	case domain.BulkOpUpdateRole:
		if req.Data == nil || req.Data.Role == "" {
			return 0, domain.ErrMissingBulkRole
		}
		if !domain.ValidRole(req.Data.Role) {
			return 0, domain.ErrInvalidBulkRole
		}
		return s.adminRepository.BulkUpdateRole(ctx, req.UserIDs, req.Data.Role)

	case domain.BulkOpDelete:
		return s.adminRepository.BulkDelete(ctx, req.UserIDs)

	case domain.BulkOpVerifyEmail:
		return s.adminRepository.BulkVerifyEmail(ctx, req.UserIDs)

	case domain.BulkOpResetUsage:
		return s.adminRepository.BulkResetUsage(ctx, req.UserIDs)

	default:
		return 0, domain.ErrUnknownBulkOperation
	}
}
