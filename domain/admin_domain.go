package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	BulkOpUpdatePlan  = "updatePlan"
	BulkOpUpdateRole  = "updateRole"
	BulkOpDelete      = "delete"
	BulkOpVerifyEmail = "verifyEmail"
	BulkOpResetUsage  = "resetUsage"
)

var ValidBulkOperations = []string{
	BulkOpUpdatePlan,
	BulkOpUpdateRole,
	BulkOpDelete,
	BulkOpVerifyEmail,
	BulkOpResetUsage,
}

var (
	MessageSuccessBulkOperation = "bulk operation applied successfully"
	MessageFailedBulkOperation  = "failed to apply bulk operation"
	MessageSuccessGetAuditLogs  = "audit logs retrieved successfully"
	MessageFailedGetAuditLogs   = "failed to retrieve audit logs"

	ErrMissingBulkPlan = errors.New("operation updatePlan requires data.plan")
	ErrMissingBulkRole = errors.New("operation updateRole requires data.role")
	ErrInvalidBulkPlan = errors.New("invalid plan for bulk operation")
	ErrInvalidBulkRole = errors.New("invalid role for bulk operation")
)

// ErrUnknownBulkOperation lists the valid operations so the caller can
// self-correct.
var ErrUnknownBulkOperation = fmt.Errorf(
	"unknown operation, valid operations: %s",
	strings.Join(ValidBulkOperations, ", "),
)

type (
	BulkOperationData struct {
		Plan string `json:"plan,omitempty"`
		Role string `json:"role,omitempty"`
	}

	BulkUserOperationRequest struct {
		Operation string             `json:"operation" validate:"required"`
		UserIDs   []string           `json:"user_ids" validate:"required,min=1,dive,required"`
		Data      *BulkOperationData `json:"data,omitempty"`
	}

	BulkUserOperationResponse struct {
		Operation     string `json:"operation"`
		AffectedCount int64  `json:"affected_count"`
	}
)
