package handlers

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/api/presenters"
	"EchoForge-Backend/pkg/admin"
	"EchoForge-Backend/pkg/audit"
	"EchoForge-Backend/pkg/payment"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		GetConfirmations(c *fiber.Ctx) error
		DecidePayment(c *fiber.Ctx) error
		BulkUserOperation(c *fiber.Ctx) error
		GetAuditLogs(c *fiber.Ctx) error
	}

	adminHandler struct {
		paymentService payment.PaymentService
		adminService   admin.AdminService
		auditService   audit.AuditService
		validator      *validator.Validate
	}
)

func NewAdminHandler(
	paymentService payment.PaymentService,
	adminService admin.AdminService,
	auditService audit.AuditService,
	validator *validator.Validate,
) AdminHandler {
	return &adminHandler{
		paymentService: paymentService,
		adminService:   adminService,
		auditService:   auditService,
		validator:      validator,
	}
}

func (h *adminHandler) GetConfirmations(c *fiber.Ctx) error {
	res, err := h.paymentService.GetConfirmations(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetConfirmations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetConfirmations)
}

func (h *adminHandler) DecidePayment(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)
	adminEmail := c.Locals("email").(string)

	var req domain.DecidePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDecidePayment, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDecidePayment, err)
	}

	message, err := h.paymentService.DecidePayment(c.Context(), req, adminID, adminEmail, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPaymentNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedPaymentNotFound, err)
		case errors.Is(err, domain.ErrPaymentAlreadyDecided):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedPaymentTerminal, err)
		case errors.Is(err, domain.ErrPaymentExpired):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPaymentExpired, err)
		case errors.Is(err, domain.ErrInvalidPaymentAction),
			errors.Is(err, domain.ErrInvalidTokenAmount):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDecidePayment, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDecidePayment, err)
		}
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, message)
}

func (h *adminHandler) BulkUserOperation(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(string)
	adminEmail := c.Locals("email").(string)

	var req domain.BulkUserOperationRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBulkOperation, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBulkOperation, err)
	}

	res, err := h.adminService.BulkUserOperation(c.Context(), req, adminID, adminEmail, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownBulkOperation),
			errors.Is(err, domain.ErrMissingBulkPlan),
			errors.Is(err, domain.ErrMissingBulkRole),
			errors.Is(err, domain.ErrInvalidBulkPlan),
			errors.Is(err, domain.ErrInvalidBulkRole):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBulkOperation, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedBulkOperation, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessBulkOperation)
}

func (h *adminHandler) GetAuditLogs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := h.auditService.GetAuditLogs(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetAuditLogs, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	}, fiber.StatusOK, domain.MessageSuccessGetAuditLogs)
}
