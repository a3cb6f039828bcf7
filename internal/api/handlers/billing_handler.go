package handlers

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/api/presenters"
	"EchoForge-Backend/pkg/billing"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BillingHandler interface {
		CreateCheckout(c *fiber.Ctx) error
		Webhook(c *fiber.Ctx) error
	}

	billingHandler struct {
		billingService billing.BillingService
		validator      *validator.Validate
	}
)

func NewBillingHandler(billingService billing.BillingService, validator *validator.Validate) BillingHandler {
	return &billingHandler{
		billingService: billingService,
		validator:      validator,
	}
}

func (h *billingHandler) CreateCheckout(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req domain.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
	}

	res, err := h.billingService.CreateCheckout(c.Context(), req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPaymentPlan) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCheckout, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedCheckout, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCheckout)
}

func (h *billingHandler) Webhook(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWebhook, domain.ErrBodyRequest)
	}

	if err := h.billingService.HandleWebhook(c.Context(), payload); err != nil {
		switch {
		case errors.Is(err, domain.ErrWebhookSignature):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedWebhook, err)
		case errors.Is(err, domain.ErrWebhookUserUnresolved), errors.Is(err, domain.ErrInvalidPaymentPlan):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWebhook, err)
		case errors.Is(err, domain.ErrUserNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedWebhook, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedWebhook, err)
		}
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
}
