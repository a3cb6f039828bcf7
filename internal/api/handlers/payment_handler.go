package handlers

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/api/presenters"
	"EchoForge-Backend/pkg/payment"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PaymentHandler interface {
		CreatePayment(c *fiber.Ctx) error
		CreateTokenPurchase(c *fiber.Ctx) error
	}

	paymentHandler struct {
		paymentService payment.PaymentService
		validator      *validator.Validate
	}
)

func NewPaymentHandler(paymentService payment.PaymentService, validator *validator.Validate) PaymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *paymentHandler) CreatePayment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req domain.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayment, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayment, err)
	}

	res, err := h.paymentService.CreatePayment(c.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPaymentPlan),
			errors.Is(err, domain.ErrInvalidNetwork),
			errors.Is(err, domain.ErrWalletNotConfigured):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayment, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreatePayment, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePayment)
}

func (h *paymentHandler) CreateTokenPurchase(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req domain.TokenPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayment, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayment, err)
	}

	res, err := h.paymentService.CreateTokenPurchase(c.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTokenPackage),
			errors.Is(err, domain.ErrInvalidNetwork),
			errors.Is(err, domain.ErrWalletNotConfigured):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayment, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreatePayment, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePayment)
}
