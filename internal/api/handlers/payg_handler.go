package handlers

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/api/presenters"
	"EchoForge-Backend/pkg/payg"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	PaygHandler interface {
		GetBalance(c *fiber.Ctx) error
	}

	paygHandler struct {
		paygService payg.PaygService
	}
)

func NewPaygHandler(paygService payg.PaygService) PaygHandler {
	return &paygHandler{
		paygService: paygService,
	}
}

func (h *paygHandler) GetBalance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.paygService.GetBalance(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetBalance, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetBalance, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBalance)
}
