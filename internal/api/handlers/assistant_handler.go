package handlers

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/api/presenters"
	"EchoForge-Backend/pkg/assistant"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AssistantHandler interface {
		Chat(c *fiber.Ctx) error
		SaveProvider(c *fiber.Ctx) error
		GetProviders(c *fiber.Ctx) error
	}

	assistantHandler struct {
		assistantService assistant.AssistantService
		validator        *validator.Validate
	}
)

func NewAssistantHandler(assistantService assistant.AssistantService, validator *validator.Validate) AssistantHandler {
	return &assistantHandler{
		assistantService: assistantService,
		validator:        validator,
	}
}

func (h *assistantHandler) Chat(c *fiber.Ctx) error {
	var req domain.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedChat, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedChat, err)
	}

	res, err := h.assistantService.Chat(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoProviderConfigured):
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedNoProviderConf, err)
		case errors.Is(err, domain.ErrProviderUnavailable):
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedChat, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedChat, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessChat)
}

func (h *assistantHandler) SaveProvider(c *fiber.Ctx) error {
	var req domain.SaveProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveProvider, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveProvider, err)
	}

	res, err := h.assistantService.SaveProvider(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSaveProvider, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveProvider)
}

func (h *assistantHandler) GetProviders(c *fiber.Ctx) error {
	providers, err := h.assistantService.GetProviders(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetProviders, err)
	}

	return presenters.SuccessResponse(c, providers, fiber.StatusOK, domain.MessageSuccessGetProviders)
}
