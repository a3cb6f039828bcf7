package handlers

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/api/presenters"
	"EchoForge-Backend/pkg/featureflag"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FeatureFlagHandler interface {
		GetFlags(c *fiber.Ctx) error
		GetAllFlags(c *fiber.Ctx) error
		UpsertFlag(c *fiber.Ctx) error
	}

	featureFlagHandler struct {
		featureFlagService featureflag.FeatureFlagService
		validator          *validator.Validate
	}
)

func NewFeatureFlagHandler(featureFlagService featureflag.FeatureFlagService, validator *validator.Validate) FeatureFlagHandler {
	return &featureFlagHandler{
		featureFlagService: featureFlagService,
		validator:          validator,
	}
}

// GetFlags returns the enabled flags visible to the caller's plan.
func (h *featureFlagHandler) GetFlags(c *fiber.Ctx) error {
	userPlan := c.Locals("plan").(string)

	flags, err := h.featureFlagService.GetFlagsForPlan(c.Context(), userPlan)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFlags, err)
	}

	return presenters.SuccessResponse(c, flags, fiber.StatusOK, domain.MessageSuccessGetFlags)
}

func (h *featureFlagHandler) GetAllFlags(c *fiber.Ctx) error {
	flags, err := h.featureFlagService.GetAllFlags(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFlags, err)
	}

	return presenters.SuccessResponse(c, flags, fiber.StatusOK, domain.MessageSuccessGetFlags)
}

func (h *featureFlagHandler) UpsertFlag(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertFlag, domain.ErrFlagNotFound)
	}

	var req domain.UpsertFeatureFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertFlag, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertFlag, err)
	}

	res, err := h.featureFlagService.UpsertFlag(c.Context(), key, req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpsertFlag, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpsertFlag)
}
