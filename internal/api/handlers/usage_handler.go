package handlers

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/api/presenters"
	"EchoForge-Backend/pkg/plan"

	"github.com/gofiber/fiber/v2"
)

type (
	UsageHandler interface {
		GetUsageLimits(c *fiber.Ctx) error
	}

	usageHandler struct {
		planService plan.PlanService
	}
)

func NewUsageHandler(planService plan.PlanService) UsageHandler {
	return &usageHandler{
		planService: planService,
	}
}

func (h *usageHandler) GetUsageLimits(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	userPlan := c.Locals("plan").(string)

	res, err := h.planService.GetUsageLimits(c.Context(), userID, userPlan)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetUsageLimits, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUsageLimits)
}
