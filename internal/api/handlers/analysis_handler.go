package handlers

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/api/presenters"
	"EchoForge-Backend/pkg/analysis"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AnalysisHandler interface {
		CreateAnalysis(c *fiber.Ctx) error
		GetAnalyses(c *fiber.Ctx) error
		GetAnalysis(c *fiber.Ctx) error
		CompleteAnalysis(c *fiber.Ctx) error
	}

	analysisHandler struct {
		analysisService analysis.AnalysisService
		validator       *validator.Validate
	}
)

func NewAnalysisHandler(analysisService analysis.AnalysisService, validator *validator.Validate) AnalysisHandler {
	return &analysisHandler{
		analysisService: analysisService,
		validator:       validator,
	}
}

func (h *analysisHandler) CreateAnalysis(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	userPlan := c.Locals("plan").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateAnalysis, domain.ErrBodyRequest)
	}

	req := domain.CreateAnalysisRequest{File: file}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateAnalysis, err)
	}

	res, err := h.analysisService.CreateAnalysis(c.Context(), req, userID, userPlan)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDailyLimitReached):
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, domain.MessageFailedCreateAnalysis, err)
		case errors.Is(err, domain.ErrFileTooLarge):
			return presenters.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, domain.MessageFailedCreateAnalysis, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateAnalysis, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateAnalysis)
}

func (h *analysisHandler) GetAnalyses(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	analyses, total, err := h.analysisService.GetUserAnalyses(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetAnalyses, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"analyses": analyses,
		"total":    total,
		"page":     page,
		"limit":    limit,
	}, fiber.StatusOK, domain.MessageSuccessGetAnalyses)
}

func (h *analysisHandler) GetAnalysis(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	analysisID := c.Params("id")

	res, err := h.analysisService.GetAnalysisByID(c.Context(), analysisID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAnalysisNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetAnalysis, err)
		case errors.Is(err, domain.ErrUnauthorizedAccess):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetAnalysis, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetAnalysis, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetAnalysis)
}

// CompleteAnalysis receives the detection callback. The route is behind
// the admin group; the detection service authenticates with a service
// account token.
func (h *analysisHandler) CompleteAnalysis(c *fiber.Ctx) error {
	analysisID := c.Params("id")

	var req domain.CompleteAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompleteAnalysis, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompleteAnalysis, err)
	}

	if err := h.analysisService.CompleteAnalysis(c.Context(), analysisID, req); err != nil {
		switch {
		case errors.Is(err, domain.ErrAnalysisNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCompleteAnalysis, err)
		case errors.Is(err, domain.ErrAnalysisCompleted):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCompleteAnalysis, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCompleteAnalysis, err)
		}
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCompleteAnalysis)
}
