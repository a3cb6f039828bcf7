package handlers

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/api/presenters"
	"EchoForge-Backend/pkg/marketplace"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MarketplaceHandler interface {
		CreateListing(c *fiber.Ctx) error
		GetListings(c *fiber.Ctx) error
		CreateOrder(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		GetLicenseKeys(c *fiber.Ctx) error
	}

	marketplaceHandler struct {
		marketplaceService marketplace.MarketplaceService
		validator          *validator.Validate
	}
)

func NewMarketplaceHandler(marketplaceService marketplace.MarketplaceService, validator *validator.Validate) MarketplaceHandler {
	return &marketplaceHandler{
		marketplaceService: marketplaceService,
		validator:          validator,
	}
}

func (h *marketplaceHandler) CreateListing(c *fiber.Ctx) error {
	vendorID := c.Locals("user_id").(string)

	var req domain.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateListing, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateListing, err)
	}

	res, err := h.marketplaceService.CreateListing(c.Context(), req, vendorID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateListing, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateListing)
}

func (h *marketplaceHandler) GetListings(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	listings, total, err := h.marketplaceService.GetListings(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetListings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"listings": listings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	}, fiber.StatusOK, domain.MessageSuccessGetListings)
}

func (h *marketplaceHandler) CreateOrder(c *fiber.Ctx) error {
	buyerID := c.Locals("user_id").(string)

	var req domain.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, domain.ErrBodyRequest)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	res, err := h.marketplaceService.CreateOrder(c.Context(), req, buyerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCreateOrder, err)
		case errors.Is(err, domain.ErrListingInactive),
			errors.Is(err, domain.ErrOwnListingOrder):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateOrder, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

func (h *marketplaceHandler) GetOrders(c *fiber.Ctx) error {
	buyerID := c.Locals("user_id").(string)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := h.marketplaceService.GetOrders(c.Context(), buyerID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	}, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *marketplaceHandler) GetLicenseKeys(c *fiber.Ctx) error {
	buyerID := c.Locals("user_id").(string)

	keys, err := h.marketplaceService.GetLicenseKeys(c.Context(), buyerID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetLicenseKeys, err)
	}

	return presenters.SuccessResponse(c, keys, fiber.StatusOK, domain.MessageSuccessGetLicenseKeys)
}
