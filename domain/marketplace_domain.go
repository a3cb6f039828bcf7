package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"

	LicenseStatusActive  = "ACTIVE"
	LicenseStatusRevoked = "REVOKED"
)

var (
	MessageSuccessCreateListing  = "listing created successfully"
	MessageSuccessGetListings    = "listings retrieved successfully"
	MessageSuccessCreateOrder    = "order placed successfully"
	MessageSuccessGetOrders      = "orders retrieved successfully"
	MessageSuccessGetLicenseKeys = "license keys retrieved successfully"
	MessageFailedCreateListing   = "failed to create listing"
	MessageFailedGetListings     = "failed to retrieve listings"
	MessageFailedCreateOrder     = "failed to place order"
	MessageFailedGetOrders       = "failed to retrieve orders"
	MessageFailedGetLicenseKeys  = "failed to retrieve license keys"

	ErrListingNotFound = errors.New("listing not found")
	ErrListingInactive = errors.New("listing is not active")
	ErrOwnListingOrder = errors.New("cannot order your own listing")
)

type (
	CreateListingRequest struct {
		Title       string  `json:"title" validate:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" validate:"required,gt=0"`
		Currency    string  `json:"currency" validate:"required,len=3"`
		Category    string  `json:"category"`
	}

	ListingResponse struct {
		ID          string          `json:"id"`
		VendorID    string          `json:"vendor_id"`
		Title       string          `json:"title"`
		Description string          `json:"description,omitempty"`
		Price       decimal.Decimal `json:"price"`
		Currency    string          `json:"currency"`
		Category    string          `json:"category,omitempty"`
		IsActive    bool            `json:"is_active"`
		CreatedAt   time.Time       `json:"created_at"`
	}

	CreateOrderRequest struct {
		ListingID string `json:"listing_id" validate:"required,uuid"`
	}

	OrderResponse struct {
		ID         string          `json:"id"`
		ListingID  string          `json:"listing_id"`
		Amount     decimal.Decimal `json:"amount"`
		Currency   string          `json:"currency"`
		Status     string          `json:"status"`
		LicenseKey string          `json:"license_key,omitempty"`
		CreatedAt  time.Time       `json:"created_at"`
	}

	LicenseKeyResponse struct {
		ID        string    `json:"id"`
		ListingID string    `json:"listing_id"`
		OrderID   string    `json:"order_id"`
		Key       string    `json:"key"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"`
	}
)
