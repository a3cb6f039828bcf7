package marketplace

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	MarketplaceService interface {
		CreateListing(ctx context.Context, req domain.CreateListingRequest, vendorID string) (*domain.ListingResponse, error)
		GetListings(ctx context.Context, page, limit int) ([]*domain.ListingResponse, int64, error)
		CreateOrder(ctx context.Context, req domain.CreateOrderRequest, buyerID string) (*domain.OrderResponse, error)
		GetOrders(ctx context.Context, buyerID string, page, limit int) ([]*domain.OrderResponse, int64, error)
		GetLicenseKeys(ctx context.Context, buyerID string) ([]*domain.LicenseKeyResponse, error)
	}

	marketplaceService struct {
		marketplaceRepository MarketplaceRepository
	}
)

func NewMarketplaceService(marketplaceRepository MarketplaceRepository) MarketplaceService {
	return &marketplaceService{
		marketplaceRepository: marketplaceRepository,
	}
}

func (s *marketplaceService) CreateListing(ctx context.Context, req domain.CreateListingRequest, vendorID string) (*domain.ListingResponse, error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := time.Now()
	listing := &entities.MarketplaceListing{
		ID:          uuid.New(),
		VendorID:    vendorUUID,
		Title:       req.Title,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		Currency:    strings.ToUpper(req.Currency),
		Category:    req.Category,
		IsActive:    true,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.marketplaceRepository.CreateListing(ctx, listing); err != nil {
		return nil, err
	}

	return toListingResponse(listing), nil
}

func (s *marketplaceService) GetListings(ctx context.Context, page, limit int) ([]*domain.ListingResponse, int64, error) {
	listings, count, err := s.marketplaceRepository.GetActiveListings(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		result = append(result, toListingResponse(listing))
	}
	return result, count, nil
}

func (s *marketplaceService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest, buyerID string) (*domain.OrderResponse, error) {
	listing, err := s.marketplaceRepository.GetListingByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}

	if !listing.IsActive {
		return nil, domain.ErrListingInactive
	}
	if listing.VendorID.String() == buyerID {
		return nil, domain.ErrOwnListingOrder
	}

	buyerUUID, err := uuid.Parse(buyerID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := time.Now()
	order := &entities.MarketplaceOrder{
		ID:        uuid.New(),
		ListingID: listing.ID,
		BuyerID:   buyerUUID,
		Amount:    listing.Price,
		Currency:  listing.Currency,
		Status:    domain.OrderStatusCompleted,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	key := &entities.LicenseKey{
		ID:        uuid.New(),
		ListingID: listing.ID,
		BuyerID:   buyerUUID,
		OrderID:   order.ID,
		Key:       generateLicenseKey(),
		Status:    domain.LicenseStatusActive,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.marketplaceRepository.CreateOrderWithLicense(ctx, order, key); err != nil {
		return nil, err
	}

	return &domain.OrderResponse{
		ID:         order.ID.String(),
		ListingID:  order.ListingID.String(),
		Amount:     order.Amount,
		Currency:   order.Currency,
		Status:     order.Status,
		LicenseKey: key.Key,
		CreatedAt:  order.CreatedAt,
	}, nil
}

func (s *marketplaceService) GetOrders(ctx context.Context, buyerID string, page, limit int) ([]*domain.OrderResponse, int64, error) {
	orders, count, err := s.marketplaceRepository.GetBuyerOrders(ctx, buyerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp := &domain.OrderResponse{
			ID:        order.ID.String(),
			ListingID: order.ListingID.String(),
			Amount:    order.Amount,
			Currency:  order.Currency,
			Status:    order.Status,
			CreatedAt: order.CreatedAt,
		}
		if key, err := s.marketplaceRepository.GetLicenseKeyByOrder(ctx, order.ID.String()); err == nil {
			resp.LicenseKey = key.Key
		}
		result = append(result, resp)
	}
	return result, count, nil
}

func (s *marketplaceService) GetLicenseKeys(ctx context.Context, buyerID string) ([]*domain.LicenseKeyResponse, error) {
	keys, err := s.marketplaceRepository.GetBuyerLicenseKeys(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.LicenseKeyResponse, 0, len(keys))
	for _, key := range keys {
		result = append(result, &domain.LicenseKeyResponse{
			ID:        key.ID.String(),
			ListingID: key.ListingID.String(),
			OrderID:   key.OrderID.String(),
			Key:       key.Key,
			Status:    key.Status,
			CreatedAt: key.CreatedAt,
		})
	}
	return result, nil
}

func generateLicenseKey() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("LIC-%s-%s-%s-%s", raw[0:4], raw[4:8], raw[8:12], raw[12:16])
}

func toListingResponse(listing *entities.MarketplaceListing) *domain.ListingResponse {
	return &domain.ListingResponse{
		ID:          listing.ID.String(),
		VendorID:    listing.VendorID.String(),
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		Currency:    listing.Currency,
		Category:    listing.Category,
		IsActive:    listing.IsActive,
		CreatedAt:   listing.CreatedAt,
	}
}
