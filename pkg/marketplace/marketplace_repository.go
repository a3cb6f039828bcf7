package marketplace

import (
	"EchoForge-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	MarketplaceRepository interface {
		CreateListing(ctx context.Context, listing *entities.MarketplaceListing) error
		GetListingByID(ctx context.Context, id string) (*entities.MarketplaceListing, error)
		GetActiveListings(ctx context.Context, page, limit int) ([]*entities.MarketplaceListing, int64, error)

		// CreateOrderWithLicense persists the order and its license key in
		// one transaction.
		CreateOrderWithLicense(ctx context.Context, order *entities.MarketplaceOrder, key *entities.LicenseKey) error
		GetBuyerOrders(ctx context.Context, buyerID string, page, limit int) ([]*entities.MarketplaceOrder, int64, error)
		GetBuyerLicenseKeys(ctx context.Context, buyerID string) ([]*entities.LicenseKey, error)
		GetLicenseKeyByOrder(ctx context.Context, orderID string) (*entities.LicenseKey, error)
	}

	marketplaceRepository struct {
		db *gorm.DB
	}
)

func NewMarketplaceRepository(db *gorm.DB) MarketplaceRepository {
	return &marketplaceRepository{
		db: db,
	}
}

func (r *marketplaceRepository) CreateListing(ctx context.Context, listing *entities.MarketplaceListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *marketplaceRepository) GetListingByID(ctx context.Context, id string) (*entities.MarketplaceListing, error) {
	var listing entities.MarketplaceListing
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *marketplaceRepository) GetActiveListings(ctx context.Context, page, limit int) ([]*entities.MarketplaceListing, int64, error) {
	var listings []*entities.MarketplaceListing
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("is_active = ?", true)

	if err := query.Model(&entities.MarketplaceListing{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}

	return listings, count, nil
}

func (r *marketplaceRepository) CreateOrderWithLicense(ctx context.Context, order *entities.MarketplaceOrder, key *entities.LicenseKey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Create(key).Error
	})
}

func (r *marketplaceRepository) GetBuyerOrders(ctx context.Context, buyerID string, page, limit int) ([]*entities.MarketplaceOrder, int64, error) {
	var orders []*entities.MarketplaceOrder
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.MarketplaceOrder{}).
		Where("buyer_id = ?", buyerID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (r *marketplaceRepository) GetBuyerLicenseKeys(ctx context.Context, buyerID string) ([]*entities.LicenseKey, error) {
	var keys []*entities.LicenseKey
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *marketplaceRepository) GetLicenseKeyByOrder(ctx context.Context, orderID string) (*entities.LicenseKey, error) {
	var key entities.LicenseKey
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&key).Error; err != nil {
		return nil, err
	}
	return &key, nil
}
