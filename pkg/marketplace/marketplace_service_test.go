package marketplace

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (MarketplaceService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.MarketplaceListing{},
		&entities.MarketplaceOrder{},
		&entities.LicenseKey{},
	))
	return NewMarketplaceService(NewMarketplaceRepository(db)), db
}

func createListing(t *testing.T, service MarketplaceService, vendorID string) *domain.ListingResponse {
	t.Helper()
	listing, err := service.CreateListing(context.Background(), domain.CreateListingRequest{
		Title:    "Anomaly detection rulepack",
		Price:    149.99,
		Currency: "usd",
		Category: "rules",
	}, vendorID)
	require.NoError(t, err)
	return listing
}

func TestCreateListing(t *testing.T) {
	service, _ := setupService(t)
	vendorID := uuid.NewString()

	listing := createListing(t, service, vendorID)
	assert.Equal(t, vendorID, listing.VendorID)
	assert.Equal(t, "USD", listing.Currency)
	assert.True(t, listing.IsActive)
	assert.Equal(t, "149.99", listing.Price.StringFixed(2))

	listings, total, err := service.GetListings(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, listings, 1)
	assert.Equal(t, listing.ID, listings[0].ID)
}

func TestCreateOrder(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()
	vendorID := uuid.NewString()
	buyerID := uuid.NewString()
	listing := createListing(t, service, vendorID)

	t.Run("order issues a license key atomically", func(t *testing.T) {
		order, err := service.CreateOrder(ctx, domain.CreateOrderRequest{ListingID: listing.ID}, buyerID)
		require.NoError(t, err)

		assert.Equal(t, domain.OrderStatusCompleted, order.Status)
		assert.Equal(t, "149.99", order.Amount.StringFixed(2))
		assert.Regexp(t, `^LIC-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}$`, order.LicenseKey)

		var key entities.LicenseKey
		require.NoError(t, db.Where("buyer_id = ?", buyerID).First(&key).Error)
		assert.Equal(t, domain.LicenseStatusActive, key.Status)
		assert.Equal(t, order.LicenseKey, key.Key)
	})

	t.Run("vendor cannot order their own listing", func(t *testing.T) {
		_, err := service.CreateOrder(ctx, domain.CreateOrderRequest{ListingID: listing.ID}, vendorID)
		assert.ErrorIs(t, err, domain.ErrOwnListingOrder)
	})

	t.Run("unknown listing", func(t *testing.T) {
		_, err := service.CreateOrder(ctx, domain.CreateOrderRequest{ListingID: uuid.NewString()}, buyerID)
		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})

	t.Run("inactive listing cannot be ordered", func(t *testing.T) {
		require.NoError(t, db.Model(&entities.MarketplaceListing{}).
			Where("id = ?", listing.ID).
			Update("is_active", false).Error)

		_, err := service.CreateOrder(ctx, domain.CreateOrderRequest{ListingID: listing.ID}, buyerID)
		assert.ErrorIs(t, err, domain.ErrListingInactive)
	})
}

func TestBuyerViews(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()
	vendorID := uuid.NewString()
	buyerID := uuid.NewString()
	listing := createListing(t, service, vendorID)

	order, err := service.CreateOrder(ctx, domain.CreateOrderRequest{ListingID: listing.ID}, buyerID)
	require.NoError(t, err)

	orders, total, err := service.GetOrders(ctx, buyerID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.Equal(t, order.LicenseKey, orders[0].LicenseKey)

	keys, err := service.GetLicenseKeys(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, order.LicenseKey, keys[0].Key)
	assert.Equal(t, order.ID, keys[0].OrderID)

	// Another buyer sees nothing.
	other, err := service.GetLicenseKeys(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, other)
}
