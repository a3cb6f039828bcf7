package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MarketplaceListing struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	VendorID    uuid.UUID       `gorm:"index" json:"vendor_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category,omitempty"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`

	Vendor *User `gorm:"foreignKey:VendorID"`
	Timestamp
}

type MarketplaceOrder struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ListingID uuid.UUID       `json:"listing_id"`
	BuyerID   uuid.UUID       `gorm:"index" json:"buyer_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"` // PENDING, COMPLETED, CANCELLED

	Listing *MarketplaceListing `gorm:"foreignKey:ListingID"`
	Buyer   *User               `gorm:"foreignKey:BuyerID"`
	Timestamp
}

type LicenseKey struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ListingID uuid.UUID `json:"listing_id"`
	BuyerID   uuid.UUID `gorm:"index" json:"buyer_id"`
	OrderID   uuid.UUID `gorm:"uniqueIndex" json:"order_id"`
	Key       string    `gorm:"uniqueIndex" json:"key"`
	Status    string    `json:"status"` // ACTIVE, REVOKED

	Listing *MarketplaceListing `gorm:"foreignKey:ListingID"`
	Buyer   *User               `gorm:"foreignKey:BuyerID"`
	Order   *MarketplaceOrder   `gorm:"foreignKey:OrderID"`
	Timestamp
}
