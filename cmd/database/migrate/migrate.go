package migration

import (
	"EchoForge-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []any{
		&entities.User{},
		&entities.CryptoPayment{},
		&entities.UsageRecord{},
		&entities.Analysis{},
		&entities.FeatureFlag{},
		&entities.MarketplaceListing{},
		&entities.MarketplaceOrder{},
		&entities.LicenseKey{},
		&entities.AuditLog{},
		&entities.AIProvider{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating %T: %v", model, err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
