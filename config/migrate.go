package config

import (
	"log"

	"gorm.io/gorm"

	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// Migrate creates or updates the schema for every table the store uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Deal{},
		&models.Campaign{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderEvent{},
		&models.LoginEvent{},
	); err != nil {
		return err
	}
	log.Println("✅ Database schema migrated")
	return nil
}
