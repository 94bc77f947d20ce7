package database

import (
	"log"

	"inventory-backend/internal/config"
	"inventory-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	if err := AutoMigrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connection established. Migration complete.")
}

// AutoMigrate creates/updates the schema. Shared with the test setup, which
// runs against an in-memory SQLite database instead of Postgres.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Stock{},
		&models.Purchase{},
		&models.Sale{},
	)
}
