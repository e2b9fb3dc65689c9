package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// Connect opens the PostgreSQL connection. The returned handle is created
// once at startup and passed into every service constructor.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs schema migration for the canonical schema. One English
// snake_case table per entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Tenant{},
		&models.TenantStats{},
		&models.Ticket{},
		&models.AccessCode{},
		&models.Terminal{},
		&models.Winner{},
	)
}
