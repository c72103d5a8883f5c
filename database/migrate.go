package database

import (
	"sova/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres pool. TranslateError makes unique-index
// violations surface as gorm.ErrDuplicatedKey.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Donation{}, &models.PaymentCallback{}); err != nil {
		return err
	}

	// ListRecent сортирует по created_at, от новых к старым
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_donations_created_at ON donations(created_at)`).Error; err != nil {
		return err
	}

	return nil
}
