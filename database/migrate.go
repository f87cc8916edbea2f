package database

import (
	"fmt"

	"notehub_backend/internal/config"
	"notehub_backend/internal/logger"
	"notehub_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres pool. TranslateError turns driver unique
// violations into gorm.ErrDuplicatedKey, which the repositories match on.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// ConnectFromConfig opens the pool using the loaded application config.
func ConnectFromConfig() (*gorm.DB, error) {
	cfg := config.GetConfig()
	return Connect(cfg.Database.DSN)
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Category{},
		&models.Tag{},
		&models.Note{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}
