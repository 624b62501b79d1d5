package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fincare-backend/internal/config"
	"fincare-backend/internal/logger"
	"fincare-backend/internal/models"
)

// Connect opens a connection to PostgreSQL. The handle is returned to the
// caller instead of stored in a package global so services can be wired
// with fakes in tests.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	log := logger.WithComponent("database")

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("connected to postgres")
	return db, nil
}

// Migrate applies the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Transaction{},
		&models.Budget{},
		&models.CreditCard{},
		&models.CreditCardTransaction{},
		&models.CreditCardInvoice{},
		&models.Patient{},
		&models.Session{},
		&models.PatientPayment{},
	)
}
