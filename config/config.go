package config

import (
	"fmt"
	"os"

	"backend/logger"
	"backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// LoadEnv reads .env when present; in deployed environments the variables
// come from the process environment instead.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, relying on process environment")
	}
}

// InitDB opens the postgres connection and migrates the schema. The handle is
// returned to the caller and threaded through the services explicitly; there
// is no package-level DB.
func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema. Split out so tests can run it against an
// in-memory database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.IntakeLog{},
		&models.ActivityLog{},
		&models.SavedFood{},
		&models.SessionData{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}
