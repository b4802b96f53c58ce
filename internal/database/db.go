package database

import (
	"fmt"
	"log/slog"

	"github.com/justsurfingit/talent-matrix/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres profile store and migrates the schema.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("database: connecting: %w", err)
	}
	slog.Info("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables for every persisted model.
func Migrate(db *gorm.DB) error {
	slog.Info("Running migrations")
	err := db.AutoMigrate(
		&models.Student{},
		&models.Skill{},
		&models.SemesterGrade{},
		&models.Project{},
		&models.AppliedJob{},
	)
	if err != nil {
		return fmt.Errorf("database: migrating: %w", err)
	}
	return nil
}
