package database

import (
	"fmt"
	"log/slog" // use slog for structured logging

	"mindhaven/internal/config"
	"mindhaven/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		// Map driver errors onto gorm sentinels; the services match on
		// gorm.ErrDuplicatedKey to recover insert races.
		TranslateError: true,
	}
	if cfg.IsDevelopment() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedAchievements(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to seed achievements: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Post{},
		&models.Video{},
		&models.Material{},
		&models.Playlist{},
		&models.PlaylistItem{},
		&models.Question{},
		&models.Answer{},
		&models.PersonalStory{},
		&models.Comment{},
		&models.Reply{},
		&models.Reaction{},
		&models.Notification{},
		&models.ChatRoom{},
		&models.ChatMessage{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Prescription{},
	)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("Database migrations applied successfully")
	return nil
}
