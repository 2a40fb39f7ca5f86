package repository

import (
	"context"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

type AchievementRepository interface {
	GetCatalog(ctx context.Context) ([]models.Achievement, error)
	GetUnlocked(ctx context.Context, userID string) ([]models.UserAchievement, error)
	Unlock(ctx context.Context, unlock *models.UserAchievement) error
	IsUnlocked(ctx context.Context, userID string, achievementID int64) (bool, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) GetCatalog(ctx context.Context) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := r.db.WithContext(ctx).Order("threshold ASC").Find(&achievements).Error
	return achievements, err
}

func (r *achievementRepository) GetUnlocked(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	var unlocked []models.UserAchievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Achievement").
		Order("unlocked_at DESC").
		Find(&unlocked).Error
	return unlocked, err
}

func (r *achievementRepository) Unlock(ctx context.Context, unlock *models.UserAchievement) error {
	return r.db.WithContext(ctx).Create(unlock).Error
}

func (r *achievementRepository) IsUnlocked(ctx context.Context, userID string, achievementID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
