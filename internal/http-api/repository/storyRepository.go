package repository

import (
	"context"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

type StoryRepository interface {
	Create(ctx context.Context, story *models.PersonalStory) error
	Update(ctx context.Context, story *models.PersonalStory) error
	Delete(ctx context.Context, storyID, userID string) (int64, error)
	GetByID(ctx context.Context, storyID string) (*models.PersonalStory, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.PersonalStory, int64, error)
}

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.PersonalStory) error {
	return r.db.WithContext(ctx).Create(story).Error
}

func (r *storyRepository) Update(ctx context.Context, story *models.PersonalStory) error {
	return r.db.WithContext(ctx).Save(story).Error
}

func (r *storyRepository) Delete(ctx context.Context, storyID, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", storyID, userID).
		Delete(&models.PersonalStory{})
	return result.RowsAffected, result.Error
}

func (r *storyRepository) GetByID(ctx context.Context, storyID string) (*models.PersonalStory, error) {
	var story models.PersonalStory
	err := r.db.WithContext(ctx).
		Where("id = ?", storyID).
		Preload("User").
		First(&story).Error
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.PersonalStory, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PersonalStory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	var stories []models.PersonalStory
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&stories).Error
	if err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}
