package repository

import (
	"context"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID, userID string) (int64, error)
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetAll(ctx context.Context, category string, page, pageSize int) ([]models.Post, int64, error)
	GetByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Post, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post only if the user owns it; returns rows affected.
func (r *postRepository) Delete(ctx context.Context, postID, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", postID, userID).
		Delete(&models.Post{})
	return result.RowsAffected, result.Error
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("id = ?", postID).
		Preload("User").
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetAll(ctx context.Context, category string, page, pageSize int) ([]models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{})
	if category != "" {
		base = base.Where("category = ?", category)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	offset := (page - 1) * pageSize
	var posts []models.Post
	if err := query.Limit(pageSize).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) GetByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
