package repository

import (
	"context"
	"errors"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

// CommentSort names a supported thread ordering.
type CommentSort string

const (
	SortNewest    CommentSort = "newest"
	SortMostLiked CommentSort = "most_liked"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	GetThread(ctx context.Context, contentID string, contentType models.ContentType, page, pageSize int, sort CommentSort) ([]models.Comment, int64, error)
	ReplyCounts(ctx context.Context, commentIDs []string) (map[string]int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetThread retrieves one page of a content item's comments. Soft-deleted
// rows are included so thread positions stay stable; the service layer
// replaces their content with the tombstone.
func (r *commentRepository) GetThread(ctx context.Context, contentID string, contentType models.ContentType, page, pageSize int, sort CommentSort) ([]models.Comment, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("content_id = ? AND content_type = ?", contentID, contentType)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Where("content_id = ? AND content_type = ?", contentID, contentType).
		Preload("User")

	switch sort {
	case SortMostLiked:
		// Live like count from the reactions table; created_at breaks ties.
		query = query.
			Select("comments.*, (SELECT COUNT(*) FROM reactions WHERE reactions.content_id = comments.id AND reactions.content_type = 'comment') AS like_count").
			Order("like_count DESC").
			Order("comments.created_at DESC")
	case SortNewest:
		query = query.Order("created_at DESC")
	default:
		return nil, 0, errors.New("unsupported sort order")
	}

	offset := (page - 1) * pageSize
	var comments []models.Comment
	err := query.Limit(pageSize).Offset(offset).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ReplyCounts returns the live reply count per comment id, tombstoned replies
// included so totals match thread positions.
func (r *commentRepository) ReplyCounts(ctx context.Context, commentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		CommentID string
		Count     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Select("comment_id, COUNT(*) as count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.CommentID] = r.Count
	}
	return counts, nil
}

func (r *commentRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("user_id = ? AND deleted = false", userID).
		Count(&count).Error
	return count, err
}
