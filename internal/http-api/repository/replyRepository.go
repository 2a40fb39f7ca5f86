package repository

import (
	"context"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	Update(ctx context.Context, reply *models.Reply) error
	GetByID(ctx context.Context, replyID string) (*models.Reply, error)
	GetByThread(ctx context.Context, commentID string) ([]models.Reply, error)
}

type replyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *replyRepository) Update(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Save(reply).Error
}

func (r *replyRepository) GetByID(ctx context.Context, replyID string) (*models.Reply, error) {
	var reply models.Reply
	err := r.db.WithContext(ctx).
		Where("id = ?", replyID).
		Preload("User").
		First(&reply).Error
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetByThread retrieves every reply in a comment's thread in one flat query,
// oldest first. CommentID always points at the thread root regardless of
// nesting depth, which is what makes the single query possible; the service
// layer rebuilds the tree from the ParentID back-pointers.
func (r *replyRepository) GetByThread(ctx context.Context, commentID string) ([]models.Reply, error) {
	var replies []models.Reply
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Preload("User").
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}
