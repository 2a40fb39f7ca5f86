package repository

import (
	"context"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByRecipient(ctx context.Context, recipientID string, page, pageSize int) ([]models.Notification, int64, error)
	CountUnseen(ctx context.Context, recipientID string) (int64, error)
	// HasUnseen reports whether an unseen notification already exists for the
	// exact (recipient, actor, target, kind) tuple - the dedup probe for
	// liked-family kinds.
	HasUnseen(ctx context.Context, recipientID, actorID, contentID string, contentType models.ContentType, kind models.NotificationKind) (bool, error)
	MarkSeen(ctx context.Context, recipientID, notificationID string) (int64, error)
	MarkAllSeen(ctx context.Context, recipientID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) GetByRecipient(ctx context.Context, recipientID string, page, pageSize int) ([]models.Notification, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Preload("Actor").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnseen(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND seen = false", recipientID).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) HasUnseen(ctx context.Context, recipientID, actorID, contentID string, contentType models.ContentType, kind models.NotificationKind) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND actor_id = ? AND content_id = ? AND content_type = ? AND kind = ? AND seen = false",
			recipientID, actorID, contentID, contentType, kind).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkSeen flips the seen flag; scoping by recipient prevents marking someone
// else's notification. Returns the number of rows affected.
func (r *notificationRepository) MarkSeen(ctx context.Context, recipientID, notificationID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("seen", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllSeen(ctx context.Context, recipientID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Update("seen", true).Error
}
