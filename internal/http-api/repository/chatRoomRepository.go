package repository

import (
	"context"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

type ChatRoomRepository interface {
	Create(ctx context.Context, room *models.ChatRoom) error
	GetByID(ctx context.Context, roomID string) (*models.ChatRoom, error)
	GetAll(ctx context.Context) ([]models.ChatRoom, error)
}

type chatRoomRepository struct {
	db *gorm.DB
}

func NewChatRoomRepository(db *gorm.DB) ChatRoomRepository {
	return &chatRoomRepository{db: db}
}

func (r *chatRoomRepository) Create(ctx context.Context, room *models.ChatRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *chatRoomRepository) GetByID(ctx context.Context, roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := r.db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *chatRoomRepository) GetAll(ctx context.Context) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rooms).Error
	return rooms, err
}
