package repository

import (
	"context"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, videoID string) (int64, error)
	GetByID(ctx context.Context, videoID string) (*models.Video, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.Video, int64, error)

	AddMaterial(ctx context.Context, material *models.Material) error
	GetMaterials(ctx context.Context, videoID string) ([]models.Material, error)

	CreatePlaylist(ctx context.Context, playlist *models.Playlist) error
	DeletePlaylist(ctx context.Context, playlistID, userID string) (int64, error)
	GetPlaylists(ctx context.Context, page, pageSize int) ([]models.Playlist, int64, error)
	GetPlaylistByID(ctx context.Context, playlistID string) (*models.Playlist, error)
	AddPlaylistItem(ctx context.Context, item *models.PlaylistItem) error
	RemovePlaylistItem(ctx context.Context, playlistID, videoID string) (int64, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

func (r *videoRepository) Delete(ctx context.Context, videoID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", videoID).Delete(&models.Video{})
	return result.RowsAffected, result.Error
}

func (r *videoRepository) GetByID(ctx context.Context, videoID string) (*models.Video, error) {
	var video models.Video
	err := r.db.WithContext(ctx).
		Where("id = ?", videoID).
		Preload("User").
		Preload("Materials").
		First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Video, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	var videos []models.Video
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) AddMaterial(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *videoRepository) GetMaterials(ctx context.Context, videoID string) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at ASC").
		Find(&materials).Error
	return materials, err
}

func (r *videoRepository) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *videoRepository) DeletePlaylist(ctx context.Context, playlistID, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", playlistID, userID).
		Delete(&models.Playlist{})
	return result.RowsAffected, result.Error
}

func (r *videoRepository) GetPlaylists(ctx context.Context, page, pageSize int) ([]models.Playlist, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Playlist{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	var playlists []models.Playlist
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_items.position ASC")
		}).
		Preload("Items.Video").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&playlists).Error
	if err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

func (r *videoRepository) GetPlaylistByID(ctx context.Context, playlistID string) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.db.WithContext(ctx).
		Where("id = ?", playlistID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_items.position ASC")
		}).
		Preload("Items.Video").
		First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *videoRepository) AddPlaylistItem(ctx context.Context, item *models.PlaylistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *videoRepository) RemovePlaylistItem(ctx context.Context, playlistID, videoID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistItem{})
	return result.RowsAffected, result.Error
}
