package service

import (
	"context"
	"errors"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrVideoNotFound    = errors.New("video not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrNotPlaylistOwner = errors.New("only the curator can modify this playlist")
	ErrNotCurator       = errors.New("only therapists and admins can manage the library")
)

// VideoService manages the curated library: videos, their supporting
// materials, and playlists. Uploads and curation are restricted to
// therapist/admin roles; browsing is open to everyone.
type VideoService interface {
	AddVideo(ctx context.Context, userID, role string, req *dto.CreateVideoDTO) (*dto.VideoResponse, error)
	GetVideo(ctx context.Context, videoID string) (*dto.VideoResponse, error)
	ListVideos(ctx context.Context, page, pageSize int) (*dto.PaginatedVideoResponse, error)
	RemoveVideo(ctx context.Context, role, videoID string) error
	AddMaterial(ctx context.Context, role, videoID string, req *dto.CreateMaterialDTO) (*dto.MaterialResponse, error)
	ListMaterials(ctx context.Context, videoID string) ([]dto.MaterialResponse, error)

	CreatePlaylist(ctx context.Context, userID, role string, req *dto.CreatePlaylistDTO) (*dto.PlaylistResponse, error)
	GetPlaylist(ctx context.Context, playlistID string) (*dto.PlaylistResponse, error)
	ListPlaylists(ctx context.Context, page, pageSize int) ([]dto.PlaylistResponse, int64, error)
	AddToPlaylist(ctx context.Context, userID, playlistID string, req *dto.AddPlaylistItemDTO) error
	RemoveFromPlaylist(ctx context.Context, userID, playlistID, videoID string) error
	DeletePlaylist(ctx context.Context, userID, playlistID string) error
}

type videoService struct {
	videoRepo repository.VideoRepository
}

func NewVideoService(videoRepo repository.VideoRepository) VideoService {
	return &videoService{videoRepo: videoRepo}
}

func isCurator(role string) bool {
	return role == models.RoleTherapist || role == models.RoleAdmin
}

func (s *videoService) AddVideo(ctx context.Context, userID, role string, req *dto.CreateVideoDTO) (*dto.VideoResponse, error) {
	if !isCurator(role) {
		return nil, ErrNotCurator
	}

	video := &models.Video{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return dto.FromModelToVideoResponse(video), nil
}

func (s *videoService) GetVideo(ctx context.Context, videoID string) (*dto.VideoResponse, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return dto.FromModelToVideoResponse(video), nil
}

func (s *videoService) ListVideos(ctx context.Context, page, pageSize int) (*dto.PaginatedVideoResponse, error) {
	videos, total, err := s.videoRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.VideoResponse, 0, len(videos))
	for i := range videos {
		responses = append(responses, *dto.FromModelToVideoResponse(&videos[i]))
	}
	return dto.NewPaginatedVideoResponse(responses, int(total), page, pageSize), nil
}

func (s *videoService) RemoveVideo(ctx context.Context, role, videoID string) error {
	if !isCurator(role) {
		return ErrNotCurator
	}

	affected, err := s.videoRepo.Delete(ctx, videoID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (s *videoService) AddMaterial(ctx context.Context, role, videoID string, req *dto.CreateMaterialDTO) (*dto.MaterialResponse, error) {
	if !isCurator(role) {
		return nil, ErrNotCurator
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	material := &models.Material{
		VideoID: videoID,
		Title:   req.Title,
		URL:     req.URL,
	}
	if err := s.videoRepo.AddMaterial(ctx, material); err != nil {
		return nil, err
	}
	return &dto.MaterialResponse{ID: material.ID, Title: material.Title, URL: material.URL}, nil
}

func (s *videoService) ListMaterials(ctx context.Context, videoID string) ([]dto.MaterialResponse, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	materials, err := s.videoRepo.GetMaterials(ctx, videoID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		responses = append(responses, dto.MaterialResponse{ID: m.ID, Title: m.Title, URL: m.URL})
	}
	return responses, nil
}

func (s *videoService) CreatePlaylist(ctx context.Context, userID, role string, req *dto.CreatePlaylistDTO) (*dto.PlaylistResponse, error) {
	if !isCurator(role) {
		return nil, ErrNotCurator
	}

	playlist := &models.Playlist{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.videoRepo.CreatePlaylist(ctx, playlist); err != nil {
		return nil, err
	}
	return dto.FromModelToPlaylistResponse(playlist), nil
}

func (s *videoService) GetPlaylist(ctx context.Context, playlistID string) (*dto.PlaylistResponse, error) {
	playlist, err := s.videoRepo.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return dto.FromModelToPlaylistResponse(playlist), nil
}

func (s *videoService) ListPlaylists(ctx context.Context, page, pageSize int) ([]dto.PlaylistResponse, int64, error) {
	playlists, total, err := s.videoRepo.GetPlaylists(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		responses = append(responses, *dto.FromModelToPlaylistResponse(&playlists[i]))
	}
	return responses, total, nil
}

func (s *videoService) AddToPlaylist(ctx context.Context, userID, playlistID string, req *dto.AddPlaylistItemDTO) error {
	playlist, err := s.videoRepo.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaylistNotFound
		}
		return err
	}
	if playlist.UserID != userID {
		return ErrNotPlaylistOwner
	}

	if _, err := s.videoRepo.GetByID(ctx, req.VideoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	position := req.Position
	if position == 0 {
		// Append by default
		position = len(playlist.Items) + 1
	}
	return s.videoRepo.AddPlaylistItem(ctx, &models.PlaylistItem{
		PlaylistID: playlistID,
		VideoID:    req.VideoID,
		Position:   position,
	})
}

func (s *videoService) RemoveFromPlaylist(ctx context.Context, userID, playlistID, videoID string) error {
	playlist, err := s.videoRepo.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaylistNotFound
		}
		return err
	}
	if playlist.UserID != userID {
		return ErrNotPlaylistOwner
	}

	affected, err := s.videoRepo.RemovePlaylistItem(ctx, playlistID, videoID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (s *videoService) DeletePlaylist(ctx context.Context, userID, playlistID string) error {
	affected, err := s.videoRepo.DeletePlaylist(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.videoRepo.GetPlaylistByID(ctx, playlistID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaylistNotFound
			}
			return err
		}
		return ErrNotPlaylistOwner
	}
	return nil
}
