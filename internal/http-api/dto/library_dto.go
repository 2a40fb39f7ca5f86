package dto

import (
	"time"

	"mindhaven/internal/http-api/models"
)

// DTOs for the video library: videos, supporting materials, playlists.

// CreateVideoDTO for adding a video to the library (therapist/admin)
type CreateVideoDTO struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description" binding:"omitempty,max=5000"`
	URL          string `json:"url" binding:"required,url"`
	ThumbnailURL string `json:"thumbnail_url" binding:"omitempty,url"`
	Duration     int    `json:"duration" binding:"omitempty,min=0"`
}

// CreateMaterialDTO for attaching a worksheet or article to a video
type CreateMaterialDTO struct {
	Title string `json:"title" binding:"required,max=200"`
	URL   string `json:"url" binding:"required,url"`
}

// VideoResponse for returning video information
type VideoResponse struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	URL          string             `json:"url"`
	ThumbnailURL string             `json:"thumbnail_url"`
	Duration     int                `json:"duration"`
	Materials    []MaterialResponse `json:"materials,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

type MaterialResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

func FromModelToVideoResponse(v *models.Video) *VideoResponse {
	resp := &VideoResponse{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		URL:          v.URL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		CreatedAt:    v.CreatedAt,
	}
	for _, m := range v.Materials {
		resp.Materials = append(resp.Materials, MaterialResponse{ID: m.ID, Title: m.Title, URL: m.URL})
	}
	return resp
}

// PaginatedVideoResponse for returning paginated videos
type PaginatedVideoResponse struct {
	Data       []VideoResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

func NewPaginatedVideoResponse(data []VideoResponse, total, page, pageSize int) *PaginatedVideoResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedVideoResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// CreatePlaylistDTO for curating a playlist
type CreatePlaylistDTO struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// AddPlaylistItemDTO for appending a video to a playlist
type AddPlaylistItemDTO struct {
	VideoID  string `json:"video_id" binding:"required,uuid"`
	Position int    `json:"position" binding:"min=0"`
}

// PlaylistResponse for returning a playlist with its ordered videos
type PlaylistResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Videos      []VideoResponse `json:"videos"`
	CreatedAt   time.Time       `json:"created_at"`
}

func FromModelToPlaylistResponse(p *models.Playlist) *PlaylistResponse {
	resp := &PlaylistResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Videos:      []VideoResponse{},
		CreatedAt:   p.CreatedAt,
	}
	for _, item := range p.Items {
		if item.Video != nil {
			resp.Videos = append(resp.Videos, *FromModelToVideoResponse(item.Video))
		}
	}
	return resp
}
