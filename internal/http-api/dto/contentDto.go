package dto

import (
	"time"

	"mindhaven/internal/http-api/models"
)

// DTOs for the content domains (posts, Q&A, personal stories).

// CreatePostDTO for creating a community post
type CreatePostDTO struct {
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required,max=10000"`
	Category string `json:"category" binding:"omitempty,max=50"`
}

// UpdatePostDTO for editing a post
type UpdatePostDTO struct {
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required,max=10000"`
	Category string `json:"category" binding:"omitempty,max=50"`
}

// PostResponse for returning post information
type PostResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModelToPostResponse(post *models.Post) *PostResponse {
	resp := &PostResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Title:     post.Title,
		Content:   post.Content,
		Category:  post.Category,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if post.User != nil {
		resp.Username = post.User.Username
		resp.AvatarURL = post.User.AvatarURL
	}
	return resp
}

// PaginatedPostResponse for returning paginated posts
type PaginatedPostResponse struct {
	Data       []PostResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

func NewPaginatedPostResponse(data []PostResponse, total, page, pageSize int) *PaginatedPostResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedPostResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// CreateQuestionDTO for asking a question
type CreateQuestionDTO struct {
	Title    string `json:"title" binding:"required,max=200"`
	Body     string `json:"body" binding:"required,max=10000"`
	Category string `json:"category" binding:"omitempty,max=50"`
}

// CreateAnswerDTO for answering a question
type CreateAnswerDTO struct {
	Body string `json:"body" binding:"required,max=10000"`
}

// QuestionResponse for returning a question
type QuestionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToQuestionResponse(q *models.Question) *QuestionResponse {
	resp := &QuestionResponse{
		ID:        q.ID,
		UserID:    q.UserID,
		Title:     q.Title,
		Body:      q.Body,
		Category:  q.Category,
		CreatedAt: q.CreatedAt,
	}
	if q.User != nil {
		resp.Username = q.User.Username
	}
	return resp
}

// AnswerResponse for returning an answer
type AnswerResponse struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromModelToAnswerResponse(a *models.Answer) *AnswerResponse {
	resp := &AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		UserID:     a.UserID,
		Body:       a.Body,
		CreatedAt:  a.CreatedAt,
	}
	if a.User != nil {
		resp.Username = a.User.Username
	}
	return resp
}

// PaginatedQuestionResponse for returning paginated questions
type PaginatedQuestionResponse struct {
	Data       []QuestionResponse `json:"data"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
}

func NewPaginatedQuestionResponse(data []QuestionResponse, total, page, pageSize int) *PaginatedQuestionResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedQuestionResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// CreateStoryDTO for sharing a personal story
type CreateStoryDTO struct {
	Title     string `json:"title" binding:"required,max=200"`
	Body      string `json:"body" binding:"required,max=20000"`
	Anonymous bool   `json:"anonymous"`
}

// StoryResponse hides the author identity when the story is anonymous.
type StoryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToStoryResponse(s *models.PersonalStory) *StoryResponse {
	resp := &StoryResponse{
		ID:        s.ID,
		Title:     s.Title,
		Body:      s.Body,
		Anonymous: s.Anonymous,
		CreatedAt: s.CreatedAt,
	}
	if !s.Anonymous {
		resp.UserID = s.UserID
		if s.User != nil {
			resp.Username = s.User.Username
		}
	}
	return resp
}

// PaginatedStoryResponse for returning paginated stories
type PaginatedStoryResponse struct {
	Data       []StoryResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

func NewPaginatedStoryResponse(data []StoryResponse, total, page, pageSize int) *PaginatedStoryResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedStoryResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
