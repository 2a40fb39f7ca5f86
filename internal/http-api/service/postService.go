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
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("only the author can modify this post")
)

type PostService interface {
	Create(ctx context.Context, userID string, req *dto.CreatePostDTO) (*dto.PostResponse, error)
	GetByID(ctx context.Context, postID string) (*dto.PostResponse, error)
	GetAll(ctx context.Context, category string, page, pageSize int) (*dto.PaginatedPostResponse, error)
	GetByUser(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedPostResponse, error)
	Update(ctx context.Context, userID, postID string, req *dto.UpdatePostDTO) (*dto.PostResponse, error)
	Delete(ctx context.Context, userID, postID string) error
}

type postService struct {
	postRepo     repository.PostRepository
	gamification GamificationService
}

func NewPostService(postRepo repository.PostRepository, gamification GamificationService) PostService {
	return &postService{postRepo: postRepo, gamification: gamification}
}

func (s *postService) Create(ctx context.Context, userID string, req *dto.CreatePostDTO) (*dto.PostResponse, error) {
	post := &models.Post{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.gamification.AwardPoints(ctx, userID, ActionPost)
	return dto.FromModelToPostResponse(post), nil
}

func (s *postService) GetByID(ctx context.Context, postID string) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return dto.FromModelToPostResponse(post), nil
}

func (s *postService) GetAll(ctx context.Context, category string, page, pageSize int) (*dto.PaginatedPostResponse, error) {
	posts, total, err := s.postRepo.GetAll(ctx, category, page, pageSize)
	if err != nil {
		return nil, err
	}
	return paginatePosts(posts, total, page, pageSize), nil
}

func (s *postService) GetByUser(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedPostResponse, error) {
	posts, total, err := s.postRepo.GetByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return paginatePosts(posts, total, page, pageSize), nil
}

func (s *postService) Update(ctx context.Context, userID, postID string, req *dto.UpdatePostDTO) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrNotPostAuthor
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Category = req.Category
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return dto.FromModelToPostResponse(post), nil
}

func (s *postService) Delete(ctx context.Context, userID, postID string) error {
	affected, err := s.postRepo.Delete(ctx, postID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the post is gone or the caller doesn't own it
		if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		return ErrNotPostAuthor
	}
	return nil
}

func paginatePosts(posts []models.Post, total int64, page, pageSize int) *dto.PaginatedPostResponse {
	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, *dto.FromModelToPostResponse(&posts[i]))
	}
	return dto.NewPaginatedPostResponse(responses, int(total), page, pageSize)
}
