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
	ErrStoryNotFound  = errors.New("story not found")
	ErrNotStoryAuthor = errors.New("only the author can modify this story")
)

type StoryService interface {
	Share(ctx context.Context, userID string, req *dto.CreateStoryDTO) (*dto.StoryResponse, error)
	GetByID(ctx context.Context, storyID string) (*dto.StoryResponse, error)
	GetAll(ctx context.Context, page, pageSize int) (*dto.PaginatedStoryResponse, error)
	Delete(ctx context.Context, userID, storyID string) error
}

type storyService struct {
	storyRepo    repository.StoryRepository
	gamification GamificationService
}

func NewStoryService(storyRepo repository.StoryRepository, gamification GamificationService) StoryService {
	return &storyService{storyRepo: storyRepo, gamification: gamification}
}

func (s *storyService) Share(ctx context.Context, userID string, req *dto.CreateStoryDTO) (*dto.StoryResponse, error) {
	story := &models.PersonalStory{
		UserID:    userID,
		Title:     req.Title,
		Body:      req.Body,
		Anonymous: req.Anonymous,
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	s.gamification.AwardPoints(ctx, userID, ActionStory)
	return dto.FromModelToStoryResponse(story), nil
}

func (s *storyService) GetByID(ctx context.Context, storyID string) (*dto.StoryResponse, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return dto.FromModelToStoryResponse(story), nil
}

func (s *storyService) GetAll(ctx context.Context, page, pageSize int) (*dto.PaginatedStoryResponse, error) {
	stories, total, err := s.storyRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StoryResponse, 0, len(stories))
	for i := range stories {
		responses = append(responses, *dto.FromModelToStoryResponse(&stories[i]))
	}
	return dto.NewPaginatedStoryResponse(responses, int(total), page, pageSize), nil
}

func (s *storyService) Delete(ctx context.Context, userID, storyID string) error {
	affected, err := s.storyRepo.Delete(ctx, storyID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.storyRepo.GetByID(ctx, storyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoryNotFound
			}
			return err
		}
		return ErrNotStoryAuthor
	}
	return nil
}
