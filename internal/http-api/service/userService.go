package service

import (
	"context"
	"errors"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type userService struct {
	userRepo     repository.UserRepository
	commentRepo  repository.CommentRepository
	reactionRepo repository.ReactionRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	reactionRepo repository.ReactionRepository,
) UserService {
	return &userService{
		userRepo:     userRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	totalComments, err := s.commentRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalReactions, err := s.reactionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UserID:         user.ID,
		Username:       user.Username,
		Role:           user.Role,
		AvatarURL:      user.AvatarURL,
		Bio:            user.Bio,
		Points:         user.Points,
		TotalComments:  totalComments,
		TotalReactions: totalReactions,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	updates := make(map[string]interface{})
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateProfile(userID, updates); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(ctx, userID)
}
