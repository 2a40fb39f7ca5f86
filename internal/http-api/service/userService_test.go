package service

import (
	"context"
	"testing"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newUserTestService() (UserService, *MockUserRepository, *MockCommentRepository, *MockReactionRepository) {
	userRepo := new(MockUserRepository)
	commentRepo := new(MockCommentRepository)
	reactionRepo := new(MockReactionRepository)
	return NewUserService(userRepo, commentRepo, reactionRepo), userRepo, commentRepo, reactionRepo
}

func TestGetProfile_IncludesActivityTotals(t *testing.T) {
	svc, userRepo, commentRepo, reactionRepo := newUserTestService()
	ctx := context.Background()

	userRepo.On("FindByID", "user-1").Return(&models.User{
		ID:       "user-1",
		Username: "ada",
		Role:     models.RoleUser,
		Bio:      "hello",
		Points:   120,
	}, nil)
	commentRepo.On("CountByUser", ctx, "user-1").Return(int64(14), nil)
	reactionRepo.On("CountByUser", ctx, "user-1").Return(int64(37), nil)

	profile, err := svc.GetProfile(ctx, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "ada", profile.Username)
	assert.Equal(t, 120, profile.Points)
	assert.Equal(t, int64(14), profile.TotalComments)
	assert.Equal(t, int64(37), profile.TotalReactions)
}

func TestGetProfile_UserNotFound(t *testing.T) {
	svc, userRepo, commentRepo, _ := newUserTestService()

	userRepo.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	profile, err := svc.GetProfile(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, profile)
	commentRepo.AssertNotCalled(t, "CountByUser", mock.Anything, mock.Anything)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	svc, userRepo, commentRepo, reactionRepo := newUserTestService()
	ctx := context.Background()
	bio := "new bio"

	userRepo.On("UpdateProfile", "user-1", map[string]interface{}{"bio": "new bio"}).Return(nil)
	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Username: "ada", Bio: "new bio"}, nil)
	commentRepo.On("CountByUser", ctx, "user-1").Return(int64(0), nil)
	reactionRepo.On("CountByUser", ctx, "user-1").Return(int64(0), nil)

	profile, err := svc.UpdateProfile(ctx, "user-1", &dto.UpdateProfileRequest{Bio: &bio})

	assert.NoError(t, err)
	assert.Equal(t, "new bio", profile.Bio)
	userRepo.AssertExpectations(t)
}

func TestUpdateProfile_NoFieldsSkipsWrite(t *testing.T) {
	svc, userRepo, commentRepo, reactionRepo := newUserTestService()
	ctx := context.Background()

	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Username: "ada"}, nil)
	commentRepo.On("CountByUser", ctx, "user-1").Return(int64(0), nil)
	reactionRepo.On("CountByUser", ctx, "user-1").Return(int64(0), nil)

	_, err := svc.UpdateProfile(ctx, "user-1", &dto.UpdateProfileRequest{})

	assert.NoError(t, err)
	userRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}
