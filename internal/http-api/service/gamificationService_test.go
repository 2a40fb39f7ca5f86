package service

import (
	"context"
	"testing"

	"mindhaven/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(id string, updates map[string]interface{}) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *MockUserRepository) AddPoints(id string, points int) error {
	args := m.Called(id, points)
	return args.Error(0)
}

func (m *MockUserRepository) TopByPoints(limit int) ([]models.User, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockAchievementRepository mocks the AchievementRepository interface
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) GetCatalog(ctx context.Context) ([]models.Achievement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) GetUnlocked(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserAchievement), args.Error(1)
}

func (m *MockAchievementRepository) Unlock(ctx context.Context, unlock *models.UserAchievement) error {
	args := m.Called(ctx, unlock)
	return args.Error(0)
}

func (m *MockAchievementRepository) IsUnlocked(ctx context.Context, userID string, achievementID int64) (bool, error) {
	args := m.Called(ctx, userID, achievementID)
	return args.Bool(0), args.Error(1)
}

func newGamificationTestService() (*MockUserRepository, *MockAchievementRepository, *MockNotificationService, GamificationService) {
	userRepo := new(MockUserRepository)
	achievementRepo := new(MockAchievementRepository)
	notifier := new(MockNotificationService)
	return userRepo, achievementRepo, notifier, NewGamificationService(userRepo, achievementRepo, notifier)
}

func TestAwardPoints_UnlocksCrossedThresholds(t *testing.T) {
	userRepo, achievementRepo, notifier, svc := newGamificationTestService()

	userRepo.On("AddPoints", "user-1", pointValues[ActionAnswer]).Return(nil)
	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1", Points: 60}, nil)

	catalog := []models.Achievement{
		{ID: 1, Code: "first_steps", Name: "First Steps", Threshold: 10},
		{ID: 2, Code: "opening_up", Name: "Opening Up", Threshold: 50},
		{ID: 3, Code: "helping_hand", Name: "Helping Hand", Threshold: 150},
	}
	achievementRepo.On("GetCatalog", mock.Anything).Return(catalog, nil)
	achievementRepo.On("IsUnlocked", mock.Anything, "user-1", int64(1)).Return(true, nil)
	achievementRepo.On("IsUnlocked", mock.Anything, "user-1", int64(2)).Return(false, nil)
	achievementRepo.On("Unlock", mock.Anything, mock.MatchedBy(func(u *models.UserAchievement) bool {
		return u.UserID == "user-1" && u.AchievementID == 2
	})).Return(nil)
	notifier.On("Notify", mock.Anything, "user-1", "", models.NotifyAchievement, models.ContentType(""), "2", "", "You unlocked Opening Up").
		Return(nil)

	svc.AwardPoints(context.Background(), "user-1", ActionAnswer)

	userRepo.AssertExpectations(t)
	achievementRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	// Threshold 150 not reached: the ascending walk stops before it
	achievementRepo.AssertNotCalled(t, "IsUnlocked", mock.Anything, "user-1", int64(3))
}

func TestAwardPoints_UnknownActionIsNoop(t *testing.T) {
	userRepo, _, _, svc := newGamificationTestService()

	svc.AwardPoints(context.Background(), "user-1", "watch_video")

	userRepo.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything)
}

func TestAwardPoints_PointsWriteFailureSkipsUnlockCheck(t *testing.T) {
	userRepo, achievementRepo, _, svc := newGamificationTestService()

	userRepo.On("AddPoints", "user-1", pointValues[ActionPost]).Return(assert.AnError)

	svc.AwardPoints(context.Background(), "user-1", ActionPost)

	achievementRepo.AssertNotCalled(t, "GetCatalog", mock.Anything)
}

func TestLeaderboard_AssignsRanks(t *testing.T) {
	userRepo, _, _, svc := newGamificationTestService()

	users := []models.User{
		{ID: "user-1", Username: "alice", Points: 300},
		{ID: "user-2", Username: "bob", Points: 120},
	}
	userRepo.On("TopByPoints", 10).Return(users, nil)

	entries, err := svc.Leaderboard(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestLeaderboard_ClampsBadLimit(t *testing.T) {
	userRepo, _, _, svc := newGamificationTestService()

	userRepo.On("TopByPoints", 10).Return([]models.User{}, nil)

	entries, err := svc.Leaderboard(context.Background(), 5000)

	assert.NoError(t, err)
	assert.Empty(t, entries)
	userRepo.AssertExpectations(t)
}
