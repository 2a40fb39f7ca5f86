package service

import (
	"context"
	"testing"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockReactionRepository mocks the ReactionRepository interface
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) UpdateKind(ctx context.Context, reactionID string, kind models.ReactionKind) error {
	args := m.Called(ctx, reactionID, kind)
	return args.Error(0)
}

func (m *MockReactionRepository) Delete(ctx context.Context, reactionID string) error {
	args := m.Called(ctx, reactionID)
	return args.Error(0)
}

func (m *MockReactionRepository) GetByContentAndUser(ctx context.Context, contentID string, contentType models.ContentType, userID string) (*models.Reaction, error) {
	args := m.Called(ctx, contentID, contentType, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) CountsByContent(ctx context.Context, contentID string, contentType models.ContentType) (map[models.ReactionKind]int64, error) {
	args := m.Called(ctx, contentID, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.ReactionKind]int64), args.Error(1)
}

func (m *MockReactionRepository) TotalsByContents(ctx context.Context, contentIDs []string, contentType models.ContentType) (map[string]int64, error) {
	args := m.Called(ctx, contentIDs, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockReactionRepository) GetReactors(ctx context.Context, contentID string, contentType models.ContentType, kind *models.ReactionKind) ([]models.Reaction, error) {
	args := m.Called(ctx, contentID, contentType, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockContentResolver mocks the ContentResolver interface
type MockContentResolver struct {
	mock.Mock
}

func (m *MockContentResolver) Resolve(ctx context.Context, contentType models.ContentType, contentID string) (*ContentRef, error) {
	args := m.Called(ctx, contentType, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ContentRef), args.Error(1)
}

// MockNotificationService mocks the NotificationService interface
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, recipientID, actorID string, kind models.NotificationKind, contentType models.ContentType, contentID, rootID, message string) error {
	args := m.Called(ctx, recipientID, actorID, kind, contentType, contentID, rootID, message)
	return args.Error(0)
}

func (m *MockNotificationService) GetInbox(ctx context.Context, recipientID string, page, pageSize int) (*dto.PaginatedNotificationResponse, error) {
	args := m.Called(ctx, recipientID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedNotificationResponse), args.Error(1)
}

func (m *MockNotificationService) CountUnseen(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkSeen(ctx context.Context, recipientID, notificationID string) error {
	args := m.Called(ctx, recipientID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllSeen(ctx context.Context, recipientID string) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func newReactionTestService() (*MockReactionRepository, *MockContentResolver, *MockNotificationService, ReactionService) {
	repo := new(MockReactionRepository)
	resolver := new(MockContentResolver)
	notifier := new(MockNotificationService)
	return repo, resolver, notifier, NewReactionService(repo, resolver, notifier)
}

func TestReact_CreateNew(t *testing.T) {
	repo, resolver, notifier, svc := newReactionTestService()

	resolver.On("Resolve", mock.Anything, models.ContentPost, "post-1").
		Return(&ContentRef{OwnerID: "owner-1", RootID: "post-1", RootType: models.ContentPost}, nil)
	repo.On("GetByContentAndUser", mock.Anything, "post-1", models.ContentPost, "user-1").
		Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Reaction")).Return(nil)
	repo.On("CountsByContent", mock.Anything, "post-1", models.ContentPost).
		Return(map[models.ReactionKind]int64{models.KindHeart: 1}, nil)
	notifier.On("Notify", mock.Anything, "owner-1", "user-1", models.NotifyReaction, models.ContentPost, "post-1", "post-1", "reacted to your post").
		Return(nil)

	outcome, err := svc.React(context.Background(), "user-1", "post-1", models.ContentPost, models.KindHeart)

	assert.NoError(t, err)
	assert.NotNil(t, outcome.Created)
	assert.Equal(t, models.KindHeart, *outcome.Created)
	assert.Nil(t, outcome.Updated)
	assert.False(t, outcome.Removed)
	assert.Equal(t, int64(1), outcome.Counts[models.KindHeart])
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReact_SameKindTogglesOff(t *testing.T) {
	repo, resolver, notifier, svc := newReactionTestService()

	existing := &models.Reaction{
		ID:          "reaction-1",
		ContentID:   "post-1",
		ContentType: models.ContentPost,
		UserID:      "user-1",
		Kind:        models.KindLike,
	}
	resolver.On("Resolve", mock.Anything, models.ContentPost, "post-1").
		Return(&ContentRef{OwnerID: "owner-1", RootID: "post-1"}, nil)
	repo.On("GetByContentAndUser", mock.Anything, "post-1", models.ContentPost, "user-1").
		Return(existing, nil)
	repo.On("Delete", mock.Anything, "reaction-1").Return(nil)
	repo.On("CountsByContent", mock.Anything, "post-1", models.ContentPost).
		Return(map[models.ReactionKind]int64{}, nil)

	outcome, err := svc.React(context.Background(), "user-1", "post-1", models.ContentPost, models.KindLike)

	assert.NoError(t, err)
	assert.True(t, outcome.Removed)
	assert.Nil(t, outcome.Created)
	assert.Equal(t, int64(0), outcome.Total)
	repo.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReact_DifferentKindSwitchesInPlace(t *testing.T) {
	repo, resolver, notifier, svc := newReactionTestService()

	existing := &models.Reaction{
		ID:          "reaction-1",
		ContentID:   "post-1",
		ContentType: models.ContentPost,
		UserID:      "user-1",
		Kind:        models.KindLike,
	}
	resolver.On("Resolve", mock.Anything, models.ContentPost, "post-1").
		Return(&ContentRef{OwnerID: "owner-1", RootID: "post-1"}, nil)
	repo.On("GetByContentAndUser", mock.Anything, "post-1", models.ContentPost, "user-1").
		Return(existing, nil)
	repo.On("UpdateKind", mock.Anything, "reaction-1", models.KindSupport).Return(nil)
	repo.On("CountsByContent", mock.Anything, "post-1", models.ContentPost).
		Return(map[models.ReactionKind]int64{models.KindSupport: 1}, nil)
	notifier.On("Notify", mock.Anything, "owner-1", "user-1", models.NotifyReaction, models.ContentPost, "post-1", "post-1", "reacted to your post").
		Return(nil)

	outcome, err := svc.React(context.Background(), "user-1", "post-1", models.ContentPost, models.KindSupport)

	assert.NoError(t, err)
	assert.NotNil(t, outcome.Updated)
	assert.Equal(t, models.KindSupport, *outcome.Updated)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReact_DuplicateInsertRecoveredAsUpdate(t *testing.T) {
	repo, resolver, notifier, svc := newReactionTestService()

	winner := &models.Reaction{
		ID:          "reaction-1",
		ContentID:   "post-1",
		ContentType: models.ContentPost,
		UserID:      "user-1",
		Kind:        models.KindLike,
	}
	resolver.On("Resolve", mock.Anything, models.ContentPost, "post-1").
		Return(&ContentRef{OwnerID: "owner-1", RootID: "post-1"}, nil)
	repo.On("GetByContentAndUser", mock.Anything, "post-1", models.ContentPost, "user-1").
		Return(nil, gorm.ErrRecordNotFound).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Reaction")).
		Return(gorm.ErrDuplicatedKey)
	repo.On("GetByContentAndUser", mock.Anything, "post-1", models.ContentPost, "user-1").
		Return(winner, nil).Once()
	repo.On("UpdateKind", mock.Anything, "reaction-1", models.KindHeart).Return(nil)
	repo.On("CountsByContent", mock.Anything, "post-1", models.ContentPost).
		Return(map[models.ReactionKind]int64{models.KindHeart: 1}, nil)
	notifier.On("Notify", mock.Anything, "owner-1", "user-1", models.NotifyReaction, models.ContentPost, "post-1", "post-1", "reacted to your post").
		Return(nil)

	outcome, err := svc.React(context.Background(), "user-1", "post-1", models.ContentPost, models.KindHeart)

	assert.NoError(t, err)
	assert.NotNil(t, outcome.Updated)
	assert.Nil(t, outcome.Created)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReact_UntranslatedDriverErrorRecoveredAsUpdate(t *testing.T) {
	repo, resolver, notifier, svc := newReactionTestService()

	winner := &models.Reaction{
		ID:          "reaction-1",
		ContentID:   "post-1",
		ContentType: models.ContentPost,
		UserID:      "user-1",
		Kind:        models.KindHeart,
	}
	resolver.On("Resolve", mock.Anything, models.ContentPost, "post-1").
		Return(&ContentRef{OwnerID: "owner-1", RootID: "post-1"}, nil)
	repo.On("GetByContentAndUser", mock.Anything, "post-1", models.ContentPost, "user-1").
		Return(nil, gorm.ErrRecordNotFound).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Reaction")).
		Return(&pgconn.PgError{Code: "23505"})
	repo.On("GetByContentAndUser", mock.Anything, "post-1", models.ContentPost, "user-1").
		Return(winner, nil).Once()
	repo.On("CountsByContent", mock.Anything, "post-1", models.ContentPost).
		Return(map[models.ReactionKind]int64{models.KindHeart: 1}, nil)
	notifier.On("Notify", mock.Anything, "owner-1", "user-1", models.NotifyReaction, models.ContentPost, "post-1", "post-1", "reacted to your post").
		Return(nil)

	outcome, err := svc.React(context.Background(), "user-1", "post-1", models.ContentPost, models.KindHeart)

	assert.NoError(t, err)
	assert.NotNil(t, outcome.Updated)
	repo.AssertNotCalled(t, "UpdateKind", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestReact_InvalidKind(t *testing.T) {
	_, _, _, svc := newReactionTestService()

	outcome, err := svc.React(context.Background(), "user-1", "post-1", models.ContentPost, "shrug")

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidReactionKind)
	assert.Nil(t, outcome)
}

func TestReact_ContentNotFound(t *testing.T) {
	_, resolver, _, svc := newReactionTestService()

	resolver.On("Resolve", mock.Anything, models.ContentPost, "missing").
		Return(nil, ErrContentNotFound)

	outcome, err := svc.React(context.Background(), "user-1", "missing", models.ContentPost, models.KindLike)

	assert.ErrorIs(t, err, ErrContentNotFound)
	assert.Nil(t, outcome)
}

func TestReact_CommentTargetGetsLikedNotification(t *testing.T) {
	repo, resolver, notifier, svc := newReactionTestService()

	resolver.On("Resolve", mock.Anything, models.ContentComment, "comment-1").
		Return(&ContentRef{OwnerID: "owner-1", RootID: "post-1", RootType: models.ContentPost}, nil)
	repo.On("GetByContentAndUser", mock.Anything, "comment-1", models.ContentComment, "user-1").
		Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Reaction")).Return(nil)
	repo.On("CountsByContent", mock.Anything, "comment-1", models.ContentComment).
		Return(map[models.ReactionKind]int64{models.KindLike: 1}, nil)
	notifier.On("Notify", mock.Anything, "owner-1", "user-1", models.NotifyCommentLiked, models.ContentComment, "comment-1", "post-1", "liked your comment").
		Return(nil)

	_, err := svc.React(context.Background(), "user-1", "comment-1", models.ContentComment, models.KindLike)

	assert.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestReact_CountsAreZeroFilled(t *testing.T) {
	repo, resolver, _, svc := newReactionTestService()

	existing := &models.Reaction{ID: "reaction-1", Kind: models.KindLike}
	resolver.On("Resolve", mock.Anything, models.ContentPost, "post-1").
		Return(&ContentRef{OwnerID: "owner-1", RootID: "post-1"}, nil)
	repo.On("GetByContentAndUser", mock.Anything, "post-1", models.ContentPost, "user-1").
		Return(existing, nil)
	repo.On("Delete", mock.Anything, "reaction-1").Return(nil)
	repo.On("CountsByContent", mock.Anything, "post-1", models.ContentPost).
		Return(map[models.ReactionKind]int64{models.KindHeart: 3}, nil)

	outcome, err := svc.React(context.Background(), "user-1", "post-1", models.ContentPost, models.KindLike)

	assert.NoError(t, err)
	assert.Len(t, outcome.Counts, len(models.ReactionKinds))
	for _, kind := range models.ReactionKinds {
		_, present := outcome.Counts[kind]
		assert.True(t, present, "kind %q missing from counts", kind)
	}
	assert.Equal(t, int64(3), outcome.Total)
}

func TestGetReactions_AnonymousCaller(t *testing.T) {
	repo, _, _, svc := newReactionTestService()

	repo.On("CountsByContent", mock.Anything, "post-1", models.ContentPost).
		Return(map[models.ReactionKind]int64{models.KindLike: 2}, nil)

	resp, err := svc.GetReactions(context.Background(), "post-1", models.ContentPost, "")

	assert.NoError(t, err)
	assert.Nil(t, resp.CallerKind)
	assert.Equal(t, int64(2), resp.Total)
	repo.AssertNotCalled(t, "GetByContentAndUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetReactions_CallerHasReaction(t *testing.T) {
	repo, _, _, svc := newReactionTestService()

	repo.On("CountsByContent", mock.Anything, "post-1", models.ContentPost).
		Return(map[models.ReactionKind]int64{models.KindHeart: 1}, nil)
	repo.On("GetByContentAndUser", mock.Anything, "post-1", models.ContentPost, "user-1").
		Return(&models.Reaction{Kind: models.KindHeart}, nil)

	resp, err := svc.GetReactions(context.Background(), "post-1", models.ContentPost, "user-1")

	assert.NoError(t, err)
	assert.NotNil(t, resp.CallerKind)
	assert.Equal(t, models.KindHeart, *resp.CallerKind)
}

func TestListReactors_InvalidKindFilter(t *testing.T) {
	_, _, _, svc := newReactionTestService()

	bad := models.ReactionKind("nope")
	reactors, err := svc.ListReactors(context.Background(), "post-1", models.ContentPost, &bad)

	assert.ErrorIs(t, err, ErrInvalidReactionKind)
	assert.Nil(t, reactors)
}
