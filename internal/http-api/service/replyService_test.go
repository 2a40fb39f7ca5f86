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

// MockReplyRepository mocks the ReplyRepository interface
type MockReplyRepository struct {
	mock.Mock
}

func (m *MockReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockReplyRepository) Update(ctx context.Context, reply *models.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockReplyRepository) GetByID(ctx context.Context, replyID string) (*models.Reply, error) {
	args := m.Called(ctx, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockReplyRepository) GetByThread(ctx context.Context, commentID string) ([]models.Reply, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reply), args.Error(1)
}

func strPtr(s string) *string { return &s }

func newReplyTestService() (*MockReplyRepository, *MockCommentRepository, *MockReactionRepository, *MockNotificationService, *MockGamificationService, ReplyService) {
	replyRepo := new(MockReplyRepository)
	commentRepo := new(MockCommentRepository)
	reactionRepo := new(MockReactionRepository)
	notifier := new(MockNotificationService)
	gamification := new(MockGamificationService)
	svc := NewReplyService(replyRepo, commentRepo, reactionRepo, notifier, gamification)
	return replyRepo, commentRepo, reactionRepo, notifier, gamification, svc
}

func TestCreateReply_TopLevelTargetsCommentAuthor(t *testing.T) {
	replyRepo, commentRepo, _, notifier, gamification, svc := newReplyTestService()

	root := &models.Comment{
		ID:          "comment-1",
		ContentID:   "post-1",
		ContentType: models.ContentPost,
		UserID:      "commenter",
	}
	commentRepo.On("GetByID", mock.Anything, "comment-1").Return(root, nil)
	replyRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Reply) bool {
		// Top-level replies carry no parent so the uuid column stays NULL
		return r.CommentID == "comment-1" && r.ParentID == nil &&
			r.ContentID == "post-1" && r.ReplyToUserID == "commenter"
	})).Return(nil)
	notifier.On("Notify", mock.Anything, "commenter", "user-1", models.NotifyReply, models.ContentPost, "post-1", "post-1", "replied to you").
		Return(nil)
	gamification.On("AwardPoints", mock.Anything, "user-1", ActionReply).Return()

	resp, err := svc.Create(context.Background(), "user-1", "comment-1", &dto.CreateReplyDTO{Content: "agreed"})

	assert.NoError(t, err)
	assert.Equal(t, "comment-1", resp.CommentID)
	assert.Equal(t, "commenter", resp.ReplyToUserID)
	replyRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateReply_NestedTargetsParentAuthor(t *testing.T) {
	replyRepo, commentRepo, _, notifier, gamification, svc := newReplyTestService()

	root := &models.Comment{
		ID:          "comment-1",
		ContentID:   "post-1",
		ContentType: models.ContentPost,
		UserID:      "commenter",
	}
	parent := &models.Reply{
		ID:        "reply-1",
		CommentID: "comment-1",
		UserID:    "parent-author",
	}
	commentRepo.On("GetByID", mock.Anything, "comment-1").Return(root, nil)
	replyRepo.On("GetByID", mock.Anything, "reply-1").Return(parent, nil)
	replyRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Reply) bool {
		// CommentID stays the thread root even for nested replies
		return r.CommentID == "comment-1" && r.ParentID != nil && *r.ParentID == "reply-1" &&
			r.ReplyToUserID == "parent-author"
	})).Return(nil)
	notifier.On("Notify", mock.Anything, "parent-author", "user-1", models.NotifyReply, models.ContentPost, "post-1", "post-1", "replied to you").
		Return(nil)
	gamification.On("AwardPoints", mock.Anything, "user-1", ActionReply).Return()

	resp, err := svc.Create(context.Background(), "user-1", "comment-1", &dto.CreateReplyDTO{Content: "me too", ParentID: "reply-1"})

	assert.NoError(t, err)
	assert.Equal(t, "reply-1", resp.ParentID)
	replyRepo.AssertExpectations(t)
}

func TestCreateReply_ParentFromOtherThreadRejected(t *testing.T) {
	replyRepo, commentRepo, _, _, _, svc := newReplyTestService()

	root := &models.Comment{ID: "comment-1", ContentID: "post-1", ContentType: models.ContentPost, UserID: "commenter"}
	stranger := &models.Reply{ID: "reply-9", CommentID: "comment-other", UserID: "someone"}
	commentRepo.On("GetByID", mock.Anything, "comment-1").Return(root, nil)
	replyRepo.On("GetByID", mock.Anything, "reply-9").Return(stranger, nil)

	resp, err := svc.Create(context.Background(), "user-1", "comment-1", &dto.CreateReplyDTO{Content: "hi", ParentID: "reply-9"})

	assert.ErrorIs(t, err, ErrParentNotInThread)
	assert.Nil(t, resp)
	replyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReply_RootCommentMissing(t *testing.T) {
	_, commentRepo, _, _, _, svc := newReplyTestService()

	commentRepo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	resp, err := svc.Create(context.Background(), "user-1", "missing", &dto.CreateReplyDTO{Content: "hi"})

	assert.ErrorIs(t, err, ErrCommentNotFound)
	assert.Nil(t, resp)
}

func TestGetThread_RebuildsTree(t *testing.T) {
	replyRepo, commentRepo, reactionRepo, _, _, svc := newReplyTestService()

	root := &models.Comment{ID: "comment-1", ContentID: "post-1", ContentType: models.ContentPost, UserID: "commenter"}
	// Flat rows oldest-first: r1 top-level, r2 under r1, r3 under r2, r4 top-level
	replies := []models.Reply{
		{ID: "r1", CommentID: "comment-1", UserID: "a", Content: "one"},
		{ID: "r2", CommentID: "comment-1", ParentID: strPtr("r1"), UserID: "b", Content: "two"},
		{ID: "r3", CommentID: "comment-1", ParentID: strPtr("r2"), UserID: "c", Content: "three"},
		{ID: "r4", CommentID: "comment-1", UserID: "d", Content: "four"},
	}
	commentRepo.On("GetByID", mock.Anything, "comment-1").Return(root, nil)
	replyRepo.On("GetByThread", mock.Anything, "comment-1").Return(replies, nil)
	reactionRepo.On("TotalsByContents", mock.Anything, mock.Anything, models.ContentReply).
		Return(map[string]int64{"r2": 5}, nil)
	reactionRepo.On("TotalsByContents", mock.Anything, []string{"comment-1"}, models.ContentComment).
		Return(map[string]int64{}, nil)

	thread, err := svc.GetThread(context.Background(), "comment-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(4), thread.Comment.TotalReplies)
	assert.Len(t, thread.Replies, 2)
	assert.Equal(t, "r1", thread.Replies[0].ID)
	assert.Equal(t, "r4", thread.Replies[1].ID)
	assert.Len(t, thread.Replies[0].Replies, 1)
	assert.Equal(t, "r2", thread.Replies[0].Replies[0].ID)
	assert.Equal(t, int64(5), thread.Replies[0].Replies[0].TotalLikes)
	assert.Len(t, thread.Replies[0].Replies[0].Replies, 1)
	assert.Equal(t, "r3", thread.Replies[0].Replies[0].Replies[0].ID)
}

func TestGetThread_OrphanFallsBackToTopLevel(t *testing.T) {
	replyRepo, commentRepo, reactionRepo, _, _, svc := newReplyTestService()

	root := &models.Comment{ID: "comment-1", ContentID: "post-1", ContentType: models.ContentPost, UserID: "commenter"}
	replies := []models.Reply{
		{ID: "r1", CommentID: "comment-1", ParentID: strPtr("vanished"), UserID: "a", Content: "stranded"},
	}
	commentRepo.On("GetByID", mock.Anything, "comment-1").Return(root, nil)
	replyRepo.On("GetByThread", mock.Anything, "comment-1").Return(replies, nil)
	reactionRepo.On("TotalsByContents", mock.Anything, mock.Anything, models.ContentReply).
		Return(map[string]int64{}, nil)
	reactionRepo.On("TotalsByContents", mock.Anything, []string{"comment-1"}, models.ContentComment).
		Return(map[string]int64{}, nil)

	thread, err := svc.GetThread(context.Background(), "comment-1")

	assert.NoError(t, err)
	assert.Len(t, thread.Replies, 1)
	assert.Equal(t, "r1", thread.Replies[0].ID)
}

func TestEditReply_NotAuthor(t *testing.T) {
	replyRepo, _, _, _, _, svc := newReplyTestService()

	replyRepo.On("GetByID", mock.Anything, "reply-1").
		Return(&models.Reply{ID: "reply-1", UserID: "someone-else"}, nil)

	resp, err := svc.Edit(context.Background(), "user-1", "reply-1", "new text")

	assert.ErrorIs(t, err, ErrNotReplyAuthor)
	assert.Nil(t, resp)
}

func TestSoftDeleteReply_PurgesStoredContent(t *testing.T) {
	replyRepo, _, _, _, _, svc := newReplyTestService()

	replyRepo.On("GetByID", mock.Anything, "reply-1").
		Return(&models.Reply{ID: "reply-1", UserID: "user-1", Content: "secret"}, nil)
	replyRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *models.Reply) bool {
		return r.Deleted && r.Content == models.TombstoneContent
	})).Return(nil)

	err := svc.SoftDelete(context.Background(), "user-1", "reply-1")

	assert.NoError(t, err)
	replyRepo.AssertExpectations(t)
}

func TestSoftDeleteReply_AlreadyDeleted(t *testing.T) {
	replyRepo, _, _, _, _, svc := newReplyTestService()

	replyRepo.On("GetByID", mock.Anything, "reply-1").
		Return(&models.Reply{ID: "reply-1", UserID: "user-1", Deleted: true}, nil)

	err := svc.SoftDelete(context.Background(), "user-1", "reply-1")

	assert.ErrorIs(t, err, ErrReplyDeleted)
	replyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
