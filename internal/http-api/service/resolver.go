package service

import (
	"context"
	"errors"
	"fmt"

	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrInvalidContentType = errors.New("invalid content type")
	ErrContentNotFound    = errors.New("content not found")
)

// ContentRef is the resolved identity of a polymorphic content reference:
// who owns it and which top-level item anchors it for navigation.
type ContentRef struct {
	OwnerID string
	// RootID is the content item itself for top-level domains; for comments
	// and replies it is the post/video/answer/story the thread hangs off.
	RootID   string
	RootType models.ContentType
	// Preview is a short display string for notification messages.
	Preview string
}

// ContentResolver maps a (contentType, contentID) pair onto its owning domain.
// The switch over models.ContentType is the single place a new domain has to
// be wired in for reactions, comments, and notifications to work on it.
type ContentResolver interface {
	Resolve(ctx context.Context, contentType models.ContentType, contentID string) (*ContentRef, error)
}

type contentResolver struct {
	postRepo     repository.PostRepository
	videoRepo    repository.VideoRepository
	questionRepo repository.QuestionRepository
	storyRepo    repository.StoryRepository
	commentRepo  repository.CommentRepository
	replyRepo    repository.ReplyRepository
}

func NewContentResolver(
	postRepo repository.PostRepository,
	videoRepo repository.VideoRepository,
	questionRepo repository.QuestionRepository,
	storyRepo repository.StoryRepository,
	commentRepo repository.CommentRepository,
	replyRepo repository.ReplyRepository,
) ContentResolver {
	return &contentResolver{
		postRepo:     postRepo,
		videoRepo:    videoRepo,
		questionRepo: questionRepo,
		storyRepo:    storyRepo,
		commentRepo:  commentRepo,
		replyRepo:    replyRepo,
	}
}

func (r *contentResolver) Resolve(ctx context.Context, contentType models.ContentType, contentID string) (*ContentRef, error) {
	switch contentType {
	case models.ContentPost:
		post, err := r.postRepo.GetByID(ctx, contentID)
		if err != nil {
			return nil, wrapNotFound(err)
		}
		return &ContentRef{OwnerID: post.UserID, RootID: post.ID, RootType: models.ContentPost, Preview: post.Title}, nil

	case models.ContentVideo:
		video, err := r.videoRepo.GetByID(ctx, contentID)
		if err != nil {
			return nil, wrapNotFound(err)
		}
		return &ContentRef{OwnerID: video.UserID, RootID: video.ID, RootType: models.ContentVideo, Preview: video.Title}, nil

	case models.ContentAnswer:
		answer, err := r.questionRepo.GetAnswerByID(ctx, contentID)
		if err != nil {
			return nil, wrapNotFound(err)
		}
		return &ContentRef{OwnerID: answer.UserID, RootID: answer.QuestionID, RootType: models.ContentAnswer, Preview: truncate(answer.Body, 80)}, nil

	case models.ContentStory:
		story, err := r.storyRepo.GetByID(ctx, contentID)
		if err != nil {
			return nil, wrapNotFound(err)
		}
		return &ContentRef{OwnerID: story.UserID, RootID: story.ID, RootType: models.ContentStory, Preview: story.Title}, nil

	case models.ContentComment:
		comment, err := r.commentRepo.GetByID(ctx, contentID)
		if err != nil {
			return nil, wrapNotFound(err)
		}
		return &ContentRef{OwnerID: comment.UserID, RootID: comment.ContentID, RootType: comment.ContentType, Preview: truncate(comment.Content, 80)}, nil

	case models.ContentReply:
		reply, err := r.replyRepo.GetByID(ctx, contentID)
		if err != nil {
			return nil, wrapNotFound(err)
		}
		return &ContentRef{OwnerID: reply.UserID, RootID: reply.ContentID, RootType: reply.ContentType, Preview: truncate(reply.Content, 80)}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
	}
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrContentNotFound
	}
	return err
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
