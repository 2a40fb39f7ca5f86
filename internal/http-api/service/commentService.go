package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrEmptyContent     = errors.New("content cannot be empty")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the author can modify this comment")
	ErrCommentDeleted   = errors.New("comment has been deleted")
)

type CommentService interface {
	Create(ctx context.Context, userID, contentID string, contentType models.ContentType, content string) (*dto.CommentResponse, error)
	GetThread(ctx context.Context, contentID string, contentType models.ContentType, page, pageSize int, sort repository.CommentSort) (*dto.PaginatedCommentResponse, error)
	Edit(ctx context.Context, userID, commentID, content string) (*dto.CommentResponse, error)
	SoftDelete(ctx context.Context, userID, commentID string) error
}

type commentService struct {
	commentRepo  repository.CommentRepository
	reactionRepo repository.ReactionRepository
	resolver     ContentResolver
	notifier     NotificationService
	gamification GamificationService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reactionRepo repository.ReactionRepository,
	resolver ContentResolver,
	notifier NotificationService,
	gamification GamificationService,
) CommentService {
	return &commentService{
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		resolver:     resolver,
		notifier:     notifier,
		gamification: gamification,
	}
}

func (s *commentService) Create(ctx context.Context, userID, contentID string, contentType models.ContentType, content string) (*dto.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	// Comments attach to top-level items only; replies have their own flow
	switch contentType {
	case models.ContentComment, models.ContentReply:
		return nil, ErrInvalidContentType
	}

	ref, err := s.resolver.Resolve(ctx, contentType, contentID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ContentID:   contentID,
		ContentType: contentType,
		UserID:      userID,
		Content:     content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, ref.OwnerID, userID, models.NotifyComment, contentType, contentID, ref.RootID, "commented on your "+string(contentType)); err != nil {
		slog.Error("failed to notify content owner of comment", "error", err)
	}
	s.gamification.AwardPoints(ctx, userID, ActionComment)

	return dto.FromModelToCommentResponse(comment, 0, 0), nil
}

// GetThread returns one page of a content item's comments enriched with live
// reply and like totals. Tombstoned comments keep their position in the page.
func (s *commentService) GetThread(ctx context.Context, contentID string, contentType models.ContentType, page, pageSize int, sort repository.CommentSort) (*dto.PaginatedCommentResponse, error) {
	if !contentType.IsValid() {
		return nil, ErrInvalidContentType
	}
	if sort == "" {
		sort = repository.SortNewest
	}

	comments, total, err := s.commentRepo.GetThread(ctx, contentID, contentType, page, pageSize, sort)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}

	replyCounts, err := s.commentRepo.ReplyCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	likeTotals, err := s.reactionRepo.TotalsByContents(ctx, ids, models.ContentComment)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		responses = append(responses, *dto.FromModelToCommentResponse(c, replyCounts[c.ID], likeTotals[c.ID]))
	}
	return dto.NewPaginatedCommentResponse(responses, int(total), page, pageSize), nil
}

func (s *commentService) Edit(ctx context.Context, userID, commentID, content string) (*dto.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.Deleted {
		return nil, ErrCommentDeleted
	}
	if comment.UserID != userID {
		return nil, ErrNotCommentAuthor
	}

	now := time.Now()
	comment.Content = content
	comment.EditedAt = &now
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	replyCounts, err := s.commentRepo.ReplyCounts(ctx, []string{comment.ID})
	if err != nil {
		return nil, err
	}
	likeTotals, err := s.reactionRepo.TotalsByContents(ctx, []string{comment.ID}, models.ContentComment)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment, replyCounts[comment.ID], likeTotals[comment.ID]), nil
}

// SoftDelete tombstones a comment in place. The row survives so thread
// positions and reply back-pointers stay valid; readers see the placeholder.
func (s *commentService) SoftDelete(ctx context.Context, userID, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.Deleted {
		return ErrCommentDeleted
	}
	if comment.UserID != userID {
		return ErrNotCommentAuthor
	}

	// The original text is gone from storage, not just hidden at read time
	comment.Deleted = true
	comment.Content = models.TombstoneContent
	return s.commentRepo.Update(ctx, comment)
}
