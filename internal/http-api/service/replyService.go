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
	ErrReplyNotFound     = errors.New("reply not found")
	ErrNotReplyAuthor    = errors.New("only the author can modify this reply")
	ErrReplyDeleted      = errors.New("reply has been deleted")
	ErrParentNotInThread = errors.New("parent reply belongs to a different thread")
)

type ReplyService interface {
	Create(ctx context.Context, userID, commentID string, req *dto.CreateReplyDTO) (*dto.ReplyResponse, error)
	GetThread(ctx context.Context, commentID string) (*dto.ThreadResponse, error)
	Edit(ctx context.Context, userID, replyID, content string) (*dto.ReplyResponse, error)
	SoftDelete(ctx context.Context, userID, replyID string) error
}

type replyService struct {
	replyRepo    repository.ReplyRepository
	commentRepo  repository.CommentRepository
	reactionRepo repository.ReactionRepository
	notifier     NotificationService
	gamification GamificationService
}

func NewReplyService(
	replyRepo repository.ReplyRepository,
	commentRepo repository.CommentRepository,
	reactionRepo repository.ReactionRepository,
	notifier NotificationService,
	gamification GamificationService,
) ReplyService {
	return &replyService{
		replyRepo:    replyRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		notifier:     notifier,
		gamification: gamification,
	}
}

// Create adds a reply under a comment thread. Whatever the nesting depth,
// CommentID on the stored row always points at the thread's root comment so
// the whole thread loads with one query; ParentID preserves the tree shape.
func (s *replyService) Create(ctx context.Context, userID, commentID string, req *dto.CreateReplyDTO) (*dto.ReplyResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	root, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	replyToUserID := root.UserID
	var parentID *string
	if req.ParentID != "" {
		parent, err := s.replyRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReplyNotFound
			}
			return nil, err
		}
		if parent.CommentID != commentID {
			return nil, ErrParentNotInThread
		}
		replyToUserID = parent.UserID
		parentID = &parent.ID
	}

	reply := &models.Reply{
		CommentID:     commentID,
		ParentID:      parentID,
		ContentID:     root.ContentID,
		ContentType:   root.ContentType,
		UserID:        userID,
		ReplyToUserID: replyToUserID,
		Content:       content,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, replyToUserID, userID, models.NotifyReply, root.ContentType, root.ContentID, root.ContentID, "replied to you"); err != nil {
		slog.Error("failed to notify reply target", "error", err)
	}
	s.gamification.AwardPoints(ctx, userID, ActionReply)

	return dto.FromModelToReplyResponse(reply, 0), nil
}

// GetThread loads a root comment and rebuilds its full reply tree from the
// flat rows. Children attach to their parent by ParentID; rows whose parent
// is missing fall back to the top level rather than vanishing.
func (s *replyService) GetThread(ctx context.Context, commentID string) (*dto.ThreadResponse, error) {
	root, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	replies, err := s.replyRepo.GetByThread(ctx, commentID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(replies)+1)
	ids = append(ids, root.ID)
	for _, r := range replies {
		ids = append(ids, r.ID)
	}
	replyLikes, err := s.reactionRepo.TotalsByContents(ctx, ids, models.ContentReply)
	if err != nil {
		return nil, err
	}
	commentLikes, err := s.reactionRepo.TotalsByContents(ctx, []string{root.ID}, models.ContentComment)
	if err != nil {
		return nil, err
	}

	// Rows arrive oldest-first, so every parent is converted before its
	// children and sibling order within a level is chronological.
	nodes := make(map[string]*dto.ReplyResponse, len(replies))
	order := make([]string, 0, len(replies))
	for i := range replies {
		r := &replies[i]
		nodes[r.ID] = dto.FromModelToReplyResponse(r, replyLikes[r.ID])
		order = append(order, r.ID)
	}

	tree := make([]dto.ReplyResponse, 0, len(replies))
	attach := make(map[string][]string, len(replies))
	var topLevel []string
	for _, id := range order {
		node := nodes[id]
		if node.ParentID != "" && nodes[node.ParentID] != nil {
			attach[node.ParentID] = append(attach[node.ParentID], id)
		} else {
			topLevel = append(topLevel, id)
		}
	}

	var build func(id string) dto.ReplyResponse
	build = func(id string) dto.ReplyResponse {
		node := *nodes[id]
		for _, childID := range attach[id] {
			node.Replies = append(node.Replies, build(childID))
		}
		return node
	}
	for _, id := range topLevel {
		tree = append(tree, build(id))
	}

	return &dto.ThreadResponse{
		Comment: *dto.FromModelToCommentResponse(root, int64(len(replies)), commentLikes[root.ID]),
		Replies: tree,
	}, nil
}

func (s *replyService) Edit(ctx context.Context, userID, replyID, content string) (*dto.ReplyResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReplyNotFound
		}
		return nil, err
	}
	if reply.Deleted {
		return nil, ErrReplyDeleted
	}
	if reply.UserID != userID {
		return nil, ErrNotReplyAuthor
	}

	now := time.Now()
	reply.Content = content
	reply.EditedAt = &now
	if err := s.replyRepo.Update(ctx, reply); err != nil {
		return nil, err
	}

	likes, err := s.reactionRepo.TotalsByContents(ctx, []string{reply.ID}, models.ContentReply)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReplyResponse(reply, likes[reply.ID]), nil
}

// SoftDelete tombstones a reply in place so descendants keep their parent.
func (s *replyService) SoftDelete(ctx context.Context, userID, replyID string) error {
	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReplyNotFound
		}
		return err
	}
	if reply.Deleted {
		return ErrReplyDeleted
	}
	if reply.UserID != userID {
		return ErrNotReplyAuthor
	}

	// The original text is gone from storage, not just hidden at read time
	reply.Deleted = true
	reply.Content = models.TombstoneContent
	return s.replyRepo.Update(ctx, reply)
}
